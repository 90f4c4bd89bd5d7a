//go:build linux || darwin

package testutil

import (
	"errors"
	"runtime"
	"testing"

	"golang.org/x/sys/unix"
)

// ProbeKey is the attribute name used to probe filesystem support.
func ProbeKey() string {
	if runtime.GOOS == "darwin" {
		return "xmeta.probe"
	}
	return "user.xmeta.probe"
}

// RequireXattrSupport skips the test when the filesystem holding path
// does not accept user extended attributes.
func RequireXattrSupport(t *testing.T, path string) {
	t.Helper()
	err := unix.Setxattr(path, ProbeKey(), []byte("1"), 0)
	switch {
	case err == nil:
		_ = unix.Removexattr(path, ProbeKey())
	case errors.Is(err, unix.ENOTSUP), errors.Is(err, unix.EOPNOTSUPP), errors.Is(err, unix.EPERM):
		t.Skipf("extended attributes unsupported at %s: %v", path, err)
	default:
		t.Fatalf("probe extended attributes at %s: %v", path, err)
	}
}
