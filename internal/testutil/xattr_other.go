//go:build !linux && !darwin

package testutil

import "testing"

// ProbeKey is the attribute name used to probe filesystem support.
func ProbeKey() string {
	return "xmeta.probe"
}

// RequireXattrSupport always skips on platforms without extended attributes.
func RequireXattrSupport(t *testing.T, path string) {
	t.Helper()
	t.Skipf("extended attributes unsupported on this platform (%s)", path)
}
