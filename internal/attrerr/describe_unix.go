//go:build linux || darwin

package attrerr

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// DescribeErrno renders errno as "NAME: message", e.g. "ENOENT: no such file
// or directory". Unknown codes render the message alone.
func DescribeErrno(errno syscall.Errno) string {
	if name := unix.ErrnoName(errno); name != "" {
		return name + ": " + errno.Error()
	}
	return errno.Error()
}
