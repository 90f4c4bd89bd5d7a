//go:build !linux && !darwin

package attrerr

import "syscall"

// DescribeErrno renders errno's message.
func DescribeErrno(errno syscall.Errno) string {
	return errno.Error()
}
