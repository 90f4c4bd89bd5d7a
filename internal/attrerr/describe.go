package attrerr

import "syscall"

// Describer translates a platform error code into human-readable text.
// A nil Describer falls back to DescribeErrno.
type Describer func(errno syscall.Errno) string

// Describe renders errno using d, or DescribeErrno when d is nil.
func (d Describer) Describe(errno syscall.Errno) string {
	if d == nil {
		return DescribeErrno(errno)
	}
	return d(errno)
}
