//go:build !linux && !darwin

package attrerr

import "syscall"

// NoAttribute is the errno reported for an absent attribute.
const NoAttribute = syscall.ENOENT
