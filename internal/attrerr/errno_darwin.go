package attrerr

import "golang.org/x/sys/unix"

// NoAttribute is the errno the kernel reports for an absent attribute.
const NoAttribute = unix.ENOATTR
