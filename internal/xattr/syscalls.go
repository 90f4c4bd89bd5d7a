package xattr

// Syscalls is the OS extended-attribute primitive set. The shapes mirror
// listxattr(2), getxattr(2), setxattr(2) and removexattr(2): a nil or empty
// dest asks for the required size, and errors are syscall.Errno values.
//
// nofollow selects the variant that acts on a symlink itself instead of its
// target.
type Syscalls interface {
	List(path string, dest []byte, nofollow bool) (int, error)
	Get(path, key string, dest []byte, nofollow bool) (int, error)
	Set(path, key string, data []byte, nofollow bool) error
	Remove(path, key string, nofollow bool) error
}

// OS returns the Syscalls implementation backed by the running kernel.
func OS() Syscalls {
	return osSyscalls{}
}
