//go:build linux || darwin

package xattr

import "golang.org/x/sys/unix"

type osSyscalls struct{}

func (osSyscalls) List(path string, dest []byte, nofollow bool) (int, error) {
	if nofollow {
		return unix.Llistxattr(path, dest)
	}
	return unix.Listxattr(path, dest)
}

func (osSyscalls) Get(path, key string, dest []byte, nofollow bool) (int, error) {
	if nofollow {
		return unix.Lgetxattr(path, key, dest)
	}
	return unix.Getxattr(path, key, dest)
}

func (osSyscalls) Set(path, key string, data []byte, nofollow bool) error {
	if nofollow {
		return unix.Lsetxattr(path, key, data, 0)
	}
	return unix.Setxattr(path, key, data, 0)
}

func (osSyscalls) Remove(path, key string, nofollow bool) error {
	if nofollow {
		return unix.Lremovexattr(path, key)
	}
	return unix.Removexattr(path, key)
}
