package xattr

import (
	"bytes"
	"errors"
	"syscall"

	"github.com/roach88/xmeta/internal/attrerr"
)

// Store reads and writes raw attribute blobs. A Store holds no per-file
// state and is safe for concurrent use if its Syscalls and Resolver are.
type Store struct {
	sys      Syscalls
	resolver Resolver
	describe attrerr.Describer
	nofollow bool
}

// Option configures a Store.
type Option func(*Store)

// WithSyscalls replaces the OS primitives, typically with a Fake in tests.
func WithSyscalls(sys Syscalls) Option {
	return func(s *Store) { s.sys = sys }
}

// WithResolver replaces the reference resolver.
func WithResolver(r Resolver) Option {
	return func(s *Store) { s.resolver = r }
}

// WithDescriber sets the errno-to-text translation used in error values.
func WithDescriber(d attrerr.Describer) Option {
	return func(s *Store) { s.describe = d }
}

// WithNoFollow makes every call act on symlinks themselves.
func WithNoFollow() Option {
	return func(s *Store) { s.nofollow = true }
}

// New creates a Store. Without options it uses the kernel and LocalResolver.
func New(opts ...Option) *Store {
	s := &Store{
		sys:      OS(),
		resolver: LocalResolver{},
		describe: attrerr.DescribeErrno,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve maps ref to a local path using the store's resolver.
func (s *Store) Resolve(ref string) (string, error) {
	return s.resolver.Resolve(ref)
}

// ListKeys returns the attribute keys of ref in the order the OS reports
// them. A file without attributes yields an empty, non-nil slice.
func (s *Store) ListKeys(ref string) ([]string, error) {
	path, err := s.resolver.Resolve(ref)
	if err != nil {
		return nil, err
	}

	size, err := s.sys.List(path, nil, s.nofollow)
	if err != nil {
		return nil, attrerr.ReadFailure("listxattr", path, "", err, s.describe)
	}
	if size == 0 {
		return []string{}, nil
	}

	buf := make([]byte, size)
	n, err := s.sys.List(path, buf, s.nofollow)
	if err != nil {
		return nil, attrerr.ReadFailure("listxattr", path, "", err, s.describe)
	}

	keys := []string{}
	for _, name := range bytes.Split(buf[:n], []byte{0}) {
		if len(name) > 0 {
			keys = append(keys, string(name))
		}
	}
	return keys, nil
}

// GetRaw returns the blob stored under key. An absent key is a read-failure
// for which attrerr.IsNotFound reports true.
func (s *Store) GetRaw(ref, key string) ([]byte, error) {
	path, err := s.resolver.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, attrerr.ReadFailure("getxattr", path, key, syscall.EINVAL, s.describe)
	}

	size, err := s.sys.Get(path, key, nil, s.nofollow)
	if err != nil {
		return nil, attrerr.ReadFailure("getxattr", path, key, err, s.describe)
	}
	if size == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, size)
	n, err := s.sys.Get(path, key, buf, s.nofollow)
	if err != nil {
		return nil, attrerr.ReadFailure("getxattr", path, key, err, s.describe)
	}
	return buf[:n], nil
}

// SetRaw replaces the blob stored under key with data.
func (s *Store) SetRaw(ref, key string, data []byte) error {
	path, err := s.resolver.Resolve(ref)
	if err != nil {
		return err
	}
	if key == "" {
		return attrerr.WriteFailure("setxattr", path, key, syscall.EINVAL, s.describe)
	}

	if err := s.sys.Set(path, key, data, s.nofollow); err != nil {
		return attrerr.WriteFailure("setxattr", path, key, err, s.describe)
	}
	return nil
}

// RemoveRaw deletes key. Removing an absent key succeeds.
func (s *Store) RemoveRaw(ref, key string) error {
	path, err := s.resolver.Resolve(ref)
	if err != nil {
		return err
	}
	if key == "" {
		return attrerr.WriteFailure("removexattr", path, key, syscall.EINVAL, s.describe)
	}

	err = s.sys.Remove(path, key, s.nofollow)
	if err == nil || errors.Is(err, attrerr.NoAttribute) {
		return nil
	}
	return attrerr.WriteFailure("removexattr", path, key, err, s.describe)
}
