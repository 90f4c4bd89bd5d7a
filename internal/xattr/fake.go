package xattr

import (
	"sync"
	"syscall"

	"github.com/roach88/xmeta/internal/attrerr"
)

// Fake is an in-memory Syscalls implementation that reproduces the kernel's
// size-query, ERANGE and missing-attribute behaviour. Paths must be
// registered with AddFile before use; unknown paths fail with ENOENT.
//
// Fake is safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	files map[string]*fakeFile

	// AfterSizeQuery, if set, runs after every size-only Get or List call
	// and before the caller's fill call. Tests use it to mutate attributes
	// inside the two-phase read window. It runs without the lock held.
	AfterSizeQuery func(path, key string)
}

type fakeFile struct {
	order []string
	attrs map[string][]byte
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{files: make(map[string]*fakeFile)}
}

// AddFile registers path as an existing file with no attributes.
func (f *Fake) AddFile(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[path]; !ok {
		f.files[path] = &fakeFile{attrs: make(map[string][]byte)}
	}
}

// Poke writes data under key without going through a Store, as another
// process would.
func (f *Fake) Poke(path, key string, data []byte) {
	f.AddFile(path)
	_ = f.Set(path, key, data, false)
}

// Peek returns a copy of the blob under key.
func (f *Fake) Peek(path, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[path]
	if !ok {
		return nil, false
	}
	data, ok := file.attrs[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// List implements Syscalls.
func (f *Fake) List(path string, dest []byte, _ bool) (int, error) {
	f.mu.Lock()
	file, ok := f.files[path]
	if !ok {
		f.mu.Unlock()
		return 0, syscall.ENOENT
	}
	var names []byte
	for _, key := range file.order {
		names = append(names, key...)
		names = append(names, 0)
	}
	f.mu.Unlock()

	if len(dest) == 0 {
		f.afterSizeQuery(path, "")
		return len(names), nil
	}
	if len(dest) < len(names) {
		return 0, syscall.ERANGE
	}
	return copy(dest, names), nil
}

// Get implements Syscalls.
func (f *Fake) Get(path, key string, dest []byte, _ bool) (int, error) {
	f.mu.Lock()
	file, ok := f.files[path]
	if !ok {
		f.mu.Unlock()
		return 0, syscall.ENOENT
	}
	data, ok := file.attrs[key]
	f.mu.Unlock()
	if !ok {
		return 0, attrerr.NoAttribute
	}

	if len(dest) == 0 {
		f.afterSizeQuery(path, key)
		return len(data), nil
	}
	if len(dest) < len(data) {
		return 0, syscall.ERANGE
	}
	return copy(dest, data), nil
}

// Set implements Syscalls.
func (f *Fake) Set(path, key string, data []byte, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[path]
	if !ok {
		return syscall.ENOENT
	}
	if _, exists := file.attrs[key]; !exists {
		file.order = append(file.order, key)
	}
	file.attrs[key] = append([]byte(nil), data...)
	return nil
}

// Remove implements Syscalls.
func (f *Fake) Remove(path, key string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[path]
	if !ok {
		return syscall.ENOENT
	}
	if _, exists := file.attrs[key]; !exists {
		return attrerr.NoAttribute
	}
	delete(file.attrs, key)
	for i, k := range file.order {
		if k == key {
			file.order = append(file.order[:i], file.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *Fake) afterSizeQuery(path, key string) {
	if f.AfterSizeQuery != nil {
		f.AfterSizeQuery(path, key)
	}
}
