package xattr

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xmeta/internal/attrerr"
)

const testPath = "/virtual/file.test"

func newFakeStore(t *testing.T, opts ...Option) (*Store, *Fake) {
	t.Helper()
	fake := NewFake()
	fake.AddFile(testPath)
	return New(append([]Option{WithSyscalls(fake)}, opts...)...), fake
}

func TestListKeys_Empty(t *testing.T) {
	store, _ := newFakeStore(t)

	keys, err := store.ListKeys(testPath)
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestListKeys_OrderPreserved(t *testing.T) {
	store, _ := newFakeStore(t)
	require.NoError(t, store.SetRaw(testPath, "user.b", []byte("1")))
	require.NoError(t, store.SetRaw(testPath, "user.a", []byte("2")))
	require.NoError(t, store.SetRaw(testPath, "user.c", nil))

	keys, err := store.ListKeys(testPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"user.b", "user.a", "user.c"}, keys)
}

func TestListKeys_MissingFile(t *testing.T) {
	store, _ := newFakeStore(t)

	_, err := store.ListKeys("/virtual/missing")
	require.Error(t, err)
	assert.True(t, attrerr.IsKind(err, attrerr.KindReadFailure))

	var ae *attrerr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, syscall.ENOENT, ae.Errno)
	assert.Equal(t, "listxattr", ae.Op)
}

func TestGetRaw_RoundTrip(t *testing.T) {
	store, _ := newFakeStore(t)
	require.NoError(t, store.SetRaw(testPath, "user.k", []byte{0, 1, 2, 0}))

	data, err := store.GetRaw(testPath, "user.k")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 0}, data)
}

func TestGetRaw_EmptyValue(t *testing.T) {
	store, _ := newFakeStore(t)
	require.NoError(t, store.SetRaw(testPath, "user.k", []byte{}))

	data, err := store.GetRaw(testPath, "user.k")
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestGetRaw_Absent(t *testing.T) {
	store, _ := newFakeStore(t)

	_, err := store.GetRaw(testPath, "user.never")
	require.Error(t, err)
	assert.True(t, attrerr.IsKind(err, attrerr.KindReadFailure))
	assert.True(t, attrerr.IsNotFound(err))
}

func TestGetRaw_EmptyKey(t *testing.T) {
	store, _ := newFakeStore(t)

	_, err := store.GetRaw(testPath, "")
	assert.True(t, attrerr.IsKind(err, attrerr.KindReadFailure))
	assert.False(t, attrerr.IsNotFound(err))
}

func TestSetRaw_ReplacesWholesale(t *testing.T) {
	store, _ := newFakeStore(t)
	require.NoError(t, store.SetRaw(testPath, "user.k", []byte("longer value")))
	require.NoError(t, store.SetRaw(testPath, "user.k", []byte("short")))

	data, err := store.GetRaw(testPath, "user.k")
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestSetRaw_MissingFile(t *testing.T) {
	store, _ := newFakeStore(t)

	err := store.SetRaw("/virtual/missing", "user.k", []byte("x"))
	assert.True(t, attrerr.IsKind(err, attrerr.KindWriteFailure))
}

func TestRemoveRaw_Idempotent(t *testing.T) {
	store, _ := newFakeStore(t)
	require.NoError(t, store.SetRaw(testPath, "user.k", []byte("x")))

	require.NoError(t, store.RemoveRaw(testPath, "user.k"))
	require.NoError(t, store.RemoveRaw(testPath, "user.k"), "second remove must succeed")

	_, err := store.GetRaw(testPath, "user.k")
	assert.True(t, attrerr.IsNotFound(err))
}

func TestRemoveRaw_MissingFileFails(t *testing.T) {
	store, _ := newFakeStore(t)

	err := store.RemoveRaw("/virtual/missing", "user.k")
	assert.True(t, attrerr.IsKind(err, attrerr.KindWriteFailure))
}

func TestUnresolvedReference(t *testing.T) {
	store, _ := newFakeStore(t)

	_, err := store.GetRaw("https://example.com/file.test", "user.k")
	assert.True(t, attrerr.IsKind(err, attrerr.KindUnresolvedResource))

	err = store.SetRaw("https://example.com/file.test", "user.k", nil)
	assert.True(t, attrerr.IsKind(err, attrerr.KindUnresolvedResource))

	_, err = store.ListKeys("")
	assert.True(t, attrerr.IsKind(err, attrerr.KindUnresolvedResource))
}

func TestFileURLReference(t *testing.T) {
	store, _ := newFakeStore(t)
	require.NoError(t, store.SetRaw("file://"+testPath, "user.k", []byte("via url")))

	data, err := store.GetRaw(testPath, "user.k")
	require.NoError(t, err)
	assert.Equal(t, "via url", string(data))
}

func TestInjectedDescriber(t *testing.T) {
	store, _ := newFakeStore(t, WithDescriber(func(errno syscall.Errno) string {
		return "custom"
	}))

	_, err := store.GetRaw(testPath, "user.never")
	var ae *attrerr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "custom", ae.Description)
}

func TestGetRaw_ValueShrinksBetweenCalls(t *testing.T) {
	store, fake := newFakeStore(t)
	fake.Poke(testPath, "user.k", []byte("0123456789"))
	fake.AfterSizeQuery = func(path, key string) {
		fake.AfterSizeQuery = nil
		fake.Poke(path, key, []byte("0123"))
	}

	data, err := store.GetRaw(testPath, "user.k")
	require.NoError(t, err)
	assert.Equal(t, "0123", string(data), "fill result is truncated to what the OS wrote")
}

func TestGetRaw_ValueGrowsBetweenCalls(t *testing.T) {
	store, fake := newFakeStore(t)
	fake.Poke(testPath, "user.k", []byte("0123"))
	fake.AfterSizeQuery = func(path, key string) {
		fake.AfterSizeQuery = nil
		fake.Poke(path, key, []byte("0123456789"))
	}

	_, err := store.GetRaw(testPath, "user.k")
	require.Error(t, err)

	var ae *attrerr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, attrerr.KindReadFailure, ae.Kind)
	assert.Equal(t, syscall.ERANGE, ae.Errno)
}

func TestListKeys_KeyRemovedBetweenCalls(t *testing.T) {
	store, fake := newFakeStore(t)
	fake.Poke(testPath, "user.a", []byte("1"))
	fake.Poke(testPath, "user.b", []byte("2"))
	fake.AfterSizeQuery = func(path, key string) {
		fake.AfterSizeQuery = nil
		_ = fake.Remove(path, "user.b", false)
	}

	keys, err := store.ListKeys(testPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"user.a"}, keys)
}

func TestLocalResolver(t *testing.T) {
	tests := []struct {
		ref        string
		want       string
		unresolved bool
	}{
		{ref: "/tmp/a", want: "/tmp/a"},
		{ref: "relative/a.txt", want: "relative/a.txt"},
		{ref: "notes:2017.txt", want: "notes:2017.txt"},
		{ref: "file:notes.txt", want: "file:notes.txt"},
		{ref: "File:notes.txt", want: "File:notes.txt"},
		{ref: "file:/tmp/a", want: "/tmp/a"},
		{ref: "file:///tmp/a", want: "/tmp/a"},
		{ref: "file://localhost/tmp/a", want: "/tmp/a"},
		{ref: "FILE:///tmp/a", want: "/tmp/a"},
		{ref: "file://server/share/a", unresolved: true},
		{ref: "https://example.com/a", unresolved: true},
		{ref: "file://", unresolved: true},
		{ref: "", unresolved: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := LocalResolver{}.Resolve(tt.ref)
			if tt.unresolved {
				assert.True(t, attrerr.IsKind(err, attrerr.KindUnresolvedResource), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
