// Package xattr provides raw, byte-level access to a file's extended
// attributes.
//
// A Store resolves a file reference to a local path (via a Resolver) and
// issues the OS attribute calls through a Syscalls implementation. Nothing is
// cached: every read is a fresh OS query and every write replaces the whole
// value.
//
// # Two-phase reads
//
// ListKeys and GetRaw first ask the OS for the required buffer size, then
// call again to fill a buffer of that size. Another process can change the
// attribute between the two calls. A value that shrinks is returned at its
// new length; a value that grows makes the fill call fail with ERANGE, which
// surfaces as a read-failure. This window is inherent to the OS interface and
// is not hidden here.
//
// # Writes
//
// SetRaw is a single OS call; concurrent readers see either the old or the
// new value, never a mix. RemoveRaw treats an already-absent key as success.
// There is no compare-and-swap; callers needing one must version their
// payloads themselves.
package xattr
