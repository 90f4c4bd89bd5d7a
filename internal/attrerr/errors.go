package attrerr

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// Kind categorizes attribute errors.
type Kind string

const (
	// KindUnresolvedResource indicates the reference is not a local file.
	KindUnresolvedResource Kind = "unresolved-resource"

	// KindReadFailure indicates an OS read or list call failed.
	KindReadFailure Kind = "read-failure"

	// KindWriteFailure indicates an OS set or remove call failed.
	KindWriteFailure Kind = "write-failure"

	// KindEncodeFailure indicates a structured value could not be serialized.
	KindEncodeFailure Kind = "encode-failure"

	// KindDecodeFailure indicates stored bytes are not a valid envelope.
	KindDecodeFailure Kind = "decode-failure"

	// KindSizeMismatch indicates a stored blob has the wrong width for its layout.
	KindSizeMismatch Kind = "size-mismatch"
)

// Error is the single error type returned by the attribute stack.
type Error struct {
	// Kind identifies the error category.
	Kind Kind

	// Op names the failing operation (e.g. "getxattr", "decode").
	Op string

	// Path is the resolved file path, or the raw reference when resolution failed.
	Path string

	// Key is the attribute key, empty for key-independent operations.
	Key string

	// Errno is the platform error code. Zero when the failure is not an OS error.
	Errno syscall.Errno

	// Description is human-readable detail, derived from Errno for OS failures.
	Description string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteByte(' ')
	}
	b.WriteString(e.Path)
	if e.Key != "" {
		fmt.Fprintf(&b, " [%s]", e.Key)
	}
	if e.Description != "" {
		b.WriteString(": ")
		b.WriteString(e.Description)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
// Uses errors.As to handle wrapped errors.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// IsNotFound reports whether err is a read-failure caused by the attribute
// being absent. Missing files do not count.
func IsNotFound(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == KindReadFailure && ae.Errno == NoAttribute
	}
	return false
}

// Unresolved creates an unresolved-resource error for ref.
func Unresolved(ref string, reason string) *Error {
	return &Error{
		Kind:        KindUnresolvedResource,
		Op:          "resolve",
		Path:        ref,
		Description: reason,
	}
}

// ReadFailure creates a read-failure from an OS error.
func ReadFailure(op, path, key string, err error, describe Describer) *Error {
	return osFailure(KindReadFailure, op, path, key, err, describe)
}

// WriteFailure creates a write-failure from an OS error.
func WriteFailure(op, path, key string, err error, describe Describer) *Error {
	return osFailure(KindWriteFailure, op, path, key, err, describe)
}

func osFailure(kind Kind, op, path, key string, err error, describe Describer) *Error {
	e := &Error{Kind: kind, Op: op, Path: path, Key: key, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.Errno = errno
		e.Description = describe.Describe(errno)
	}
	return e
}

// SizeMismatch creates a size-mismatch error for a fixed-layout decode.
func SizeMismatch(path, key, layout string, want, got int) *Error {
	return &Error{
		Kind:        KindSizeMismatch,
		Op:          "decode",
		Path:        path,
		Key:         key,
		Description: fmt.Sprintf("stored %d bytes, %s needs %d", got, layout, want),
	}
}

// EncodeFailure creates an encode-failure wrapping err.
func EncodeFailure(path, key string, err error) *Error {
	return &Error{Kind: KindEncodeFailure, Op: "encode", Path: path, Key: key, Err: err}
}

// DecodeFailure creates a decode-failure wrapping err.
func DecodeFailure(path, key string, err error) *Error {
	return &Error{Kind: KindDecodeFailure, Op: "decode", Path: path, Key: key, Err: err}
}
