// Package attrerr defines the error taxonomy shared by every layer of the
// attribute stack.
//
// All failures surface as *Error values carrying a Kind:
//   - unresolved-resource: the reference does not name a local file
//   - read-failure / write-failure: the OS rejected the call; Errno holds the
//     platform code and Description its text
//   - size-mismatch: a fixed-layout decode found a blob of the wrong width
//   - encode-failure / decode-failure: the structured envelope could not be
//     produced or parsed
//
// Use IsKind and IsNotFound instead of comparing strings. Both use errors.As,
// so wrapped errors match.
package attrerr
