// Package resource answers simple questions about a file: its type, access
// permissions, size and modification time.
//
// Boolean and size queries return false or 0 when the file cannot be
// inspected; callers that need the reason should use os.Stat directly.
package resource
