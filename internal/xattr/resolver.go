package xattr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/roach88/xmeta/internal/attrerr"
)

// Resolver turns a caller's file reference into a local filesystem path.
// It returns an unresolved-resource error when the reference does not name a
// local file.
type Resolver interface {
	Resolve(ref string) (string, error)
}

// LocalResolver accepts plain paths and file:// URLs on the local host.
// It does not check that the path exists; the OS reports that on first use.
type LocalResolver struct{}

// Resolve implements Resolver.
func (LocalResolver) Resolve(ref string) (string, error) {
	if ref == "" {
		return "", attrerr.Unresolved(ref, "empty reference")
	}
	// Only scheme-qualified references are URLs; "a:b.txt" and
	// "file:b.txt" are file names.
	if !strings.Contains(ref, "://") && !hasFileScheme(ref) {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", attrerr.Unresolved(ref, err.Error())
	}
	if !strings.EqualFold(u.Scheme, "file") {
		return "", attrerr.Unresolved(ref, fmt.Sprintf("scheme %q is not local", u.Scheme))
	}
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return "", attrerr.Unresolved(ref, fmt.Sprintf("host %q is not local", u.Host))
	}
	if u.Path == "" {
		return "", attrerr.Unresolved(ref, "file URL has no path")
	}
	return u.Path, nil
}

// hasFileScheme reports whether ref is a file URL with an absolute path,
// such as "file:/tmp/a".
func hasFileScheme(ref string) bool {
	return len(ref) >= 6 && strings.EqualFold(ref[:6], "file:/")
}
