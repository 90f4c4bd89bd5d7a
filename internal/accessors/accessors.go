package accessors

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/roach88/xmeta/internal/attrerr"
	"github.com/roach88/xmeta/internal/fixed"
	"github.com/roach88/xmeta/internal/structured"
)

// Store is the raw attribute channel; *xattr.Store satisfies it.
type Store interface {
	GetRaw(ref, key string) ([]byte, error)
	SetRaw(ref, key string, data []byte) error
	RemoveRaw(ref, key string) error
}

// Accessors reads and writes the named fields of a file.
type Accessors struct {
	store  Store
	keys   Keys
	logger *slog.Logger
	ids    IDGenerator
}

// Option configures Accessors.
type Option func(*Accessors)

// WithLogger sets the logger that records swallowed read failures at debug
// level.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Accessors) { a.logger = logger }
}

// WithIDGenerator replaces the provenance ID source.
func WithIDGenerator(ids IDGenerator) Option {
	return func(a *Accessors) { a.ids = ids }
}

// New creates Accessors over store using keys.
func New(store Store, keys Keys, opts ...Option) *Accessors {
	a := &Accessors{
		store:  store,
		keys:   keys,
		logger: slog.New(slog.DiscardHandler),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Keys returns the attribute keys in use.
func (a *Accessors) Keys() Keys {
	return a.keys
}

func (a *Accessors) swallowed(field, ref string, err error) {
	a.logger.Debug("metadata read failed, using default", "field", field, "path", ref, "error", err)
}

func wrongShape(ref, key, want string, got structured.Value) error {
	return attrerr.DecodeFailure(ref, key, fmt.Errorf("expected %s, found %T", want, got))
}

// Comment returns the free-text comment, or "" on any failure.
func (a *Accessors) Comment(ref string) string {
	s, err := a.LookupComment(ref)
	if err != nil {
		a.swallowed("comment", ref, err)
		return ""
	}
	return s
}

// LookupComment returns the comment. An absent comment is "" with no error;
// a non-string payload is a decode-failure.
func (a *Accessors) LookupComment(ref string) (string, error) {
	v, err := structured.Get(a.store, ref, a.keys.Comment)
	if err != nil || v == nil {
		return "", err
	}
	s, ok := v.(structured.String)
	if !ok {
		return "", wrongShape(ref, a.keys.Comment, "string", v)
	}
	return string(s), nil
}

// SetComment stores the comment.
func (a *Accessors) SetComment(ref, comment string) error {
	return structured.Set(a.store, ref, a.keys.Comment, structured.String(comment))
}

// DownloadedDate returns the download date, or false on any failure.
func (a *Accessors) DownloadedDate(ref string) (time.Time, bool) {
	t, ok, err := a.LookupDownloadedDate(ref)
	if err != nil {
		a.swallowed("downloaded_date", ref, err)
		return time.Time{}, false
	}
	return t, ok
}

// LookupDownloadedDate returns the first date of the stored sequence. An
// absent key or empty sequence reports false. A bare date, written by
// tools that skip the sequence wrapper, is accepted as well.
func (a *Accessors) LookupDownloadedDate(ref string) (time.Time, bool, error) {
	key := a.keys.DownloadedDate
	v, err := structured.Get(a.store, ref, key)
	if err != nil || v == nil {
		return time.Time{}, false, err
	}

	switch val := v.(type) {
	case structured.Date:
		return val.Time(), true, nil
	case structured.Array:
		if len(val) == 0 {
			return time.Time{}, false, nil
		}
		d, ok := val[0].(structured.Date)
		if !ok {
			return time.Time{}, false, wrongShape(ref, key, "date sequence", v)
		}
		return d.Time(), true, nil
	default:
		return time.Time{}, false, wrongShape(ref, key, "date sequence", v)
	}
}

// SetDownloadedDate stores t wrapped in a one-element sequence, the shape
// Spotlight writes.
func (a *Accessors) SetDownloadedDate(ref string, t time.Time) error {
	return structured.Set(a.store, ref, a.keys.DownloadedDate, structured.Array{structured.NewDate(t)})
}

// ClearDownloadedDate removes the download date.
func (a *Accessors) ClearDownloadedDate(ref string) error {
	return structured.Set(a.store, ref, a.keys.DownloadedDate, nil)
}

// WhereFroms returns the origin URLs, or false when the payload is absent or
// cannot be decoded. Invalid entries are dropped.
func (a *Accessors) WhereFroms(ref string) ([]*url.URL, bool) {
	urls, err := a.LookupWhereFroms(ref)
	if err != nil {
		a.swallowed("where_froms", ref, err)
		return nil, false
	}
	return urls, urls != nil
}

// LookupWhereFroms returns the origin URLs. An absent key returns nil with
// no error. Entries that are not strings or not absolute URLs are dropped;
// a payload that is not a sequence is a decode-failure.
func (a *Accessors) LookupWhereFroms(ref string) ([]*url.URL, error) {
	key := a.keys.WhereFroms
	v, err := structured.Get(a.store, ref, key)
	if err != nil || v == nil {
		return nil, err
	}
	arr, ok := v.(structured.Array)
	if !ok {
		return nil, wrongShape(ref, key, "string sequence", v)
	}

	urls := make([]*url.URL, 0, len(arr))
	for i, elem := range arr {
		s, ok := elem.(structured.String)
		if !ok {
			a.logger.Debug("dropping non-string origin", "path", ref, "index", i)
			continue
		}
		u, err := parseOrigin(string(s))
		if err != nil {
			a.logger.Debug("dropping invalid origin", "path", ref, "index", i, "error", err)
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func parseOrigin(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("origin %q is not an absolute URL", s)
	}
	return u, nil
}

// SetWhereFroms stores urls as a sequence of strings. A nil slice removes
// the attribute; an empty one stores an empty sequence.
func (a *Accessors) SetWhereFroms(ref string, urls []*url.URL) error {
	if urls == nil {
		return structured.Set(a.store, ref, a.keys.WhereFroms, nil)
	}
	arr := make(structured.Array, len(urls))
	for i, u := range urls {
		arr[i] = structured.String(u.String())
	}
	return structured.Set(a.store, ref, a.keys.WhereFroms, arr)
}

// RunCount returns the stored run counter.
func (a *Accessors) RunCount(ref string) (int, error) {
	return fixed.Get(a.store, ref, a.keys.RunCount, fixed.Int)
}

// SetRunCount stores the run counter.
func (a *Accessors) SetRunCount(ref string, n int) error {
	return fixed.Set(a.store, ref, a.keys.RunCount, fixed.Int, n)
}

// LastRun returns the time the file was last stamped, in the Date layout
// the original tool wrote.
func (a *Accessors) LastRun(ref string) (fixed.AbsoluteTime, error) {
	return fixed.Get(a.store, ref, a.keys.LastRun, fixed.Date)
}

// SetLastRun stores the time the file was last stamped.
func (a *Accessors) SetLastRun(ref string, at fixed.AbsoluteTime) error {
	return fixed.Set(a.store, ref, a.keys.LastRun, fixed.Date, at)
}
