package accessors

import (
	"time"

	"github.com/google/uuid"

	"github.com/roach88/xmeta/internal/structured"
)

// IDGenerator produces provenance record IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Provenance records which tool last stamped a file, and when.
type Provenance struct {
	ID   string
	At   time.Time
	Tool string
}

func (p Provenance) value() structured.Map {
	return structured.Map{
		"id":   structured.String(p.ID),
		"at":   structured.NewDate(p.At),
		"tool": structured.String(p.Tool),
	}
}

// Stamp writes a new provenance record for tool at the given time and
// returns it.
func (a *Accessors) Stamp(ref, tool string, at time.Time) (Provenance, error) {
	p := Provenance{ID: a.ids.Generate(), At: at, Tool: tool}
	if err := structured.Set(a.store, ref, a.keys.Provenance, p.value()); err != nil {
		return Provenance{}, err
	}
	return p, nil
}

// LookupProvenance returns the stored record. ok is false when none exists.
// Records missing a field, or with a field of the wrong type, are
// decode-failures.
func (a *Accessors) LookupProvenance(ref string) (p Provenance, ok bool, err error) {
	key := a.keys.Provenance
	v, err := structured.Get(a.store, ref, key)
	if err != nil || v == nil {
		return Provenance{}, false, err
	}
	m, isMap := v.(structured.Map)
	if !isMap {
		return Provenance{}, false, wrongShape(ref, key, "provenance map", v)
	}

	id, idOK := m["id"].(structured.String)
	at, atOK := m["at"].(structured.Date)
	tool, toolOK := m["tool"].(structured.String)
	if !idOK || !atOK || !toolOK {
		return Provenance{}, false, wrongShape(ref, key, "provenance map with id, at, tool", v)
	}
	return Provenance{ID: string(id), At: at.Time(), Tool: string(tool)}, true, nil
}
