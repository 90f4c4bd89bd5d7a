package fixed

import "sort"

// Codec is the type-erased view of a Layout used where the value type is
// chosen at runtime, such as the CLI's --type flag.
type Codec interface {
	Name() string
	Size() int
	EncodeText(s string) ([]byte, error)
	DecodeText(b []byte) (string, bool)
}

var registry = map[string]Codec{}

func init() {
	for _, c := range []Codec{
		Bool,
		Int8, Int16, Int32, Int64,
		Uint8, Uint16, Uint32, Uint64,
		Int, Uint,
		Float32, Float64,
		Date, Timestamp,
	} {
		registry[c.Name()] = c
	}
}

// Lookup returns the layout registered under name.
func Lookup(name string) (Codec, bool) {
	c, ok := registry[name]
	return c, ok
}

// Names returns every registered layout name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
