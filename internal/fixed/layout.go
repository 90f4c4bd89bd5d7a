package fixed

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"
)

var native = binary.NativeEndian

// Layout describes how values of type T occupy a fixed number of bytes.
// The set of layouts is closed; use the package-level variables.
type Layout[T any] struct {
	name   string
	size   int
	put    func(b []byte, v T)
	get    func(b []byte) T
	parse  func(s string) (T, error)
	format func(v T) string
}

// Name returns the layout's registry name, e.g. "int64".
func (l Layout[T]) Name() string { return l.name }

// Size returns the exact encoded width in bytes.
func (l Layout[T]) Size() int { return l.size }

// Encode returns v as exactly Size bytes.
func (l Layout[T]) Encode(v T) []byte {
	b := make([]byte, l.size)
	l.put(b, v)
	return b
}

// Decode converts b back into a value. ok is false when len(b) != Size.
func (l Layout[T]) Decode(b []byte) (v T, ok bool) {
	if len(b) != l.size {
		return v, false
	}
	return l.get(b), true
}

// EncodeText parses s as a T and encodes it.
func (l Layout[T]) EncodeText(s string) ([]byte, error) {
	v, err := l.parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse %s %q: %w", l.name, s, err)
	}
	return l.Encode(v), nil
}

// DecodeText decodes b and formats the value for display.
func (l Layout[T]) DecodeText(b []byte) (string, bool) {
	v, ok := l.Decode(b)
	if !ok {
		return "", false
	}
	return l.format(v), true
}

func intLayout[T ~int8 | ~int16 | ~int32 | ~int64](name string, size int, put func([]byte, T), get func([]byte) T) Layout[T] {
	return Layout[T]{
		name: name,
		size: size,
		put:  put,
		get:  get,
		parse: func(s string) (T, error) {
			n, err := strconv.ParseInt(s, 0, size*8)
			return T(n), err
		},
		format: func(v T) string { return strconv.FormatInt(int64(v), 10) },
	}
}

func uintLayout[T ~uint8 | ~uint16 | ~uint32 | ~uint64](name string, size int, put func([]byte, T), get func([]byte) T) Layout[T] {
	return Layout[T]{
		name: name,
		size: size,
		put:  put,
		get:  get,
		parse: func(s string) (T, error) {
			n, err := strconv.ParseUint(s, 0, size*8)
			return T(n), err
		},
		format: func(v T) string { return strconv.FormatUint(uint64(v), 10) },
	}
}

// Bool is one byte: 0 for false, 1 for true. Any non-zero byte decodes as true.
var Bool = Layout[bool]{
	name: "bool",
	size: 1,
	put: func(b []byte, v bool) {
		if v {
			b[0] = 1
		} else {
			b[0] = 0
		}
	},
	get:    func(b []byte) bool { return b[0] != 0 },
	parse:  strconv.ParseBool,
	format: strconv.FormatBool,
}

var (
	Int8 = intLayout("int8", 1,
		func(b []byte, v int8) { b[0] = byte(v) },
		func(b []byte) int8 { return int8(b[0]) })
	Int16 = intLayout("int16", 2,
		func(b []byte, v int16) { native.PutUint16(b, uint16(v)) },
		func(b []byte) int16 { return int16(native.Uint16(b)) })
	Int32 = intLayout("int32", 4,
		func(b []byte, v int32) { native.PutUint32(b, uint32(v)) },
		func(b []byte) int32 { return int32(native.Uint32(b)) })
	Int64 = intLayout("int64", 8,
		func(b []byte, v int64) { native.PutUint64(b, uint64(v)) },
		func(b []byte) int64 { return int64(native.Uint64(b)) })

	Uint8 = uintLayout("uint8", 1,
		func(b []byte, v uint8) { b[0] = v },
		func(b []byte) uint8 { return b[0] })
	Uint16 = uintLayout("uint16", 2,
		func(b []byte, v uint16) { native.PutUint16(b, v) },
		func(b []byte) uint16 { return native.Uint16(b) })
	Uint32 = uintLayout("uint32", 4,
		func(b []byte, v uint32) { native.PutUint32(b, v) },
		func(b []byte) uint32 { return native.Uint32(b) })
	Uint64 = uintLayout("uint64", 8,
		func(b []byte, v uint64) { native.PutUint64(b, v) },
		func(b []byte) uint64 { return native.Uint64(b) })
)

// Int is always 8 bytes regardless of the host's int width, so files
// written on 32- and 64-bit hosts agree. On 32-bit hosts values outside the
// int range are truncated on decode.
var Int = Layout[int]{
	name: "int",
	size: 8,
	put:  func(b []byte, v int) { native.PutUint64(b, uint64(int64(v))) },
	get:  func(b []byte) int { return int(int64(native.Uint64(b))) },
	parse: func(s string) (int, error) {
		n, err := strconv.ParseInt(s, 0, strconv.IntSize)
		return int(n), err
	},
	format: strconv.Itoa,
}

// Uint is always 8 bytes; see Int.
var Uint = Layout[uint]{
	name: "uint",
	size: 8,
	put:  func(b []byte, v uint) { native.PutUint64(b, uint64(v)) },
	get:  func(b []byte) uint { return uint(native.Uint64(b)) },
	parse: func(s string) (uint, error) {
		n, err := strconv.ParseUint(s, 0, strconv.IntSize)
		return uint(n), err
	},
	format: func(v uint) string { return strconv.FormatUint(uint64(v), 10) },
}

// Float32 stores the IEEE 754 bits, so NaN payloads survive.
var Float32 = Layout[float32]{
	name: "float32",
	size: 4,
	put:  func(b []byte, v float32) { native.PutUint32(b, math.Float32bits(v)) },
	get:  func(b []byte) float32 { return math.Float32frombits(native.Uint32(b)) },
	parse: func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	},
	format: func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) },
}

// Float64 stores the IEEE 754 bits, so NaN payloads survive.
var Float64 = Layout[float64]{
	name:   "float64",
	size:   8,
	put:    func(b []byte, v float64) { native.PutUint64(b, math.Float64bits(v)) },
	get:    func(b []byte) float64 { return math.Float64frombits(native.Uint64(b)) },
	parse:  func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
	format: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
}

// ReferenceDate is the epoch of the Date layout, 2001-01-01T00:00:00Z.
var ReferenceDate = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// AbsoluteTime is a count of seconds since ReferenceDate, the date
// representation macOS Foundation stores. Conversion from a time.Time keeps
// sub-microsecond precision near the reference and degrades with distance
// from it.
type AbsoluteTime float64

// AbsoluteTimeOf converts t to seconds since ReferenceDate.
func AbsoluteTimeOf(t time.Time) AbsoluteTime {
	whole := t.Unix() - ReferenceDate.Unix()
	return AbsoluteTime(float64(whole) + float64(t.Nanosecond())/1e9)
}

// Time returns the instant a denotes, in UTC, rounded to the nearest
// nanosecond.
func (a AbsoluteTime) Time() time.Time {
	secs := float64(a)
	whole := math.Floor(secs)
	nanos := math.Round((secs - whole) * 1e9)
	return time.Unix(ReferenceDate.Unix()+int64(whole), int64(nanos)).UTC()
}

// Date stores an AbsoluteTime as its float64 bits, so every value round
// trips exactly. Text is RFC 3339.
var Date = Layout[AbsoluteTime]{
	name: "date",
	size: 8,
	put:  func(b []byte, v AbsoluteTime) { native.PutUint64(b, math.Float64bits(float64(v))) },
	get:  func(b []byte) AbsoluteTime { return AbsoluteTime(math.Float64frombits(native.Uint64(b))) },
	parse: func(s string) (AbsoluteTime, error) {
		t, err := parseTime(s)
		return AbsoluteTimeOf(t), err
	},
	format: func(v AbsoluteTime) string { return formatTime(v.Time()) },
}

// Timestamp is an int64 count of nanoseconds since the Unix epoch. It is
// exact for every instant between the years 1678 and 2262. Decoded times
// are in UTC.
var Timestamp = Layout[time.Time]{
	name:   "timestamp",
	size:   8,
	put:    func(b []byte, v time.Time) { native.PutUint64(b, uint64(v.UnixNano())) },
	get:    func(b []byte) time.Time { return time.Unix(0, int64(native.Uint64(b))).UTC() },
	parse:  parseTime,
	format: formatTime,
}

func parseTime(s string) (time.Time, error) {
	if s == "now" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
