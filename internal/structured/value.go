package structured

import (
	"bytes"
	"math"
	"time"
)

// Value is a sealed interface representing storable structured values.
// Only String, Int, Float, Bool, Bytes, Date, Array and Map implement it.
type Value interface {
	structuredValue() // Sealed - only these types implement it
}

// String is a UTF-8 text value.
type String string

func (String) structuredValue() {}

// Int is a signed 64-bit integer value.
type Int int64

func (Int) structuredValue() {}

// Float is a 64-bit floating point value.
type Float float64

func (Float) structuredValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) structuredValue() {}

// Bytes is an opaque byte string value.
type Bytes []byte

func (Bytes) structuredValue() {}

// Date is an absolute instant with nanosecond precision.
type Date time.Time

func (Date) structuredValue() {}

// Time returns d as a time.Time.
func (d Date) Time() time.Time { return time.Time(d) }

// Array is an ordered sequence of values. Elements must not be nil.
type Array []Value

func (Array) structuredValue() {}

// Map is a mapping from string keys to values. Values must not be nil.
type Map map[string]Value

func (Map) structuredValue() {}

// NewDate creates a Date value.
func NewDate(t time.Time) Date {
	return Date(t)
}

// Strings builds an Array of String values.
func Strings(ss ...string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}

// Equal reports whether a and b are the same logical value. Arrays compare
// element by element in order, maps by key set and per-key value, dates by
// instant regardless of location, and NaN floats equal each other.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && (x == y || (math.IsNaN(float64(x)) && math.IsNaN(float64(y))))
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Bytes:
		y, ok := b.(Bytes)
		return ok && bytes.Equal(x, y)
	case Date:
		y, ok := b.(Date)
		return ok && time.Time(x).Equal(time.Time(y))
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Map:
		y, ok := b.(Map)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
