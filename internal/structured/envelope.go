package structured

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
)

// selfDescribed is the CBOR self-described marker, tag 55799.
var selfDescribed = []byte{0xd9, 0xd9, 0xf7}

// encMode uses Core Deterministic Encoding with RFC 3339 nanosecond
// date strings under tag 0.
var encMode cbor.EncMode

// decMode decodes generic items into map[string]any and rejects duplicate
// map keys.
var decMode cbor.DecMode

// MaxDepth is the deepest nesting of sequences, mappings and dates the
// envelope holds. Each container and each date counts one level, as CBOR
// arrays, maps and tags do for the decoder.
const MaxDepth = 32

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encOptions.TimeTag = cbor.EncTagRequired
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("structured: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels: MaxDepth,
	}.DecMode()
	if err != nil {
		panic("structured: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v into an envelope. v must not be nil.
func Marshal(v Value) ([]byte, error) {
	if v == nil {
		return nil, errors.New("cannot marshal absent value")
	}
	native, err := toNative(v, 1)
	if err != nil {
		return nil, err
	}
	body, err := encMode.Marshal(native)
	if err != nil {
		return nil, err
	}
	return append(append([]byte(nil), selfDescribed...), body...), nil
}

// Unmarshal decodes an envelope produced by Marshal.
func Unmarshal(data []byte) (Value, error) {
	body, ok := bytes.CutPrefix(data, selfDescribed)
	if !ok {
		return nil, errors.New("missing self-described CBOR marker")
	}
	var native any
	if err := decMode.Unmarshal(body, &native); err != nil {
		return nil, err
	}
	return fromNative(native)
}

// Diagnose renders an envelope in CBOR diagnostic notation (RFC 8949 §8).
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// toNative recursively converts a Value to the Go types the encoder
// understands. Nil containers become empty ones so they never encode as null.
// depth is the nesting level v would occupy in the encoded item.
func toNative(v Value, depth int) (any, error) {
	switch v.(type) {
	case Array, Map, Date:
		if depth > MaxDepth {
			return nil, fmt.Errorf("value nested deeper than %d levels", MaxDepth)
		}
	}

	switch val := v.(type) {
	case nil:
		return nil, errors.New("absent value inside a container")
	case String:
		if !utf8.ValidString(string(val)) {
			return nil, fmt.Errorf("string %q is not valid UTF-8", string(val))
		}
		return string(val), nil
	case Int:
		return int64(val), nil
	case Float:
		return float64(val), nil
	case Bool:
		return bool(val), nil
	case Bytes:
		if val == nil {
			return []byte{}, nil
		}
		return []byte(val), nil
	case Date:
		if time.Time(val).IsZero() {
			return nil, errors.New("zero date is not storable")
		}
		return time.Time(val), nil
	case Array:
		arr := make([]any, len(val))
		for i, elem := range val {
			n, err := toNative(elem, depth+1)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = n
		}
		return arr, nil
	case Map:
		obj := make(map[string]any, len(val))
		for k, elem := range val {
			if !utf8.ValidString(k) {
				return nil, fmt.Errorf("map key %q is not valid UTF-8", k)
			}
			n, err := toNative(elem, depth+1)
			if err != nil {
				return nil, fmt.Errorf("map[%q]: %w", k, err)
			}
			obj[k] = n
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

// fromNative recursively converts decoder output back into a Value.
func fromNative(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, errors.New("null is not a structured value")
	case string:
		return String(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d out of int64 range", val)
		}
		return Int(int64(val)), nil
	case float64:
		return Float(val), nil
	case bool:
		return Bool(val), nil
	case []byte:
		return Bytes(val), nil
	case time.Time:
		return Date(val), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			sv, err := fromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = sv
		}
		return arr, nil
	case map[string]any:
		obj := make(Map, len(val))
		for k, elem := range val {
			sv, err := fromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("map[%q]: %w", k, err)
			}
			obj[k] = sv
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported CBOR item: %T", v)
	}
}
