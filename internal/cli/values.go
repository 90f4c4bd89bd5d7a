package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/roach88/xmeta/internal/structured"
)

// Value types understood by get and set besides the fixed layout names.
const (
	TypeStructured = "structured" // decode the envelope (get default)
	TypeString     = "string"     // structured string (set default)
	TypeJSON       = "json"       // structured value written as JSON
	TypeDiag       = "diag"       // envelope in CBOR diagnostic notation
	TypeRaw        = "raw"        // bytes as hex
)

// parseJSONValue converts a JSON document into a structured value. Integral
// numbers become Int, all others Float.
func parseJSONValue(text string) (structured.Value, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return fromJSON(v)
}

func fromJSON(v any) (structured.Value, error) {
	switch x := v.(type) {
	case string:
		return structured.String(x), nil
	case bool:
		return structured.Bool(x), nil
	case json.Number:
		if n, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return structured.Int(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return structured.Float(f), nil
	case []any:
		arr := make(structured.Array, len(x))
		for i, elem := range x {
			sv, err := fromJSON(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = sv
		}
		return arr, nil
	case map[string]any:
		m := make(structured.Map, len(x))
		for k, elem := range x {
			sv, err := fromJSON(elem)
			if err != nil {
				return nil, err
			}
			m[k] = sv
		}
		return m, nil
	case nil:
		return nil, errors.New("null has no structured form")
	default:
		return nil, fmt.Errorf("unsupported JSON value %T", v)
	}
}

// jsonValue converts a structured value into something encoding/json renders
// faithfully. Dates become RFC 3339 strings and non-finite floats become
// their string names.
func jsonValue(v structured.Value) any {
	switch x := v.(type) {
	case structured.String:
		return string(x)
	case structured.Int:
		return int64(x)
	case structured.Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return f
	case structured.Bool:
		return bool(x)
	case structured.Bytes:
		return []byte(x)
	case structured.Date:
		return x.Time().UTC().Format(time.RFC3339Nano)
	case structured.Array:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = jsonValue(elem)
		}
		return out
	case structured.Map:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			out[k] = jsonValue(elem)
		}
		return out
	default:
		return nil
	}
}

// formatValue renders v as compact JSON for text output.
func formatValue(v structured.Value) string {
	b, err := json.Marshal(jsonValue(v))
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
