// Package structured stores variably-shaped values (strings, numbers,
// dates, byte strings, sequences and string-keyed mappings) in a single
// attribute blob.
//
// Values form a sealed union: String, Int, Float, Bool, Bytes, Date, Array
// and Map implement Value. A nil Value is the absent value; writing it
// removes the attribute, and reading a missing attribute returns it.
//
// # Envelope
//
// A blob is the self-described CBOR marker (tag 55799, bytes d9 d9 f7)
// followed by one CBOR data item in Core Deterministic Encoding (RFC 8949
// §4.2). Dates are tag 0 RFC 3339 strings with nanosecond precision. Map
// keys are always text strings and must be unique. Blobs without the marker,
// with trailing bytes, or with item types outside the union fail with a
// decode-failure.
//
// Round trips preserve sequence order and map key sets. Map iteration order
// is not preserved; Core Deterministic Encoding sorts keys on write.
package structured
