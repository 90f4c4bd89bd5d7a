// Package fixed stores constant-width scalar and date values as raw
// attribute blobs.
//
// Eligible types form a closed registry of Layout values (Bool, Int8 ...
// Uint64, Int, Uint, Float32, Float64, Date, Timestamp). Each layout knows its
// exact byte width and converts to and from bytes explicitly, in the host's
// native byte order; no memory is reinterpreted.
//
// Decoding checks the stored length against the layout width and fails with
// a size-mismatch error on any difference. Layouts of equal width are not
// distinguishable: a 4-byte Int32 read back as a Float32 decodes without
// error. Callers must use one layout per key consistently.
package fixed
