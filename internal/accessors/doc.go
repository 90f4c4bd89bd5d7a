// Package accessors exposes named metadata fields built on the fixed and
// structured codecs.
//
// Read behaviour differs per field and is part of the contract:
//
//   - Comment returns "" on any failure: absence, a bad envelope, or a
//     non-string payload.
//   - DownloadedDate returns the first date of a one-element date sequence,
//     or reports absence on any failure.
//   - WhereFroms drops entries that are not valid absolute URLs, and
//     reports absence only when the payload cannot be decoded at all.
//
// Each swallowing getter has a Lookup counterpart that returns the error
// instead. RunCount, LastRun and Provenance never swallow. All setters
// return errors.
package accessors
