// Package ingest turns raw text into attribute tuples for the registries.
//
// Two formats are understood:
//   - comma-space separated rows, one record per line
//     ("Elon Musk, 45, Tesla")
//   - track filenames of the form "<artist> - <title>.mp3"
//
// There is no quoting or escaping and no type coercion. Input that does not
// match these shapes is rejected with an error rather than producing a
// partially populated record.
package ingest
