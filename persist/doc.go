// Package persist provides a store-backed reactive cell: a cell whose
// value is mirrored to a keyed store on every write and hydrated from
// it at construction.
//
// The mirror is serialize-on-write with JSON encoding. Only one key is
// owned per cell; the store itself is pluggable, with a file-per-key
// implementation included.
package persist
