// Package jsonvalue provides an immutable in-memory tree for parsed JSON.
//
// Values are used for both schema documents and instances. Objects preserve
// member insertion order so that evaluation and reporting are deterministic.
// A zero Value is invalid and reports KindInvalid; it is what lookups return
// when a key or index is absent.
package jsonvalue
