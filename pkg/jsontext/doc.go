// Package jsontext parses RFC 8259 JSON text into jsonvalue trees.
//
// The grammar is strict: comments, trailing commas, leading zeros, NaN and
// Infinity are rejected, as are raw control characters and invalid UTF-8
// inside strings. Exactly one top-level value is accepted.
//
// Repeated object keys follow the jsonvalue policy: the last value wins and the
// key keeps the position of its first occurrence.
//
// Failures are reported as *errors.ParseError with byte offset, line and
// column, wrapping one of the errors package sentinel causes.
package jsontext
