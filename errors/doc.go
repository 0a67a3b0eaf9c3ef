// Package errors defines the failure taxonomy and the validation report.
//
// Structural problems (malformed JSON, invalid schemas, reference cycles,
// runaway nesting) are returned as typed errors. Keyword mismatches are
// Findings collected in a Report and never returned as errors.
package errors
