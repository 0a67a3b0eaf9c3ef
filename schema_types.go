package jsonschema

import "github.com/jacoelho/jsonschema/errors"

// Schema wraps a compiled schema with convenience methods.
type Schema struct {
	engine *Engine
}

// Engine returns the underlying engine for callers holding parsed values.
func (s *Schema) Engine() *Engine {
	if s == nil {
		return nil
	}
	return s.engine
}

// Report is the ordered list of findings produced by one validation.
type Report = errors.Report

// Finding is a single validation failure.
type Finding = errors.Finding
