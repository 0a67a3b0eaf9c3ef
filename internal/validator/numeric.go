package validator

import (
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// bound checks minimum, maximum and their exclusive forms with exact
// decimal comparison.
func (s *Session) bound(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindNumber {
		return true
	}
	c := v.Dec().Compare(kw.Number)
	limit := kw.Number.String()
	switch kw.Op {
	case runtime.OpMinimum:
		if kw.Exclusive && c <= 0 {
			return s.report(kw.Name, "exclusiveMinimum", "limit", limit, "value", v.Literal())
		}
		if c < 0 {
			return s.fail(kw.Name, "limit", limit, "value", v.Literal())
		}
	case runtime.OpMaximum:
		if kw.Exclusive && c >= 0 {
			return s.report(kw.Name, "exclusiveMaximum", "limit", limit, "value", v.Literal())
		}
		if c > 0 {
			return s.fail(kw.Name, "limit", limit, "value", v.Literal())
		}
	case runtime.OpExclusiveMinimum:
		if c <= 0 {
			return s.fail(kw.Name, "limit", limit, "value", v.Literal())
		}
	case runtime.OpExclusiveMaximum:
		if c >= 0 {
			return s.fail(kw.Name, "limit", limit, "value", v.Literal())
		}
	}
	return true
}

func (s *Session) multipleOf(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindNumber || v.Dec().MultipleOf(kw.Number) {
		return true
	}
	return s.fail(kw.Name, "value", v.Literal(), "divisor", kw.Number.String())
}
