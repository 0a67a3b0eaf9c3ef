package validator

import (
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

func (s *Session) typeKeyword(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if kw.Types.Matches(v) {
		return true
	}
	return s.fail(kw.Name,
		"found", runtime.TypeName(v),
		"expected", quoteList(kw.Types.Names()))
}

func (s *Session) enum(kw *runtime.Keyword, v jsonvalue.Value) bool {
	for _, candidate := range kw.Values {
		if jsonvalue.Equal(v, candidate) {
			return true
		}
	}
	return s.fail(kw.Name, "value", v.String(), "enum", valueList(kw.Values))
}

func (s *Session) constKeyword(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if jsonvalue.Equal(v, kw.Value) {
		return true
	}
	return s.fail(kw.Name, "value", v.String(), "const", kw.Value.String())
}
