package validator

import (
	"unicode/utf8"

	"github.com/jacoelho/jsonschema/internal/format"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// length counts code points, not bytes.
func (s *Session) length(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindString {
		return true
	}
	n := utf8.RuneCountInString(v.Str())
	if (kw.Op == runtime.OpMinLength && n >= kw.Count) || (kw.Op == runtime.OpMaxLength && n <= kw.Count) {
		return true
	}
	return s.fail(kw.Name, "value", v.Str(), "length", itoa(n), "limit", itoa(kw.Count))
}

// pattern is an unanchored search.
func (s *Session) pattern(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindString || kw.Pattern.MatchString(v.Str()) {
		return true
	}
	return s.fail(kw.Name, "pattern", kw.Text, "value", v.Str())
}

func (s *Session) format(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if s.opts.AnnotateFormats || v.Kind() != jsonvalue.KindString {
		return true
	}
	if format.Check(kw.Text, v.Str()) {
		return true
	}
	return s.fail(kw.Name, "value", v.Str(), "format", kw.Text)
}
