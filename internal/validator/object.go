package validator

import (
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// properties applies properties, patternProperties and additionalProperties
// member by member. A false additionalProperties yields one finding listing
// every unexpected member.
func (s *Session) properties(rule *runtime.PropsRule, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindObject {
		return true
	}
	ok := true
	var extras []string
	for _, m := range v.Members() {
		matched := false
		if id, found := rule.Index[m.Key]; found {
			matched = true
			ok = s.member("properties", m.Key, id, m) && ok
		}
		for _, p := range rule.Patterns {
			if p.Pattern.MatchString(m.Key) {
				matched = true
				ok = s.member("patternProperties", p.Source, p.Node, m) && ok
			}
		}
		if !matched && rule.Additional != runtime.NoNode {
			if s.rt.Nodes[rule.Additional].Kind == runtime.NodeNever {
				extras = append(extras, m.Key)
			} else {
				s.schema.Push("additionalProperties")
				s.inst.Push(m.Key)
				ok = s.eval(rule.Additional, m.Value) && ok
				s.inst.Pop()
				s.schema.Pop()
			}
		}
		if s.err != nil {
			return false
		}
	}
	if len(extras) > 0 {
		s.schema.Push("additionalProperties")
		s.fail("additionalProperties", "properties", quoteList(extras))
		s.schema.Pop()
		ok = false
	}
	return ok
}

func (s *Session) member(keyword, token string, id runtime.NodeID, m jsonvalue.Member) bool {
	s.schema.Push(keyword)
	s.schema.Push(token)
	s.inst.Push(m.Key)
	ok := s.eval(id, m.Value)
	s.inst.Pop()
	s.schema.Pop()
	s.schema.Pop()
	return ok
}

func (s *Session) required(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindObject {
		return true
	}
	missing := missingNames(v, kw.Names)
	if len(missing) == 0 {
		return true
	}
	return s.fail(kw.Name, "missing", quoteList(missing))
}

func missingNames(v jsonvalue.Value, names []string) []string {
	var missing []string
	for _, name := range names {
		if !v.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (s *Session) propertyNames(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindObject {
		return true
	}
	ok := true
	for _, m := range v.Members() {
		s.inst.Push(m.Key)
		ok = s.eval(kw.Child, jsonvalue.StringValue(m.Key)) && ok
		s.inst.Pop()
		if s.err != nil {
			return false
		}
	}
	return ok
}

func (s *Session) propertyCount(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindObject {
		return true
	}
	n := v.Len()
	if (kw.Op == runtime.OpMinProperties && n >= kw.Count) || (kw.Op == runtime.OpMaxProperties && n <= kw.Count) {
		return true
	}
	return s.fail(kw.Name, "limit", itoa(kw.Count), "found", itoa(n))
}

// dependencies covers dependencies, dependentRequired and dependentSchemas.
func (s *Session) dependencies(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindObject {
		return true
	}
	ok := true
	for _, dep := range kw.Deps {
		if !v.Has(dep.Property) {
			continue
		}
		s.schema.Push(kw.Name)
		s.schema.Push(dep.Property)
		if dep.Node != runtime.NoNode {
			ok = s.eval(dep.Node, v) && ok
		} else if missing := missingNames(v, dep.Required); len(missing) > 0 {
			ok = s.fail(kw.Name,
				"property", dep.Property,
				"required", quoteList(dep.Required),
				"missing", quoteList(missing))
		}
		s.schema.Pop()
		s.schema.Pop()
		if s.err != nil {
			return false
		}
	}
	return ok
}
