package validator

import (
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

func (s *Session) items(rule *runtime.ItemsRule, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindArray {
		return true
	}
	items := v.Items()
	ok := true
	for i, id := range rule.Prefix {
		if i >= len(items) {
			break
		}
		ok = s.child(rule.PrefixName, i, id, items[i]) && ok
		if s.err != nil {
			return false
		}
	}
	if rule.Rest == runtime.NoNode || len(items) <= len(rule.Prefix) {
		return ok
	}
	if s.rt.Nodes[rule.Rest].Kind == runtime.NodeNever {
		s.schema.Push(rule.RestName)
		s.fail(rule.RestName, "limit", itoa(len(rule.Prefix)), "found", itoa(len(items)))
		s.schema.Pop()
		return false
	}
	s.schema.Push(rule.RestName)
	for i := len(rule.Prefix); i < len(items); i++ {
		s.inst.PushIndex(i)
		ok = s.eval(rule.Rest, items[i]) && ok
		s.inst.Pop()
		if s.err != nil {
			break
		}
	}
	s.schema.Pop()
	return ok && s.err == nil
}

// child evaluates item i against the i-th subschema of keyword.
func (s *Session) child(keyword string, i int, id runtime.NodeID, item jsonvalue.Value) bool {
	s.schema.Push(keyword)
	s.schema.PushIndex(i)
	s.inst.PushIndex(i)
	ok := s.eval(id, item)
	s.inst.Pop()
	s.schema.Pop()
	s.schema.Pop()
	return ok
}

func (s *Session) itemCount(kw *runtime.Keyword, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindArray {
		return true
	}
	n := v.Len()
	if (kw.Op == runtime.OpMinItems && n >= kw.Count) || (kw.Op == runtime.OpMaxItems && n <= kw.Count) {
		return true
	}
	return s.fail(kw.Name, "limit", itoa(kw.Count), "found", itoa(n))
}

// uniqueItems reports the first pair of structurally equal elements.
func (s *Session) uniqueItems(v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindArray || v.Len() < 2 {
		return true
	}
	if s.seen == nil {
		s.seen = make(map[string]int, v.Len())
	}
	defer clear(s.seen)
	for i, item := range v.Items() {
		s.keyBuf = jsonvalue.AppendKey(s.keyBuf[:0], item)
		if first, dup := s.seen[string(s.keyBuf)]; dup {
			return s.fail("uniqueItems", "first", itoa(first), "second", itoa(i))
		}
		s.seen[string(s.keyBuf)] = i
	}
	return true
}

// contains counts matching elements; element findings are discarded.
func (s *Session) contains(rule *runtime.ContainsRule, v jsonvalue.Value) bool {
	if v.Kind() != jsonvalue.KindArray {
		return true
	}
	mark := s.mark()
	matched := 0
	s.schema.Push("contains")
	for i, item := range v.Items() {
		s.inst.PushIndex(i)
		if s.eval(rule.Node, item) {
			matched++
		}
		s.inst.Pop()
		if s.err != nil {
			break
		}
	}
	s.rollback(mark)
	if s.err != nil {
		s.schema.Pop()
		return false
	}
	if matched < rule.Min {
		s.fail("contains", "matched", itoa(matched), "min", itoa(rule.Min))
		s.schema.Pop()
		return false
	}
	s.schema.Pop()
	if rule.Max >= 0 && matched > rule.Max {
		s.schema.Push("maxContains")
		s.fail("maxContains", "matched", itoa(matched), "max", itoa(rule.Max))
		s.schema.Pop()
		return false
	}
	return true
}
