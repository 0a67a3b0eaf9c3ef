package validator

import (
	"slices"

	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

func (s *Session) branch(i int, id runtime.NodeID, v jsonvalue.Value) bool {
	s.schema.PushIndex(i)
	ok := s.eval(id, v)
	s.schema.Pop()
	return ok
}

// allOf concatenates the findings of every failing branch.
func (s *Session) allOf(kw *runtime.Keyword, v jsonvalue.Value) bool {
	ok := true
	for i, id := range kw.Children {
		ok = s.branch(i, id, v) && ok
		if s.err != nil {
			return false
		}
	}
	return ok
}

// anyOf stops at the first passing branch. When none passes, a summary
// finding precedes the findings of every branch.
func (s *Session) anyOf(kw *runtime.Keyword, v jsonvalue.Value) bool {
	mark := s.mark()
	for i, id := range kw.Children {
		if s.branch(i, id, v) {
			s.rollback(mark)
			return true
		}
		if s.err != nil {
			return false
		}
	}
	s.fail(kw.Name, "count", itoa(len(kw.Children)))
	summary := s.findings[len(s.findings)-1]
	s.findings = slices.Insert(s.findings[:len(s.findings)-1], mark, summary)
	return false
}

// oneOf evaluates every branch and reports a single finding naming the
// matching branches when not exactly one passes.
func (s *Session) oneOf(kw *runtime.Keyword, v jsonvalue.Value) bool {
	mark := s.mark()
	var matched []int
	for i, id := range kw.Children {
		if s.branch(i, id, v) {
			matched = append(matched, i)
		}
		s.rollback(mark)
		if s.err != nil {
			return false
		}
	}
	if len(matched) == 1 {
		return true
	}
	return s.fail(kw.Name, "matched", intList(matched), "count", itoa(len(kw.Children)))
}

func (s *Session) not(kw *runtime.Keyword, v jsonvalue.Value) bool {
	mark := s.mark()
	passed := s.eval(kw.Child, v)
	s.rollback(mark)
	if s.err != nil || !passed {
		return s.err == nil
	}
	return s.fail(jsonerrors.KeywordNot)
}

// conditional evaluates if for branch selection only; the taken branch
// reports under its own keyword.
func (s *Session) conditional(rule *runtime.CondRule, v jsonvalue.Value) bool {
	mark := s.mark()
	s.schema.Push("if")
	passed := s.eval(rule.If, v)
	s.schema.Pop()
	s.rollback(mark)
	if s.err != nil {
		return false
	}
	next, name := rule.Else, "else"
	if passed {
		next, name = rule.Then, "then"
	}
	if next == runtime.NoNode {
		return true
	}
	s.schema.Push(name)
	ok := s.eval(next, v)
	s.schema.Pop()
	return ok
}
