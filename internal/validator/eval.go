package validator

import (
	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// eval applies every keyword of node id to v and reports whether v is valid.
// All keywords run; none short-circuits its siblings.
func (s *Session) eval(id runtime.NodeID, v jsonvalue.Value) bool {
	if s.err != nil {
		return false
	}
	s.depth++
	if s.depth > s.opts.MaxEvalDepth {
		s.err = &jsonerrors.DepthExceededError{Phase: "validate", Pointer: s.inst.String(), Limit: s.opts.MaxEvalDepth}
		s.depth--
		return false
	}
	n := &s.rt.Nodes[id]
	ok := true
	switch n.Kind {
	case runtime.NodeAlways:
	case runtime.NodeNever:
		ok = s.fail(jsonerrors.KeywordFalse)
	default:
		for i := range n.Keywords {
			if !s.keyword(&n.Keywords[i], v) {
				ok = false
			}
			if s.err != nil {
				ok = false
				break
			}
		}
	}
	s.depth--
	return ok
}

func (s *Session) keyword(kw *runtime.Keyword, v jsonvalue.Value) bool {
	switch kw.Op {
	case runtime.OpProperties:
		return s.properties(kw.Props, v)
	case runtime.OpItems:
		return s.items(kw.Items, v)
	case runtime.OpContains:
		return s.contains(kw.Contains, v)
	case runtime.OpIf:
		return s.conditional(kw.Cond, v)
	case runtime.OpDependencies:
		return s.dependencies(kw, v)
	}
	s.schema.Push(kw.Name)
	ok := s.assert(kw, v)
	s.schema.Pop()
	return ok
}

// assert evaluates keywords addressed by their own name.
func (s *Session) assert(kw *runtime.Keyword, v jsonvalue.Value) bool {
	switch kw.Op {
	case runtime.OpType:
		return s.typeKeyword(kw, v)
	case runtime.OpEnum:
		return s.enum(kw, v)
	case runtime.OpConst:
		return s.constKeyword(kw, v)
	case runtime.OpMinimum, runtime.OpMaximum, runtime.OpExclusiveMinimum, runtime.OpExclusiveMaximum:
		return s.bound(kw, v)
	case runtime.OpMultipleOf:
		return s.multipleOf(kw, v)
	case runtime.OpMinLength, runtime.OpMaxLength:
		return s.length(kw, v)
	case runtime.OpPattern:
		return s.pattern(kw, v)
	case runtime.OpFormat:
		return s.format(kw, v)
	case runtime.OpMinItems, runtime.OpMaxItems:
		return s.itemCount(kw, v)
	case runtime.OpUniqueItems:
		return s.uniqueItems(v)
	case runtime.OpRequired:
		return s.required(kw, v)
	case runtime.OpPropertyNames:
		return s.propertyNames(kw, v)
	case runtime.OpMinProperties, runtime.OpMaxProperties:
		return s.propertyCount(kw, v)
	case runtime.OpAllOf:
		return s.allOf(kw, v)
	case runtime.OpAnyOf:
		return s.anyOf(kw, v)
	case runtime.OpOneOf:
		return s.oneOf(kw, v)
	case runtime.OpNot:
		return s.not(kw, v)
	case runtime.OpRef:
		return s.eval(kw.Child, v)
	default:
		return true
	}
}
