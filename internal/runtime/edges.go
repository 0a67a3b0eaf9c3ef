package runtime

// InPlaceEdges returns the subschemas of id evaluated against the same
// instance location. A cycle through these edges never terminates.
func (s *Schema) InPlaceEdges(id NodeID) []NodeID {
	var out []NodeID
	for _, kw := range s.Nodes[id].Keywords {
		switch kw.Op {
		case OpRef, OpNot:
			out = append(out, kw.Child)
		case OpAllOf, OpAnyOf, OpOneOf:
			out = append(out, kw.Children...)
		case OpIf:
			for _, n := range []NodeID{kw.Cond.If, kw.Cond.Then, kw.Cond.Else} {
				if n != NoNode {
					out = append(out, n)
				}
			}
		case OpDependencies:
			for _, dep := range kw.Deps {
				if dep.Node != NoNode {
					out = append(out, dep.Node)
				}
			}
		}
	}
	return out
}
