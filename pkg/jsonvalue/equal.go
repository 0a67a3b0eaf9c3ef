package jsonvalue

// Equal reports deep structural equality. Numbers compare by exact value
// (1 equals 1.0) and objects compare without regard to member order.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindInvalid, KindNull:
		return true
	case KindBool:
		return a.Bool() == b.Bool()
	case KindNumber:
		return a.n.dec.Equal(b.n.dec)
	case KindString:
		return a.n.str == b.n.str
	case KindArray:
		if len(a.n.items) != len(b.n.items) {
			return false
		}
		for i := range a.n.items {
			if !Equal(a.n.items[i], b.n.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.n.members) != len(b.n.members) {
			return false
		}
		for _, m := range a.n.members {
			other, ok := b.Lookup(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
