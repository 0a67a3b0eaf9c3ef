package jsonvalue

import (
	"github.com/jacoelho/jsonschema/internal/num"
)

// Kind identifies the JSON type of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON Schema type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// indexThreshold is the member count above which objects get a key index.
const indexThreshold = 8

type node struct {
	kind    Kind
	b       bool
	str     string
	dec     num.Dec
	items   []Value
	members []Member
	index   map[string]int
}

// Value is an immutable JSON value.
type Value struct {
	n *node
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

var (
	nullNode  = &node{kind: KindNull}
	trueNode  = &node{kind: KindBool, b: true}
	falseNode = &node{kind: KindBool}
)

// Null returns the JSON null value.
func Null() Value {
	return Value{n: nullNode}
}

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value {
	if b {
		return Value{n: trueNode}
	}
	return Value{n: falseNode}
}

// StringValue returns a JSON string.
func StringValue(s string) Value {
	return Value{n: &node{kind: KindString, str: s}}
}

// NumberValue returns a JSON number holding d. The literal is the canonical
// rendering of d.
func NumberValue(d num.Dec) Value {
	return Value{n: &node{kind: KindNumber, dec: d, str: d.String()}}
}

// IntValue returns a JSON number holding v.
func IntValue(v int64) Value {
	return NumberValue(num.FromInt64(v))
}

// ParseNumber parses a JSON number literal and keeps it verbatim.
func ParseNumber(literal string) (Value, error) {
	d, err := num.ParseDec([]byte(literal))
	if err != nil {
		return Value{}, err
	}
	return Value{n: &node{kind: KindNumber, dec: d, str: literal}}, nil
}

// ArrayOf returns a JSON array holding a copy of items.
func ArrayOf(items ...Value) Value {
	owned := make([]Value, len(items))
	copy(owned, items)
	return Value{n: &node{kind: KindArray, items: owned}}
}

// ObjectOf returns a JSON object with the given members in order.
// A repeated key keeps the position of its first occurrence and the value of
// its last one.
func ObjectOf(members ...Member) Value {
	owned := make([]Member, 0, len(members))
	var seen map[string]int
	for _, m := range members {
		if seen == nil && len(owned) < indexThreshold {
			if i := linearFind(owned, m.Key); i >= 0 {
				owned[i].Value = m.Value
				continue
			}
			owned = append(owned, m)
			continue
		}
		if seen == nil {
			seen = make(map[string]int, len(members))
			for i, existing := range owned {
				seen[existing.Key] = i
			}
		}
		if i, ok := seen[m.Key]; ok {
			owned[i].Value = m.Value
			continue
		}
		seen[m.Key] = len(owned)
		owned = append(owned, m)
	}
	n := &node{kind: KindObject, members: owned}
	if len(owned) > indexThreshold {
		n.index = seen
	}
	return Value{n: n}
}

func linearFind(members []Member, key string) int {
	for i := range members {
		if members[i].Key == key {
			return i
		}
	}
	return -1
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind {
	if v.n == nil {
		return KindInvalid
	}
	return v.n.kind
}

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool {
	return v.n != nil
}

// Bool returns the boolean payload; false for other kinds.
func (v Value) Bool() bool {
	return v.n != nil && v.n.b
}

// Str returns the string payload; empty for other kinds.
func (v Value) Str() string {
	if v.Kind() != KindString {
		return ""
	}
	return v.n.str
}

// Dec returns the exact numeric payload; zero for other kinds.
func (v Value) Dec() num.Dec {
	if v.Kind() != KindNumber {
		return num.Zero
	}
	return v.n.dec
}

// Literal returns the number literal as it appeared in the source.
func (v Value) Literal() string {
	if v.Kind() != KindNumber {
		return ""
	}
	return v.n.str
}

// IsInteger reports whether v is a number without a fractional part.
func (v Value) IsInteger() bool {
	return v.Kind() == KindNumber && v.n.dec.IsInteger()
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.n.items)
	case KindObject:
		return len(v.n.members)
	default:
		return 0
	}
}

// Index returns the i-th array item, or an invalid Value.
func (v Value) Index(i int) Value {
	if v.Kind() != KindArray || i < 0 || i >= len(v.n.items) {
		return Value{}
	}
	return v.n.items[i]
}

// Items returns the array backing slice. Callers must not modify it.
func (v Value) Items() []Value {
	if v.Kind() != KindArray {
		return nil
	}
	return v.n.items
}

// Members returns the object members in insertion order. Callers must not modify it.
func (v Value) Members() []Member {
	if v.Kind() != KindObject {
		return nil
	}
	return v.n.members
}

// Keys returns the object keys in insertion order.
func (v Value) Keys() []string {
	members := v.Members()
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.Key
	}
	return keys
}

// Lookup returns the member value for key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.Kind() != KindObject {
		return Value{}, false
	}
	if v.n.index != nil {
		i, ok := v.n.index[key]
		if !ok {
			return Value{}, false
		}
		return v.n.members[i].Value, true
	}
	if i := linearFind(v.n.members, key); i >= 0 {
		return v.n.members[i].Value, true
	}
	return Value{}, false
}

// Has reports whether the object has a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}
