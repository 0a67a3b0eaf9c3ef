package runtime

import (
	"regexp"

	"github.com/jacoelho/jsonschema/internal/num"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// NodeKind classifies a compiled schema.
type NodeKind uint8

const (
	// NodeKeywords is an object schema evaluated keyword by keyword.
	NodeKeywords NodeKind = iota
	// NodeAlways is the boolean schema true.
	NodeAlways
	// NodeNever is the boolean schema false.
	NodeNever
)

// Node is one compiled schema object or boolean schema.
type Node struct {
	Location string
	Keywords []Keyword
	Kind     NodeKind
}

// Op selects the evaluator for a Keyword.
type Op uint8

const (
	OpType Op = iota
	OpEnum
	OpConst
	OpMinimum
	OpMaximum
	OpExclusiveMinimum
	OpExclusiveMaximum
	OpMultipleOf
	OpMinLength
	OpMaxLength
	OpPattern
	OpFormat
	OpItems
	OpMinItems
	OpMaxItems
	OpUniqueItems
	OpContains
	OpProperties
	OpRequired
	OpPropertyNames
	OpMinProperties
	OpMaxProperties
	OpDependencies
	OpAllOf
	OpAnyOf
	OpOneOf
	OpNot
	OpIf
	OpRef
)

// Keyword is one compiled keyword. Op decides which fields are meaningful.
type Keyword struct {
	Value    jsonvalue.Value
	Number   num.Dec
	Pattern  *regexp.Regexp
	Props    *PropsRule
	Items    *ItemsRule
	Contains *ContainsRule
	Cond     *CondRule
	// Name is the keyword as written; it is the finding keyword and the
	// schema path token.
	Name string
	// Text holds the pattern source, the format name or the $ref target key.
	Text     string
	Values   []jsonvalue.Value
	Names    []string
	Children []NodeID
	Deps     []Dependency
	Count    int
	Child    NodeID
	Types    TypeMask
	Op       Op
	// Exclusive marks draft-04 boolean exclusiveMinimum/exclusiveMaximum.
	Exclusive bool
}

// TypeMask is a set of JSON Schema type names.
type TypeMask uint8

const (
	TypeNull TypeMask = 1 << iota
	TypeBoolean
	TypeObject
	TypeArray
	TypeNumber
	TypeString
	TypeInteger
)

var typeNames = []struct {
	name string
	mask TypeMask
}{
	{"null", TypeNull},
	{"boolean", TypeBoolean},
	{"object", TypeObject},
	{"array", TypeArray},
	{"number", TypeNumber},
	{"string", TypeString},
	{"integer", TypeInteger},
}

// ParseTypeName maps a type keyword name to its mask bit.
func ParseTypeName(name string) (TypeMask, bool) {
	for _, t := range typeNames {
		if t.name == name {
			return t.mask, true
		}
	}
	return 0, false
}

// Names returns the type names in m in canonical order.
func (m TypeMask) Names() []string {
	var out []string
	for _, t := range typeNames {
		if m&t.mask != 0 {
			out = append(out, t.name)
		}
	}
	return out
}

// Matches reports whether v is one of the types in m. Integers are numbers
// with a zero fractional part.
func (m TypeMask) Matches(v jsonvalue.Value) bool {
	switch v.Kind() {
	case jsonvalue.KindNull:
		return m&TypeNull != 0
	case jsonvalue.KindBool:
		return m&TypeBoolean != 0
	case jsonvalue.KindObject:
		return m&TypeObject != 0
	case jsonvalue.KindArray:
		return m&TypeArray != 0
	case jsonvalue.KindString:
		return m&TypeString != 0
	case jsonvalue.KindNumber:
		return m&TypeNumber != 0 || (m&TypeInteger != 0 && v.IsInteger())
	default:
		return false
	}
}

// TypeName returns the most specific type name of v.
func TypeName(v jsonvalue.Value) string {
	if v.IsInteger() {
		return "integer"
	}
	return v.Kind().String()
}

// NamedNode pairs a property name with its subschema.
type NamedNode struct {
	Name string
	Node NodeID
}

// PatternNode pairs a property-name pattern with its subschema.
type PatternNode struct {
	Pattern *regexp.Regexp
	Source  string
	Node    NodeID
}

// PropsRule compiles properties, patternProperties and additionalProperties
// of one schema object together.
type PropsRule struct {
	Index      map[string]NodeID
	Properties []NamedNode
	Patterns   []PatternNode
	// Additional is NoNode when additionalProperties is absent.
	Additional NodeID
}

// ItemsRule compiles the tuple and rest forms of array item keywords.
type ItemsRule struct {
	PrefixName string
	RestName   string
	Prefix     []NodeID
	// Rest is NoNode when no schema applies beyond the prefix.
	Rest NodeID
}

// ContainsRule compiles contains with its minContains/maxContains bounds.
// Max is -1 when unbounded.
type ContainsRule struct {
	Node NodeID
	Min  int
	Max  int
}

// CondRule compiles if/then/else. Then and Else are NoNode when absent.
type CondRule struct {
	If   NodeID
	Then NodeID
	Else NodeID
}

// Dependency is one entry of dependencies, dependentRequired or
// dependentSchemas. Exactly one of Required and Node is set.
type Dependency struct {
	Property string
	Required []string
	Node     NodeID
}
