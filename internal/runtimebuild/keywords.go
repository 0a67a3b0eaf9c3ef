package runtimebuild

import (
	"log/slog"
	"regexp"

	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/dialect"
	"github.com/jacoelho/jsonschema/internal/format"
	"github.com/jacoelho/jsonschema/internal/resolver"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

type group uint8

const (
	groupProps group = 1 << iota
	groupItems
	groupContains
	groupCond
)

func groupOf(keyword string) group {
	switch keyword {
	case "properties", "patternProperties", "additionalProperties":
		return groupProps
	case "items", "prefixItems", "additionalItems":
		return groupItems
	case "contains", "minContains", "maxContains":
		return groupContains
	case "if", "then", "else":
		return groupCond
	default:
		return 0
	}
}

// keywords compiles the members of a schema object in document order.
// Keywords that depend on each other compile into one keyword placed at the
// first member of their group.
func (c *compiler) keywords(t resolver.Target) ([]runtime.Keyword, error) {
	v := t.Value
	d := t.Dialect
	if raw, ok := v.Lookup("$ref"); ok && d.RefOverridesSiblings() {
		kw, err := c.refKeyword(t, raw)
		if err != nil {
			return nil, err
		}
		return []runtime.Keyword{kw}, nil
	}

	out := make([]runtime.Keyword, 0, v.Len())
	var done group
	for _, m := range v.Members() {
		if !d.Has(m.Key) {
			continue
		}
		if g := groupOf(m.Key); g != 0 {
			if done&g != 0 {
				continue
			}
			done |= g
			kw, ok, err := c.grouped(t, g, m.Key)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, kw)
			}
			continue
		}
		kw, ok, err := c.keyword(t, m)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, kw)
		}
	}
	return out, nil
}

func (c *compiler) grouped(t resolver.Target, g group, first string) (runtime.Keyword, bool, error) {
	switch g {
	case groupProps:
		return c.propsKeyword(t, first)
	case groupItems:
		return c.itemsKeyword(t)
	case groupContains:
		return c.containsKeyword(t)
	default:
		return c.condKeyword(t)
	}
}

func (c *compiler) keyword(t resolver.Target, m jsonvalue.Member) (runtime.Keyword, bool, error) {
	name, raw := m.Key, m.Value
	kw := runtime.Keyword{Name: name}
	switch name {
	case "$ref":
		kw, err := c.refKeyword(t, raw)
		return kw, err == nil, err
	case "type":
		mask, err := c.typeMask(t, raw)
		kw.Op, kw.Types = runtime.OpType, mask
		return kw, err == nil, err
	case "enum":
		if raw.Kind() != jsonvalue.KindArray {
			return kw, false, c.invalid(t, name, "must be an array")
		}
		kw.Op, kw.Values = runtime.OpEnum, raw.Items()
	case "const":
		kw.Op, kw.Value = runtime.OpConst, raw
	case "minimum", "maximum":
		return c.boundKeyword(t, name, raw)
	case "exclusiveMinimum", "exclusiveMaximum":
		if t.Dialect.BooleanExclusiveBounds() {
			if raw.Kind() != jsonvalue.KindBool {
				return kw, false, c.invalid(t, name, "must be a boolean")
			}
			return kw, false, nil
		}
		if raw.Kind() != jsonvalue.KindNumber {
			return kw, false, c.invalid(t, name, "must be a number")
		}
		kw.Op, kw.Number = runtime.OpExclusiveMinimum, raw.Dec()
		if name == "exclusiveMaximum" {
			kw.Op = runtime.OpExclusiveMaximum
		}
	case "multipleOf":
		if raw.Kind() != jsonvalue.KindNumber || raw.Dec().Sign() <= 0 {
			return kw, false, c.invalid(t, name, "must be a number greater than 0")
		}
		kw.Op, kw.Number = runtime.OpMultipleOf, raw.Dec()
	case "minLength", "maxLength", "minItems", "maxItems", "minProperties", "maxProperties":
		n, ok := count(raw)
		if !ok {
			return kw, false, c.invalid(t, name, "must be a non-negative integer")
		}
		kw.Op, kw.Count = countOps[name], n
	case "pattern":
		re, err := c.pattern(t, name, raw)
		if err != nil {
			return kw, false, err
		}
		kw.Op, kw.Pattern, kw.Text = runtime.OpPattern, re, raw.Str()
	case "format":
		if raw.Kind() != jsonvalue.KindString {
			return kw, false, c.invalid(t, name, "must be a string")
		}
		kw.Op, kw.Text = runtime.OpFormat, raw.Str()
		if !format.Known(kw.Text) {
			c.logger.Debug("unknown format is not asserted",
				slog.String("format", kw.Text),
				slog.String("location", t.Key))
		}
	case "uniqueItems":
		if raw.Kind() != jsonvalue.KindBool {
			return kw, false, c.invalid(t, name, "must be a boolean")
		}
		if !raw.Bool() {
			return kw, false, nil
		}
		kw.Op = runtime.OpUniqueItems
	case "required":
		names, err := c.stringSet(t, name, raw)
		if err != nil || len(names) == 0 {
			return kw, false, err
		}
		kw.Op, kw.Names = runtime.OpRequired, names
	case "propertyNames", "not":
		id, err := c.child(t, false, name)
		if err != nil {
			return kw, false, err
		}
		kw.Op, kw.Child = runtime.OpPropertyNames, id
		if name == "not" {
			kw.Op = runtime.OpNot
		}
	case "allOf", "anyOf", "oneOf":
		ids, err := c.schemaArray(t, name, raw)
		if err != nil {
			return kw, false, err
		}
		kw.Op, kw.Children = compositionOps[name], ids
	case "dependencies", "dependentRequired", "dependentSchemas":
		deps, err := c.dependencies(t, name, raw)
		if err != nil || len(deps) == 0 {
			return kw, false, err
		}
		kw.Op, kw.Deps = runtime.OpDependencies, deps
	case "definitions", "$defs":
		return kw, false, c.definitions(t, name, raw)
	case "$recursiveRef", "$dynamicRef", "unevaluatedItems", "unevaluatedProperties":
		if t.Dialect < dialect.Draft2019 {
			return kw, false, nil
		}
		if c.strict {
			return kw, false, c.invalid(t, name, "keyword is not supported")
		}
		c.logger.Debug("ignoring unsupported keyword",
			slog.String("keyword", name),
			slog.String("location", t.Key))
		return kw, false, nil
	default:
		return kw, false, nil
	}
	return kw, true, nil
}

var countOps = map[string]runtime.Op{
	"minLength":     runtime.OpMinLength,
	"maxLength":     runtime.OpMaxLength,
	"minItems":      runtime.OpMinItems,
	"maxItems":      runtime.OpMaxItems,
	"minProperties": runtime.OpMinProperties,
	"maxProperties": runtime.OpMaxProperties,
}

var compositionOps = map[string]runtime.Op{
	"allOf": runtime.OpAllOf,
	"anyOf": runtime.OpAnyOf,
	"oneOf": runtime.OpOneOf,
}

func (c *compiler) refKeyword(t resolver.Target, raw jsonvalue.Value) (runtime.Keyword, error) {
	if raw.Kind() != jsonvalue.KindString {
		return runtime.Keyword{}, c.invalid(t, "$ref", "must be a string")
	}
	id, key, err := c.ref(t, raw.Str())
	if err != nil {
		return runtime.Keyword{}, err
	}
	return runtime.Keyword{Op: runtime.OpRef, Name: "$ref", Text: key, Child: id}, nil
}

func (c *compiler) typeMask(t resolver.Target, raw jsonvalue.Value) (runtime.TypeMask, error) {
	switch raw.Kind() {
	case jsonvalue.KindString:
		mask, ok := runtime.ParseTypeName(raw.Str())
		if !ok {
			return 0, c.invalid(t, "type", "unknown type %q", raw.Str())
		}
		return mask, nil
	case jsonvalue.KindArray:
		if raw.Len() == 0 {
			return 0, c.invalid(t, "type", "must not be empty")
		}
		var mask runtime.TypeMask
		for _, item := range raw.Items() {
			if item.Kind() != jsonvalue.KindString {
				return 0, c.invalid(t, "type", "elements must be strings")
			}
			bit, ok := runtime.ParseTypeName(item.Str())
			if !ok {
				return 0, c.invalid(t, "type", "unknown type %q", item.Str())
			}
			if mask&bit != 0 {
				return 0, c.invalid(t, "type", "duplicate type %q", item.Str())
			}
			mask |= bit
		}
		return mask, nil
	default:
		return 0, c.invalid(t, "type", "must be a string or an array of strings")
	}
}

func (c *compiler) boundKeyword(t resolver.Target, name string, raw jsonvalue.Value) (runtime.Keyword, bool, error) {
	kw := runtime.Keyword{Name: name, Op: runtime.OpMinimum}
	if name == "maximum" {
		kw.Op = runtime.OpMaximum
	}
	if raw.Kind() != jsonvalue.KindNumber {
		return kw, false, c.invalid(t, name, "must be a number")
	}
	kw.Number = raw.Dec()
	if t.Dialect.BooleanExclusiveBounds() {
		modifier := "exclusiveMinimum"
		if name == "maximum" {
			modifier = "exclusiveMaximum"
		}
		if ex, ok := t.Value.Lookup(modifier); ok {
			if ex.Kind() != jsonvalue.KindBool {
				return kw, false, c.invalid(t, modifier, "must be a boolean")
			}
			kw.Exclusive = ex.Bool()
		}
	}
	return kw, true, nil
}

func (c *compiler) pattern(t resolver.Target, name string, raw jsonvalue.Value) (*regexp.Regexp, error) {
	if raw.Kind() != jsonvalue.KindString {
		return nil, c.invalid(t, name, "must be a string")
	}
	re, err := regexp.Compile(raw.Str())
	if err != nil {
		return nil, &jsonerrors.SchemaError{Pointer: c.where(t), Keyword: name, Reason: "invalid regular expression", Err: err}
	}
	return re, nil
}

func (c *compiler) stringSet(t resolver.Target, name string, raw jsonvalue.Value) ([]string, error) {
	if raw.Kind() != jsonvalue.KindArray {
		return nil, c.invalid(t, name, "must be an array of strings")
	}
	out := make([]string, 0, raw.Len())
	seen := make(map[string]bool, raw.Len())
	for _, item := range raw.Items() {
		if item.Kind() != jsonvalue.KindString {
			return nil, c.invalid(t, name, "must be an array of strings")
		}
		if seen[item.Str()] {
			return nil, c.invalid(t, name, "duplicate entry %q", item.Str())
		}
		seen[item.Str()] = true
		out = append(out, item.Str())
	}
	return out, nil
}

func (c *compiler) schemaArray(t resolver.Target, name string, raw jsonvalue.Value) ([]runtime.NodeID, error) {
	if raw.Kind() != jsonvalue.KindArray || raw.Len() == 0 {
		return nil, c.invalid(t, name, "must be a non-empty array of schemas")
	}
	ids := make([]runtime.NodeID, raw.Len())
	for i := range ids {
		id, err := c.child(t, false, name, itoa(i))
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func (c *compiler) dependencies(t resolver.Target, name string, raw jsonvalue.Value) ([]runtime.Dependency, error) {
	if raw.Kind() != jsonvalue.KindObject {
		return nil, c.invalid(t, name, "must be an object")
	}
	deps := make([]runtime.Dependency, 0, raw.Len())
	for _, m := range raw.Members() {
		dep := runtime.Dependency{Property: m.Key}
		requiredForm := name == "dependentRequired" || (name == "dependencies" && m.Value.Kind() == jsonvalue.KindArray)
		if requiredForm {
			names, err := c.stringSet(t, name, m.Value)
			if err != nil {
				return nil, err
			}
			if len(names) == 0 {
				continue
			}
			dep.Required = names
		} else {
			id, err := c.child(t, false, name, m.Key)
			if err != nil {
				return nil, err
			}
			dep.Node = id
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

// definitions compiles every entry so that malformed definitions fail at
// compile time even when nothing references them.
func (c *compiler) definitions(t resolver.Target, name string, raw jsonvalue.Value) error {
	if raw.Kind() != jsonvalue.KindObject {
		return c.invalid(t, name, "must be an object")
	}
	for _, m := range raw.Members() {
		if _, err := c.child(t, false, name, m.Key); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) invalid(t resolver.Target, keyword, format string, args ...any) error {
	return jsonerrors.NewSchemaError(c.where(t), keyword, format, args...)
}
