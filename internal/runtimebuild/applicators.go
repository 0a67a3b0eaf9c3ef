package runtimebuild

import (
	"github.com/jacoelho/jsonschema/internal/resolver"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

func (c *compiler) propsKeyword(t resolver.Target, first string) (runtime.Keyword, bool, error) {
	v := t.Value
	rule := &runtime.PropsRule{}
	if raw, ok := v.Lookup("properties"); ok {
		if raw.Kind() != jsonvalue.KindObject {
			return runtime.Keyword{}, false, c.invalid(t, "properties", "must be an object")
		}
		rule.Index = make(map[string]runtime.NodeID, raw.Len())
		for _, m := range raw.Members() {
			id, err := c.child(t, false, "properties", m.Key)
			if err != nil {
				return runtime.Keyword{}, false, err
			}
			rule.Properties = append(rule.Properties, runtime.NamedNode{Name: m.Key, Node: id})
			rule.Index[m.Key] = id
		}
	}
	if raw, ok := v.Lookup("patternProperties"); ok {
		if raw.Kind() != jsonvalue.KindObject {
			return runtime.Keyword{}, false, c.invalid(t, "patternProperties", "must be an object")
		}
		for _, m := range raw.Members() {
			re, err := c.pattern(t, "patternProperties", jsonvalue.StringValue(m.Key))
			if err != nil {
				return runtime.Keyword{}, false, err
			}
			id, err := c.child(t, false, "patternProperties", m.Key)
			if err != nil {
				return runtime.Keyword{}, false, err
			}
			rule.Patterns = append(rule.Patterns, runtime.PatternNode{Pattern: re, Source: m.Key, Node: id})
		}
	}
	if _, ok := v.Lookup("additionalProperties"); ok {
		id, err := c.child(t, true, "additionalProperties")
		if err != nil {
			return runtime.Keyword{}, false, err
		}
		rule.Additional = id
	}
	return runtime.Keyword{Op: runtime.OpProperties, Name: first, Props: rule}, true, nil
}

func (c *compiler) itemsKeyword(t resolver.Target) (runtime.Keyword, bool, error) {
	v := t.Value
	items, hasItems := v.Lookup("items")
	rule := &runtime.ItemsRule{}
	kw := runtime.Keyword{Op: runtime.OpItems, Items: rule}

	if t.Dialect.HasPrefixItems() {
		rule.PrefixName, rule.RestName = "prefixItems", "items"
		if raw, ok := v.Lookup("prefixItems"); ok {
			ids, err := c.schemaArray(t, "prefixItems", raw)
			if err != nil {
				return kw, false, err
			}
			rule.Prefix = ids
		}
		if hasItems {
			if items.Kind() == jsonvalue.KindArray {
				return kw, false, c.invalid(t, "items", "must be a schema; use prefixItems for tuples")
			}
			id, err := c.child(t, false, "items")
			if err != nil {
				return kw, false, err
			}
			rule.Rest = id
		}
		kw.Name = "prefixItems"
		if len(rule.Prefix) == 0 {
			kw.Name = "items"
		}
		return kw, len(rule.Prefix) > 0 || rule.Rest != runtime.NoNode, nil
	}

	if !hasItems {
		return kw, false, nil
	}
	kw.Name = "items"
	if items.Kind() != jsonvalue.KindArray {
		id, err := c.child(t, false, "items")
		if err != nil {
			return kw, false, err
		}
		rule.Rest, rule.RestName = id, "items"
		return kw, true, nil
	}
	ids := make([]runtime.NodeID, items.Len())
	for i := range ids {
		id, err := c.child(t, false, "items", itoa(i))
		if err != nil {
			return kw, false, err
		}
		ids[i] = id
	}
	rule.Prefix, rule.PrefixName, rule.RestName = ids, "items", "additionalItems"
	if _, ok := v.Lookup("additionalItems"); ok && t.Dialect.Has("additionalItems") {
		id, err := c.child(t, true, "additionalItems")
		if err != nil {
			return kw, false, err
		}
		rule.Rest = id
	}
	return kw, true, nil
}

func (c *compiler) containsKeyword(t resolver.Target) (runtime.Keyword, bool, error) {
	v := t.Value
	rule := &runtime.ContainsRule{Min: 1, Max: -1}
	for _, name := range []string{"minContains", "maxContains"} {
		raw, ok := v.Lookup(name)
		if !ok || !t.Dialect.Has(name) {
			continue
		}
		n, ok := count(raw)
		if !ok {
			return runtime.Keyword{}, false, c.invalid(t, name, "must be a non-negative integer")
		}
		if name == "minContains" {
			rule.Min = n
		} else {
			rule.Max = n
		}
	}
	if _, ok := v.Lookup("contains"); !ok {
		return runtime.Keyword{}, false, nil
	}
	id, err := c.child(t, false, "contains")
	if err != nil {
		return runtime.Keyword{}, false, err
	}
	rule.Node = id
	return runtime.Keyword{Op: runtime.OpContains, Name: "contains", Contains: rule}, true, nil
}

func (c *compiler) condKeyword(t resolver.Target) (runtime.Keyword, bool, error) {
	v := t.Value
	if _, ok := v.Lookup("if"); !ok {
		return runtime.Keyword{}, false, nil
	}
	rule := &runtime.CondRule{}
	var err error
	if rule.If, err = c.child(t, false, "if"); err != nil {
		return runtime.Keyword{}, false, err
	}
	if _, ok := v.Lookup("then"); ok {
		if rule.Then, err = c.child(t, false, "then"); err != nil {
			return runtime.Keyword{}, false, err
		}
	}
	if _, ok := v.Lookup("else"); ok {
		if rule.Else, err = c.child(t, false, "else"); err != nil {
			return runtime.Keyword{}, false, err
		}
	}
	return runtime.Keyword{Op: runtime.OpIf, Name: "if", Cond: rule}, true, nil
}
