// Package messages renders finding messages from templates with {name}
// placeholders.
package messages

import (
	"strings"

	"github.com/jacoelho/jsonschema/pkg/catalog"
)

var english = map[string]string{
	"false":                "instance is not allowed by a false schema",
	"type":                 "instance type ({found}) does not match any allowed primitive type (allowed: {expected})",
	"enum":                 "instance value ({value}) not found in enum (possible values: {enum})",
	"const":                "instance value ({value}) does not match constant ({const})",
	"minimum":              "numeric instance is lower than the required minimum (minimum: {limit}, found: {value})",
	"maximum":              "numeric instance is greater than the required maximum (maximum: {limit}, found: {value})",
	"exclusiveMinimum":     "numeric instance is not strictly greater than the required minimum {limit}",
	"exclusiveMaximum":     "numeric instance is not strictly lower than the required maximum {limit}",
	"multipleOf":           "remainder of division is not zero ({value} / {divisor})",
	"minLength":            `string "{value}" is too short (length: {length}, required minimum: {limit})`,
	"maxLength":            `string "{value}" is too long (length: {length}, maximum allowed: {limit})`,
	"pattern":              `ECMA 262 regex "{pattern}" does not match input string "{value}"`,
	"format":               `string "{value}" is invalid against requested format "{format}"`,
	"items":                "array only allows {limit} elements (found: {found})",
	"additionalItems":      "array only allows {limit} elements (found: {found})",
	"minItems":             "array is too short: must have at least {limit} elements but instance has {found} elements",
	"maxItems":             "array is too long: must have at most {limit} elements but instance has {found} elements",
	"uniqueItems":          "array must not contain duplicate elements (elements {first} and {second} are equal)",
	"contains":             "array does not contain enough matching elements (matched: {matched}, required minimum: {min})",
	"maxContains":          "array contains too many matching elements (matched: {matched}, maximum allowed: {max})",
	"additionalProperties": "object instance has properties which are not allowed by the schema: {properties}",
	"required":             "object has missing required properties ({missing})",
	"minProperties":        "object has too few properties (found {found} but schema requires at least {limit})",
	"maxProperties":        "object has too many properties (found {found} but schema requires at most {limit})",
	"dependencies":         `property "{property}" of object has missing property dependencies (requires: {required}; missing: {missing})`,
	"dependentRequired":    `property "{property}" of object has missing property dependencies (requires: {required}; missing: {missing})`,
	"anyOf":                "instance failed to match at least one required schema among {count}",
	"oneOf":                "instance failed to match exactly one schema (matched: [{matched}] out of {count})",
	"not":                  "instance matched a schema which it should not match",
}

// English returns the built-in template for keyword.
func English(keyword string) (string, bool) {
	t, ok := english[keyword]
	return t, ok
}

// Keywords returns the keywords with a built-in template.
func Keywords() []string {
	out := make([]string, 0, len(english))
	for k := range english {
		out = append(out, k)
	}
	return out
}

// Renderer renders findings from an optional override catalog, falling back
// to English per keyword. The zero Renderer renders English.
type Renderer struct {
	overrides catalog.Catalog
}

// NewRenderer returns a renderer using overrides where present.
func NewRenderer(overrides catalog.Catalog) Renderer {
	return Renderer{overrides: overrides}
}

// Render expands the template for keyword. args are name/value pairs.
func (r Renderer) Render(keyword string, args ...string) string {
	tmpl, ok := r.overrides.Template(keyword)
	if !ok {
		tmpl, ok = english[keyword]
	}
	if !ok {
		tmpl = keyword + " failed"
	}
	return Expand(tmpl, args...)
}

// Expand replaces {name} placeholders using name/value pairs. Unknown
// placeholders are left as written.
func Expand(tmpl string, args ...string) string {
	if strings.IndexByte(tmpl, '{') < 0 {
		return tmpl
	}
	var b strings.Builder
	b.Grow(len(tmpl) + 32)
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			break
		}
		name := tmpl[open+1 : open+end]
		b.WriteString(tmpl[:open])
		if v, ok := lookup(args, name); ok {
			b.WriteString(v)
		} else {
			b.WriteString(tmpl[open : open+end+1])
		}
		tmpl = tmpl[open+end+1:]
	}
	b.WriteString(tmpl)
	return b.String()
}

func lookup(args []string, name string) (string, bool) {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == name {
			return args[i+1], true
		}
	}
	return "", false
}
