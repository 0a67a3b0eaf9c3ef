// Package dialect identifies JSON Schema drafts and the keyword vocabulary
// each one recognises.
package dialect

import "strings"

// Dialect is a JSON Schema draft.
type Dialect uint8

const (
	Unknown Dialect = iota
	Draft4
	Draft6
	Draft7
	Draft2019
	Draft2020
)

// Default is the dialect assumed when a schema declares none.
const Default = Draft2020

var uris = [...]string{
	Draft4:    "http://json-schema.org/draft-04/schema#",
	Draft6:    "http://json-schema.org/draft-06/schema#",
	Draft7:    "http://json-schema.org/draft-07/schema#",
	Draft2019: "https://json-schema.org/draft/2019-09/schema",
	Draft2020: "https://json-schema.org/draft/2020-12/schema",
}

var names = [...]string{
	Unknown:   "unknown",
	Draft4:    "draft-04",
	Draft6:    "draft-06",
	Draft7:    "draft-07",
	Draft2019: "2019-09",
	Draft2020: "2020-12",
}

// Lookup maps a $schema value to a dialect. The trailing empty fragment and
// the http/https distinction are ignored.
func Lookup(schemaURI string) (Dialect, bool) {
	want := normalize(schemaURI)
	for d := Draft4; d <= Draft2020; d++ {
		if normalize(uris[d]) == want {
			return d, true
		}
	}
	return Unknown, false
}

// Parse maps a short dialect name ("draft-07", "2020-12") or a $schema URI
// to a dialect.
func Parse(s string) (Dialect, bool) {
	for d := Draft4; d <= Draft2020; d++ {
		if names[d] == s {
			return d, true
		}
	}
	return Lookup(s)
}

func normalize(uri string) string {
	uri = strings.TrimSuffix(strings.TrimSpace(uri), "#")
	uri = strings.TrimPrefix(uri, "https://")
	return strings.TrimPrefix(uri, "http://")
}

// URI returns the canonical meta-schema URI.
func (d Dialect) URI() string {
	if d < Draft4 || d > Draft2020 {
		return ""
	}
	return uris[d]
}

// String returns the short dialect name.
func (d Dialect) String() string {
	if int(d) >= len(names) {
		return names[Unknown]
	}
	return names[d]
}

// IDKeyword returns the keyword declaring a resource identifier.
func (d Dialect) IDKeyword() string {
	if d == Draft4 {
		return "id"
	}
	return "$id"
}

// BooleanSchemas reports whether true/false are valid schemas.
func (d Dialect) BooleanSchemas() bool { return d >= Draft6 }

// BooleanExclusiveBounds reports whether exclusiveMinimum/exclusiveMaximum
// are boolean modifiers of minimum/maximum.
func (d Dialect) BooleanExclusiveBounds() bool { return d == Draft4 }

// RefOverridesSiblings reports whether keywords next to $ref are ignored.
func (d Dialect) RefOverridesSiblings() bool { return d <= Draft7 }

// PlainNameIDs reports whether "$id": "#name" declares an anchor.
func (d Dialect) PlainNameIDs() bool { return d <= Draft7 }

// HasAnchor reports whether $anchor is recognised.
func (d Dialect) HasAnchor() bool { return d >= Draft2019 }

// HasPrefixItems reports whether tuples use prefixItems with items as the rest schema.
func (d Dialect) HasPrefixItems() bool { return d >= Draft2020 }

// Has reports whether keyword is an assertion or applicator in d.
func (d Dialect) Has(keyword string) bool {
	switch keyword {
	case "const", "contains", "propertyNames":
		return d >= Draft6
	case "if", "then", "else":
		return d >= Draft7
	case "minContains", "maxContains", "dependentRequired", "dependentSchemas", "$anchor", "$defs":
		return d >= Draft2019
	case "dependencies":
		return d <= Draft7
	case "additionalItems":
		return d <= Draft2019
	case "prefixItems":
		return d >= Draft2020
	default:
		return true
	}
}
