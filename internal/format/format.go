// Package format implements the string formats checked by the "format"
// keyword. Unknown format names always pass.
package format

// Checker reports whether s is a valid instance of a format.
type Checker func(s string) bool

var checkers = map[string]Checker{
	"date-time":             IsDateTime,
	"date":                  IsDate,
	"time":                  IsTime,
	"duration":              IsDuration,
	"email":                 IsEmail,
	"idn-email":             IsIDNEmail,
	"hostname":              IsHostname,
	"ipv4":                  IsIPv4,
	"ipv6":                  IsIPv6,
	"uri":                   IsURI,
	"uri-reference":         IsURIReference,
	"iri":                   IsIRI,
	"iri-reference":         IsIRIReference,
	"uuid":                  IsUUID,
	"regex":                 IsRegex,
	"json-pointer":          IsJSONPointer,
	"relative-json-pointer": IsRelativeJSONPointer,
}

// Check validates s against the named format. Unknown formats pass.
func Check(name, s string) bool {
	c, ok := checkers[name]
	if !ok {
		return true
	}
	return c(s)
}

// Known reports whether name is a checked format.
func Known(name string) bool {
	_, ok := checkers[name]
	return ok
}
