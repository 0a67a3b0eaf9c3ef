package format

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jacoelho/jsonschema/internal/pointer"
)

// IsURI checks an absolute ASCII URI.
func IsURI(s string) bool {
	return isASCII(s) && IsIRI(s)
}

// IsURIReference checks an ASCII URI or relative reference.
func IsURIReference(s string) bool {
	return isASCII(s) && IsIRIReference(s)
}

// IsIRI checks an absolute internationalized resource identifier.
func IsIRI(s string) bool {
	u, err := parseReference(s)
	return err == nil && u.IsAbs()
}

// IsIRIReference checks an internationalized reference.
func IsIRIReference(s string) bool {
	_, err := parseReference(s)
	return err == nil
}

func parseReference(s string) (*url.URL, error) {
	if strings.ContainsAny(s, " \\<>\"{}|^`") {
		return nil, url.InvalidHostError(s)
	}
	return url.Parse(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsUUID checks the hyphenated RFC 4122 form.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsRegex checks that s compiles as a regular expression.
func IsRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}

// IsJSONPointer checks an RFC 6901 JSON Pointer.
func IsJSONPointer(s string) bool {
	return pointer.IsValid(s)
}

// IsRelativeJSONPointer checks a relative JSON Pointer: a non-negative
// integer followed by "#" or a JSON Pointer.
func IsRelativeJSONPointer(s string) bool {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == 0 || (n > 1 && s[0] == '0') {
		return false
	}
	rest := s[n:]
	return rest == "#" || IsJSONPointer(rest)
}
