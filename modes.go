package jsonschema

// DialectPolicy controls how unknown $schema values and unsupported keywords
// are handled during compilation.
type DialectPolicy int

const (
	// DialectStrict rejects unknown $schema values and unsupported keywords.
	DialectStrict DialectPolicy = iota
	// DialectBestEffort falls back to the default dialect and ignores
	// unsupported keywords.
	DialectBestEffort
)

// FormatMode controls whether the format keyword is asserted.
type FormatMode int

const (
	// FormatAssert reports values that do not match a known format.
	FormatAssert FormatMode = iota
	// FormatAnnotate treats format as an annotation only.
	FormatAnnotate
)

// String returns the flag spelling of the mode.
func (m FormatMode) String() string {
	if m == FormatAnnotate {
		return "annotate"
	}
	return "assert"
}

// ParseFormatMode maps "assert" or "annotate" to a FormatMode.
func ParseFormatMode(s string) (FormatMode, bool) {
	switch s {
	case "assert", "":
		return FormatAssert, true
	case "annotate":
		return FormatAnnotate, true
	default:
		return FormatAssert, false
	}
}
