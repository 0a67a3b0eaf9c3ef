package num

// ParseError represents a numeric parse failure.
type ParseError struct {
	Kind ParseErrKind
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return "invalid number: " + e.Kind.String()
}

// ParseErrKind identifies a parse failure category.
type ParseErrKind uint8

const (
	ParseInvalid ParseErrKind = iota
	ParseEmpty
	ParseBadChar
	ParseLeadingZero
	ParseNoDigits
	ParseNoFraction
	ParseNoExponent
	ParseExponentRange
)

// String returns a stable label for the parse error kind.
func (k ParseErrKind) String() string {
	switch k {
	case ParseEmpty:
		return "empty"
	case ParseBadChar:
		return "bad character"
	case ParseLeadingZero:
		return "leading zero"
	case ParseNoDigits:
		return "no digits"
	case ParseNoFraction:
		return "missing fraction digits"
	case ParseNoExponent:
		return "missing exponent digits"
	case ParseExponentRange:
		return "exponent out of range"
	default:
		return "invalid"
	}
}
