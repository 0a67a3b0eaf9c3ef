package num

// maxExponent bounds the decimal exponent magnitude so that scaling stays cheap.
const maxExponent = 1 << 24

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == '0' {
		i++
	}
	return b[i:]
}

// ParseDec parses a JSON number literal (RFC 8259 grammar) into an exact Dec.
func ParseDec(b []byte) (Dec, *ParseError) {
	if len(b) == 0 {
		return Dec{}, &ParseError{Kind: ParseEmpty}
	}
	i := 0
	neg := false
	if b[0] == '-' {
		neg = true
		i++
	}
	if i >= len(b) {
		return Dec{}, &ParseError{Kind: ParseNoDigits}
	}

	intStart := i
	for i < len(b) && isDigit(b[i]) {
		i++
	}
	intDigits := b[intStart:i]
	if len(intDigits) == 0 {
		if b[i] == '.' {
			return Dec{}, &ParseError{Kind: ParseNoDigits}
		}
		return Dec{}, &ParseError{Kind: ParseBadChar}
	}
	if len(intDigits) > 1 && intDigits[0] == '0' {
		return Dec{}, &ParseError{Kind: ParseLeadingZero}
	}

	var fracDigits []byte
	if i < len(b) && b[i] == '.' {
		i++
		fracStart := i
		for i < len(b) && isDigit(b[i]) {
			i++
		}
		fracDigits = b[fracStart:i]
		if len(fracDigits) == 0 {
			return Dec{}, &ParseError{Kind: ParseNoFraction}
		}
	}

	exp := int64(0)
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		expNeg := false
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			expNeg = b[i] == '-'
			i++
		}
		expStart := i
		for i < len(b) && isDigit(b[i]) {
			exp = exp*10 + int64(b[i]-'0')
			if exp > maxExponent {
				return Dec{}, &ParseError{Kind: ParseExponentRange}
			}
			i++
		}
		if i == expStart {
			return Dec{}, &ParseError{Kind: ParseNoExponent}
		}
		if expNeg {
			exp = -exp
		}
	}
	if i != len(b) {
		return Dec{}, &ParseError{Kind: ParseBadChar}
	}

	digits := make([]byte, 0, len(intDigits)+len(fracDigits))
	digits = append(digits, intDigits...)
	digits = append(digits, fracDigits...)
	digits = trimLeadingZeros(digits)
	exp -= int64(len(fracDigits))
	end := len(digits)
	for end > 0 && digits[end-1] == '0' {
		end--
	}
	exp += int64(len(digits) - end)
	d, ok := fromDigits(digits[:end], exp, neg)
	if !ok {
		return Dec{}, &ParseError{Kind: ParseInvalid}
	}
	return d, nil
}

// MustParse parses s and panics on failure. It is meant for constants and tests.
func MustParse(s string) Dec {
	d, err := ParseDec([]byte(s))
	if err != nil {
		panic(err)
	}
	return d
}
