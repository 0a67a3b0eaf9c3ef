package num

import (
	"cmp"
	"math/big"
	"strconv"
	"strings"
)

var (
	bigTen = big.NewInt(10)

	// Zero is the canonical zero value.
	Zero = Dec{}
)

// Dec is an exact decimal number: coef * 10^exp.
// The coefficient never carries trailing decimal zeros, so every value has a
// single representation and Dec values can be compared structurally.
// A nil coefficient represents zero. ndigits is the decimal length of the
// coefficient magnitude.
type Dec struct {
	coef    *big.Int
	exp     int64
	ndigits int64
}

// FromInt64 converts an int64 to a Dec.
func FromInt64(v int64) Dec {
	if v == 0 {
		return Zero
	}
	neg := v < 0
	digits := strconv.FormatUint(absUint64(v), 10)
	trimmed := strings.TrimRight(digits, "0")
	d, ok := fromDigits([]byte(trimmed), int64(len(digits)-len(trimmed)), neg)
	if !ok {
		return Zero
	}
	return d
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// fromDigits builds a Dec from a magnitude with no leading or trailing zeros.
func fromDigits(digits []byte, exp int64, neg bool) (Dec, bool) {
	if len(digits) == 0 {
		return Zero, true
	}
	coef, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return Dec{}, false
	}
	if neg {
		coef.Neg(coef)
	}
	return Dec{coef: coef, exp: exp, ndigits: int64(len(digits))}, true
}

// Sign returns -1, 0 or 1.
func (d Dec) Sign() int {
	if d.coef == nil {
		return 0
	}
	return d.coef.Sign()
}

// IsInteger reports whether d has no fractional part.
func (d Dec) IsInteger() bool {
	return d.Sign() == 0 || d.exp >= 0
}

// adjusted returns the exponent of the most significant digit plus one.
func (d Dec) adjusted() int64 {
	return d.exp + d.ndigits
}

// Compare compares two Dec values.
func (d Dec) Compare(o Dec) int {
	ds, os := d.Sign(), o.Sign()
	if ds != os {
		return cmp.Compare(ds, os)
	}
	if ds == 0 {
		return 0
	}
	if da, oa := d.adjusted(), o.adjusted(); da != oa {
		c := cmp.Compare(da, oa)
		if ds < 0 {
			return -c
		}
		return c
	}
	a, b := d.coef, o.coef
	switch {
	case d.exp > o.exp:
		a = shift(a, d.exp-o.exp)
	case o.exp > d.exp:
		b = shift(b, o.exp-d.exp)
	}
	return a.Cmp(b)
}

// Equal reports whether d and o denote the same number.
func (d Dec) Equal(o Dec) bool {
	return d.Compare(o) == 0
}

func shift(v *big.Int, n int64) *big.Int {
	p := new(big.Int).Exp(bigTen, big.NewInt(n), nil)
	return p.Mul(p, v)
}

// MultipleOf reports whether d is an integral multiple of m.
// m must be non-zero; a zero divisor never divides.
func (d Dec) MultipleOf(m Dec) bool {
	if m.Sign() == 0 {
		return false
	}
	if d.Sign() == 0 {
		return true
	}
	// Both coefficients are free of factors of ten, so a smaller exponent on d
	// leaves a fractional quotient.
	if d.exp < m.exp {
		return false
	}
	a := new(big.Int).Abs(d.coef)
	b := new(big.Int).Abs(m.coef)
	r := new(big.Int).Exp(bigTen, big.NewInt(d.exp-m.exp), b)
	r.Mul(r, a)
	r.Mod(r, b)
	return r.Sign() == 0
}

// Int64 returns d as an int64 when it is an integer in range.
func (d Dec) Int64() (int64, bool) {
	if d.Sign() == 0 {
		return 0, true
	}
	if !d.IsInteger() || d.exp > 19 {
		return 0, false
	}
	v := shift(d.coef, d.exp)
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// String renders the canonical lexical form. Plain notation is used for
// moderate exponents and scientific notation otherwise.
func (d Dec) String() string {
	if d.Sign() == 0 {
		return "0"
	}
	digits := new(big.Int).Abs(d.coef).String()
	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	n := int64(len(digits))
	switch {
	case d.exp >= 0 && d.exp+n <= 21:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", int(d.exp)))
	case d.exp < 0 && -d.exp < n:
		point := n + d.exp
		b.WriteString(digits[:point])
		b.WriteByte('.')
		b.WriteString(digits[point:])
	case d.exp < 0 && -d.exp-n < 6:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", int(-d.exp-n)))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		if n > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		e := d.exp + n - 1
		b.WriteByte('e')
		if e >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.FormatInt(e, 10))
	}
	return b.String()
}
