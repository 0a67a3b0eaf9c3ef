package num

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestParseDec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		errKind ParseErrKind
		wantErr bool
	}{
		{name: "zero", input: "0", want: "0"},
		{name: "neg zero", input: "-0.0", want: "0"},
		{name: "integer", input: "12", want: "12"},
		{name: "fraction", input: "0.1", want: "0.1"},
		{name: "trailing zero fraction", input: "1.0", want: "1"},
		{name: "trim trailing zeros", input: "12.3400", want: "12.34"},
		{name: "exponent", input: "1e3", want: "1000"},
		{name: "negative exponent", input: "25E-1", want: "2.5"},
		{name: "signed exponent", input: "-1.5e+2", want: "-150"},
		{name: "large exponent", input: "1e400", want: "1e+400"},
		{name: "tiny", input: "1e-7", want: "1e-7"},
		{name: "empty", input: "", wantErr: true, errKind: ParseEmpty},
		{name: "sign only", input: "-", wantErr: true, errKind: ParseNoDigits},
		{name: "leading dot", input: ".5", wantErr: true, errKind: ParseNoDigits},
		{name: "trailing dot", input: "5.", wantErr: true, errKind: ParseNoFraction},
		{name: "leading zero", input: "01", wantErr: true, errKind: ParseLeadingZero},
		{name: "plus sign", input: "+1", wantErr: true, errKind: ParseBadChar},
		{name: "missing exponent", input: "1e", wantErr: true, errKind: ParseNoExponent},
		{name: "bad char", input: "1a", wantErr: true, errKind: ParseBadChar},
		{name: "exponent overflow", input: "1e99999999999", wantErr: true, errKind: ParseExponentRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDec([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if err.Kind != tc.errKind {
					t.Fatalf("error kind = %v, want %v", err.Kind, tc.errKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Fatalf("String() = %q, want %q", got.String(), tc.want)
			}
		})
	}
}

func TestDecCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1", "1.0", 0},
		{"1", "2", -1},
		{"-1", "-2", 1},
		{"0.1", "0.10000000000000001", -1},
		{"9007199254740993", "9007199254740992", 1},
		{"1e400", "1e399", 1},
		{"-1e400", "1", -1},
		{"0", "-0", 0},
		{"12.5", "125e-1", 0},
		{"0.30000000000000004", "0.3", 1},
	}
	for _, tc := range tests {
		if got := MustParse(tc.a).Compare(MustParse(tc.b)); got != tc.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDecMultipleOf(t *testing.T) {
	tests := []struct {
		v, m string
		want bool
	}{
		{"10", "2", true},
		{"7", "2", false},
		{"0.3", "0.1", true},
		{"0.0075", "0.0001", true},
		{"0.00751", "0.0001", false},
		{"1e308", "3", false},
		{"1e308", "5", true},
		{"0", "0.5", true},
		{"4.5", "1.5", true},
		{"-9", "3", true},
		{"1", "0.01", true},
		{"0.1", "1", false},
	}
	for _, tc := range tests {
		if got := MustParse(tc.v).MultipleOf(MustParse(tc.m)); got != tc.want {
			t.Fatalf("MultipleOf(%s, %s) = %v, want %v", tc.v, tc.m, got, tc.want)
		}
	}
}

func TestDecIsInteger(t *testing.T) {
	tests := map[string]bool{
		"1":     true,
		"1.0":   true,
		"1.5":   false,
		"1e2":   true,
		"15e-1": false,
		"0":     true,
	}
	for in, want := range tests {
		if got := MustParse(in).IsInteger(); got != want {
			t.Fatalf("IsInteger(%s) = %v, want %v", in, got, want)
		}
	}
}

func TestDecInt64(t *testing.T) {
	if v, ok := MustParse("2e3").Int64(); !ok || v != 2000 {
		t.Fatalf("Int64() = %d, %v, want 2000, true", v, ok)
	}
	if _, ok := MustParse("1.5").Int64(); ok {
		t.Fatalf("Int64() ok for fractional value")
	}
	if _, ok := MustParse("1e30").Int64(); ok {
		t.Fatalf("Int64() ok for out of range value")
	}
}

func TestAppendKeyCanonical(t *testing.T) {
	a := AppendKey(nil, MustParse("10e-1"))
	b := AppendKey(nil, MustParse("1.000"))
	if string(a) != string(b) {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
}

func TestParseDecLongTrailingZerosIsLinear(t *testing.T) {
	input := "1" + strings.Repeat("0", 1<<20)
	start := time.Now()
	got, err := ParseDec([]byte(input))
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "1e+1048576" {
		t.Fatalf("String() = %q, want %q", got.String(), "1e+1048576")
	}
	if elapsed > 2*time.Second {
		t.Fatalf("parse took %s", elapsed)
	}
	if got.Compare(MustParse("1e1048576")) != 0 {
		t.Fatalf("Compare with exponent form != 0")
	}
	frac := "0." + strings.Repeat("0", 1000) + "5" + strings.Repeat("0", 1<<20)
	if got := MustParse(frac); got.String() != "5e-1001" {
		t.Fatalf("String() = %q, want %q", got.String(), "5e-1001")
	}
}

func TestFromInt64(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{1200, "1200"},
		{-1000, "-1000"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "-9223372036854775808"},
	}
	for _, tc := range tests {
		got := FromInt64(tc.in)
		if got.String() != tc.want {
			t.Fatalf("FromInt64(%d).String() = %q, want %q", tc.in, got.String(), tc.want)
		}
		if got.Compare(MustParse(tc.want)) != 0 {
			t.Fatalf("FromInt64(%d) != ParseDec(%s)", tc.in, tc.want)
		}
	}
	if FromInt64(999).Compare(FromInt64(1000)) != -1 {
		t.Fatalf("999 not below 1000")
	}
}

func TestDecCompareDigitCounts(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"99", "100", -1},
		{"0.099", "0.1", -1},
		{"-100", "-99", -1},
		{"123456789012345678901234567890", "1.2345678901234567890123456789e29", 0},
		{"1000000", "999999.9999", 1},
	}
	for _, tc := range tests {
		if got := MustParse(tc.a).Compare(MustParse(tc.b)); got != tc.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
