package jsontext

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `null`, want: `null`},
		{in: ` true `, want: `true`},
		{in: `false`, want: `false`},
		{in: `0`, want: `0`},
		{in: `-12.50e3`, want: `-12.50e3`},
		{in: `"a\"b\\c\/d\b\f\n\r\t"`, want: `"a\"b\\c/d\u0008\u000c\n\r\t"`},
		{in: `"é😀"`, want: `"é😀"`},
		{in: `[]`, want: `[]`},
		{in: `{}`, want: `{}`},
		{in: "[1, [2, {\"a\": null}]]\n", want: `[1,[2,{"a":null}]]`},
		{in: `{"b":1,"a":2}`, want: `{"b":1,"a":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseString(tt.in)
			if err != nil {
				t.Fatalf("ParseString(%q) error = %v", tt.in, err)
			}
			if got := v.String(); got != tt.want {
				t.Fatalf("ParseString(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{name: "empty", in: "  ", want: jsonerrors.ErrEmptyInput},
		{name: "truncated object", in: `{"a": 1`, want: jsonerrors.ErrUnexpectedEOF},
		{name: "truncated literal", in: `tru`, want: jsonerrors.ErrUnexpectedEOF},
		{name: "bad literal", in: `nul1`, want: jsonerrors.ErrInvalidChar},
		{name: "unterminated string", in: `"abc`, want: jsonerrors.ErrUnterminated},
		{name: "trailing comma array", in: `[1,2,]`, want: jsonerrors.ErrTrailingComma},
		{name: "trailing comma object", in: `{"a":1,}`, want: jsonerrors.ErrTrailingComma},
		{name: "leading zero", in: `012`, want: jsonerrors.ErrInvalidNumber},
		{name: "bare minus", in: `-`, want: jsonerrors.ErrInvalidNumber},
		{name: "missing fraction", in: `1.`, want: jsonerrors.ErrInvalidNumber},
		{name: "nan", in: `NaN`, want: jsonerrors.ErrExpectedValue},
		{name: "comment", in: `// x`, want: jsonerrors.ErrExpectedValue},
		{name: "control char", in: "\"a\tb\"", want: jsonerrors.ErrControlChar},
		{name: "bad escape", in: `"\x"`, want: jsonerrors.ErrInvalidEscape},
		{name: "bad unicode escape", in: `"\u12G4"`, want: jsonerrors.ErrInvalidEscape},
		{name: "invalid utf8", in: "\"\xff\"", want: jsonerrors.ErrInvalidUTF8},
		{name: "trailing data", in: `{} {}`, want: jsonerrors.ErrTrailingData},
		{name: "unquoted key", in: `{a:1}`, want: jsonerrors.ErrExpectedKey},
		{name: "missing colon", in: `{"a" 1}`, want: jsonerrors.ErrExpectedColon},
		{name: "missing comma", in: `[1 2]`, want: jsonerrors.ErrExpectedSepEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.in)
			if err == nil {
				t.Fatalf("ParseString(%q) error = nil", tt.in)
			}
			var perr *jsonerrors.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseString(%q) error type = %T, want *ParseError", tt.in, err)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseString(%q) error = %v, want cause %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := ParseString("{\n  \"a\": [1,\n  ]\n}")
	var perr *jsonerrors.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Line != 2 || perr.Column != 10 {
		t.Fatalf("location = %d:%d, want 2:10", perr.Line, perr.Column)
	}
	if perr.Offset != 11 {
		t.Fatalf("offset = %d, want 11", perr.Offset)
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 10) + strings.Repeat("]", 10)
	if _, err := ParseString(deep, MaxDepth(10)); err != nil {
		t.Fatalf("depth 10 with limit 10: %v", err)
	}
	_, err := ParseString(deep, MaxDepth(9))
	if !errors.Is(err, jsonerrors.ErrDepthLimit) {
		t.Fatalf("depth 10 with limit 9: error = %v, want ErrDepthLimit", err)
	}

	tooDeep := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
	if _, err := ParseString(tooDeep); !errors.Is(err, jsonerrors.ErrDepthLimit) {
		t.Fatalf("default limit: error = %v, want ErrDepthLimit", err)
	}
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	v, err := ParseString(`{"a":1,"b":2,"a":3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got := strings.Join(v.Keys(), ","); got != "a,b" {
		t.Fatalf("keys = %s, want a,b", got)
	}
	a, _ := v.Lookup("a")
	if a.Literal() != "3" {
		t.Fatalf("a = %s, want 3", a.Literal())
	}
}

func TestParseLoneSurrogateReplaced(t *testing.T) {
	v, err := ParseString(`"x\ud800y"`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if v.Str() != "x�y" {
		t.Fatalf("Str() = %q", v.Str())
	}
}

func TestParseNumberKeepsLiteral(t *testing.T) {
	v, err := ParseString(`1.0`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if v.Kind() != jsonvalue.KindNumber || v.Literal() != "1.0" || !v.IsInteger() {
		t.Fatalf("number = %v literal %q integer %v", v.Kind(), v.Literal(), v.IsInteger())
	}
}

func TestParseReader(t *testing.T) {
	v, err := ParseReader(iotest.OneByteReader(strings.NewReader(`{"k":[true]}`)))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if v.String() != `{"k":[true]}` {
		t.Fatalf("ParseReader() = %s", v.String())
	}
	if _, err := ParseReader(iotest.ErrReader(errors.New("boom"))); err == nil {
		t.Fatal("ParseReader(error reader) error = nil")
	}
}

func TestJoinOptionsLaterWins(t *testing.T) {
	opts := JoinOptions(MaxDepth(3), Options{}, MaxDepth(7))
	if got, ok := opts.MaxDepthValue(); !ok || got != 7 {
		t.Fatalf("MaxDepthValue() = %d, %v, want 7, true", got, ok)
	}
}
