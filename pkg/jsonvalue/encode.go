package jsonvalue

import (
	"cmp"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/jacoelho/jsonschema/internal/num"
)

const hexDigits = "0123456789abcdef"

// AppendJSON appends the compact JSON encoding of v to dst.
// Numbers are written with their original literal.
func AppendJSON(dst []byte, v Value) []byte {
	switch v.Kind() {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		return strconv.AppendBool(dst, v.Bool())
	case KindNumber:
		return append(dst, v.n.str...)
	case KindString:
		return AppendQuoted(dst, v.n.str)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.n.items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, item)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, m := range v.n.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendQuoted(dst, m.Key)
			dst = append(dst, ':')
			dst = AppendJSON(dst, m.Value)
		}
		return append(dst, '}')
	default:
		return dst
	}
}

// AppendQuoted appends s as a JSON string literal.
func AppendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				dst = append(dst, '\\', c)
			case c == '\n':
				dst = append(dst, '\\', 'n')
			case c == '\r':
				dst = append(dst, '\\', 'r')
			case c == '\t':
				dst = append(dst, '\\', 't')
			case c < 0x20:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			default:
				dst = append(dst, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, `�`...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	return string(AppendJSON(nil, v))
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.IsValid() {
		return []byte("null"), nil
	}
	return AppendJSON(nil, v), nil
}

// AppendKey appends a canonical key for v: equal values produce equal keys.
// Object members are sorted and numbers are normalized.
func AppendKey(dst []byte, v Value) []byte {
	switch v.Kind() {
	case KindNumber:
		dst = append(dst, 'n')
		return num.AppendKey(dst, v.n.dec)
	case KindArray:
		dst = append(dst, '[')
		for _, item := range v.n.items {
			dst = AppendKey(dst, item)
			dst = append(dst, ',')
		}
		return append(dst, ']')
	case KindObject:
		members := slices.Clone(v.n.members)
		slices.SortFunc(members, func(a, b Member) int {
			return cmp.Compare(a.Key, b.Key)
		})
		dst = append(dst, '{')
		for _, m := range members {
			dst = AppendQuoted(dst, m.Key)
			dst = append(dst, ':')
			dst = AppendKey(dst, m.Value)
			dst = append(dst, ',')
		}
		return append(dst, '}')
	default:
		return AppendJSON(dst, v)
	}
}
