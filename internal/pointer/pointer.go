// Package pointer implements JSON Pointer (RFC 6901) parsing, rendering and
// lookup over jsonvalue trees.
package pointer

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

var (
	errMissingSlash = errors.New("pointer must be empty or start with '/'")
	errBadEscape    = errors.New("invalid '~' escape")
)

// Pointer is a sequence of unescaped reference tokens. The empty pointer
// addresses the document root.
type Pointer []string

// Parse parses s as a JSON Pointer. The URI fragment form ("#/a/b") is also
// accepted and percent-decoded first.
func Parse(s string) (Pointer, error) {
	if frag, ok := strings.CutPrefix(s, "#"); ok {
		decoded, err := url.PathUnescape(frag)
		if err != nil {
			return nil, fmt.Errorf("pointer %q: %w", s, err)
		}
		s = decoded
	}
	if s == "" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("pointer %q: %w", s, errMissingSlash)
	}
	raw := strings.Split(s[1:], "/")
	out := make(Pointer, len(raw))
	for i, tok := range raw {
		unescaped, err := unescape(tok)
		if err != nil {
			return nil, fmt.Errorf("pointer %q: %w", s, err)
		}
		out[i] = unescaped
	}
	return out, nil
}

// IsValid reports whether s parses as a JSON Pointer without the fragment form.
func IsValid(s string) bool {
	if s == "" {
		return true
	}
	if s[0] != '/' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			continue
		}
		if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
			return false
		}
	}
	return true
}

func unescape(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(tok) {
			return "", errBadEscape
		}
		switch tok[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", errBadEscape
		}
		i++
	}
	return b.String(), nil
}

// Escape escapes a single reference token.
func Escape(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(tok)
}

// String renders p; the root renders as "".
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

// Fragment renders p as a URI fragment ("#/a/b"), percent-encoding as needed.
func (p Pointer) Fragment() string {
	s := p.String()
	if s == "" {
		return "#"
	}
	segments := strings.Split(s[1:], "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "#/" + strings.Join(segments, "/")
}

// Append returns a new pointer with tokens added.
func (p Pointer) Append(tokens ...string) Pointer {
	out := make(Pointer, len(p), len(p)+len(tokens))
	copy(out, p)
	return append(out, tokens...)
}

// AppendIndex returns a new pointer with an array index added.
func (p Pointer) AppendIndex(i int) Pointer {
	return p.Append(strconv.Itoa(i))
}

// Lookup walks v along p.
func (p Pointer) Lookup(v jsonvalue.Value) (jsonvalue.Value, bool) {
	cur := v
	for _, tok := range p {
		switch cur.Kind() {
		case jsonvalue.KindObject:
			next, ok := cur.Lookup(tok)
			if !ok {
				return jsonvalue.Value{}, false
			}
			cur = next
		case jsonvalue.KindArray:
			i, ok := arrayIndex(tok)
			if !ok || i >= cur.Len() {
				return jsonvalue.Value{}, false
			}
			cur = cur.Index(i)
		default:
			return jsonvalue.Value{}, false
		}
	}
	return cur, true
}

// arrayIndex accepts canonical decimal indexes only ("0", "12", not "01").
func arrayIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return i, true
}
