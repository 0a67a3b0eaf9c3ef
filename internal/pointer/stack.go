package pointer

import (
	"strconv"
	"strings"
)

// Stack is a reusable pointer builder for hot evaluation paths. Tokens are
// stored already escaped.
type Stack struct {
	parts []string
}

// Reset empties the stack, keeping capacity.
func (s *Stack) Reset() {
	s.parts = s.parts[:0]
}

// Push adds an unescaped token.
func (s *Stack) Push(tok string) {
	s.parts = append(s.parts, Escape(tok))
}

// PushIndex adds an array index token.
func (s *Stack) PushIndex(i int) {
	s.parts = append(s.parts, strconv.Itoa(i))
}

// Pop removes the last token.
func (s *Stack) Pop() {
	if len(s.parts) == 0 {
		return
	}
	s.parts = s.parts[:len(s.parts)-1]
}

// String renders the stack as a JSON Pointer; the root renders as "".
func (s *Stack) String() string {
	if len(s.parts) == 0 {
		return ""
	}
	total := 0
	for _, part := range s.parts {
		total += 1 + len(part)
	}
	var b strings.Builder
	b.Grow(total)
	for _, part := range s.parts {
		b.WriteByte('/')
		b.WriteString(part)
	}
	return b.String()
}
