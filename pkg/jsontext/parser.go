package jsontext

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Parse parses data as a single JSON value.
func Parse(data []byte, opts ...Options) (jsonvalue.Value, error) {
	p := parser{data: data, maxDepth: JoinOptions(opts...).resolvedMaxDepth()}
	p.skipSpace()
	if p.pos >= len(p.data) {
		return jsonvalue.Value{}, p.fail(jsonerrors.ErrEmptyInput)
	}
	v, err := p.value()
	if err != nil {
		return jsonvalue.Value{}, err
	}
	p.skipSpace()
	if p.pos < len(p.data) {
		return jsonvalue.Value{}, p.fail(jsonerrors.ErrTrailingData)
	}
	return v, nil
}

// ParseString parses s as a single JSON value.
func ParseString(s string, opts ...Options) (jsonvalue.Value, error) {
	return Parse([]byte(s), opts...)
}

// ParseReader reads r to EOF and parses the content.
func ParseReader(r io.Reader, opts ...Options) (jsonvalue.Value, error) {
	if r == nil {
		return jsonvalue.Value{}, fmt.Errorf("jsontext: nil reader")
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return jsonvalue.Value{}, fmt.Errorf("read json: %w", err)
	}
	return Parse(buf.Bytes(), opts...)
}

type parser struct {
	data     []byte
	pos      int
	depth    int
	maxDepth int
	scratch  []byte
}

func (p *parser) fail(cause error) error {
	return p.failAt(p.pos, cause)
}

func (p *parser) failAt(pos int, cause error) error {
	if pos > len(p.data) {
		pos = len(p.data)
	}
	line, column := lineColumn(p.data, pos)
	return &jsonerrors.ParseError{Offset: int64(pos), Line: line, Column: column, Err: cause}
}

// lineColumn converts a byte offset into 1-based line and byte column.
func lineColumn(data []byte, pos int) (int, int) {
	prefix := data[:pos]
	line := 1 + bytes.Count(prefix, []byte{'\n'})
	column := pos + 1
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		column = pos - i
	}
	return line, column
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value() (jsonvalue.Value, error) {
	if p.pos >= len(p.data) {
		return jsonvalue.Value{}, p.fail(jsonerrors.ErrUnexpectedEOF)
	}
	switch c := p.data[p.pos]; {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"':
		s, err := p.str()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.StringValue(s), nil
	case c == 't':
		return p.literal("true", jsonvalue.BoolValue(true))
	case c == 'f':
		return p.literal("false", jsonvalue.BoolValue(false))
	case c == 'n':
		return p.literal("null", jsonvalue.Null())
	case c == '-' || isDigit(c):
		return p.number()
	default:
		return jsonvalue.Value{}, p.fail(jsonerrors.ErrExpectedValue)
	}
}

func (p *parser) literal(word string, v jsonvalue.Value) (jsonvalue.Value, error) {
	rest := p.data[p.pos:]
	if len(rest) < len(word) {
		if strings.HasPrefix(word, string(rest)) {
			return jsonvalue.Value{}, p.failAt(len(p.data), jsonerrors.ErrUnexpectedEOF)
		}
		return jsonvalue.Value{}, p.fail(jsonerrors.ErrInvalidChar)
	}
	if string(rest[:len(word)]) != word {
		return jsonvalue.Value{}, p.fail(jsonerrors.ErrInvalidChar)
	}
	p.pos += len(word)
	return v, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func (p *parser) number() (jsonvalue.Value, error) {
	start := p.pos
	for p.pos < len(p.data) && isNumberByte(p.data[p.pos]) {
		p.pos++
	}
	v, err := jsonvalue.ParseNumber(string(p.data[start:p.pos]))
	if err != nil {
		return jsonvalue.Value{}, p.failAt(start, fmt.Errorf("%w: %v", jsonerrors.ErrInvalidNumber, err))
	}
	return v, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.fail(jsonerrors.ErrDepthLimit)
	}
	return nil
}

func (p *parser) array() (jsonvalue.Value, error) {
	if err := p.enter(); err != nil {
		return jsonvalue.Value{}, err
	}
	p.pos++
	var items []jsonvalue.Value
	p.skipSpace()
	if p.pos < len(p.data) && p.data[p.pos] == ']' {
		p.pos++
		p.depth--
		return jsonvalue.ArrayOf(), nil
	}
	for {
		p.skipSpace()
		item, err := p.value()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		items = append(items, item)
		p.skipSpace()
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrUnexpectedEOF)
		}
		switch p.data[p.pos] {
		case ',':
			comma := p.pos
			p.pos++
			p.skipSpace()
			if p.pos < len(p.data) && p.data[p.pos] == ']' {
				return jsonvalue.Value{}, p.failAt(comma, jsonerrors.ErrTrailingComma)
			}
		case ']':
			p.pos++
			p.depth--
			return jsonvalue.ArrayOf(items...), nil
		default:
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrExpectedSepEnd)
		}
	}
}

func (p *parser) object() (jsonvalue.Value, error) {
	if err := p.enter(); err != nil {
		return jsonvalue.Value{}, err
	}
	p.pos++
	var members []jsonvalue.Member
	p.skipSpace()
	if p.pos < len(p.data) && p.data[p.pos] == '}' {
		p.pos++
		p.depth--
		return jsonvalue.ObjectOf(), nil
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrUnexpectedEOF)
		}
		if p.data[p.pos] != '"' {
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrExpectedKey)
		}
		key, err := p.str()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		p.skipSpace()
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrUnexpectedEOF)
		}
		if p.data[p.pos] != ':' {
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrExpectedColon)
		}
		p.pos++
		p.skipSpace()
		val, err := p.value()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		members = append(members, jsonvalue.Member{Key: key, Value: val})
		p.skipSpace()
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrUnexpectedEOF)
		}
		switch p.data[p.pos] {
		case ',':
			comma := p.pos
			p.pos++
			p.skipSpace()
			if p.pos < len(p.data) && p.data[p.pos] == '}' {
				return jsonvalue.Value{}, p.failAt(comma, jsonerrors.ErrTrailingComma)
			}
		case '}':
			p.pos++
			p.depth--
			return jsonvalue.ObjectOf(members...), nil
		default:
			return jsonvalue.Value{}, p.fail(jsonerrors.ErrExpectedSepEnd)
		}
	}
}

// str parses a quoted string starting at the opening quote.
func (p *parser) str() (string, error) {
	start := p.pos
	p.pos++
	// fast path: no escapes, ASCII only
	i := p.pos
	for i < len(p.data) {
		c := p.data[i]
		if c == '"' {
			s := string(p.data[p.pos:i])
			p.pos = i + 1
			return s, nil
		}
		if c == '\\' || c < 0x20 || c >= utf8.RuneSelf {
			break
		}
		i++
	}
	buf := append(p.scratch[:0], p.data[p.pos:i]...)
	p.pos = i
	for {
		if p.pos >= len(p.data) {
			return "", p.failAt(start, jsonerrors.ErrUnterminated)
		}
		c := p.data[p.pos]
		switch {
		case c == '"':
			p.pos++
			p.scratch = buf
			return string(buf), nil
		case c == '\\':
			var err error
			buf, err = p.escape(buf)
			if err != nil {
				return "", err
			}
		case c < 0x20:
			return "", p.fail(jsonerrors.ErrControlChar)
		case c < utf8.RuneSelf:
			buf = append(buf, c)
			p.pos++
		default:
			r, size := utf8.DecodeRune(p.data[p.pos:])
			if r == utf8.RuneError && size <= 1 {
				return "", p.fail(jsonerrors.ErrInvalidUTF8)
			}
			buf = append(buf, p.data[p.pos:p.pos+size]...)
			p.pos += size
		}
	}
}

func (p *parser) escape(buf []byte) ([]byte, error) {
	if p.pos+1 >= len(p.data) {
		return nil, p.failAt(len(p.data), jsonerrors.ErrUnexpectedEOF)
	}
	c := p.data[p.pos+1]
	switch c {
	case '"', '\\', '/':
		buf = append(buf, c)
	case 'b':
		buf = append(buf, '\b')
	case 'f':
		buf = append(buf, '\f')
	case 'n':
		buf = append(buf, '\n')
	case 'r':
		buf = append(buf, '\r')
	case 't':
		buf = append(buf, '\t')
	case 'u':
		r, err := p.hex4(p.pos + 2)
		if err != nil {
			return nil, err
		}
		p.pos += 6
		if utf16.IsSurrogate(r) {
			if r < 0xDC00 && p.pos+1 < len(p.data) && p.data[p.pos] == '\\' && p.data[p.pos+1] == 'u' {
				low, err := p.hex4(p.pos + 2)
				if err != nil {
					return nil, err
				}
				if combined := utf16.DecodeRune(r, low); combined != utf8.RuneError {
					p.pos += 6
					return utf8.AppendRune(buf, combined), nil
				}
			}
			r = utf8.RuneError
		}
		return utf8.AppendRune(buf, r), nil
	default:
		return nil, p.fail(jsonerrors.ErrInvalidEscape)
	}
	p.pos += 2
	return buf, nil
}

func (p *parser) hex4(at int) (rune, error) {
	if at+4 > len(p.data) {
		return 0, p.failAt(len(p.data), jsonerrors.ErrUnexpectedEOF)
	}
	var r rune
	for i := at; i < at+4; i++ {
		c := p.data[i]
		var d byte
		switch {
		case isDigit(c):
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, p.failAt(p.pos, jsonerrors.ErrInvalidEscape)
		}
		r = r<<4 | rune(d)
	}
	return r, nil
}
