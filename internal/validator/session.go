// Package validator evaluates compiled schemas against JSON instances.
package validator

import (
	"cmp"
	"slices"

	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/messages"
	"github.com/jacoelho/jsonschema/internal/pointer"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// DefaultMaxEvalDepth bounds nested subschema evaluation per call.
const DefaultMaxEvalDepth = 1024

// Options configures a Session.
type Options struct {
	Messages     messages.Renderer
	MaxEvalDepth int
	// AnnotateFormats disables assertion of the format keyword.
	AnnotateFormats bool
}

// Session holds per-call evaluation state. A Session is not safe for
// concurrent use; pool sessions and share the runtime schema instead.
type Session struct {
	rt       *runtime.Schema
	seen     map[string]int
	err      error
	findings []jsonerrors.Finding
	keyBuf   []byte
	inst     pointer.Stack
	schema   pointer.Stack
	opts     Options
	depth    int
}

// NewSession creates a session for rt.
func NewSession(rt *runtime.Schema, opts Options) *Session {
	opts.MaxEvalDepth = cmp.Or(max(opts.MaxEvalDepth, 0), DefaultMaxEvalDepth)
	return &Session{rt: rt, opts: opts}
}

// Validate evaluates v against the schema root. Mismatches are returned in
// the report; the error is reserved for calls that could not complete.
func (s *Session) Validate(v jsonvalue.Value) (jsonerrors.Report, error) {
	if s == nil || s.rt == nil || s.rt.Root == runtime.NoNode {
		return jsonerrors.Report{}, jsonerrors.NotLoadedError{}
	}
	s.Reset()
	s.eval(s.rt.Root, v)
	if s.err != nil {
		return jsonerrors.Report{}, s.err
	}
	return jsonerrors.NewReport(slices.Clone(s.findings)), nil
}

// Reset clears per-call state while retaining buffer capacity.
func (s *Session) Reset() {
	s.err = nil
	s.depth = 0
	s.findings = s.findings[:0]
	s.keyBuf = s.keyBuf[:0]
	s.inst.Reset()
	s.schema.Reset()
	clear(s.seen)
	s.shrinkBuffers()
}

const (
	maxSessionBuffer  = 4 << 20
	maxSessionEntries = 1 << 14
)

func (s *Session) shrinkBuffers() {
	if cap(s.findings) > maxSessionEntries {
		s.findings = nil
	}
	if cap(s.keyBuf) > maxSessionBuffer {
		s.keyBuf = nil
	}
	if len(s.seen) > maxSessionEntries {
		s.seen = nil
	}
}

// fail records a finding for keyword using the keyword's own template.
func (s *Session) fail(keyword string, args ...string) bool {
	return s.report(keyword, keyword, args...)
}

// report records a finding for keyword rendered from template.
func (s *Session) report(keyword, template string, args ...string) bool {
	s.findings = append(s.findings, jsonerrors.Finding{
		Keyword:         keyword,
		Message:         s.opts.Messages.Render(template, args...),
		InstancePointer: s.inst.String(),
		SchemaPointer:   s.schema.String(),
	})
	return false
}

// mark returns the current findings length for later rollback.
func (s *Session) mark() int {
	return len(s.findings)
}

// rollback discards findings recorded after mark.
func (s *Session) rollback(mark int) {
	s.findings = s.findings[:mark]
}
