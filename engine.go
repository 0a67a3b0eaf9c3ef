package jsonschema

import (
	"sync"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/messages"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/internal/validator"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Engine validates parsed instances against one compiled schema.
// It is safe for concurrent use by multiple goroutines.
type Engine struct {
	rt        *runtime.Schema
	opts      validator.Options
	parseOpts jsontext.Options
	pool      sync.Pool
}

// Session holds per-call evaluation state.
// Sessions are not safe for concurrent use.
type Session struct {
	engine  *Engine
	session *validator.Session
}

// Validate evaluates v using a pooled session. Mismatches are reported in
// the Report; the error is reserved for calls that could not complete.
func (e *Engine) Validate(v jsonvalue.Value) (errors.Report, error) {
	if e == nil || e.rt == nil {
		return errors.Report{}, errors.NotLoadedError{}
	}
	session := e.acquire()
	report, err := session.Validate(v)
	e.release(session)
	return report, err
}

// NewSession returns a new, unpooled session bound to this engine.
func (e *Engine) NewSession() *Session {
	if e == nil {
		return nil
	}
	return &Session{
		engine:  e,
		session: validator.NewSession(e.rt, e.opts),
	}
}

// Validate evaluates v using this session.
func (s *Session) Validate(v jsonvalue.Value) (errors.Report, error) {
	if s == nil || s.engine == nil || s.engine.rt == nil {
		return errors.Report{}, errors.NotLoadedError{}
	}
	if s.session == nil {
		s.session = validator.NewSession(s.engine.rt, s.engine.opts)
	}
	return s.session.Validate(v)
}

// Reset clears per-call session state.
func (s *Session) Reset() {
	if s == nil || s.session == nil {
		return
	}
	s.session.Reset()
}

func newEngine(rt *runtime.Schema, opts resolvedRuntimeOptions) *Engine {
	e := &Engine{
		rt: rt,
		opts: validator.Options{
			Messages:        messages.NewRenderer(opts.catalog),
			MaxEvalDepth:    opts.maxEvalDepth,
			AnnotateFormats: opts.annotateFormats,
		},
		parseOpts: opts.instanceParseOptions,
	}
	e.pool.New = func() any {
		return validator.NewSession(rt, e.opts)
	}
	return e
}

func (e *Engine) acquire() *validator.Session {
	if v := e.pool.Get(); v != nil {
		return v.(*validator.Session)
	}
	return validator.NewSession(e.rt, e.opts)
}

func (e *Engine) release(s *validator.Session) {
	if s == nil {
		return
	}
	s.Reset()
	e.pool.Put(s)
}
