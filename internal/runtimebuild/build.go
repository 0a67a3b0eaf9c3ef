// Package runtimebuild compiles registered schema documents into the
// runtime arena representation.
package runtimebuild

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"

	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/graphcycle"
	"github.com/jacoelho/jsonschema/internal/resolver"
	"github.com/jacoelho/jsonschema/internal/runtime"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// DefaultMaxDepth bounds schema nesting during compilation.
const DefaultMaxDepth = 256

// Config configures schema compilation.
type Config struct {
	Logger   *slog.Logger
	MaxDepth int
	// Strict rejects recognised keywords this engine does not evaluate
	// ($dynamicRef, $recursiveRef, unevaluatedItems, unevaluatedProperties).
	// When false they are ignored.
	Strict bool
}

type pendingRef struct {
	target resolver.Target
	id     runtime.NodeID
}

type compiler struct {
	ctx      context.Context
	reg      *resolver.Registry
	logger   *slog.Logger
	schema   *runtime.Schema
	followed map[string]bool
	rootDoc  string
	pending  []pendingRef
	maxDepth int
	strict   bool
}

// Build compiles the document registered under docURI, together with every
// schema reachable from it through $ref.
func Build(ctx context.Context, reg *resolver.Registry, docURI string, cfg Config) (*runtime.Schema, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	root, err := reg.Root(docURI)
	if err != nil {
		return nil, err
	}
	c := &compiler{
		ctx:      ctx,
		reg:      reg,
		logger:   cmp.Or(cfg.Logger, reg.Logger()),
		schema:   runtime.NewSchema(),
		followed: make(map[string]bool),
		rootDoc:  root.Doc,
		maxDepth: cmp.Or(max(cfg.MaxDepth, 0), DefaultMaxDepth),
		strict:   cfg.Strict,
	}
	c.schema.Dialect = root.Dialect

	id, err := c.node(root, root.Dialect.BooleanSchemas())
	if err != nil {
		return nil, err
	}
	c.schema.Root = id
	if err := c.drain(); err != nil {
		return nil, err
	}
	if err := c.checkCycles(); err != nil {
		return nil, err
	}
	c.logger.Debug("schema compiled",
		slog.String("uri", docURI),
		slog.String("dialect", root.Dialect.String()),
		slog.Int("nodes", c.schema.Len()))
	return c.schema, nil
}

// node compiles the schema at t unless its location was already seen.
func (c *compiler) node(t resolver.Target, allowBool bool) (runtime.NodeID, error) {
	id, fresh := c.schema.Alloc(t.Key)
	if !fresh {
		return id, nil
	}
	if err := c.fill(id, t, allowBool); err != nil {
		return runtime.NoNode, err
	}
	return id, nil
}

func (c *compiler) fill(id runtime.NodeID, t resolver.Target, allowBool bool) error {
	if len(t.Pointer) > c.maxDepth {
		return &jsonerrors.DepthExceededError{Phase: "compile", Pointer: c.where(t), Limit: c.maxDepth}
	}
	switch t.Value.Kind() {
	case jsonvalue.KindBool:
		if !allowBool && !t.Dialect.BooleanSchemas() {
			return jsonerrors.NewSchemaError(c.where(t), "", "boolean schemas require draft-06 or later")
		}
		kind := runtime.NodeNever
		if t.Value.Bool() {
			kind = runtime.NodeAlways
		}
		c.schema.Nodes[id].Kind = kind
		return nil
	case jsonvalue.KindObject:
		keywords, err := c.keywords(t)
		if err != nil {
			return err
		}
		// c.schema.Nodes may have grown while compiling children.
		c.schema.Nodes[id].Keywords = keywords
		return nil
	default:
		return jsonerrors.NewSchemaError(c.where(t), "", "schema must be an object or a boolean, got %s", t.Value.Kind())
	}
}

// child compiles the subschema found under tokens below parent.
func (c *compiler) child(parent resolver.Target, allowBool bool, tokens ...string) (runtime.NodeID, error) {
	t, err := c.reg.Locate(parent.Doc, parent.Pointer.Append(tokens...))
	if err != nil {
		return runtime.NoNode, err
	}
	return c.node(t, allowBool)
}

// ref resolves a $ref value and schedules its target for compilation.
func (c *compiler) ref(t resolver.Target, ref string) (runtime.NodeID, string, error) {
	memo := t.Base + "\x00" + ref
	if !c.followed[memo] {
		if _, err := c.reg.Follow(c.ctx, t.Base, ref); err != nil {
			return runtime.NoNode, "", err
		}
		c.followed[memo] = true
	}
	target, err := c.reg.Resolve(c.ctx, t.Base, ref)
	if err != nil {
		return runtime.NoNode, "", err
	}
	id, fresh := c.schema.Alloc(target.Key)
	if fresh {
		c.pending = append(c.pending, pendingRef{target: target, id: id})
	}
	return id, target.Key, nil
}

func (c *compiler) drain() error {
	for len(c.pending) > 0 {
		if err := c.ctx.Err(); err != nil {
			return err
		}
		p := c.pending[len(c.pending)-1]
		c.pending = c.pending[:len(c.pending)-1]
		if err := c.fill(p.id, p.target, true); err != nil {
			return err
		}
	}
	return nil
}

// checkCycles rejects schemas that re-enter themselves without descending
// into the instance.
func (c *compiler) checkCycles() error {
	starts := make([]runtime.NodeID, 0, c.schema.Len())
	for id := 1; id < len(c.schema.Nodes); id++ {
		starts = append(starts, runtime.NodeID(id))
	}
	err := graphcycle.Detect(graphcycle.Config[runtime.NodeID]{
		Starts: starts,
		Next: func(id runtime.NodeID) ([]runtime.NodeID, error) {
			return c.schema.InPlaceEdges(id), nil
		},
	})
	var cycle graphcycle.CycleError[runtime.NodeID]
	if errors.As(err, &cycle) {
		path := make([]string, len(cycle.Path))
		for i, id := range cycle.Path {
			path[i] = c.schema.Nodes[id].Location
		}
		return &jsonerrors.CyclicReferenceError{Cycle: path}
	}
	return err
}

// where renders the location of t for error messages: a bare pointer inside
// the root document, the full location key elsewhere.
func (c *compiler) where(t resolver.Target) string {
	if t.Doc == c.rootDoc {
		return t.Pointer.String()
	}
	return t.Key
}
