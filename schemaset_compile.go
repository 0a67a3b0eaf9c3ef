package jsonschema

import (
	"context"
	"fmt"

	"github.com/jacoelho/jsonschema/internal/runtimebuild"
)

// Compile compiles the set using set load options.
func (s *SchemaSet) Compile() (*Schema, error) {
	return s.compile(context.Background(), nil)
}

// CompileContext compiles the set, using ctx for external fetches.
func (s *SchemaSet) CompileContext(ctx context.Context) (*Schema, error) {
	return s.compile(ctx, nil)
}

// CompileWithRuntimeOptions compiles the set with explicit runtime options.
func (s *SchemaSet) CompileWithRuntimeOptions(opts RuntimeOptions) (*Schema, error) {
	return s.compile(context.Background(), &opts)
}

func (s *SchemaSet) compile(ctx context.Context, runtimeOverride *RuntimeOptions) (*Schema, error) {
	if s == nil {
		return nil, fmt.Errorf("compile schema set: nil set")
	}
	if len(s.entries) == 0 {
		return nil, fmt.Errorf("compile schema set: no schema roots added")
	}

	loadOpts := s.loadOpts
	if runtimeOverride != nil {
		loadOpts.runtime = *runtimeOverride
	}
	resolvedLoad, runtimeOpts, err := loadOpts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("compile schema set: %w", err)
	}

	reg, root, err := s.prepareRegistry(resolvedLoad)
	if err != nil {
		return nil, fmt.Errorf("compile schema set: %w", err)
	}
	rt, err := runtimebuild.Build(ctx, reg, root, runtimebuild.Config{
		Logger:   resolvedLoad.logger,
		MaxDepth: resolvedLoad.maxDepth,
		Strict:   resolvedLoad.strict,
	})
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", root, err)
	}
	return &Schema{engine: newEngine(rt, runtimeOpts)}, nil
}
