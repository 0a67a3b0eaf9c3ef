package jsonschema

import (
	"cmp"
	"fmt"

	"github.com/jacoelho/jsonschema/internal/resolver"
	"github.com/jacoelho/jsonschema/internal/runtimebuild"
	"github.com/jacoelho/jsonschema/internal/validator"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
)

const (
	defaultSchemaMaxDepth   = runtimebuild.DefaultMaxDepth
	defaultMaxRefChain      = resolver.DefaultMaxRefChain
	defaultInstanceMaxDepth = jsontext.DefaultMaxDepth
	defaultMaxEvalDepth     = validator.DefaultMaxEvalDepth
)

type jsonLimits struct {
	maxDepth int
}

func resolveJSONLimits(maxDepth, fallback int) (jsonLimits, error) {
	if maxDepth < 0 {
		return jsonLimits{}, fmt.Errorf("json max depth must be >= 0")
	}
	return jsonLimits{maxDepth: defaultJSONLimit(maxDepth, fallback)}, nil
}

func (l jsonLimits) options() jsontext.Options {
	return jsontext.MaxDepth(l.maxDepth)
}

func resolveLimit(name string, value, fallback int) (int, error) {
	if value < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return defaultJSONLimit(value, fallback), nil
}

func defaultJSONLimit(value, fallback int) int {
	return cmp.Or(value, fallback)
}
