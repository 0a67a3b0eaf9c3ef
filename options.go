package jsonschema

import (
	"fmt"
	"log/slog"

	"github.com/jacoelho/jsonschema/internal/dialect"
)

func (o LoadOptions) withDefaults() (resolvedLoadOptions, resolvedRuntimeOptions, error) {
	schemaLimits, err := resolveJSONLimits(o.maxDepth.resolved(), defaultSchemaMaxDepth)
	if err != nil {
		return resolvedLoadOptions{}, resolvedRuntimeOptions{}, fmt.Errorf("schema json limits: %w", err)
	}
	maxRefChain, err := resolveLimit("max ref chain", o.maxRefChain.resolved(), defaultMaxRefChain)
	if err != nil {
		return resolvedLoadOptions{}, resolvedRuntimeOptions{}, err
	}
	d := dialect.Default
	if o.defaultDialect != "" {
		var ok bool
		if d, ok = dialect.Parse(o.defaultDialect); !ok {
			return resolvedLoadOptions{}, resolvedRuntimeOptions{}, fmt.Errorf("unknown default dialect %q", o.defaultDialect)
		}
	}
	switch o.dialectPolicy {
	case DialectStrict, DialectBestEffort:
	default:
		return resolvedLoadOptions{}, resolvedRuntimeOptions{}, fmt.Errorf("unknown dialect policy %d", o.dialectPolicy)
	}
	runtimeOpts, err := o.runtime.withDefaults()
	if err != nil {
		return resolvedLoadOptions{}, resolvedRuntimeOptions{}, fmt.Errorf("runtime options: %w", err)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return resolvedLoadOptions{
		fetcher:           o.fetcher,
		logger:            logger,
		schemaParseOption: schemaLimits.options(),
		defaultDialect:    d,
		maxDepth:          schemaLimits.maxDepth,
		maxRefChain:       maxRefChain,
		strict:            o.dialectPolicy == DialectStrict,
	}, runtimeOpts, nil
}

func (o RuntimeOptions) withDefaults() (resolvedRuntimeOptions, error) {
	instanceLimits, err := resolveJSONLimits(o.instanceMaxDepth.resolved(), defaultInstanceMaxDepth)
	if err != nil {
		return resolvedRuntimeOptions{}, fmt.Errorf("instance json limits: %w", err)
	}
	maxEvalDepth, err := resolveLimit("max eval depth", o.maxEvalDepth.resolved(), defaultMaxEvalDepth)
	if err != nil {
		return resolvedRuntimeOptions{}, err
	}
	switch o.formatMode {
	case FormatAssert, FormatAnnotate:
	default:
		return resolvedRuntimeOptions{}, fmt.Errorf("unknown format mode %d", o.formatMode)
	}
	return resolvedRuntimeOptions{
		catalog:              o.catalog,
		instanceParseOptions: instanceLimits.options(),
		maxEvalDepth:         maxEvalDepth,
		annotateFormats:      o.formatMode == FormatAnnotate,
	}, nil
}
