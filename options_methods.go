package jsonschema

import (
	"log/slog"

	"github.com/jacoelho/jsonschema/pkg/catalog"
)

// NewLoadOptions returns a default, valid load options value.
func NewLoadOptions() LoadOptions {
	return LoadOptions{}
}

// NewRuntimeOptions returns a default, valid runtime options value.
func NewRuntimeOptions() RuntimeOptions {
	return RuntimeOptions{}
}

// RuntimeOptions returns the runtime options embedded in the load options.
func (o LoadOptions) RuntimeOptions() RuntimeOptions {
	return o.runtime
}

// Validate validates load options values.
func (o LoadOptions) Validate() error {
	_, _, err := o.withDefaults()
	return err
}

// Validate validates runtime options values.
func (o RuntimeOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithMaxDepth sets the schema nesting limit used while parsing and
// compiling (0 uses default).
func (o LoadOptions) WithMaxDepth(value int) LoadOptions {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxRefChain sets the limit on consecutive $ref hops (0 uses default).
func (o LoadOptions) WithMaxRefChain(value int) LoadOptions {
	o.maxRefChain = intOption{value: value, set: true}
	return o
}

// WithDefaultDialect sets the dialect assumed when a schema has no $schema.
// It accepts short names ("draft-07", "2020-12") or meta-schema URIs.
func (o LoadOptions) WithDefaultDialect(value string) LoadOptions {
	o.defaultDialect = value
	return o
}

// WithDialectPolicy controls unknown $schema values and unsupported keywords.
func (o LoadOptions) WithDialectPolicy(value DialectPolicy) LoadOptions {
	o.dialectPolicy = value
	return o
}

// WithFetcher enables external $ref resolution through f.
func (o LoadOptions) WithFetcher(f Fetcher) LoadOptions {
	o.fetcher = f
	return o
}

// WithLogger sets the logger used for debug output during loading.
func (o LoadOptions) WithLogger(logger *slog.Logger) LoadOptions {
	o.logger = logger
	return o
}

// WithRuntimeOptions sets all runtime options in one call.
func (o LoadOptions) WithRuntimeOptions(value RuntimeOptions) LoadOptions {
	o.runtime = value
	return o
}

// WithInstanceMaxDepth sets the instance JSON nesting limit (0 uses default).
func (o RuntimeOptions) WithInstanceMaxDepth(value int) RuntimeOptions {
	o.instanceMaxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxEvalDepth sets the subschema evaluation depth limit (0 uses default).
func (o RuntimeOptions) WithMaxEvalDepth(value int) RuntimeOptions {
	o.maxEvalDepth = intOption{value: value, set: true}
	return o
}

// WithFormatMode selects whether format is asserted or only annotated.
func (o RuntimeOptions) WithFormatMode(value FormatMode) RuntimeOptions {
	o.formatMode = value
	return o
}

// WithCatalog overrides message templates per keyword.
func (o RuntimeOptions) WithCatalog(value catalog.Catalog) RuntimeOptions {
	o.catalog = value
	return o
}

// InstanceMaxDepth returns the resolved instance nesting limit.
func (o RuntimeOptions) InstanceMaxDepth() int {
	return defaultJSONLimit(max(o.instanceMaxDepth.resolved(), 0), defaultInstanceMaxDepth)
}
