package jsonschema

import (
	"log/slog"

	"github.com/jacoelho/jsonschema/internal/dialect"
	"github.com/jacoelho/jsonschema/internal/loader"
	"github.com/jacoelho/jsonschema/pkg/catalog"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

// LoadOptions configures schema loading and default runtime compilation.
type LoadOptions struct {
	fetcher        loader.Fetcher
	logger         *slog.Logger
	runtime        RuntimeOptions
	defaultDialect string
	maxDepth       intOption
	maxRefChain    intOption
	dialectPolicy  DialectPolicy
}

// RuntimeOptions configures instance parsing and evaluation.
type RuntimeOptions struct {
	catalog          catalog.Catalog
	instanceMaxDepth intOption
	maxEvalDepth     intOption
	formatMode       FormatMode
}

type resolvedLoadOptions struct {
	fetcher           loader.Fetcher
	logger            *slog.Logger
	schemaParseOption jsontext.Options
	defaultDialect    dialect.Dialect
	maxDepth          int
	maxRefChain       int
	strict            bool
}

type resolvedRuntimeOptions struct {
	catalog              catalog.Catalog
	instanceParseOptions jsontext.Options
	maxEvalDepth         int
	annotateFormats      bool
}
