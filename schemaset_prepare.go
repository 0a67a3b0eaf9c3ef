package jsonschema

import (
	"fmt"

	"github.com/jacoelho/jsonschema/internal/loader"
	"github.com/jacoelho/jsonschema/internal/resolver"
)

// prepareRegistry registers every entry and returns the registry with the
// root document URI.
func (s *SchemaSet) prepareRegistry(load resolvedLoadOptions) (*resolver.Registry, string, error) {
	reg := resolver.New(resolver.Config{
		Fetcher:        s.fetcher(load.fetcher),
		Logger:         load.logger,
		DefaultDialect: load.defaultDialect,
		MaxDepth:       load.maxDepth,
		MaxRefChain:    load.maxRefChain,
		StrictDialect:  load.strict,
	})
	var root string
	for i, entry := range s.entries {
		uri, err := entry.origin()
		if err != nil {
			return nil, "", fmt.Errorf("schema %s: %w", entry.location, err)
		}
		v, err := entry.document(load.schemaParseOption)
		if err != nil {
			return nil, "", fmt.Errorf("load schema %s: %w", entry.name(), err)
		}
		docURI, err := reg.Add(uri, v)
		if err != nil {
			return nil, "", fmt.Errorf("register schema %s: %w", entry.name(), err)
		}
		if i == 0 {
			root = docURI
		}
	}
	return reg, root, nil
}

// fetcher serves file:// URIs from the first filesystem entry and delegates
// everything else to the configured fetcher.
func (s *SchemaSet) fetcher(external loader.Fetcher) loader.Fetcher {
	for _, entry := range s.entries {
		if entry.kind != entryFS {
			continue
		}
		mux := loader.NewMux().Handle(loader.FileScheme, loader.NewFS(entry.fsys))
		if external != nil {
			mux.Fallback(external)
		}
		return mux
	}
	return external
}

func (e schemaSetEntry) name() string {
	if e.location == "" {
		return resolver.DefaultBaseURI
	}
	return e.location
}
