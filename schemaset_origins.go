package jsonschema

import (
	"fmt"
	"io"

	"github.com/jacoelho/jsonschema/internal/loader"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// origin returns the URI the entry is registered under. An empty result
// lets the registry assign the default base URI.
func (e schemaSetEntry) origin() (string, error) {
	if e.kind == entryFS {
		return loader.URI(e.location)
	}
	return e.location, nil
}

func (e schemaSetEntry) document(parseOpts jsontext.Options) (jsonvalue.Value, error) {
	switch e.kind {
	case entryValue:
		return e.value, nil
	case entryResource:
		return jsontext.Parse(e.data, parseOpts)
	default:
		f, err := e.fsys.Open(e.location)
		if err != nil {
			return jsonvalue.Value{}, fmt.Errorf("open %s: %w", e.location, err)
		}
		v, err := jsontext.ParseReader(f, parseOpts)
		closeErr := f.Close()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		if closeErr != nil {
			return jsonvalue.Value{}, fmt.Errorf("close %s: %w", e.location, closeErr)
		}
		return v, nil
	}
}

func readerEntry(uri string, r io.Reader) (schemaSetEntry, error) {
	if r == nil {
		return schemaSetEntry{}, fmt.Errorf("nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return schemaSetEntry{}, err
	}
	return schemaSetEntry{kind: entryResource, location: uri, data: data}, nil
}
