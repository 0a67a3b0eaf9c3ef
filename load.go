package jsonschema

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Load loads and compiles a schema from the given filesystem and location.
func Load(fsys fs.FS, location string) (*Schema, error) {
	return LoadWithOptions(fsys, location, NewLoadOptions())
}

// LoadWithOptions loads and compiles a schema with explicit configuration.
func LoadWithOptions(fsys fs.FS, location string, opts LoadOptions) (*Schema, error) {
	set := NewSchemaSet().WithLoadOptions(opts)
	if err := set.AddFS(fsys, location); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	schema, err := set.Compile()
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	return schema, nil
}

// LoadFile loads and compiles a schema from a file path.
func LoadFile(path string) (*Schema, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	return LoadWithOptions(os.DirFS(dir), base, NewLoadOptions())
}

// CompileBytes compiles a schema document held in memory. It is registered
// under the default base URI.
func CompileBytes(data []byte, opts LoadOptions) (*Schema, error) {
	set := NewSchemaSet(opts)
	if err := set.AddResource("", data); err != nil {
		return nil, err
	}
	return set.Compile()
}

// CompileReader reads a schema document from r and compiles it under uri.
func CompileReader(r io.Reader, uri string, opts LoadOptions) (*Schema, error) {
	entry, err := readerEntry(uri, r)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	set := NewSchemaSet(opts)
	set.entries = append(set.entries, entry)
	return set.Compile()
}
