package jsonschema

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

type entryKind uint8

const (
	entryFS entryKind = iota
	entryResource
	entryValue
)

type schemaSetEntry struct {
	fsys     fs.FS
	value    jsonvalue.Value
	location string
	data     []byte
	kind     entryKind
}

// SchemaSet owns schema sources and compiles them into a runtime schema.
// The first added entry is the root; every entry is registered as a
// resource so cross-document $ref values resolve without a fetcher.
type SchemaSet struct {
	entries  []schemaSetEntry
	loadOpts LoadOptions
}

// NewSchemaSet creates an empty schema set.
func NewSchemaSet(opts ...LoadOptions) *SchemaSet {
	loadOpts := NewLoadOptions()
	if len(opts) > 0 {
		loadOpts = opts[0]
	}
	return &SchemaSet{loadOpts: loadOpts}
}

// WithLoadOptions replaces schema-set load options.
func (s *SchemaSet) WithLoadOptions(opts LoadOptions) *SchemaSet {
	if s == nil {
		return nil
	}
	s.loadOpts = opts
	return s
}

// AddFS adds one schema document at location in fsys. Its URI is
// file:///location; relative $ref values are served from the same fsys.
func (s *SchemaSet) AddFS(fsys fs.FS, location string) error {
	if s == nil {
		return fmt.Errorf("schema set: nil set")
	}
	if fsys == nil {
		return fmt.Errorf("schema set: nil fs")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("schema set: empty location")
	}
	s.entries = append(s.entries, schemaSetEntry{
		kind:     entryFS,
		fsys:     fsys,
		location: location,
	})
	return nil
}

// AddResource adds raw schema bytes registered under uri. An empty uri
// selects the default base URI.
func (s *SchemaSet) AddResource(uri string, data []byte) error {
	if s == nil {
		return fmt.Errorf("schema set: nil set")
	}
	if data == nil {
		return fmt.Errorf("schema set: nil data")
	}
	s.entries = append(s.entries, schemaSetEntry{
		kind:     entryResource,
		location: strings.TrimSpace(uri),
		data:     data,
	})
	return nil
}

// AddValue adds an already parsed schema registered under uri.
func (s *SchemaSet) AddValue(uri string, v jsonvalue.Value) error {
	if s == nil {
		return fmt.Errorf("schema set: nil set")
	}
	if !v.IsValid() {
		return fmt.Errorf("schema set: invalid value")
	}
	s.entries = append(s.entries, schemaSetEntry{
		kind:     entryValue,
		location: strings.TrimSpace(uri),
		value:    v,
	})
	return nil
}
