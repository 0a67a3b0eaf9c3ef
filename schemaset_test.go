package jsonschema_test

import (
	stderrors "errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
)

func TestSchemaSetCompileSingleRoot(t *testing.T) {
	fsys := fstest.MapFS{
		"schema.json": &fstest.MapFile{Data: []byte(`{"type":"string"}`)},
	}

	set := jsonschema.NewSchemaSet().WithLoadOptions(jsonschema.NewLoadOptions())
	if err := set.AddFS(fsys, "schema.json"); err != nil {
		t.Fatalf("AddFS() error = %v", err)
	}
	schema, err := set.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	report, err := schema.Validate(strings.NewReader(`"ok"`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Valid() {
		t.Fatalf("Validate() report = %s, want valid", report)
	}
}

func TestSchemaSetCrossDocumentRefs(t *testing.T) {
	set := jsonschema.NewSchemaSet()
	if err := set.AddResource("https://example.com/root.json", []byte(`{
  "type": "object",
  "properties": {"address": {"$ref": "address.json"}}
}`)); err != nil {
		t.Fatalf("AddResource(root) error = %v", err)
	}
	if err := set.AddResource("https://example.com/address.json", []byte(`{
  "type": "object",
  "required": ["city"],
  "properties": {"city": {"type": "string"}}
}`)); err != nil {
		t.Fatalf("AddResource(address) error = %v", err)
	}
	schema, err := set.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	report, err := schema.ValidateBytes([]byte(`{"address":{"city":1}}`))
	if err != nil {
		t.Fatalf("ValidateBytes() error = %v", err)
	}
	if report.Len() != 1 {
		t.Fatalf("findings = %d, want 1: %s", report.Len(), report)
	}
	got := report.At(0)
	if got.InstancePointer != "/address/city" {
		t.Fatalf("instance pointer = %q, want /address/city", got.InstancePointer)
	}
	if got.SchemaPointer != "/properties/address/$ref/properties/city/type" {
		t.Fatalf("schema pointer = %q", got.SchemaPointer)
	}
}

func TestSchemaSetAddValue(t *testing.T) {
	root, err := jsontext.ParseString(`{"$ref":"urn:defs#/$defs/positive"}`)
	if err != nil {
		t.Fatalf("parse root: %v", err)
	}
	defs, err := jsontext.ParseString(`{"$defs":{"positive":{"exclusiveMinimum":0}}}`)
	if err != nil {
		t.Fatalf("parse defs: %v", err)
	}

	set := jsonschema.NewSchemaSet()
	if err := set.AddValue("urn:root", root); err != nil {
		t.Fatalf("AddValue(root) error = %v", err)
	}
	if err := set.AddValue("urn:defs", defs); err != nil {
		t.Fatalf("AddValue(defs) error = %v", err)
	}
	schema, err := set.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	report, err := schema.ValidateBytes([]byte(`0`))
	if err != nil {
		t.Fatalf("ValidateBytes() error = %v", err)
	}
	if got := report.Keywords(); len(got) != 1 || got[0] != "exclusiveMinimum" {
		t.Fatalf("keywords = %v, want [exclusiveMinimum]", got)
	}
}

func TestSchemaSetFSRelativeRefs(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/order.json": &fstest.MapFile{Data: []byte(`{"items":{"$ref":"line.json"}}`)},
		"schemas/line.json":  &fstest.MapFile{Data: []byte(`{"required":["sku"]}`)},
	}
	schema, err := jsonschema.Load(fsys, "schemas/order.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	report, err := schema.ValidateBytes([]byte(`[{"sku":"a"},{}]`))
	if err != nil {
		t.Fatalf("ValidateBytes() error = %v", err)
	}
	if report.Len() != 1 || report.At(0).InstancePointer != "/1" {
		t.Fatalf("report = %s, want one finding at /1", report)
	}
}

func TestSchemaSetErrors(t *testing.T) {
	if _, err := jsonschema.NewSchemaSet().Compile(); err == nil {
		t.Fatal("Compile() on empty set err = nil")
	}
	var nilSet *jsonschema.SchemaSet
	if err := nilSet.AddFS(fstest.MapFS{}, "a.json"); err == nil {
		t.Fatal("AddFS() on nil set err = nil")
	}
	set := jsonschema.NewSchemaSet()
	if err := set.AddFS(nil, "a.json"); err == nil {
		t.Fatal("AddFS(nil fs) err = nil")
	}
	if err := set.AddFS(fstest.MapFS{}, "  "); err == nil {
		t.Fatal("AddFS(empty location) err = nil")
	}
	if err := set.AddResource("", nil); err == nil {
		t.Fatal("AddResource(nil) err = nil")
	}

	dup := jsonschema.NewSchemaSet()
	_ = dup.AddResource("urn:a", []byte(`{}`))
	_ = dup.AddResource("urn:a", []byte(`{}`))
	if _, err := dup.Compile(); err == nil {
		t.Fatal("Compile() with duplicate uri err = nil")
	}

	missing := jsonschema.NewSchemaSet()
	_ = missing.AddFS(fstest.MapFS{}, "absent.json")
	if _, err := missing.Compile(); err == nil {
		t.Fatal("Compile() with missing file err = nil")
	}
}

func TestSchemaSetUnresolvedRef(t *testing.T) {
	_, err := jsonschema.CompileBytes([]byte(`{"$ref":"https://example.com/absent.json"}`), jsonschema.NewLoadOptions())
	var unresolved *errors.UnresolvedReferenceError
	if !stderrors.As(err, &unresolved) {
		t.Fatalf("CompileBytes() err = %v, want UnresolvedReferenceError", err)
	}
}
