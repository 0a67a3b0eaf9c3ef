package jsonschema_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/errors"
)

func TestLoadOptionsValidate(t *testing.T) {
	if err := jsonschema.NewLoadOptions().Validate(); err != nil {
		t.Fatalf("default LoadOptions.Validate() = %v", err)
	}
	bad := []jsonschema.LoadOptions{
		jsonschema.NewLoadOptions().WithMaxDepth(-1),
		jsonschema.NewLoadOptions().WithMaxRefChain(-1),
		jsonschema.NewLoadOptions().WithDefaultDialect("draft-99"),
		jsonschema.NewLoadOptions().WithDialectPolicy(jsonschema.DialectPolicy(7)),
		jsonschema.NewLoadOptions().WithRuntimeOptions(jsonschema.NewRuntimeOptions().WithInstanceMaxDepth(-1)),
		jsonschema.NewLoadOptions().WithRuntimeOptions(jsonschema.NewRuntimeOptions().WithMaxEvalDepth(-1)),
		jsonschema.NewLoadOptions().WithRuntimeOptions(jsonschema.NewRuntimeOptions().WithFormatMode(jsonschema.FormatMode(9))),
	}
	for i, opts := range bad {
		if err := opts.Validate(); err == nil {
			t.Fatalf("case %d: Validate() = nil, want error", i)
		}
		if _, err := jsonschema.CompileBytes([]byte(`{}`), opts); err == nil {
			t.Fatalf("case %d: CompileBytes() = nil, want error", i)
		}
	}
}

func TestLoadOptionsDefaultDialect(t *testing.T) {
	schema := []byte(`{"items":[{"type":"string"}],"additionalItems":false}`)

	if _, err := jsonschema.CompileBytes(schema, jsonschema.NewLoadOptions()); err == nil {
		t.Fatal("2020-12 array-form items err = nil, want SchemaError")
	}

	opts := jsonschema.NewLoadOptions().WithDefaultDialect("draft-07")
	compiled, err := jsonschema.CompileBytes(schema, opts)
	if err != nil {
		t.Fatalf("CompileBytes(draft-07) error = %v", err)
	}
	report, err := compiled.ValidateBytes([]byte(`["a", "b"]`))
	if err != nil {
		t.Fatalf("ValidateBytes() error = %v", err)
	}
	if got := report.Keywords(); len(got) != 1 || got[0] != "additionalItems" {
		t.Fatalf("keywords = %v, want [additionalItems]", got)
	}
}

func TestLoadOptionsDialectPolicy(t *testing.T) {
	unknown := []byte(`{"$schema":"https://example.com/custom","type":"string"}`)
	var schemaErr *errors.SchemaError
	if _, err := jsonschema.CompileBytes(unknown, jsonschema.NewLoadOptions()); !stderrors.As(err, &schemaErr) {
		t.Fatalf("strict unknown $schema err = %v, want SchemaError", err)
	}

	var logs bytes.Buffer
	opts := jsonschema.NewLoadOptions().
		WithDialectPolicy(jsonschema.DialectBestEffort).
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if _, err := jsonschema.CompileBytes(unknown, opts); err != nil {
		t.Fatalf("best effort unknown $schema error = %v", err)
	}

	unsupported := []byte(`{"unevaluatedProperties":false}`)
	if _, err := jsonschema.CompileBytes(unsupported, jsonschema.NewLoadOptions()); !stderrors.As(err, &schemaErr) {
		t.Fatalf("strict unsupported keyword err = %v, want SchemaError", err)
	}
	if _, err := jsonschema.CompileBytes(unsupported, opts); err != nil {
		t.Fatalf("best effort unsupported keyword error = %v", err)
	}
	if logs.Len() == 0 {
		t.Fatal("best effort compile wrote no debug logs")
	}
}

func TestLoadOptionsFetcher(t *testing.T) {
	calls := 0
	fetcher := jsonschema.FetcherFunc(func(_ context.Context, uri string) (io.ReadCloser, error) {
		calls++
		if uri != "https://example.com/name.json" {
			return nil, stderrors.New("unexpected uri " + uri)
		}
		return io.NopCloser(strings.NewReader(`{"type":"string","minLength":1}`)), nil
	})
	schema := []byte(`{"properties":{"a":{"$ref":"https://example.com/name.json"},"b":{"$ref":"https://example.com/name.json"}}}`)
	compiled, err := jsonschema.CompileBytes(schema, jsonschema.NewLoadOptions().WithFetcher(fetcher))
	if err != nil {
		t.Fatalf("CompileBytes() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", calls)
	}
	report, err := compiled.ValidateBytes([]byte(`{"a":"","b":"x"}`))
	if err != nil {
		t.Fatalf("ValidateBytes() error = %v", err)
	}
	if report.Len() != 1 || report.At(0).InstancePointer != "/a" {
		t.Fatalf("report = %s, want one finding at /a", report)
	}
}

func TestLoadOptionsMaxDepth(t *testing.T) {
	nested := []byte(`{"items":{"items":{"items":{"items":{}}}}}`)
	opts := jsonschema.NewLoadOptions().WithMaxDepth(3)
	if _, err := jsonschema.CompileBytes(nested, opts); err == nil {
		t.Fatal("CompileBytes() err = nil, want depth error")
	}
	if _, err := jsonschema.CompileBytes(nested, jsonschema.NewLoadOptions()); err != nil {
		t.Fatalf("CompileBytes() default depth error = %v", err)
	}
}

func TestRuntimeOptions(t *testing.T) {
	source := []byte(`{"format":"email"}`)
	compiled, err := jsonschema.CompileBytes(source, jsonschema.NewLoadOptions())
	if err != nil {
		t.Fatalf("CompileBytes() error = %v", err)
	}
	report, err := compiled.ValidateBytes([]byte(`"not-an-email"`))
	if err != nil || report.Len() != 1 {
		t.Fatalf("assert mode report = %s, err = %v", report, err)
	}

	set := jsonschema.NewSchemaSet()
	if err := set.AddResource("", source); err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	annotate, err := set.CompileWithRuntimeOptions(jsonschema.NewRuntimeOptions().WithFormatMode(jsonschema.FormatAnnotate))
	if err != nil {
		t.Fatalf("CompileWithRuntimeOptions() error = %v", err)
	}
	report, err = annotate.ValidateBytes([]byte(`"not-an-email"`))
	if err != nil || !report.Valid() {
		t.Fatalf("annotate mode report = %s, err = %v", report, err)
	}

	shallow, err := jsonschema.CompileBytes([]byte(`{}`), jsonschema.NewLoadOptions().WithRuntimeOptions(
		jsonschema.NewRuntimeOptions().WithInstanceMaxDepth(2),
	))
	if err != nil {
		t.Fatalf("CompileBytes() error = %v", err)
	}
	var parseErr *errors.ParseError
	if _, err := shallow.ValidateBytes([]byte(`[[[1]]]`)); !stderrors.As(err, &parseErr) {
		t.Fatalf("deep instance err = %v, want ParseError", err)
	}
}

func TestParseFormatMode(t *testing.T) {
	for in, want := range map[string]jsonschema.FormatMode{"assert": jsonschema.FormatAssert, "annotate": jsonschema.FormatAnnotate} {
		got, ok := jsonschema.ParseFormatMode(in)
		if !ok || got != want || got.String() != in {
			t.Fatalf("ParseFormatMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := jsonschema.ParseFormatMode("strict"); ok {
		t.Fatal("ParseFormatMode(strict) ok = true")
	}
}
