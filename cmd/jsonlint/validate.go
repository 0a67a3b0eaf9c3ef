package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/catalog"
)

type validateFlags struct {
	schema      string
	locale      string
	catalogPath string
	output      string
	formatMode  string
	dialect     string
	bestEffort  bool
	profiles    profiles
}

func newValidateCmd(global *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var flags validateFlags
	cmd := &cobra.Command{
		Use:   "validate --schema <schema> <document>...",
		Short: "Validate documents against a schema",
		Long: `Validate one or more JSON documents against a JSON Schema.
Schema and documents may be local paths, http(s):// URLs or s3://bucket/key
objects (S3_ENDPOINT, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY configure S3).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if global.noColor {
				color.NoColor = true
			}
			return runValidate(contextOf(cmd), global, &flags, args, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.schema, "schema", "", "schema source (path, URL or s3:// object)")
	f.StringVar(&flags.locale, "locale", defaultLocale(os.Getenv), "message locale (defaults from LC_ALL, LC_MESSAGES, LANG)")
	f.StringVar(&flags.catalogPath, "catalog", "", "YAML message catalog merged over the built-in bundle")
	f.StringVar(&flags.output, "output", "text", "output format (text, json)")
	f.StringVar(&flags.formatMode, "format-mode", "assert", "format keyword handling (assert, annotate)")
	f.StringVar(&flags.dialect, "default-dialect", "", "dialect for schemas without $schema (draft-04 ... 2020-12)")
	f.BoolVar(&flags.bestEffort, "best-effort", false, "fall back on unknown $schema values and ignore unsupported keywords")
	f.StringVar(&flags.profiles.cpuPath, "cpuprofile", "", "write CPU profile to file")
	f.StringVar(&flags.profiles.memPath, "memprofile", "", "write memory profile to file")
	return cmd
}

func runValidate(ctx context.Context, global *globalFlags, flags *validateFlags, docs []string, stdout, stderr io.Writer) (err error) {
	if flags.schema == "" {
		return usageError("--schema is required")
	}
	if flags.output != "text" && flags.output != "json" {
		return usageError("invalid --output %q", flags.output)
	}
	mode, ok := jsonschema.ParseFormatMode(flags.formatMode)
	if !ok {
		return usageError("invalid --format-mode %q", flags.formatMode)
	}
	logger, err := newLogger(stderr, global.logLevel)
	if err != nil {
		return err
	}
	messages, err := loadCatalog(flags.catalogPath, flags.locale)
	if err != nil {
		return err
	}

	if err := flags.profiles.start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := flags.profiles.stop(); stopErr != nil {
			_ = writef(stderr, "error writing profile: %v\n", stopErr)
		}
	}()

	policy := jsonschema.DialectStrict
	if flags.bestEffort {
		policy = jsonschema.DialectBestEffort
	}
	opts := jsonschema.NewLoadOptions().
		WithLogger(logger).
		WithDefaultDialect(flags.dialect).
		WithDialectPolicy(policy).
		WithRuntimeOptions(jsonschema.NewRuntimeOptions().
			WithFormatMode(mode).
			WithCatalog(messages))

	fetcher := newRemoteFetcher(os.Getenv)
	schema, err := loadSchema(ctx, fetcher, flags.schema, opts)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	out := newPrinter(flags.output, stdout, stderr)
	failed := false
	for _, doc := range docs {
		report, err := validateSource(ctx, fetcher, schema, doc)
		if err != nil {
			failed = true
			if writeErr := out.failure(doc, err); writeErr != nil {
				return writeErr
			}
			continue
		}
		if !report.Valid() {
			failed = true
		}
		if err := out.report(doc, report); err != nil {
			return err
		}
	}
	if failed {
		return &exitError{code: exitInvalid}
	}
	return nil
}

func validateSource(ctx context.Context, f *remoteFetcher, schema *jsonschema.Schema, src string) (report errors.Report, err error) {
	rc, err := f.open(ctx, src)
	if err != nil {
		return errors.Report{}, fmt.Errorf("open %s: %w", src, err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", src, closeErr)
		}
	}()
	return schema.Validate(rc)
}

func loadCatalog(path, locale string) (catalog.Catalog, error) {
	bundle := catalog.Builtin()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open catalog %s: %w", path, err)
		}
		extra, err := catalog.Load(f)
		closeErr := f.Close()
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close catalog %s: %w", path, closeErr)
		}
		bundle = bundle.Merge(extra)
	}
	messages, _, _ := bundle.Match(locale)
	return messages, nil
}

// defaultLocale follows the POSIX precedence of locale variables.
func defaultLocale(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(name); v != "" {
			return v
		}
	}
	return "en"
}

type printer struct {
	stdout io.Writer
	stderr io.Writer
	format string
}

func newPrinter(format string, stdout, stderr io.Writer) printer {
	return printer{format: format, stdout: stdout, stderr: stderr}
}

func (p printer) report(doc string, report errors.Report) error {
	if p.format == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		return writeln(p.stdout, string(data))
	}
	if report.Valid() {
		return writeln(p.stdout, color.GreenString("%s validates", doc))
	}
	for _, f := range report.Findings() {
		if err := writeln(p.stderr, color.RedString("%s", f.String())); err != nil {
			return err
		}
	}
	return writeln(p.stderr, color.YellowString("%s fails to validate", doc))
}

func (p printer) failure(doc string, err error) error {
	return writef(p.stderr, "%s %v\n", color.RedString("error validating %s:", doc), err)
}
