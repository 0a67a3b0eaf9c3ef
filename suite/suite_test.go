package suite

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jacoelho/jsonschema"
	jsonerrors "github.com/jacoelho/jsonschema/errors"
)

// remoteBase is the origin the suite uses for documents under remotes/.
const remoteBase = "http://localhost:1234/"

// suiteDialects maps suite directory names to dialect short names.
var suiteDialects = map[string]string{
	"draft4":       "draft-04",
	"draft6":       "draft-06",
	"draft7":       "draft-07",
	"draft2019-09": "2019-09",
	"draft2020-12": "2020-12",
}

var excludePatterns = []ExclusionReason{
	// keywords rejected or ignored by the compiler
	{"dynamicref", "$dynamicRef is not supported"},
	{"recursiveref", "$recursiveRef is not supported"},
	{"unevaluated", "unevaluated* keywords are not supported"},
	{"vocabulary", "$vocabulary is not honoured"},
	// regular expressions are compiled with RE2
	{"ecmascript-regex", "ECMA-262 regex semantics differ from RE2"},
	{"non-bmp-regex", "ECMA-262 regex semantics differ from RE2"},
	{"zeroterminatedfloats", "1.0 is treated as an integer"},
	{"float-overflow", "overflowing floats are kept as exact decimals"},
	// optional format checks beyond the built-in set
	{"format-assertion", "format assertion vocabulary is not modelled"},
	{"optional/format/idn", "IDN formats are not checked"},
	{"optional/format/iri", "IRI formats are not checked"},
	{"optional/cross-draft", "cross-draft references are resolved with one dialect per document"},
	{"optional/refofunknownkeyword", "unknown keywords are not indexed as subschemas"},
	{"optional/anchor", "anchor edge cases are not modelled"},
	{"optional/id", "id edge cases are not modelled"},
	{"optional/unknownkeyword", "unknown keywords are not indexed as subschemas"},
}

// ExclusionReason maps a case-insensitive substring of
// "dialect/file/group/test" to the reason it is skipped.
type ExclusionReason struct {
	Pattern string
	Reason  string
}

// Filter decides which suite cases run.
type Filter struct {
	patterns   []ExclusionReason
	nameFilter string
}

// NewFilter creates a filter with the given exclusions. nameFilter, when
// non-empty, restricts runs to names containing it.
func NewFilter(patterns []ExclusionReason, nameFilter string) *Filter {
	return &Filter{patterns: patterns, nameFilter: strings.ToLower(nameFilter)}
}

// ExclusionReason returns why name is skipped, if it is.
func (f *Filter) ExclusionReason(name string) (string, bool) {
	full := strings.ToLower(name)
	for _, exclusion := range f.patterns {
		if strings.Contains(full, strings.ToLower(exclusion.Pattern)) {
			return exclusion.Reason, true
		}
	}
	if f.nameFilter != "" && !strings.Contains(full, f.nameFilter) {
		return "filtered by name", true
	}
	return "", false
}

// TestGroup is one schema with the instances checked against it.
type TestGroup struct {
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Tests       []TestCase      `json:"tests"`
}

// TestCase is one instance and its expected validity.
type TestCase struct {
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
	Valid       bool            `json:"valid"`
}

// Runner executes suite files laid out as tests/<dialect>/*.json with
// referenced documents under remotes/.
type Runner struct {
	filter  *Filter
	remotes jsonschema.Fetcher
	Dir     string
}

// NewRunner creates a runner for the suite rooted at dir.
func NewRunner(dir string) (*Runner, error) {
	remotes, err := loadRemotes(filepath.Join(dir, "remotes"))
	if err != nil {
		return nil, err
	}
	return &Runner{
		Dir:     dir,
		filter:  NewFilter(excludePatterns, os.Getenv("JSONSCHEMA_SUITE_FILTER")),
		remotes: jsonschema.MapFetcher(remotes),
	}, nil
}

func loadRemotes(dir string) (map[string][]byte, error) {
	docs := make(map[string][]byte)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return docs, nil
	}
	fsys := os.DirFS(dir)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || path.Ext(name) != ".json" {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		docs[remoteBase+name] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load remotes: %w", err)
	}
	return docs, nil
}

// LoadFile decodes a suite file.
func (r *Runner) LoadFile(name string) ([]TestGroup, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	var groups []TestGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse suite file %s: %w", name, err)
	}
	return groups, nil
}

// RunDialect runs every file of one dialect directory.
func (r *Runner) RunDialect(t *testing.T, dirName string) {
	short, ok := suiteDialects[dirName]
	if !ok {
		t.Fatalf("unknown suite dialect %q", dirName)
	}
	root := filepath.Join(r.Dir, "tests", dirName)
	var files []string
	err := filepath.WalkDir(root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && filepath.Ext(name) == ".json" {
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	slices.Sort(files)

	opts := jsonschema.NewLoadOptions().
		WithDefaultDialect(short).
		WithFetcher(r.remotes)
	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			t.Fatalf("rel %s: %v", file, err)
		}
		rel = strings.TrimSuffix(filepath.ToSlash(rel), ".json")
		groups, err := r.LoadFile(file)
		if err != nil {
			t.Errorf("%s: %v", rel, err)
			continue
		}
		t.Run(rel, func(t *testing.T) {
			for i := range groups {
				r.runGroup(t, dirName+"/"+rel, &groups[i], opts)
			}
		})
	}
}

func (r *Runner) runGroup(t *testing.T, prefix string, group *TestGroup, opts jsonschema.LoadOptions) {
	name := prefix + "/" + group.Description
	if reason, excluded := r.filter.ExclusionReason(name); excluded {
		t.Run(group.Description, func(t *testing.T) { t.Skip(reason) })
		return
	}
	t.Run(group.Description, func(t *testing.T) {
		schema, err := jsonschema.CompileBytes(group.Schema, opts)
		if err != nil {
			if unsupported(err) {
				t.Skipf("schema uses an unsupported keyword: %v", err)
			}
			t.Fatalf("compile schema: %v", err)
		}
		for _, tc := range group.Tests {
			if reason, excluded := r.filter.ExclusionReason(name + "/" + tc.Description); excluded {
				t.Logf("skip %s: %s", tc.Description, reason)
				continue
			}
			report, err := schema.ValidateBytes(tc.Data)
			if err != nil {
				t.Errorf("%s: validate: %v", tc.Description, err)
				continue
			}
			if report.Valid() != tc.Valid {
				t.Errorf("%s: valid = %v, want %v\n%s", tc.Description, report.Valid(), tc.Valid, report)
			}
		}
	})
}

func unsupported(err error) bool {
	var schemaErr *jsonerrors.SchemaError
	return errors.As(err, &schemaErr) && schemaErr.Reason == "keyword is not supported"
}

func dialectDirs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(dir, "tests"))
	if err != nil {
		t.Fatalf("read suite tests: %v", err)
	}
	var dirs []string
	for _, entry := range entries {
		if _, ok := suiteDialects[entry.Name()]; ok && entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs
}

func runSuite(t *testing.T, dir string) {
	t.Helper()
	runner, err := NewRunner(dir)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	dirs := dialectDirs(t, dir)
	if len(dirs) == 0 {
		t.Skip("no dialect directories found in", dir)
	}
	for _, d := range dirs {
		t.Run(d, func(t *testing.T) {
			runner.RunDialect(t, d)
		})
	}
}

func TestSmokeSuite(t *testing.T) {
	runSuite(t, filepath.Join("testdata", "smoke"))
}

// TestConformance runs the JSON-Schema-Test-Suite when it is checked out
// under testdata/JSON-Schema-Test-Suite.
func TestConformance(t *testing.T) {
	dir := filepath.Join("..", "testdata", "JSON-Schema-Test-Suite")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("JSON-Schema-Test-Suite not found at", dir)
	}
	runSuite(t, dir)
}

func TestFilterExclusion(t *testing.T) {
	f := NewFilter(excludePatterns, "")
	if reason, ok := f.ExclusionReason("draft2020-12/dynamicRef/simple"); !ok || reason == "" {
		t.Fatalf("dynamicRef not excluded")
	}
	if _, ok := f.ExclusionReason("draft7/ref/root pointer ref"); ok {
		t.Fatalf("ref excluded")
	}
	named := NewFilter(nil, "Minimum")
	if _, ok := named.ExclusionReason("draft7/minimum/simple"); ok {
		t.Fatalf("matching name excluded")
	}
	if reason, ok := named.ExclusionReason("draft7/maximum/simple"); !ok || reason != "filtered by name" {
		t.Fatalf("non-matching name reason = %q, %v", reason, ok)
	}
}
