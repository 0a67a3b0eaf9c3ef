// Package catalog loads message templates that override the built-in
// English finding messages, optionally selected by locale.
//
// A template may reference named parameters as {name}; the parameters
// available for each keyword are listed in the built-in bundle.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog maps a finding keyword to a message template.
type Catalog map[string]string

// Template returns the template registered for keyword.
func (c Catalog) Template(keyword string) (string, bool) {
	t, ok := c[keyword]
	return t, ok && t != ""
}

// Bundle maps a BCP 47 locale tag to its catalog.
type Bundle map[string]Catalog

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the embedded bundle. The "en" catalog is empty: English
// is the default rendering.
func Builtin() Bundle {
	b, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded bundle: %v", err))
	}
	return b
}

// Parse decodes a YAML bundle shaped {locale: {keyword: template}}.
func Parse(data []byte) (Bundle, error) {
	var raw map[string]map[string]string
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog bundle: %w", err)
	}
	out := make(Bundle, len(raw))
	for locale, templates := range raw {
		tag, err := language.Parse(normalizeLocale(locale))
		if err != nil {
			return nil, fmt.Errorf("catalog locale %q: %w", locale, err)
		}
		c := make(Catalog, len(templates))
		maps.Copy(c, templates)
		out[tag.String()] = c
	}
	return out, nil
}

// Load reads a YAML bundle from r.
func Load(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog bundle: %w", err)
	}
	return Parse(data)
}

// Merge returns a bundle holding b overlaid with other, template by template.
func (b Bundle) Merge(other Bundle) Bundle {
	out := make(Bundle, len(b)+len(other))
	for locale, c := range b {
		out[locale] = maps.Clone(c)
	}
	for locale, c := range other {
		if out[locale] == nil {
			out[locale] = make(Catalog, len(c))
		}
		maps.Copy(out[locale], c)
	}
	return out
}

// Locales returns the bundle locale tags in sorted order.
func (b Bundle) Locales() []string {
	return slices.Sorted(maps.Keys(b))
}

// Match selects the catalog best matching locale. Locale may be a BCP 47 tag
// or a POSIX value such as "es_AR.UTF-8". It reports false when no catalog
// matches with at least low confidence.
func (b Bundle) Match(locale string) (Catalog, string, bool) {
	if len(b) == 0 || locale == "" {
		return nil, "", false
	}
	want, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return nil, "", false
	}
	locales := b.Locales()
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = language.Make(l)
	}
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return nil, "", false
	}
	return b[locales[idx]], locales[idx], true
}

// normalizeLocale strips a POSIX codeset/modifier and converts underscores.
func normalizeLocale(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")
	locale, _, _ = strings.Cut(locale, "@")
	if locale == "C" || locale == "POSIX" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}
