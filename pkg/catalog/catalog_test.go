package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	b := Builtin()
	assert.Equal(t, []string{"en", "es"}, b.Locales())
	assert.Empty(t, b["en"])

	tmpl, ok := b["es"].Template("required")
	require.True(t, ok)
	assert.Contains(t, tmpl, "{missing}")
}

func TestMatch(t *testing.T) {
	b := Builtin()
	tests := []struct {
		locale string
		want   string
		ok     bool
	}{
		{"es", "es", true},
		{"es-AR", "es", true},
		{"es_ES.UTF-8", "es", true},
		{"en-US", "en", true},
		{"C", "en", true},
		{"", "", false},
		{"not a locale", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			_, got, ok := b.Match(tt.locale)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	b, err := Load(strings.NewReader(`
fr:
  type: "type invalide: {found}"
es_MX:
  required: "faltan: {missing}"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"es-MX", "fr"}, b.Locales())

	tmpl, ok := b["fr"].Template("type")
	require.True(t, ok)
	assert.Equal(t, "type invalide: {found}", tmpl)

	_, ok = b["fr"].Template("required")
	assert.False(t, ok)

	_, err = Parse([]byte("fr: [1, 2]"))
	require.Error(t, err)

	empty, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMerge(t *testing.T) {
	base := Bundle{"es": {"type": "a", "required": "b"}}
	merged := base.Merge(Bundle{"es": {"type": "c"}, "fr": {"not": "d"}})
	assert.Equal(t, Catalog{"type": "c", "required": "b"}, merged["es"])
	assert.Equal(t, Catalog{"not": "d"}, merged["fr"])
	assert.Equal(t, "a", base["es"]["type"])
}
