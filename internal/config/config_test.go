package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, Optional, cfg.Optionality)
	assert.Empty(t, cfg.Prefix)
	assert.Empty(t, cfg.Suffix)
	assert.Empty(t, cfg.Parent)
	assert.Empty(t, cfg.Modules)
	assert.False(t, cfg.Naming.CamelCaseFields)
	assert.Equal(t, DefaultMaxDepth, cfg.Decode.MaxDepth)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
optionality: implicit
prefix: "API"
suffix: "Model"
parent: "HandyJSON"
modules:
  - HandyJSON
  - " "
naming:
  camel_case_fields: true
decode:
  max_depth: 64
logging:
  level: debug
  file: /tmp/swiftmodeler.log
`
	path := filepath.Join(t.TempDir(), ".swiftmodeler.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Implicit, cfg.Optionality)
	assert.Equal(t, "API", cfg.Prefix)
	assert.Equal(t, "Model", cfg.Suffix)
	assert.Equal(t, "HandyJSON", cfg.Parent)
	assert.Equal(t, []string{"HandyJSON"}, cfg.Modules)
	assert.True(t, cfg.Naming.CamelCaseFields)
	assert.Equal(t, 64, cfg.Decode.MaxDepth)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/swiftmodeler.log", cfg.Logging.File)
}

func TestConfig_LoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swiftmodeler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: XY\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "XY", cfg.Prefix)
	assert.Equal(t, Optional, cfg.Optionality)
	assert.Equal(t, DefaultMaxDepth, cfg.Decode.MaxDepth)
}

func TestConfig_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "optionality: [unclosed"},
		{name: "unknown optionality", content: "optionality: sometimes"},
		{name: "negative depth", content: "decode:\n  max_depth: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}

func TestFindConfigFileFrom_SearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	configPath := filepath.Join(root, ".swiftmodeler.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("prefix: P\n"), 0644))

	assert.Equal(t, configPath, findConfigFileFrom(nested))
}

func TestApplyOverrides(t *testing.T) {
	base := NewConfig()
	base.Prefix = "File"
	base.Modules = []string{"HandyJSON"}

	prefix := "Cli"
	parent := "Codable"
	camel := true
	merged, err := base.ApplyOverrides(Overrides{
		Optionality:     "required",
		Prefix:          &prefix,
		Parent:          &parent,
		CamelCaseFields: &camel,
		LogLevel:        "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, Required, merged.Optionality)
	assert.Equal(t, "Cli", merged.Prefix)
	assert.Equal(t, "Codable", merged.Parent)
	assert.True(t, merged.Naming.CamelCaseFields)
	assert.Equal(t, "debug", merged.Logging.Level)

	// The base configuration is untouched.
	assert.Equal(t, "File", base.Prefix)
	assert.Equal(t, Optional, base.Optionality)

	merged.Modules[0] = "Changed"
	assert.Equal(t, "HandyJSON", base.Modules[0])

	_, err = base.ApplyOverrides(Overrides{Optionality: "maybe"})
	assert.Error(t, err)
}

func TestLoadConfigWithCLI_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("suffix: Entity\noptionality: required\n"), 0644))

	cfg, err := LoadConfigWithCLI(path, Overrides{Optionality: "implicit"})
	require.NoError(t, err)

	assert.Equal(t, "Entity", cfg.Suffix)
	assert.Equal(t, Implicit, cfg.Optionality)
}

func TestRenderConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Optionality = Implicit
	cfg.Prefix = "A"
	cfg.Suffix = "B"
	cfg.Parent = "  HandyJSON "
	cfg.Naming.CamelCaseFields = true

	assert.Equal(t, RenderConfig{
		Optionality:     Implicit,
		Prefix:          "A",
		Suffix:          "B",
		Parent:          "HandyJSON",
		CamelCaseFields: true,
	}, cfg.RenderConfig())
}

func TestOptionality(t *testing.T) {
	tests := []struct {
		input  string
		want   Optionality
		marker string
	}{
		{input: "required", want: Required, marker: ""},
		{input: "optional", want: Optional, marker: "?"},
		{input: "implicit", want: Implicit, marker: "!"},
		{input: "", want: Optional, marker: "?"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOptionality(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.marker, got.Marker())
		})
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		keyword   string
		raw       bool
		want      CommandKind
		reference bool
	}{
		{keyword: "struct", raw: false, want: StructFromJSON, reference: false},
		{keyword: "class", raw: false, want: ClassFromJSON, reference: true},
		{keyword: "struct", raw: true, want: StructFromRAW, reference: false},
		{keyword: "class", raw: true, want: ClassFromRAW, reference: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			got, err := Command(tt.keyword, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.reference, got.IsReferenceType())
			assert.Equal(t, tt.raw, got.IsRAW())
			assert.Equal(t, tt.keyword, got.Keyword())
		})
	}

	_, err := Command("enum", false)
	assert.Error(t, err)
}
