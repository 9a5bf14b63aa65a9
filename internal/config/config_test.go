package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/sass2ts/internal/classify"
	"bennypowers.dev/sass2ts/internal/config"
	"bennypowers.dev/sass2ts/internal/loader"
	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "BulmaVars", cfg.Names.Vars)
	assert.Equal(t, "makeBasicTheme", cfg.Names.Factory)
	assert.Equal(t, []string{"calc"}, cfg.NativeFunctions)
	assert.Equal(t, []string{"rgb", "hsl", "rgba"}, cfg.ColorFunctions)
	assert.True(t, cfg.FollowImports)
	assert.False(t, cfg.Strict)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultFollowsPackageDefaults(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, classify.DefaultNativeFunctions, cfg.NativeFunctions)
	assert.Equal(t, classify.DefaultColorFunctions, cfg.ColorFunctions)
	assert.Equal(t, loader.DefaultPatterns, cfg.Include)

	cfg.ColorFunctions[0] = "darken"
	cfg.Include[0] = "*.css"
	assert.Equal(t, "rgb", classify.DefaultColorFunctions[0], "defaults are copied")
	assert.Equal(t, "**/*.sass", loader.DefaultPatterns[0])
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, ".sass2ts.yaml", `
names:
  theme: Theme
  factory: createTheme
colorFunctions: [rgb, rgba, hsl, hsla]
includePaths:
  - node_modules/bulma/sass
followImports: false
strict: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Theme", cfg.Names.Theme)
	assert.Equal(t, "createTheme", cfg.Names.Factory)
	assert.Equal(t, "BulmaVars", cfg.Names.Vars, "unset names keep their default")
	assert.Equal(t, []string{"rgb", "rgba", "hsl", "hsla"}, cfg.ColorFunctions)
	assert.Equal(t, []string{"calc"}, cfg.NativeFunctions)
	assert.Equal(t, []string{"node_modules/bulma/sass"}, cfg.IncludePaths)
	assert.False(t, cfg.FollowImports)
	assert.True(t, cfg.Strict)
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := write(t, t.TempDir(), "c.yml", "nmaes:\n  theme: Theme\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "nmaes")
}

func TestLoadEmptyYAML(t *testing.T) {
	path := write(t, t.TempDir(), "c.yaml", "")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadJSONC(t *testing.T) {
	path := write(t, t.TempDir(), ".sass2ts.jsonc", `{
  // comments are allowed
  "nativeFunctions": ["calc", "min", "max"],
  "include": ["sass/**/*.sass"],
}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"calc", "min", "max"}, cfg.NativeFunctions)
	assert.Equal(t, []string{"sass/**/*.sass"}, cfg.Include)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := write(t, t.TempDir(), "c.toml", "")

	_, err := config.Load(path)
	assert.ErrorIs(t, err, schema.ErrInvalidConfig)
}

func TestLoadFromPackageJSON(t *testing.T) {
	t.Run("block present", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{
  "name": "theme",
  "sassToTypescript": {
    "names": { "vars": "ThemeVars" },
    "strict": true
  }
}`)
		cfg, err := config.LoadFromPackageJSON(dir)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "ThemeVars", cfg.Names.Vars)
		assert.True(t, cfg.Strict)
	})

	t.Run("no block", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"name": "theme"}`)
		cfg, err := config.LoadFromPackageJSON(dir)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("no package.json", func(t *testing.T) {
		cfg, err := config.LoadFromPackageJSON(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("block is not an object", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"sassToTypescript": true}`)
		_, err := config.LoadFromPackageJSON(dir)
		assert.ErrorIs(t, err, schema.ErrInvalidConfig)
	})
}

func TestFind(t *testing.T) {
	t.Run("config file wins over package.json", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"sassToTypescript": {"strict": true}}`)
		path := write(t, dir, ".sass2ts.yml", "strict: false\n")

		cfg, found, err := config.Find(dir)
		require.NoError(t, err)
		assert.Equal(t, path, found)
		assert.False(t, cfg.Strict)
	})

	t.Run("package.json", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"sassToTypescript": {"strict": true}}`)

		cfg, found, err := config.Find(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "package.json"), found)
		assert.True(t, cfg.Strict)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, found, err := config.Find(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, found)
		assert.Equal(t, config.Default(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{"empty name", func(c *config.Config) { c.Names.Theme = "" }, "names.theme"},
		{"invalid identifier", func(c *config.Config) { c.Names.Factory = "make-theme" }, "names.factory"},
		{"overlapping functions", func(c *config.Config) { c.ColorFunctions = append(c.ColorFunctions, "calc") }, "colorFunctions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var ice *schema.InvalidConfigError
			require.ErrorAs(t, err, &ice)
			assert.Equal(t, tt.field, ice.Field)
		})
	}

	t.Run("dollar signs are valid", func(t *testing.T) {
		cfg := config.Default()
		cfg.Names.Override = "$overrides"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadReportsPathOnValidationFailure(t *testing.T) {
	path := write(t, t.TempDir(), "c.yaml", "names:\n  vars: \"1abc\"\n")

	_, err := config.Load(path)
	var ice *schema.InvalidConfigError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, path, ice.FilePath)
	assert.Equal(t, "names.vars", ice.Field)
}
