// Package config loads sass-to-typescript settings from YAML, JSON(C) or the
// "sassToTypescript" block of a package.json.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"bennypowers.dev/sass2ts/internal/classify"
	"bennypowers.dev/sass2ts/internal/collections"
	"bennypowers.dev/sass2ts/internal/generator"
	"bennypowers.dev/sass2ts/internal/loader"
	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PackageJSONKey is the package.json field holding the configuration
const PackageJSONKey = "sassToTypescript"

// Files are looked up in this order by Find
var Files = []string{
	".sass2ts.yaml",
	".sass2ts.yml",
	".sass2ts.json",
	".sass2ts.jsonc",
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Config holds every setting of a run
type Config struct {
	Names           generator.Names `yaml:"names" json:"names"`
	NativeFunctions []string        `yaml:"nativeFunctions" json:"nativeFunctions"`
	ColorFunctions  []string        `yaml:"colorFunctions" json:"colorFunctions"`
	Include         []string        `yaml:"include" json:"include"`
	IncludePaths    []string        `yaml:"includePaths" json:"includePaths"`
	FollowImports   bool            `yaml:"followImports" json:"followImports"`
	Strict          bool            `yaml:"strict" json:"strict"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Names:           generator.DefaultNames(),
		NativeFunctions: slices.Clone(classify.DefaultNativeFunctions),
		ColorFunctions:  slices.Clone(classify.DefaultColorFunctions),
		Include:         slices.Clone(loader.DefaultPatterns),
		FollowImports:   true,
	}
}

// Load reads a configuration file. Fields it omits keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	case ".json", ".jsonc":
		err = decodeJSON(data, cfg)
	default:
		return nil, schema.NewInvalidConfigError(path, "", fmt.Sprintf("unsupported config format %q", ext))
	}
	if err != nil {
		return nil, schema.NewInvalidConfigError(path, "", err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, withPath(err, path)
	}
	return cfg, nil
}

// LoadFromPackageJSON reads the "sassToTypescript" block of dir/package.json.
// It returns nil without error when the file or the block is absent.
func LoadFromPackageJSON(dir string) (*Config, error) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path) //nolint:gosec // G304: workspace package.json
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	block, ok := pkg[PackageJSONKey]
	if !ok {
		return nil, nil
	}
	if !bytes.HasPrefix(bytes.TrimSpace(block), []byte("{")) {
		return nil, schema.NewInvalidConfigError(path, PackageJSONKey, "must be an object")
	}

	cfg := Default()
	if err := decodeJSON(block, cfg); err != nil {
		return nil, schema.NewInvalidConfigError(path, PackageJSONKey, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, withPath(err, path)
	}
	return cfg, nil
}

// Find looks for a configuration file in dir, then for a package.json
// block. It returns the defaults and an empty path when neither exists.
func Find(dir string) (*Config, string, error) {
	for _, name := range Files {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}

	cfg, err := LoadFromPackageJSON(dir)
	if err != nil {
		return nil, "", err
	}
	if cfg != nil {
		return cfg, filepath.Join(dir, "package.json"), nil
	}
	return Default(), "", nil
}

// Validate rejects names that cannot be emitted and overlapping function
// sets.
func (c *Config) Validate() error {
	fields := c.Names.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		switch v := fields[k]; {
		case v == "":
			return schema.NewInvalidConfigError("", "names."+k, "must not be empty")
		case !identifier.MatchString(v):
			return schema.NewInvalidConfigError("", "names."+k, fmt.Sprintf("%q is not a valid identifier", v))
		}
	}

	native := collections.NewSet(c.NativeFunctions...)
	for _, fn := range c.ColorFunctions {
		if native.Has(fn) {
			return schema.NewInvalidConfigError("", "colorFunctions", fmt.Sprintf("%q is also a native function", fn))
		}
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeJSON(data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func withPath(err error, path string) error {
	var ice *schema.InvalidConfigError
	if errors.As(err, &ice) && ice.FilePath == "" {
		ice.FilePath = path
	}
	return err
}
