package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cfparse/internal/dialect"
	"cfparse/internal/tags"
)

// Config is the decoded cfparse.toml.
//
//	[parser]
//	max_issues = 200
//
//	[dialects]
//	inc = "markup"
//
//	[tags]
//	registry = ["tags/custom.toml"]
//
//	[cache]
//	enabled = true
//	dir = ".cfparse-cache"
type Config struct {
	Parser   ParserConfig      `toml:"parser"`
	Dialects map[string]string `toml:"dialects"`
	Tags     TagsConfig        `toml:"tags"`
	Cache    CacheConfig       `toml:"cache"`

	// Root is the directory holding the config file; relative paths in the
	// file are resolved against it. Empty for the default config.
	Root string `toml:"-"`
}

type ParserConfig struct {
	MaxIssues int `toml:"max_issues"`
}

type TagsConfig struct {
	Registry []string `toml:"registry"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default is the configuration used without a cfparse.toml.
func Default() *Config {
	return &Config{Dialects: map[string]string{}}
}

// Load decodes the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.Root = abs
	return cfg, nil
}

// Parse decodes cfparse.toml content and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if cfg.Parser.MaxIssues < 0 {
		return nil, fmt.Errorf("parser.max_issues must not be negative")
	}
	if _, err := cfg.Detector(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads the cfparse.toml governing startDir, or the default config
// when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Detector builds the dialect detector with the [dialects] extensions.
func (c *Config) Detector() (dialect.Detector, error) {
	d := dialect.Detector{Extra: make(map[string]dialect.Kind, len(c.Dialects))}
	for ext, name := range c.Dialects {
		k, err := dialect.ParseKind(name)
		if err != nil {
			return dialect.Detector{}, fmt.Errorf("dialects.%s: %w", ext, err)
		}
		d.Extra[strings.ToLower(strings.TrimPrefix(ext, "."))] = k
	}
	return d, nil
}

// Registry returns the tag registry: the files listed under [tags] first,
// then the built-in table.
func (c *Config) Registry() (tags.Registry, error) {
	if len(c.Tags.Registry) == 0 {
		return tags.Builtin(), nil
	}
	custom := tags.NewTable()
	for _, p := range c.Tags.Registry {
		if err := custom.LoadFile(c.resolve(p)); err != nil {
			return nil, err
		}
	}
	return tags.Chain{custom, tags.Builtin()}, nil
}

// CacheDir returns the cache directory, or "" when caching is off.
func (c *Config) CacheDir() string {
	if !c.Cache.Enabled {
		return ""
	}
	if c.Cache.Dir == "" {
		return c.resolve(".cfparse-cache")
	}
	return c.resolve(c.Cache.Dir)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}
