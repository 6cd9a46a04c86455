package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/wbrown/cleanser"
	"github.com/wbrown/cleanser/internal/logger"
)

// Config
// Settings for a cleansing run, loadable from TOML. Command line flags take
// precedence over file values.
type Config struct {
	MinLength    int      `toml:"min_length"`
	Identity     string   `toml:"identity"`
	Keywords     []string `toml:"keywords"`
	KeywordLists []string `toml:"keyword_lists"`
	Auth         string   `toml:"auth"`
	Output       string   `toml:"output"`
	Reorder      string   `toml:"reorder"`
	LogLevel     string   `toml:"log_level"`
	LogFormat    string   `toml:"log_format"`
}

var reorderSpecs = []string{"", "none", "size_ascending", "size_descending",
	"path_ascending", "path_descending", "random"}

func Default() Config {
	return Config{
		MinLength: cleanser.DefaultMinLength,
		Identity:  cleanser.IdentityHashed.String(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads the TOML file at path over the defaults. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.MinLength < 0 {
		return &cleanser.ConfigError{Field: "min_length",
			Reason: fmt.Sprintf("must be non-negative, got %d", c.MinLength)}
	}
	if _, err := cleanser.ParseIdentity(c.Identity); err != nil {
		return err
	}
	for idx, keyword := range c.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return &cleanser.ConfigError{Field: "keywords",
				Reason: fmt.Sprintf("keyword %d is empty", idx)}
		}
	}
	if !validReorder(c.Reorder) {
		return &cleanser.ConfigError{Field: "reorder",
			Reason: fmt.Sprintf("unknown specification %q, want one of %s",
				c.Reorder, strings.Join(reorderSpecs[2:], ", "))}
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return &cleanser.ConfigError{Field: "log_level", Reason: err.Error()}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return &cleanser.ConfigError{Field: "log_format",
			Reason: fmt.Sprintf("unknown format %q", c.LogFormat)}
	}
	return nil
}

func validReorder(spec string) bool {
	for _, known := range reorderSpecs {
		if spec == known {
			return true
		}
	}
	return false
}

// CleanserConfig
// Translates the run settings into engine settings, with keywords being the
// inline keywords merged with every resolved keyword list.
func (c *Config) CleanserConfig(keywords []string) (cleanser.Config, error) {
	identity, err := cleanser.ParseIdentity(c.Identity)
	if err != nil {
		return cleanser.Config{}, err
	}
	cfg := cleanser.DefaultConfig()
	cfg.MinLength = c.MinLength
	cfg.Identity = identity
	cfg.Keywords = keywords
	return cfg, nil
}
