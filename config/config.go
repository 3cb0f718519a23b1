// Package config loads the optional .rubylex.yml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexisbouchez/rubylex/charset"
	"github.com/alexisbouchez/rubylex/lexer"
)

// FileName is the settings file looked up next to the sources.
const FileName = ".rubylex.yml"

// Output formats for the token dump.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds the lexer and output settings.
type Config struct {
	// Encoding is the initial source encoding; magic comments may change it.
	Encoding            string   `yaml:"encoding"`
	FrozenStringLiteral bool     `yaml:"frozen_string_literal"`
	Warnings            bool     `yaml:"warnings"`
	Locals              []string `yaml:"locals"`
	Format              string   `yaml:"format"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Encoding: "UTF-8",
		Warnings: true,
		Format:   FormatText,
	}
}

// Parse reads settings from YAML. Keys missing from data keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for FileName in dir and its parents and loads the first one
// found. Without a file it returns the defaults.
func Find(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		cfg, err := Load(filepath.Join(dir, FileName))
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks the format name and that the encoding resolves.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if _, err := charset.Lookup(c.Encoding); err != nil {
		return err
	}
	return nil
}

// LexerOptions translates the settings into lexer options. Locals are not
// included; a Stream owns its scope, so callers declare them there.
func (c *Config) LexerOptions() ([]lexer.Option, error) {
	enc, err := charset.Lookup(c.Encoding)
	if err != nil {
		return nil, err
	}
	return []lexer.Option{
		lexer.WithEncoding(enc),
		lexer.WithFrozenStringLiteral(c.FrozenStringLiteral),
	}, nil
}
