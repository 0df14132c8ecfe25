// Package config loads opcalc settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the front end configuration.
type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// LenientBrackets allows open brackets left unclosed.
	LenientBrackets bool `toml:"lenient_brackets" yaml:"lenient_brackets"`
	// NoImplicitMul disables multiplication by juxtaposition.
	NoImplicitMul bool `toml:"no_implicit_mul" yaml:"no_implicit_mul"`
	// Prompt and Continue are the REPL prompts for a new statement and for
	// one waiting on an operand.
	Prompt   string `toml:"prompt" yaml:"prompt"`
	Continue string `toml:"continue" yaml:"continue"`
	// History is the REPL history file. Empty disables history.
	History string `toml:"history" yaml:"history"`
	// Exit is the line that leaves the REPL.
	Exit string `toml:"exit" yaml:"exit"`
	// Constants are defined before evaluating anything.
	Constants map[string]float64 `toml:"constants" yaml:"constants"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Prompt:   "> ",
		Continue: "| ",
		Exit:     "exit",
	}
}

// Load reads a configuration file over the defaults. The decoder is chosen by
// the file extension: .toml, .yaml, or .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q", ext)
	}
	return cfg, nil
}
