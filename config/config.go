// Package config loads wasmbed.yaml and merges it with command-line values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/rubiojr/wasmbed/convert"
)

const (
	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = "wasmbed.yaml"
	// EnvFile names an alternative config path.
	EnvFile = "WASMBED_CONFIG"
)

// Config models wasmbed.yaml. Empty fields mean "use the default".
type Config struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Template string `yaml:"template,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{Input: convert.DefaultInput, Output: convert.DefaultOutput}
}

// Path resolves which config file to read: an explicit path wins, then
// $WASMBED_CONFIG, then DefaultFile.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return env.Str(EnvFile, DefaultFile)
}

// Load reads the config file at path. A missing file yields Defaults.
// A relative template path is resolved against the config file's directory.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if file.Template != "" && !filepath.IsAbs(file.Template) {
		file.Template = filepath.Join(filepath.Dir(path), file.Template)
	}
	return cfg.Merge(file), nil
}

// Merge returns c with every non-empty field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Input != "" {
		c.Input = o.Input
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Template != "" {
		c.Template = o.Template
	}
	return c
}
