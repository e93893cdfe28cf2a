// ABOUTME: Run configuration loaded from YAML with built-in defaults
// ABOUTME: Controls frame output location and heap rendering options

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/prateek/rootlens/frame"
	"github.com/prateek/rootlens/heap"
)

// ErrEmptyOutDir is returned when the output directory is blank
var ErrEmptyOutDir = errors.New("output directory must not be empty")

// Config holds the settings of one run
type Config struct {
	OutDir       string `yaml:"out_dir"`
	Prefix       string `yaml:"prefix"`
	Ext          string `yaml:"ext"`
	Separator    string `yaml:"separator"`
	InitialFrame bool   `yaml:"initial_frame"`
	Reachability bool   `yaml:"reachability"`
	Verbose      bool   `yaml:"verbose"`
}

// Default returns the settings used when no file is given
func Default() *Config {
	return &Config{
		OutDir:    "frames",
		Ext:       ".dot",
		Separator: frame.DefaultSeparator,
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads YAML settings over the defaults. Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return ErrEmptyOutDir
	}
	return nil
}

// HeapOptions translates the settings into heap options
func (c *Config) HeapOptions() []heap.Option {
	var opts []heap.Option
	if c.InitialFrame {
		opts = append(opts, heap.WithInitialFrame())
	}
	if c.Reachability {
		opts = append(opts, heap.WithReachability())
	}
	return opts
}
