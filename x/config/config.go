// Package config loads the rastershift CLI's YAML configuration file,
// using gopkg.in/yaml.v3 exactly as the pack's own YAML marshaller
// package does, but with a plain struct-tag decode instead of the
// teacher's model-graph-aware marshalling (a CLI config file has no
// tensors or layers to special-case).
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/rastershift/x/options"
)

// Decomposition names which decomposition policy a run should use.
type Decomposition string

const (
	// Regular selects the pass-through decomposition policy (C6a).
	Regular Decomposition = "regular"
	// PeriodicSmooth selects Moisan's periodic-plus-smooth policy (C6b).
	PeriodicSmooth Decomposition = "periodic_smooth"
)

// Config holds the tunables the CLI reads from a YAML file, with
// defaults applied for anything the file omits.
type Config struct {
	BlockSize        int           `yaml:"block_size"`
	DefaultBlockSize int           `yaml:"default_block_size"`
	ParallelWorkers  int           `yaml:"parallel_workers"`
	Decomposition    Decomposition `yaml:"decomposition"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BlockSize:        256,
		DefaultBlockSize: 256,
		ParallelWorkers:  1,
		Decomposition:    PeriodicSmooth,
	}
}

// Load reads and parses a YAML configuration file at path, filling in
// Default values for anything the file leaves zero.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.BlockSize = 0 // filled from DefaultBlockSize below unless the file sets block_size

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = cfg.DefaultBlockSize
	}
	if cfg.ParallelWorkers <= 0 {
		cfg.ParallelWorkers = 1
	}
	if cfg.Decomposition == "" {
		cfg.Decomposition = PeriodicSmooth
	}
	return cfg, nil
}

// Apply overrides cfg's fields with whichever WithX options are given,
// the way the pack's plugin/writer packages layer CLI flags over a
// file-loaded config via options.ApplyOptions.
func (cfg Config) Apply(opts ...options.Option) Config {
	out := cfg
	options.ApplyOptions(&out, opts...)
	return out
}

// WithBlockSize overrides BlockSize when n > 0.
func WithBlockSize(n int) options.Option {
	return func(o interface{}) {
		if c, ok := o.(*Config); ok && n > 0 {
			c.BlockSize = n
		}
	}
}

// WithParallelWorkers overrides ParallelWorkers when n > 0.
func WithParallelWorkers(n int) options.Option {
	return func(o interface{}) {
		if c, ok := o.(*Config); ok && n > 0 {
			c.ParallelWorkers = n
		}
	}
}

// WithDecomposition overrides the decomposition policy when d is set.
func WithDecomposition(d Decomposition) options.Option {
	return func(o interface{}) {
		if c, ok := o.(*Config); ok && d != "" {
			c.Decomposition = d
		}
	}
}
