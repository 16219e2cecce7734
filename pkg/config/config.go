// Package config loads the analysis settings shared by the CLI and the
// analysis pipeline.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/validation"
)

const (
	// DefaultTolerance is the number of template edges a composite unit
	// match may miss.
	DefaultTolerance = 1
	// MaxTolerance bounds the tolerance; composite templates have at most
	// three edges.
	MaxTolerance = 5
	// MaxWorkers bounds the concurrent template searches.
	MaxWorkers = 256
)

// Config holds the analysis settings
type Config struct {
	// Tolerance is nil when unset so that an explicit 0 survives defaults.
	Tolerance               *int   `yaml:"tolerance" json:"tolerance"`
	Workers                 int    `yaml:"workers" json:"workers"`
	LogLevel                string `yaml:"log_level" json:"log_level" validate:"omitempty,loglevel"`
	KeepUnmatchedMotivation bool   `yaml:"keep_unmatched_motivation" json:"keep_unmatched_motivation"`
	MetricsFile             string `yaml:"metrics_file" json:"metrics_file"`
	// RequireAnchored rejects composite matches with a vertex that touches
	// no matched template edge.
	RequireAnchored bool `yaml:"require_anchored" json:"require_anchored"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads a YAML config file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode parses YAML settings. Unknown keys are rejected; an empty
// document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Tolerance == nil {
		c.SetTolerance(DefaultTolerance)
	}
	c.Workers = validation.DefaultOr(c.Workers, runtime.GOMAXPROCS(0))
	c.LogLevel = validation.DefaultOr(strings.ToUpper(c.LogLevel), logging.InfoLevel.String())
}

// SetTolerance overrides the tolerance.
func (c *Config) SetTolerance(t int) {
	c.Tolerance = &t
}

// EffectiveTolerance returns the configured tolerance or the default.
func (c *Config) EffectiveTolerance() int {
	if c.Tolerance == nil {
		return DefaultTolerance
	}
	return *c.Tolerance
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Tags(c).
		RangeInt("Tolerance", c.EffectiveTolerance(), 0, MaxTolerance).
		RangeInt("Workers", c.Workers, 1, MaxWorkers).
		When(c.MetricsFile != "", func(cv *validation.ConfigValidator) {
			cv.Custom("MetricsFile", func() error {
				dir := filepath.Dir(c.MetricsFile)
				info, err := os.Stat(dir)
				if err != nil {
					return fmt.Errorf("directory %s: %w", dir, err)
				}
				if !info.IsDir() {
					return fmt.Errorf("%s is not a directory", dir)
				}
				return nil
			})
		}).
		Validate()
}
