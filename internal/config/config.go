// Package config holds the configuration of the pogen command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"

	"github.com/syssam/pogen/compiler/gen"
	"github.com/syssam/pogen/dialect"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = "pogen.yaml"

// Environment variables overriding the configuration file.
const (
	EnvDriver = "POGEN_DRIVER"
	EnvDSN    = "POGEN_DSN"
)

// Config is the configuration of one generation run.
type Config struct {
	// Driver is the database/sql driver name, e.g. "mysql" or "pgx".
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
	// Snapshot reads the catalog from a snapshot file instead of a database.
	Snapshot string `yaml:"snapshot,omitempty"`
	// Atlas inspects the database with atlas instead of the catalog queries.
	Atlas   bool     `yaml:"atlas,omitempty"`
	Schemas []string `yaml:"schemas,omitempty"`
	// SkipSystemSchemas leaves out the catalog schemas of the server.
	SkipSystemSchemas bool `yaml:"skip_system_schemas,omitempty"`

	Package  string  `yaml:"package"`
	Target   string  `yaml:"target"`
	Header   *string `yaml:"header,omitempty"`
	Renderer string  `yaml:"renderer,omitempty"`
	Workers  int     `yaml:"workers,omitempty"`
	Singular bool    `yaml:"singular,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Target:   ".",
		Renderer: gen.RendererJennifer,
		Workers:  1,
		LogLevel: "info",
	}
}

// Load reads the configuration at path on top of the defaults and applies
// the environment overrides. A missing file is an error only if required
// is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(bytes.NewReader(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDriver); v != "" {
		c.Driver = v
	}
	if v := os.Getenv(EnvDSN); v != "" {
		c.DSN = v
	}
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the source settings and the log level. The generation
// settings are validated by the emitter.
func (c *Config) Validate() error {
	if c.Snapshot == "" {
		if c.Driver == "" {
			return fmt.Errorf("driver is required when no snapshot is given")
		}
		d, err := dialect.FromDriver(c.Driver)
		if err != nil {
			return err
		}
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for driver %q", c.Driver)
		}
		if d == dialect.MySQL {
			if _, err := mysql.ParseDSN(c.DSN); err != nil {
				return fmt.Errorf("invalid mysql dsn: %w", err)
			}
		}
	} else if c.DSN != "" {
		return fmt.Errorf("snapshot and dsn are mutually exclusive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

// GenOptions returns the emitter options of the configuration.
func (c *Config) GenOptions() []gen.Option {
	opts := []gen.Option{gen.WithRendererName(c.Renderer)}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	if c.Header != nil {
		opts = append(opts, gen.WithHeader(*c.Header))
	}
	if c.Singular {
		opts = append(opts, gen.WithSingularTypeNames())
	}
	return opts
}
