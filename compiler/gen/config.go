package gen

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/syssam/pogen/compiler/naming"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by pogen. DO NOT EDIT."

// Suffix is appended to the type name derived from a table name.
const Suffix = "PO"

// Config holds the emitter configuration.
type Config struct {
	// Package is the dotted namespace of the generated package,
	// e.g. "com.example.model". Its last segment is the Go package name.
	Package string
	// Target is the output folder. Files are written to Target joined with
	// the segments of Package.
	Target string
	// Header is the comment written on top of each file, without the
	// comment markers. Empty disables it.
	Header string
	// Renderer renders one file. Defaults to JenniferRenderer.
	Renderer Renderer
	// Workers bounds the number of files written concurrently. Defaults to 1.
	Workers int
	// Singular derives type names from the singular form of table names.
	Singular bool
	// Logger receives emitter logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Segments returns the segments of the package namespace.
func (c *Config) Segments() []string {
	return strings.Split(c.Package, ".")
}

// PackageName returns the Go package name of the generated files.
func (c *Config) PackageName() string {
	segs := c.Segments()
	return naming.GoIdent(segs[len(segs)-1])
}

// Dir returns the directory the generated files are written to.
func (c *Config) Dir() string {
	return filepath.Join(append([]string{c.Target}, c.Segments()...)...)
}

// Validate checks the config is complete.
func (c *Config) Validate() error {
	if c.Package == "" {
		return NewConfigError("Package", nil, "missing package namespace")
	}
	for _, s := range c.Segments() {
		if s == "" {
			return NewConfigError("Package", c.Package, "empty namespace segment")
		}
		if strings.ContainsAny(s, `/\`) {
			return NewConfigError("Package", c.Package, "namespace segments cannot contain path separators")
		}
	}
	if c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory")
	}
	if c.Workers < 0 {
		return NewConfigError("Workers", c.Workers, "must not be negative")
	}
	return nil
}

func (c *Config) renderer() Renderer {
	if c.Renderer == nil {
		return JenniferRenderer{}
	}
	return c.Renderer
}

func (c *Config) workers() int {
	if c.Workers <= 0 {
		return 1
	}
	return c.Workers
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
