package gen

import (
	"errors"
	"maps"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultHeader is the file header comment of generated artifacts.
const DefaultHeader = "// Code generated by odatagen. DO NOT EDIT."

// Config holds the global generation configuration.
type Config struct {
	// Target is the directory artifacts are written to.
	Target string
	// Package is the package clause of generated files. Derived from Target
	// when empty.
	Package string
	// Header is the comment placed above the package clause.
	Header string
	// Types extends the builtin EDM type table.
	Types map[string]GoType
	// Storage persists artifacts. Defaults to DirStorage on Target.
	Storage Storage
	// Logger receives warnings and progress. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the package name of generated files.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if PackageName(pkg) != pkg {
			return NewConfigError("Package", pkg, "package must be a lowercase alphanumeric Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTypes adds EDM type mappings. Values are Go type references as
// accepted by ParseGoType, e.g. "github.com/google/uuid.UUID" or "int64".
func WithTypes(types map[string]string) Option {
	return func(c *Config) error {
		if c.Types == nil {
			c.Types = make(map[string]GoType, len(types))
		}
		for edm, ref := range types {
			if !strings.HasPrefix(edm, "Edm.") {
				return NewConfigError("Types", edm, "EDM type names start with \"Edm.\"")
			}
			t, err := ParseGoType(ref)
			if err != nil {
				return err
			}
			c.Types[edm] = t
		}
		return nil
	}
}

// WithGoTypes adds already parsed EDM type mappings.
func WithGoTypes(types map[string]GoType) Option {
	return func(c *Config) error {
		if c.Types == nil {
			c.Types = make(map[string]GoType, len(types))
		}
		maps.Copy(c.Types, types)
		return nil
	}
}

// WithStorage sets where artifacts are persisted.
func WithStorage(s Storage) Option {
	return func(c *Config) error {
		if s == nil {
			return NewConfigError("Storage", nil, "storage cannot be nil")
		}
		c.Storage = s
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options and fills in the
// defaults for everything left unset.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.defaults(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) defaults() error {
	if c.Storage == nil {
		if c.Target == "" {
			return NewConfigError("Target", nil, "missing target directory in config")
		}
		c.Storage = DirStorage{Dir: c.Target}
	}
	if c.Package == "" {
		c.Package = PackageName(c.Target)
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return nil
}
