package gen

import (
	"errors"
	"go/token"

	"github.com/syssam/modelgen"
)

// Option configures code generation.
type Option func(*Config) error

// WithPrefix sets the unit name prefix. The prefix must be a valid
// identifier, as it starts the generated type name.
func WithPrefix(prefix string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(prefix) {
			return modelgen.NewConfigError("prefix", "invalid unit name prefix "+prefix, nil)
		}
		c.Prefix = prefix
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return modelgen.NewConfigError("target", "target directory cannot be empty", nil)
		}
		c.Target = dir
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

// WithTableNaming sets the table naming strategy by name.
// Supported strategies: "simple", "inflect".
func WithTableNaming(naming string) Option {
	return func(c *Config) error {
		switch n := TableNaming(naming); n {
		case "", TableNamingSimple:
			c.TableNaming = TableNamingSimple
		case TableNamingInflect:
			c.TableNaming = n
		default:
			return modelgen.NewConfigError("table_naming", "unsupported table naming "+naming+"; use simple or inflect", nil)
		}
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

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Prefix: DefaultPrefix, TableNaming: TableNamingSimple}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
