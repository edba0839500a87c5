// Package config handles the modelgen project file and the connection
// properties files it points to.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/load"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the default name of the project file.
const FileName = "modelgen.yaml"

// Failure policies.
const (
	PolicyContinue = "continue"
	PolicyAbort    = "abort"
)

// Introspection strategies.
const (
	IntrospectQuery    = "query"
	IntrospectCatalog  = "catalog"
	IntrospectSnapshot = "snapshot"
)

// Config represents the modelgen.yaml project configuration file.
type Config struct {
	Version int `yaml:"version"`
	// Target is the output language: "go" or "java".
	Target string `yaml:"target,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
	// Policy is applied when an entity fails: "continue" or "abort".
	Policy        string `yaml:"policy,omitempty"`
	Introspection string `yaml:"introspection,omitempty"`
	TableNaming   string `yaml:"table_naming,omitempty"`
	// Connection is the default connection properties file.
	Connection string `yaml:"connection,omitempty"`
	// Output overrides the directory generated files are written to.
	Output string `yaml:"output,omitempty"`
	// Snapshot is the schema snapshot file used by the snapshot strategy.
	Snapshot string `yaml:"snapshot,omitempty"`
	// Packages are the package patterns scanned for annotated entities.
	Packages []string       `yaml:"packages,omitempty"`
	Entities []*load.Entity `yaml:"entities,omitempty"`
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Version:       CurrentConfigVersion,
		Target:        "go",
		Prefix:        gen.DefaultPrefix,
		Policy:        PolicyContinue,
		Introspection: IntrospectQuery,
		TableNaming:   string(gen.TableNamingSimple),
		Connection:    "db.properties",
		Packages:      []string{"./..."},
	}
}

// Load reads a Config from a file path. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, modelgen.NewConfigError("", "open project file "+path, err)
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	cfg.Packages = nil
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, modelgen.NewConfigError("", "decode project file "+path, err)
	}
	if len(cfg.Packages) == 0 && len(cfg.Entities) == 0 {
		cfg.Packages = []string{"./..."}
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
// All problems are reported, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Version != CurrentConfigVersion {
		errs = append(errs, modelgen.NewConfigError("version", fmt.Sprintf("unsupported config version %d", c.Version), nil))
	}
	if !slices.Contains([]string{"", PolicyContinue, PolicyAbort}, c.Policy) {
		errs = append(errs, modelgen.NewConfigError("policy", fmt.Sprintf("unsupported policy %q; use continue or abort", c.Policy), nil))
	}
	switch c.Introspection {
	case "", IntrospectQuery, IntrospectCatalog:
	case IntrospectSnapshot:
		if c.Snapshot == "" {
			errs = append(errs, modelgen.NewConfigError("snapshot", "snapshot introspection requires a snapshot file", nil))
		}
	default:
		errs = append(errs, modelgen.NewConfigError("introspection", fmt.Sprintf("unsupported introspection %q; use query, catalog or snapshot", c.Introspection), nil))
	}
	if _, err := gen.NewConfig(c.GenOptions()...); err != nil {
		errs = append(errs, err)
	}
	for i, e := range c.Entities {
		if e == nil || e.Name == "" {
			errs = append(errs, modelgen.NewConfigError(fmt.Sprintf("entities[%d].name", i), "entity name is required", nil))
		}
	}
	return errors.Join(errs...)
}

// GenOptions returns the generation options described by the file.
func (c *Config) GenOptions() []gen.Option {
	var opts []gen.Option
	if c.Prefix != "" {
		opts = append(opts, gen.WithPrefix(c.Prefix))
	}
	if c.Output != "" {
		opts = append(opts, gen.WithTarget(c.Output))
	}
	opts = append(opts, gen.WithTableNaming(c.TableNaming))
	return opts
}

// Resolve makes the relative paths of the file absolute against dir, which
// is usually the directory holding the project file.
func (c *Config) Resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Connection = abs(c.Connection)
	c.Output = abs(c.Output)
	c.Snapshot = abs(c.Snapshot)
	for _, e := range c.Entities {
		if e == nil {
			continue
		}
		e.Connection = abs(e.Connection)
		e.Dir = abs(e.Dir)
		if e.Dir == "" {
			e.Dir = dir
		}
	}
}
