package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/config"
	"github.com/syssam/modelgen/dialect/sql"
)

// DefaultConnection is the connection properties file used for entities
// that do not name one.
const DefaultConnection = "db.properties"

// Policy decides what a run does after an entity failed.
type Policy string

// Failure policies.
const (
	// PolicyContinue records the failure and processes the remaining entities.
	PolicyContinue Policy = config.PolicyContinue
	// PolicyAbort stops the run at the first failure.
	PolicyAbort Policy = config.PolicyAbort
)

// ParsePolicy parses a policy name. The empty name is PolicyContinue.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(name); p {
	case "", PolicyContinue:
		return PolicyContinue, nil
	case PolicyAbort:
		return p, nil
	default:
		return "", modelgen.NewConfigError("policy", fmt.Sprintf("unsupported policy %q", name), nil)
	}
}

// Strategy selects how table columns are read.
type Strategy string

// Introspection strategies.
const (
	// StrategyQuery describes the result set of a query matching no row.
	StrategyQuery Strategy = config.IntrospectQuery
	// StrategyCatalog reads the database catalog.
	StrategyCatalog Strategy = config.IntrospectCatalog
	// StrategySnapshot reads a schema snapshot file; no database is used.
	StrategySnapshot Strategy = config.IntrospectSnapshot
)

// ParseStrategy parses a strategy name. The empty name is StrategyQuery.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case "", StrategyQuery:
		return StrategyQuery, nil
	case StrategyCatalog, StrategySnapshot:
		return s, nil
	default:
		return "", modelgen.NewConfigError("introspection", fmt.Sprintf("unsupported introspection %q", name), nil)
	}
}

// Resolver returns the connection settings of an entity.
type Resolver func(ctx context.Context, e *load.Entity) (*config.Connection, error)

// Opener opens a driver for connection settings.
type Opener func(ctx context.Context, c *config.Connection) (*sql.Driver, error)

// Option configures a Generator.
type Option func(*Generator) error

// WithConfig sets the generation config.
func WithConfig(cfg *gen.Config) Option {
	return func(g *Generator) error {
		if cfg == nil {
			return modelgen.NewConfigError("", "nil generation config", nil)
		}
		c := *cfg
		g.cfg = &c
		return nil
	}
}

// WithGenOptions applies generation options on top of the config.
func WithGenOptions(opts ...gen.Option) Option {
	return func(g *Generator) error {
		g.genOpts = append(g.genOpts, opts...)
		return nil
	}
}

// WithTarget sets the render target. Defaults to the Go target.
func WithTarget(t gen.Target) Option {
	return func(g *Generator) error {
		if t == nil {
			return modelgen.NewConfigError("target", "nil target", nil)
		}
		g.target = t
		return nil
	}
}

// WithWriter sets the writer, and the target it renders with.
func WithWriter(w *gen.Writer) Option {
	return func(g *Generator) error {
		if w == nil || w.Target() == nil {
			return modelgen.NewConfigError("target", "writer without target", nil)
		}
		g.writer = w
		g.target = w.Target()
		return nil
	}
}

// WithDefaultConnection sets the properties file used for entities that do
// not name one.
func WithDefaultConnection(path string) Option {
	return func(g *Generator) error {
		g.connPath = path
		return nil
	}
}

// WithResolver replaces the loading of connection properties files.
func WithResolver(r Resolver) Option {
	return func(g *Generator) error {
		g.resolve = r
		return nil
	}
}

// WithOpener replaces how drivers are opened.
func WithOpener(o Opener) Option {
	return func(g *Generator) error {
		g.open = o
		return nil
	}
}

// WithStrategy sets the introspection strategy.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) error {
		if _, err := ParseStrategy(string(s)); err != nil {
			return err
		}
		g.strategy = s
		return nil
	}
}

// WithSnapshot reads columns from the snapshot instead of a database.
func WithSnapshot(s *load.Snapshot) Option {
	return func(g *Generator) error {
		g.snapshot = s
		g.strategy = StrategySnapshot
		return nil
	}
}

// WithPolicy sets the failure policy of Run.
func WithPolicy(p Policy) Option {
	return func(g *Generator) error {
		if _, err := ParsePolicy(string(p)); err != nil {
			return err
		}
		g.policy = p
		return nil
	}
}

// WithLogger sets the logger used for slow and debug query logs.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) error {
		if l != nil {
			g.logger = l
		}
		return nil
	}
}

// WithSlowThreshold sets the duration above which a query is logged as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(g *Generator) error {
		g.slow = d
		return nil
	}
}

// WithDebug logs every introspection query at debug level.
func WithDebug() Option {
	return func(g *Generator) error {
		g.debug = true
		return nil
	}
}

// WithDryRun renders units without writing them.
func WithDryRun() Option {
	return func(g *Generator) error {
		g.dryRun = true
		return nil
	}
}
