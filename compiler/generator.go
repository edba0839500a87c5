// Package compiler runs the modelgen pipeline. For every source entity it
// loads the connection settings, connects to the database, reads the columns
// of the entity table, synthesizes the accessor unit and emits it.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/gen/golang"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/config"
	"github.com/syssam/modelgen/dialect/sql"
	"github.com/syssam/modelgen/dialect/sql/schema"
)

// Introspector reads the columns of a table, in ordinal order.
type Introspector interface {
	Introspect(ctx context.Context, table string) ([]*load.Column, error)
}

var (
	_ Introspector = (*sql.Introspector)(nil)
	_ Introspector = (*schema.Inspector)(nil)
	_ Introspector = (*load.Snapshot)(nil)
)

// Generator generates accessor units for source entities.
type Generator struct {
	cfg      *gen.Config
	genOpts  []gen.Option
	target   gen.Target
	writer   *gen.Writer
	connPath string
	resolve  Resolver
	open     Opener
	strategy Strategy
	snapshot *load.Snapshot
	policy   Policy
	logger   *slog.Logger
	slow     time.Duration
	debug    bool
	dryRun   bool
}

// New returns a Generator configured with the given options. All option
// errors are reported, joined.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		connPath: DefaultConnection,
		strategy: StrategyQuery,
		policy:   PolicyContinue,
		logger:   slog.Default(),
		slow:     time.Second,
	}
	var errs []error
	for _, opt := range opts {
		if err := opt(g); err != nil {
			errs = append(errs, err)
		}
	}
	if g.cfg == nil {
		g.cfg = &gen.Config{Prefix: gen.DefaultPrefix, TableNaming: gen.TableNamingSimple}
	}
	if err := g.cfg.ApplyAll(g.genOpts...); err != nil {
		errs = append(errs, err)
	}
	if g.target == nil {
		g.target = golang.New()
	}
	if hs, ok := g.target.(gen.HeaderSetter); ok && g.cfg.Header != "" {
		g.target = hs.SetHeader(g.cfg.Header)
		g.writer = nil
	}
	if g.writer == nil {
		g.writer = gen.NewWriter(g.target)
	}
	if g.resolve == nil {
		g.resolve = g.loadConnection
	}
	if g.open == nil {
		g.open = openConnection
	}
	if g.strategy == StrategySnapshot && g.snapshot == nil {
		errs = append(errs, modelgen.NewConfigError("snapshot", "snapshot introspection requires a snapshot", nil))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// Config returns the generation config.
func (g *Generator) Config() *gen.Config { return g.cfg }

// Target returns the render target.
func (g *Generator) Target() gen.Target { return g.target }

// GenerateForEntity generates the unit of a single entity. The connection
// opened for the call is closed before it returns, whatever the outcome.
func (g *Generator) GenerateForEntity(ctx context.Context, e *load.Entity) (unit *gen.Unit, report *Report, err error) {
	report = newReport()
	s := g.newSession()
	defer func() {
		if cerr := s.close(report); cerr != nil {
			err = errors.Join(err, cerr)
		}
		report.finish()
	}()
	unit, err = s.generate(ctx, e, report)
	return unit, report, err
}

// Run generates the units of all entities in order. Connections are shared
// by the entities using the same data source and closed when Run returns.
//
// With PolicyContinue a failed entity is recorded and the next one is
// processed; with PolicyAbort the run stops at the first failure. The
// returned error joins the errors of all failed entities.
func (g *Generator) Run(ctx context.Context, entities []*load.Entity) (report *Report, err error) {
	report = newReport()
	s := g.newSession()
	var errs []error
	defer func() {
		errs = append(errs, s.close(report))
		report.finish()
		err = errors.Join(errs...)
	}()
	for _, e := range entities {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.generate(ctx, e, report); err != nil {
			errs = append(errs, err)
			if g.policy == PolicyAbort {
				break
			}
		}
	}
	return report, nil
}

func (g *Generator) loadConnection(_ context.Context, e *load.Entity) (*config.Connection, error) {
	path := e.Connection
	if path == "" {
		path = g.connPath
	}
	return config.LoadConnection(path)
}

func openConnection(_ context.Context, c *config.Connection) (*sql.Driver, error) {
	return c.Open()
}

// session holds the connections opened during a run, keyed by data source.
type session struct {
	g       *Generator
	conns   map[string]*connection
	order   []string
	written gen.WriterMetrics // writer metrics when the session started
}

type connection struct {
	drv      *sql.Driver
	stats    *sql.StatsDriver
	redacted string
	intro    Introspector
}

func (g *Generator) newSession() *session {
	return &session{g: g, conns: make(map[string]*connection), written: g.writer.Metrics()}
}

func (s *session) generate(ctx context.Context, e *load.Entity, r *Report) (*gen.Unit, error) {
	if e == nil || e.Name == "" {
		err := modelgen.NewConfigError("name", "entity name is required", nil)
		r.add(&Event{Stage: StageConfig, Outcome: OutcomeFailed, Err: err})
		return nil, err
	}
	intro, err := s.introspector(ctx, e, r)
	if err != nil {
		return nil, err
	}
	table := s.g.cfg.TableName(e)

	start := time.Now()
	columns, err := intro.Introspect(ctx, table)
	if err != nil {
		if !modelgen.IsSchemaError(err) {
			err = modelgen.NewSchemaError(table, "", err)
		}
		err = modelgen.WithEntity(err, e.Name)
		r.add(&Event{Entity: e.Name, Table: table, Stage: StageIntrospect, Outcome: OutcomeFailed, Err: err, Elapsed: time.Since(start)})
		return nil, err
	}
	r.add(&Event{Entity: e.Name, Table: table, Stage: StageIntrospect, Outcome: OutcomeOK, Elapsed: time.Since(start)})

	start = time.Now()
	unit := s.g.cfg.Synthesize(e, s.g.target.Base(), columns)
	unit.Table = table
	r.add(&Event{Entity: e.Name, Table: table, Stage: StageSynthesize, Outcome: OutcomeOK, Unit: unit, Elapsed: time.Since(start)})

	start = time.Now()
	path, err := s.emit(e, unit)
	if err != nil {
		err = modelgen.WithEntity(err, e.Name)
		r.add(&Event{Entity: e.Name, Table: table, Stage: StageEmit, Outcome: OutcomeFailed, Err: err, Path: path, Elapsed: time.Since(start)})
		return nil, err
	}
	r.add(&Event{Entity: e.Name, Table: table, Stage: StageEmit, Outcome: OutcomeOK, Path: path, Unit: unit, Elapsed: time.Since(start)})
	return unit, nil
}

// introspector resolves and opens the connection of the entity, or returns
// a connection opened earlier in the run for the same data source.
func (s *session) introspector(ctx context.Context, e *load.Entity, r *Report) (Introspector, error) {
	if s.g.strategy == StrategySnapshot {
		return s.g.snapshot, nil
	}
	start := time.Now()
	c, err := s.g.resolve(ctx, e)
	if err != nil {
		if !modelgen.IsConfigError(err) {
			err = modelgen.NewConfigError("", "resolve connection", err)
		}
		err = modelgen.WithEntity(err, e.Name)
		r.add(&Event{Entity: e.Name, Stage: StageConfig, Outcome: OutcomeFailed, Err: err, Elapsed: time.Since(start)})
		return nil, err
	}
	r.add(&Event{Entity: e.Name, Stage: StageConfig, Outcome: OutcomeOK, Elapsed: time.Since(start)})

	start = time.Now()
	key := c.Dialect + "\x00" + c.Source
	if conn, ok := s.conns[key]; ok {
		r.add(&Event{Entity: e.Name, Stage: StageConnect, Outcome: OutcomeReused, Elapsed: time.Since(start)})
		return conn.intro, nil
	}
	drv, err := s.g.open(ctx, c)
	if err == nil {
		if perr := drv.Ping(ctx); perr != nil {
			err = errors.Join(perr, drv.Close())
		}
	}
	if err != nil {
		if !modelgen.IsConnectionError(err) {
			err = modelgen.NewConnectionError(c.Dialect, c.Redacted(), err)
		}
		err = modelgen.WithEntity(err, e.Name)
		r.add(&Event{Entity: e.Name, Stage: StageConnect, Outcome: OutcomeFailed, Err: err, Elapsed: time.Since(start)})
		return nil, err
	}
	conn := s.wrap(drv, c.Redacted())
	s.conns[key] = conn
	s.order = append(s.order, key)
	r.add(&Event{Entity: e.Name, Stage: StageConnect, Outcome: OutcomeOK, Elapsed: time.Since(start)})
	return conn.intro, nil
}

func (s *session) wrap(drv *sql.Driver, redacted string) *connection {
	stats := sql.NewStatsDriver(drv,
		sql.WithSlowThreshold(s.g.slow),
		sql.WithSlowQueryLog(s.g.logger),
	)
	var q sql.Querier = stats
	if s.g.debug {
		q = sql.NewDebugDriver(stats, s.g.logger)
	}
	c := &connection{drv: drv, stats: stats, redacted: redacted}
	switch s.g.strategy {
	case StrategyCatalog:
		c.intro = schema.NewInspector(drv)
	default:
		c.intro = sql.NewIntrospector(q)
	}
	return c
}

func (s *session) emit(e *load.Entity, u *gen.Unit) (string, error) {
	if s.g.dryRun {
		if _, err := s.g.target.Render(u); err != nil {
			return "", modelgen.NewEmissionError(u.Name, "", err)
		}
		return "", nil
	}
	return s.g.writer.Write(u, s.g.cfg.OutputDir(e))
}

// close closes every connection of the session. Close errors are joined.
func (s *session) close(r *Report) error {
	r.addWritten(s.g.writer.Metrics().Sub(s.written))
	var errs []error
	for _, key := range s.order {
		c := s.conns[key]
		r.addQueries(c.stats.Stats())
		if err := c.drv.Close(); err != nil {
			errs = append(errs, modelgen.NewConnectionError(c.drv.Dialect(), c.redacted, fmt.Errorf("close: %w", err)))
		}
	}
	s.conns, s.order = make(map[string]*connection), nil
	return errors.Join(errs...)
}
