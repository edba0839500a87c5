package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultSlowThreshold is the duration above which a query counts as slow.
const DefaultSlowThreshold = time.Second

// StatsSnapshot is a point-in-time copy of the statistics of a StatsDriver.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// Add returns the sum of two snapshots.
func (s StatsSnapshot) Add(o StatsSnapshot) StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries + o.TotalQueries,
		TotalDuration: s.TotalDuration + o.TotalDuration,
		SlowQueries:   s.SlowQueries + o.SlowQueries,
		Errors:        s.Errors + o.Errors,
	}
}

// AvgQueryDuration returns the average query duration.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	if s.TotalQueries == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalQueries)
}

// String implements the fmt.Stringer interface.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalDuration, s.AvgQueryDuration(), s.SlowQueries, s.Errors)
}

// SlowQueryHook is called for every query slower than the threshold.
type SlowQueryHook func(ctx context.Context, query string, duration time.Duration)

// StatsDriver counts the queries issued through a Querier. Introspection
// issues one query per table, so the counters describe a whole run.
type StatsDriver struct {
	Querier
	threshold time.Duration
	hook      SlowQueryHook

	queries atomic.Int64
	nanos   atomic.Int64
	slow    atomic.Int64
	errors  atomic.Int64
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the slow query threshold. Defaults to
// DefaultSlowThreshold.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) { s.threshold = d }
}

// WithSlowQueryHook sets the function called on slow queries.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) { s.hook = hook }
}

// WithSlowQueryLog logs slow queries as warnings.
func WithSlowQueryLog(logger *slog.Logger) StatsOption {
	return func(s *StatsDriver) {
		s.hook = func(ctx context.Context, query string, d time.Duration) {
			logger.WarnContext(ctx, "Slow query",
				slog.String("dialect", s.Dialect()),
				slog.String("sql", query),
				slog.Duration("duration", d),
			)
		}
	}
}

// NewStatsDriver wraps drv.
//
//	drv := sql.NewStatsDriver(conn, sql.WithSlowQueryLog(slog.Default()))
//	columns, err := sql.NewIntrospector(drv).Introspect(ctx, "users")
//	fmt.Println(drv.Stats())
func NewStatsDriver(drv Querier, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{Querier: drv, threshold: DefaultSlowThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the statistics collected so far.
func (d *StatsDriver) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  d.queries.Load(),
		TotalDuration: time.Duration(d.nanos.Load()),
		SlowQueries:   d.slow.Load(),
		Errors:        d.errors.Load(),
	}
}

// Query implements Querier.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Querier.Query(ctx, query, args, v)
	elapsed := time.Since(start)

	d.queries.Add(1)
	d.nanos.Add(int64(elapsed))
	if err != nil {
		d.errors.Add(1)
	}
	if elapsed > d.threshold {
		d.slow.Add(1)
		if d.hook != nil {
			d.hook(ctx, query, elapsed)
		}
	}
	return err
}

// DebugDriver logs every query at debug level before running it.
type DebugDriver struct {
	Querier
	logger *slog.Logger
}

// NewDebugDriver wraps drv. A nil logger uses slog.Default.
func NewDebugDriver(drv Querier, logger *slog.Logger) *DebugDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{Querier: drv, logger: logger}
}

// Query implements Querier.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.logger.DebugContext(ctx, "Query", slog.String("dialect", d.Dialect()), slog.String("sql", query), slog.Any("args", args))
	return d.Querier.Query(ctx, query, args, v)
}
