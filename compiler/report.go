package compiler

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/dialect/sql"
)

// Stage is a step of the generation of one entity.
type Stage string

// Stages, in pipeline order.
const (
	StageConfig     Stage = "config"
	StageConnect    Stage = "connect"
	StageIntrospect Stage = "introspect"
	StageSynthesize Stage = "synthesize"
	StageEmit       Stage = "emit"
)

// Outcome of a stage.
type Outcome string

// Stage outcomes.
const (
	OutcomeOK     Outcome = "ok"
	OutcomeReused Outcome = "reused" // connection already open in the run
	OutcomeFailed Outcome = "failed"
)

// Event records the outcome of one stage for one entity.
type Event struct {
	Entity  string
	Table   string
	Stage   Stage
	Outcome Outcome
	Err     error
	// Path is the written file, for emit events.
	Path string
	// Unit is set on successful synthesize and emit events.
	Unit    *gen.Unit
	Elapsed time.Duration
}

// LogAttrs returns the event as structured log attributes.
func (e *Event) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("entity", e.Entity),
		slog.String("stage", string(e.Stage)),
		slog.String("outcome", string(e.Outcome)),
		slog.Duration("elapsed", e.Elapsed),
	}
	if e.Table != "" {
		attrs = append(attrs, slog.String("table", e.Table))
	}
	if e.Path != "" {
		attrs = append(attrs, slog.String("path", e.Path))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("err", e.Err.Error()))
	}
	return attrs
}

// Report describes a generation run.
type Report struct {
	RunID   uuid.UUID
	Started time.Time
	Elapsed time.Duration
	Events  []*Event
	// Queries aggregates the statistics of the connections of the run.
	Queries sql.StatsSnapshot
	// Files and Bytes count the output written by the run.
	Files int
	Bytes int64
}

func newReport() *Report {
	return &Report{RunID: uuid.New(), Started: time.Now()}
}

func (r *Report) add(e *Event) { r.Events = append(r.Events, e) }

func (r *Report) addQueries(s sql.StatsSnapshot) {
	r.Queries = r.Queries.Add(s)
}

func (r *Report) addWritten(m gen.WriterMetrics) {
	r.Files += m.FilesGenerated
	r.Bytes += m.TotalBytes
}

func (r *Report) finish() { r.Elapsed = time.Since(r.Started) }

// Failed returns the failed events, one per failed entity.
func (r *Report) Failed() []*Event {
	var failed []*Event
	for _, e := range r.Events {
		if e.Outcome == OutcomeFailed {
			failed = append(failed, e)
		}
	}
	return failed
}

// Units returns the units that were emitted.
func (r *Report) Units() []*gen.Unit {
	var units []*gen.Unit
	for _, e := range r.Events {
		if e.Stage == StageEmit && e.Outcome == OutcomeOK {
			units = append(units, e.Unit)
		}
	}
	return units
}

// Paths returns the written files.
func (r *Report) Paths() []string {
	var paths []string
	for _, e := range r.Events {
		if e.Stage == StageEmit && e.Path != "" {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Entities returns the names of the processed entities, in order.
func (r *Report) Entities() []string {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	for _, e := range r.Events {
		if !seen[e.Entity] {
			seen[e.Entity] = true
			names = append(names, e.Entity)
		}
	}
	return names
}

// LogAttrs returns a summary of the run as structured log attributes.
func (r *Report) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("run_id", r.RunID.String()),
		slog.Int("entities", len(r.Entities())),
		slog.Int("units", len(r.Units())),
		slog.Int("failed", len(r.Failed())),
		slog.Int64("queries", r.Queries.TotalQueries),
		slog.Int("files", r.Files),
		slog.Int64("bytes", r.Bytes),
		slog.Duration("elapsed", r.Elapsed),
	}
}
