package compiler

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/dialect/sql"
)

func TestReport(t *testing.T) {
	r := newReport()
	u := &gen.Unit{Name: "ModelUser"}
	r.add(&Event{Entity: "User", Stage: StageConfig, Outcome: OutcomeOK})
	r.add(&Event{Entity: "User", Table: "users", Stage: StageEmit, Outcome: OutcomeOK, Path: "model_user.go", Unit: u})
	r.add(&Event{Entity: "Order", Table: "Order", Stage: StageIntrospect, Outcome: OutcomeFailed, Err: errors.New("boom")})
	r.addQueries(sql.StatsSnapshot{TotalQueries: 2, TotalDuration: time.Millisecond})
	r.addQueries(sql.StatsSnapshot{TotalQueries: 1, Errors: 1})
	r.addWritten(gen.WriterMetrics{FilesGenerated: 1, TotalBytes: 512})
	r.finish()

	assert.Equal(t, []string{"User", "Order"}, r.Entities())
	assert.Equal(t, []*gen.Unit{u}, r.Units())
	assert.Equal(t, []string{"model_user.go"}, r.Paths())
	assert.Len(t, r.Failed(), 1)
	assert.EqualValues(t, 3, r.Queries.TotalQueries)
	assert.EqualValues(t, 1, r.Queries.Errors)

	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.LogAttrs(t.Context(), slog.LevelInfo, "generated", r.LogAttrs()...)
	out := buf.String()
	assert.Contains(t, out, "run_id="+r.RunID.String())
	assert.Contains(t, out, "entities=2")
	assert.Contains(t, out, "units=1")
	assert.Contains(t, out, "failed=1")
	assert.Contains(t, out, "files=1")
	assert.Contains(t, out, "bytes=512")
	assert.Contains(t, out, "queries=3")

	buf.Reset()
	logger.LogAttrs(t.Context(), slog.LevelError, "entity failed", r.Failed()[0].LogAttrs()...)
	assert.Contains(t, buf.String(), "stage=introspect")
	assert.Contains(t, buf.String(), "err=boom")
	assert.Contains(t, buf.String(), "table=Order")
}

func TestParse(t *testing.T) {
	p, err := ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyContinue, p)
	p, err = ParsePolicy("abort")
	assert.NoError(t, err)
	assert.Equal(t, PolicyAbort, p)
	_, err = ParsePolicy("later")
	assert.Error(t, err)

	s, err := ParseStrategy("")
	assert.NoError(t, err)
	assert.Equal(t, StrategyQuery, s)
	s, err = ParseStrategy("catalog")
	assert.NoError(t, err)
	assert.Equal(t, StrategyCatalog, s)
	_, err = ParseStrategy("psychic")
	assert.Error(t, err)
}
