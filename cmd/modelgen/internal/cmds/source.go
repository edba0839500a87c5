package cmds

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/config"
	"github.com/syssam/modelgen/dialect/sql"
	"github.com/syssam/modelgen/dialect/sql/schema"
)

// schemaSource reads table metadata for the inspect and snapshot commands.
type schemaSource struct {
	strategy compiler.Strategy
	drv      *sql.Driver
	snapshot *load.Snapshot
	// intro reads the columns of one table.
	intro compiler.Introspector
}

// openSource opens the source selected by strategy. connPath overrides the
// default connection of the project.
func (c *CmdGlobal) openSource(ctx context.Context, strategy, connPath string) (*schemaSource, error) {
	if strategy == "" {
		strategy = c.Config.Introspection
	}

	st, err := compiler.ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}

	src := &schemaSource{strategy: st}
	if st == compiler.StrategySnapshot {
		if c.Config.Snapshot == "" {
			return nil, modelgen.NewConfigError("snapshot", "snapshot introspection requires a snapshot file", nil)
		}

		src.snapshot, err = load.ReadSnapshot(c.Config.Snapshot)
		if err != nil {
			return nil, err
		}

		src.intro = src.snapshot
		return src, nil
	}

	if connPath == "" {
		connPath = c.Config.Connection
	} else if connPath, err = filepath.Abs(connPath); err != nil {
		return nil, err
	}

	conn, err := config.LoadConnection(connPath)
	if err != nil {
		return nil, err
	}

	slog.Debug("Connecting", slog.String("dialect", conn.Dialect), slog.String("source", conn.Redacted()))
	src.drv, err = conn.Open()
	if err != nil {
		return nil, err
	}

	err = src.drv.Ping(ctx)
	if err != nil {
		_ = src.drv.Close()
		return nil, modelgen.NewConnectionError(conn.Dialect, conn.Redacted(), err)
	}

	var q sql.Querier = src.drv
	if c.FlagDebug {
		q = sql.NewDebugDriver(q, slog.Default())
	}

	if st == compiler.StrategyCatalog {
		src.intro = schema.NewInspector(src.drv)
	} else {
		src.intro = sql.NewIntrospector(q)
	}

	return src, nil
}

// Tables lists the tables known to the source, sorted by name.
func (s *schemaSource) Tables(ctx context.Context) ([]string, error) {
	if s.snapshot != nil {
		names := make([]string, 0, len(s.snapshot.Tables))
		for _, t := range s.snapshot.Tables {
			names = append(names, t.Name)
		}

		slices.Sort(names)
		return names, nil
	}

	return schema.NewInspector(s.drv).Tables(ctx)
}

// Introspect reads the columns of table.
func (s *schemaSource) Introspect(ctx context.Context, table string) ([]*load.Column, error) {
	return s.intro.Introspect(ctx, table)
}

// Snapshot captures the given tables from the database catalog.
func (s *schemaSource) Snapshot(ctx context.Context, tables ...string) (*load.Snapshot, error) {
	if s.snapshot != nil {
		return nil, modelgen.NewConfigError("introspection", "cannot take a snapshot of a snapshot", nil)
	}

	return schema.NewInspector(s.drv).Snapshot(ctx, tables...)
}

// Close releases the database connection, if any.
func (s *schemaSource) Close() error {
	if s.drv == nil {
		return nil
	}

	return s.drv.Close()
}
