package cmds

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/syssam/modelgen/compiler"
	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/internal/logger"
)

// DefaultSnapshot is the snapshot file written when neither the flag nor
// the project name one.
const DefaultSnapshot = "schema.snapshot"

type cmdSnapshot struct {
	global *CmdGlobal

	flagConnection string
	flagOutput     string
	flagAll        bool
}

func (c *cmdSnapshot) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "snapshot [table...]"
	cmd.Short = "Save table metadata to a snapshot file"
	cmd.Long = `Description:
  Save table metadata to a snapshot file

  Reads the columns of the given tables, or of the tables backing the project
  entities, from the database catalog. The snapshot lets "generate" run with
  --introspection snapshot, without a database. With --all, every table of
  the default schema is saved.
`
	cmd.RunE = c.Run

	cmd.Flags().StringVar(&c.flagConnection, "conn", "", "Connection properties file")
	cmd.Flags().StringVarP(&c.flagOutput, "output", "o", "", "Snapshot file (default \"schema.snapshot\")")
	cmd.Flags().BoolVar(&c.flagAll, "all", false, "Save every table")

	return cmd
}

func (c *cmdSnapshot) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, err := c.output()
	if err != nil {
		return err
	}

	tables := args
	if len(tables) == 0 && !c.flagAll {
		tables, err = c.entityTables(cmd)
		if err != nil {
			return err
		}
	}

	src, err := c.global.openSource(ctx, string(compiler.StrategyCatalog), c.flagConnection)
	if err != nil {
		return err
	}

	defer func() {
		cerr := src.Close()
		if cerr != nil {
			slog.WarnContext(ctx, "Failed to close connection", logger.Err(cerr))
		}
	}()

	snap, err := src.Snapshot(ctx, tables...)
	if err != nil {
		return err
	}

	err = load.WriteSnapshot(path, snap)
	if err != nil {
		return fmt.Errorf("Failed to write snapshot: %w", err)
	}

	slog.Info("Snapshot written", slog.String("path", path), slog.Int("tables", len(snap.Tables)))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

	return nil
}

func (c *cmdSnapshot) output() (string, error) {
	switch {
	case c.flagOutput != "":
		return filepath.Abs(c.flagOutput)
	case c.global.Config.Snapshot != "":
		return c.global.Config.Snapshot, nil
	}

	return filepath.Join(c.global.Dir, DefaultSnapshot), nil
}

// entityTables returns the tables backing the project entities, in entity
// order and without duplicates.
func (c *cmdSnapshot) entityTables(cmd *cobra.Command) ([]string, error) {
	cfg, err := gen.NewConfig(c.global.Config.GenOptions()...)
	if err != nil {
		return nil, err
	}

	entities, err := compiler.Entities(cmd.Context(), c.global.Config, c.global.Dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(entities))
	tables := make([]string, 0, len(entities))
	for _, e := range entities {
		t := cfg.TableName(e)
		if !seen[t] {
			seen[t] = true
			tables = append(tables, t)
		}
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("No entities found in %q, name the tables or use --all", c.global.Dir)
	}

	return tables, nil
}
