package cmds

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/config"
)

type cmdGenerate struct {
	global *CmdGlobal

	flagTarget        string
	flagOutput        string
	flagPrefix        string
	flagPolicy        string
	flagIntrospection string
	flagSnapshot      string
	flagConnection    string
	flagDryRun        bool
}

func (c *cmdGenerate) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "generate [entity...]"
	cmd.Aliases = []string{"gen"}
	cmd.Short = "Generate accessor units"
	cmd.Long = `Description:
  Generate accessor units

  Generates one unit per entity declared in the project file or annotated with
  //modelgen:model in the project packages. Entity names restrict the run to
  those entities. Failed entities are reported and, unless the policy is
  "abort", the remaining entities are still generated.
`
	cmd.Example = `  modelgen generate
  modelgen generate User Order --dry-run
  modelgen generate --introspection snapshot --snapshot schema.snapshot`

	cmd.RunE = c.Run
	c.flags(cmd.Flags())

	return cmd
}

// flags registers the generation flags, shared with watch.
func (c *cmdGenerate) flags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.flagTarget, "target", "t", "", "Output language: go or java")
	fs.StringVarP(&c.flagOutput, "output", "o", "", "Write all units to this directory")
	fs.StringVar(&c.flagPrefix, "prefix", "", "Unit name prefix")
	fs.StringVar(&c.flagPolicy, "policy", "", "Failure policy: continue or abort")
	fs.StringVar(&c.flagIntrospection, "introspection", "", "Column source: query, catalog or snapshot")
	fs.StringVar(&c.flagSnapshot, "snapshot", "", "Schema snapshot file")
	fs.StringVar(&c.flagConnection, "conn", "", "Default connection properties file")
	fs.BoolVar(&c.flagDryRun, "dry-run", false, "Render units without writing them")
}

func (c *cmdGenerate) Run(cmd *cobra.Command, args []string) error {
	_, err := c.generate(cmd.Context(), cmd.OutOrStdout(), args)
	return err
}

// projectConfig returns the project file with the flags applied.
func (c *cmdGenerate) projectConfig() (*config.Config, error) {
	cfg := *c.global.Config
	set := func(dst *string, v string, path bool) error {
		if v == "" {
			return nil
		}

		if path {
			abs, err := filepath.Abs(v)
			if err != nil {
				return err
			}

			v = abs
		}

		*dst = v
		return nil
	}

	for _, f := range []struct {
		dst  *string
		v    string
		path bool
	}{
		{&cfg.Target, c.flagTarget, false},
		{&cfg.Prefix, c.flagPrefix, false},
		{&cfg.Policy, c.flagPolicy, false},
		{&cfg.Introspection, c.flagIntrospection, false},
		{&cfg.Output, c.flagOutput, true},
		{&cfg.Snapshot, c.flagSnapshot, true},
		{&cfg.Connection, c.flagConnection, true},
	} {
		err := set(f.dst, f.v, f.path)
		if err != nil {
			return nil, err
		}
	}

	if c.flagSnapshot != "" && c.flagIntrospection == "" {
		cfg.Introspection = config.IntrospectSnapshot
	}

	return &cfg, nil
}

func (c *cmdGenerate) generate(ctx context.Context, out io.Writer, names []string) (*compiler.Report, error) {
	cfg, err := c.projectConfig()
	if err != nil {
		return nil, err
	}

	opts := []compiler.Option{compiler.WithLogger(slog.Default())}
	if c.global.FlagDebug {
		opts = append(opts, compiler.WithDebug())
	}

	if c.flagDryRun {
		opts = append(opts, compiler.WithDryRun())
	}

	g, err := compiler.FromConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}

	entities, err := compiler.Entities(ctx, cfg, c.global.Dir)
	if err != nil {
		return nil, err
	}

	entities, err = selectEntities(entities, names)
	if err != nil {
		return nil, err
	}

	if len(entities) == 0 {
		slog.Warn("No entities found", slog.String("dir", c.global.Dir))
	}

	report, err := g.Run(ctx, entities)
	for _, e := range report.Events {
		if e.Outcome == compiler.OutcomeFailed {
			slog.LogAttrs(ctx, slog.LevelError, "Entity failed", e.LogAttrs()...)
			continue
		}

		slog.LogAttrs(ctx, slog.LevelDebug, "Stage done", e.LogAttrs()...)
		if e.Stage == compiler.StageEmit {
			if e.Path != "" {
				_, _ = fmt.Fprintln(out, e.Path)
			} else {
				_, _ = fmt.Fprintln(out, e.Unit.Name)
			}
		}
	}

	slog.LogAttrs(ctx, slog.LevelInfo, "Generation finished", report.LogAttrs()...)
	failed := len(report.Failed())
	if err != nil && failed > 0 {
		return report, fmt.Errorf("%d of %d entities failed: %w", failed, len(entities), err)
	}

	if err != nil {
		return report, err
	}

	return report, nil
}

// selectEntities keeps the entities with the given names, in the given
// order. No names keeps them all.
func selectEntities(entities []*load.Entity, names []string) ([]*load.Entity, error) {
	if len(names) == 0 {
		return entities, nil
	}

	selected := make([]*load.Entity, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(entities, func(e *load.Entity) bool { return e.Name == name })
		if i < 0 {
			return nil, modelgen.NewConfigError("entities", fmt.Sprintf("unknown entity %q", name), nil)
		}

		selected = append(selected, entities[i])
	}

	return selected, nil
}
