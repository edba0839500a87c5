// Package cmds implements the modelgen command line.
package cmds

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/syssam/modelgen/config"
	"github.com/syssam/modelgen/internal/logger"
)

// CmdGlobal holds the state shared by all commands.
type CmdGlobal struct {
	Cmd *cobra.Command

	// Config is the project file, or the defaults when there is none.
	Config *config.Config
	// Dir is the project directory, the directory of the project file.
	Dir string

	FlagConfig  string
	FlagLogFile string
	FlagVerbose bool
	FlagDebug   bool
}

// PreRun configures logging and loads the project file.
func (c *CmdGlobal) PreRun(cmd *cobra.Command, args []string) error {
	// If calling the help or version, skip pre-run
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	_, err := logger.InitLogger(cmd.ErrOrStderr(), c.FlagLogFile, c.FlagVerbose, c.FlagDebug)
	if err != nil {
		return err
	}

	return c.LoadConfig()
}

// LoadConfig (re)loads the project file into Config.
func (c *CmdGlobal) LoadConfig() error {
	path := c.FlagConfig
	if path == "" {
		path = config.FileName
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	c.Dir = filepath.Dir(path)
	cfg, err := config.Load(path)
	if err != nil {
		// The project file is optional unless named explicitly.
		if c.FlagConfig != "" || !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		slog.Debug("No project file, using defaults", slog.String("path", path))
		cfg = config.Default()
	}

	cfg.Resolve(c.Dir)
	c.Config = cfg

	return nil
}

// Root returns the root command with every subcommand registered.
func Root() (*cobra.Command, *CmdGlobal) {
	app := &cobra.Command{}
	app.Use = "modelgen"
	app.Short = "Generate typed column accessors from database tables"
	app.Long = `Description:
  Generate typed column accessors from database tables

  modelgen reads the columns of the table backing each annotated entity and
  generates a type extending the base model with one getter and one setter
  per column.
`
	app.SilenceUsage = true
	app.SilenceErrors = true
	app.CompletionOptions = cobra.CompletionOptions{HiddenDefaultCmd: true}

	globalCmd := &CmdGlobal{Cmd: app}
	app.PersistentFlags().StringVarP(&globalCmd.FlagConfig, "config", "c", "", "Project file (default \"modelgen.yaml\")")
	app.PersistentFlags().StringVar(&globalCmd.FlagLogFile, "log-file", "", "Also write logs to this file")
	app.PersistentFlags().BoolVarP(&globalCmd.FlagVerbose, "verbose", "v", false, "Show informational messages")
	app.PersistentFlags().BoolVar(&globalCmd.FlagDebug, "debug", false, "Show debug messages, including SQL")

	app.PersistentPreRunE = globalCmd.PreRun

	generateCmd := cmdGenerate{global: globalCmd}
	app.AddCommand(generateCmd.Command())

	inspectCmd := cmdInspect{global: globalCmd}
	app.AddCommand(inspectCmd.Command())

	snapshotCmd := cmdSnapshot{global: globalCmd}
	app.AddCommand(snapshotCmd.Command())

	watchCmd := cmdWatch{global: globalCmd}
	app.AddCommand(watchCmd.Command())

	versionCmd := cmdVersion{}
	app.AddCommand(versionCmd.Command())

	return app, globalCmd
}
