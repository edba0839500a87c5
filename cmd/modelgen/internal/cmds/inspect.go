package cmds

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/internal/logger"
	"github.com/syssam/modelgen/internal/render"
)

type cmdInspect struct {
	global *CmdGlobal

	flagConnection    string
	flagIntrospection string
	flagFormat        string
}

// inspectColumn is one row of the inspect output.
type inspectColumn struct {
	Position     int    `json:"position" yaml:"position"`
	Column       string `json:"column" yaml:"column"`
	SQLType      string `json:"sql_type" yaml:"sql_type"`
	DatabaseType string `json:"database_type,omitempty" yaml:"database_type,omitempty"`
	Semantic     string `json:"semantic" yaml:"semantic"`
	Getter       string `json:"getter" yaml:"getter"`
	Setter       string `json:"setter" yaml:"setter"`
}

func (c *cmdInspect) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "inspect [table]"
	cmd.Short = "Show the columns of a table"
	cmd.Long = `Description:
  Show the columns of a table

  Prints each column with its SQL type, semantic type and the accessor pair
  generated for it. Without a table, lists the tables of the database.
`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = c.Run

	cmd.Flags().StringVar(&c.flagConnection, "conn", "", "Connection properties file")
	cmd.Flags().StringVar(&c.flagIntrospection, "introspection", "", "Column source: query, catalog or snapshot")
	cmd.Flags().StringVarP(&c.flagFormat, "format", "f", render.FormatTable, "Format (table|csv|json|yaml)")

	return cmd
}

func (c *cmdInspect) Run(cmd *cobra.Command, args []string) error {
	err := render.ValidFormat(c.flagFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	src, err := c.global.openSource(ctx, c.flagIntrospection, c.flagConnection)
	if err != nil {
		return err
	}

	defer func() {
		cerr := src.Close()
		if cerr != nil {
			slog.WarnContext(ctx, "Failed to close connection", logger.Err(cerr))
		}
	}()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		tables, err := src.Tables(ctx)
		if err != nil {
			return err
		}

		data := make([][]string, 0, len(tables))
		for _, t := range tables {
			data = append(data, []string{t})
		}

		return render.RenderTable(out, c.flagFormat, []string{"TABLE"}, data, tables)
	}

	columns, err := src.Introspect(ctx, args[0])
	if err != nil {
		return err
	}

	rows := make([]inspectColumn, 0, len(columns))
	data := make([][]string, 0, len(columns))
	for _, col := range columns {
		a := gen.NewAccessor(col)
		r := inspectColumn{
			Position:     col.Position,
			Column:       col.Name,
			SQLType:      col.Code.String(),
			DatabaseType: col.DatabaseType,
			Semantic:     a.Type.String(),
			Getter:       a.Getter,
			Setter:       a.Setter,
		}

		rows = append(rows, r)
		data = append(data, []string{strconv.Itoa(r.Position), r.Column, r.SQLType, r.DatabaseType, r.Semantic, fmt.Sprintf("%s/%s", r.Getter, r.Setter)})
	}

	header := []string{"POSITION", "COLUMN", "SQL TYPE", "DATABASE TYPE", "SEMANTIC", "ACCESSOR"}
	return render.RenderTable(out, c.flagFormat, header, data, rows)
}
