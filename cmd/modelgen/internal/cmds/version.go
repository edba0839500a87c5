package cmds

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/modelgen/internal/version"
)

type cmdVersion struct{}

func (c *cmdVersion) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "version"
	cmd.Short = "Show the modelgen version"
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdVersion) Run(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
	return err
}
