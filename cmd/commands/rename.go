package commands

import (
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a workspace file",
		Long: `Rename a workspace file in one step.

The file keeps its position, hidden state and active state. Renaming
onto an existing name fails.

Examples:
  pagesmith rename styles.css main.css`,
		Aliases: []string{"mv"},
		Args:    cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFileName(args[1]); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runRename,
	}

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		if err := ws.RenameFile(args[0], args[1]); err != nil {
			return err
		}
		cli.PrintSuccess("Renamed %s to %s", args[0], args[1])
		return nil
	})
}
