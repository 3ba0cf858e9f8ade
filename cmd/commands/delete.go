package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	deleteForce bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <file>",
		Short: "Delete a file from the workspace",
		Long: `Permanently delete a file from the workspace.

The last remaining file cannot be deleted. If the deleted file was
active, the first remaining file becomes active.

Examples:
  # Delete a file (with confirmation)
  pagesmith delete about.html

  # Force delete without confirmation
  pagesmith delete old.css --force`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Force deletion without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		if !ws.Has(name) {
			return fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}
		if ws.Len() == 1 {
			return models.ErrLastFile
		}

		if !deleteForce {
			confirmed, err := cli.Confirm(fmt.Sprintf("Delete %s? This cannot be undone.", name), false)
			if err != nil {
				return err
			}
			if !confirmed {
				cli.PrintInfo("Deletion cancelled")
				return nil
			}
		}

		if err := ws.DeleteFile(name); err != nil {
			return err
		}
		cli.PrintSuccess("Deleted %s", name)
		return nil
	})
}
