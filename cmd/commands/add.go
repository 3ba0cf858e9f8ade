package commands

import (
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	addContent string
)

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new file in the workspace",
		Long: `Create a new file in the workspace and make it the active file.

The name is trimmed. Adding a name that already exists fails.

Examples:
  # Add an empty page
  pagesmith add about.html

  # Add a stylesheet with content
  pagesmith add theme.css --content "body { margin: 0; }"`,
		Aliases: []string{"new", "create"},
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFileName(args[0]); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runAdd,
	}

	cmd.Flags().StringVarP(&addContent, "content", "c", "", "Initial file content")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		if err := ws.AddFile(args[0], addContent); err != nil {
			return err
		}
		cli.PrintSuccess("Added %s", ws.Active())
		return nil
	})
}
