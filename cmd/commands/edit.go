package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/diffview"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	editFrom string
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a workspace file in your editor",
		Long: `Edit a workspace file in your default editor ($EDITOR).

The content is opened in a temporary file and stored back when the
editor exits. With --from, the content is replaced by a local file or
stdin instead.

Examples:
  # Edit in $EDITOR
  pagesmith edit index.html

  # Edit with a specific editor
  EDITOR=vim pagesmith edit styles.css

  # Replace from stdin
  cat page.html | pagesmith edit index.html --from -`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runEdit,
	}

	cmd.Flags().StringVar(&editFrom, "from", "", "Replace content from a file, or - for stdin")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	name := args[0]

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		before, ok := ws.Content(name)
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}

		var after string
		if editFrom != "" {
			data, err := cli.ReadInput(editFrom, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			after = string(data)
		} else {
			edited, err := cli.NewEditorLauncher().EditContent(name, before)
			if err != nil {
				return err
			}
			after = edited
		}

		stats := diffview.Compute(before, after)
		if !stats.Changed() {
			cli.PrintInfo("No changes to %s", name)
			return nil
		}

		if err := ws.EditFile(name, after); err != nil {
			return err
		}
		cli.PrintSuccess("Saved %s (+%d -%d lines)", name, stats.Added, stats.Removed)
		return nil
	})
}
