package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// NewHideCommand creates the hide command
func NewHideCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hide <file>...",
		Short: "Hide files from the file list",
		Long: `Hide files from the file list. Hidden files stay in the workspace,
are still part of the preview and are still exported.

Examples:
  pagesmith hide script.js
  pagesmith hide vendor.js reset.css`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
				if err := requireFiles(ws, args); err != nil {
					return err
				}
				for _, name := range args {
					if err := ws.HideFile(name); err != nil {
						return err
					}
					cli.PrintSuccess("Hid %s", name)
				}
				return nil
			})
		},
	}

	return cmd
}

// NewUnhideCommand creates the unhide command
func NewUnhideCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unhide <file>...",
		Short: "Show hidden files in the file list again",
		Long: `Return hidden files to the file list.

Examples:
  pagesmith unhide script.js`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
				if err := requireFiles(ws, args); err != nil {
					return err
				}
				for _, name := range args {
					if err := ws.UnhideFile(name); err != nil {
						return err
					}
					cli.PrintSuccess("Unhid %s", name)
				}
				return nil
			})
		},
	}

	return cmd
}

// requireFiles fails before any change is made when one of names is not a
// workspace file, so multi-file commands apply all or nothing.
func requireFiles(ws *workspace.Workspace, names []string) error {
	var missing []string
	for _, name := range names {
		if !ws.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, strings.Join(missing, ", "))
	}
	return nil
}
