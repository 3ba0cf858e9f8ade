package commands

import (
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// requireProject is the PreRunE shared by every command that works on an
// existing project.
func requireProject(cmd *cobra.Command, args []string) error {
	return cli.NewCommandContext().ValidateProject()
}

// withWorkspace loads the workspace, runs fn and releases the store.
func withWorkspace(cmd *cobra.Command, fn func(c *cli.CommandContext, ws *workspace.Workspace) error) error {
	c := cli.NewCommandContext()
	ws, err := c.OpenWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c, ws)
}

// outputFormat returns the value of the persistent --output flag, or "text"
// when the command runs outside the root command.
func outputFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("output")
	if err != nil || format == "" {
		return "text"
	}
	return format
}

// All returns every project command registered on the root command.
func All() []*cobra.Command {
	return []*cobra.Command{
		NewListCommand(),
		NewShowCommand(),
		NewAddCommand(),
		NewUploadCommand(),
		NewDeleteCommand(),
		NewRenameCommand(),
		NewHideCommand(),
		NewUnhideCommand(),
		NewEditCommand(),
		NewPreviewCommand(),
		NewExportCommand(),
		NewClipboardCommand(),
		NewDiffCommand(),
		NewConvertCommand(),
		NewBlocksCommand(),
		NewSearchCommand(),
		NewExamplesCommand(),
		NewConfigCommand(),
	}
}
