package commands

import (
	"fmt"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	showWrap int
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display the content of a workspace file",
		Long: `Display the content of a workspace file.

Examples:
  # Show a file
  pagesmith show index.html

  # Wrap long lines at 80 columns
  pagesmith show styles.css --wrap 80

  # Output as JSON
  pagesmith show script.js -o json`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runShow,
	}

	cmd.Flags().IntVar(&showWrap, "wrap", 0, "Wrap lines at the given width (0 disables)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	format := outputFormat(cmd)

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		content, ok := ws.Content(name)
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}

		switch format {
		case "json", "yaml":
			return cli.OutputResults(cmd.OutOrStdout(), format, models.File{Name: name, Content: content})
		default:
			if showWrap > 0 {
				content = wordwrap.String(content, showWrap)
			}
			fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		}
	})
}
