package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/preview"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	clipboardMinify bool
)

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard [file]",
		Short: "Copy the composed preview or a file to the clipboard",
		Long: `Copy content to the system clipboard.

Without arguments the composed preview document is copied, ready to be
pasted into an HTML file or an online playground. With a file name, that
file's content is copied.

Examples:
  # Copy the composed document
  pagesmith clipboard

  # Copy one file
  pagesmith clipboard styles.css`,
		Args:    cobra.MaximumNArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: requireProject,
		RunE:    runClipboard,
	}

	cmd.Flags().BoolVar(&clipboardMinify, "minify", false, "Minify before copying")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		label := "composed preview"
		content := ws.Preview()
		var err error

		if len(args) == 1 {
			var ok bool
			content, ok = ws.Content(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", models.ErrNotFound, args[0])
			}
			label = args[0]
			if clipboardMinify {
				content, err = preview.MinifyFile(args[0], content)
			}
		} else if clipboardMinify {
			content, err = preview.Minify(content)
		}
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("Copied %s to clipboard (%s)", label, cli.FormatBytes(int64(len(content))))
		return nil
	})
}
