package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/diffview"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	diffStat bool
)

// NewDiffCommand creates the diff command
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file> <path>",
		Short: "Compare a workspace file with a local file",
		Long: `Show a line diff between a workspace file and a local file.

Lines only in the workspace are prefixed with "-", lines only in the local
file with "+". Use it before "pagesmith upload" to review an overwrite.

Examples:
  pagesmith diff styles.css ./styles.css
  pagesmith diff index.html ~/site/index.html --stat`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFilePath(args[1]); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runDiff,
	}

	cmd.Flags().BoolVar(&diffStat, "stat", false, "Only print the number of changed lines")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]
	format := outputFormat(cmd)

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		before, ok := ws.Content(name)
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}
		after, err := files.ReadUpload(path)
		if err != nil {
			return err
		}

		stats := diffview.Compute(before, string(after))
		if format == "json" || format == "yaml" {
			return cli.OutputResults(cmd.OutOrStdout(), format, stats)
		}
		if diffStat {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: +%d -%d\n", name, stats.Added, stats.Removed)
			return nil
		}
		if !stats.Changed() {
			cli.PrintInfo("No differences")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s (workspace)\n+++ %s\n", name, path)
		fmt.Fprint(cmd.OutOrStdout(), diffview.Unified(before, string(after)))
		return nil
	})
}
