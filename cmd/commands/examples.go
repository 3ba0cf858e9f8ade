package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/examples"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// NewExamplesCommand creates the examples command
func NewExamplesCommand() *cobra.Command {
	var listOnly bool
	var force bool

	cmd := &cobra.Command{
		Use:   "examples [category]",
		Short: "Add example snippets to the workspace",
		Long: `Add ready-made HTML, CSS and JavaScript snippets to the workspace.

Every example file becomes a workspace file and is composed into the preview
like any other. Files that already exist are skipped unless --force is given.

Categories:
  layout      - Page layouts (landing page, sidebar)
  components  - Reusable components (cards, buttons)
  scripts     - Small behaviours (dark mode toggle, smooth scroll)
  all         - Every category (default)

Examples:
  # List available examples without installing
  pagesmith examples --list

  # Add the layout examples
  pagesmith examples layout

  # Overwrite files installed earlier
  pagesmith examples components --force`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !examples.ValidCategory(args[0]) {
				return fmt.Errorf("invalid category '%s'. Valid categories: %s",
					args[0], strings.Join(examples.Categories(), ", "))
			}
			if listOnly {
				return nil
			}
			return requireProject(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			category := examples.CategoryAll
			if len(args) > 0 {
				category = args[0]
			}
			if listOnly {
				return listExamples(cmd, category)
			}
			return installExamples(cmd, category, force)
		},
	}

	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List available examples without installing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing example files")

	return cmd
}

func listExamples(cmd *cobra.Command, category string) error {
	out := cmd.OutOrStdout()
	quiet := cli.Quiet()

	for _, set := range examples.GetExamples(category) {
		if !quiet {
			fmt.Fprintf(out, "[%s] %s\n", set.Category, set.Name)
			fmt.Fprintf(out, "   %s\n", set.Description)
		}
		for _, f := range set.Files {
			fmt.Fprintf(out, "   • %s (%s)\n", f.Name, cli.FormatBytes(int64(len(f.Content))))
		}
		if !quiet {
			fmt.Fprintln(out)
		}
	}

	if !quiet {
		fmt.Fprintf(out, "To install these examples, run: pagesmith examples %s\n", category)
	}
	return nil
}

func installExamples(cmd *cobra.Command, category string, force bool) error {
	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		installed, skipped := 0, 0
		for _, set := range examples.GetExamples(category) {
			cli.PrintInfo("Installing %s...", set.Name)
			for _, f := range set.Files {
				err := examples.Install(ws, f, force)
				if errors.Is(err, examples.ErrExists) {
					skipped++
					cli.PrintWarning("Skipped %s (already exists, use --force to overwrite)", f.Name)
					continue
				}
				if err != nil {
					return fmt.Errorf("failed to install %s: %w", f.Name, err)
				}
				installed++
				cli.PrintSuccess("Installed %s", f.Name)
			}
		}

		if skipped > 0 {
			cli.PrintInfo("Installed %d files, skipped %d", installed, skipped)
		} else {
			cli.PrintInfo("Installed %d files", installed)
		}
		return nil
	})
}
