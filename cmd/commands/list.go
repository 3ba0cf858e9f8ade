package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	listAll    bool
	listHidden bool
)

// FileEntry is one row of the list output
type FileEntry struct {
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Size   int    `json:"size" yaml:"size"`
	Hidden bool   `json:"hidden" yaml:"hidden"`
	Active bool   `json:"active" yaml:"active"`
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace files",
		Long: `List the files of the workspace in their stored order.

Hidden files are left out unless --all or --hidden is given. The active
file is marked with an asterisk.

Examples:
  # List visible files
  pagesmith list

  # Include hidden files
  pagesmith list --all

  # Only hidden files, as JSON
  pagesmith list --hidden -o json`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			format := outputFormat(cmd)
			if err := cli.ValidateOutputFormat(format); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runList,
	}

	cmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include hidden files")
	cmd.Flags().BoolVar(&listHidden, "hidden", false, "Show only hidden files")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	format := outputFormat(cmd)

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		entries := listEntries(ws, listAll, listHidden)

		if format != "text" {
			return cli.OutputResults(cmd.OutOrStdout(), format, entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No files to show.")
			return nil
		}

		table := cli.NewTableFormatter(cmd.OutOrStdout())
		table.Header("", "NAME", "ROLE", "SIZE", "HIDDEN")
		for _, e := range entries {
			marker := " "
			if e.Active {
				marker = "*"
			}
			hidden := ""
			if e.Hidden {
				hidden = "yes"
			}
			table.Row(marker, cli.TruncateString(e.Name, 40), e.Role, cli.FormatBytes(int64(e.Size)), hidden)
		}
		table.Flush()
		return nil
	})
}

func listEntries(ws *workspace.Workspace, all, hiddenOnly bool) []FileEntry {
	entries := []FileEntry{}
	for _, f := range ws.Files() {
		hidden := ws.IsHidden(f.Name)
		if hiddenOnly && !hidden {
			continue
		}
		if !all && !hiddenOnly && hidden {
			continue
		}
		entries = append(entries, FileEntry{
			Name:   f.Name,
			Role:   models.RoleOf(f.Name).String(),
			Size:   len(f.Content),
			Hidden: hidden,
			Active: ws.Active() == f.Name,
		})
	}
	return entries
}
