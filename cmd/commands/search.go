package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/search"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query   string          `json:"query" yaml:"query"`
	Count   int             `json:"count" yaml:"count"`
	Results []search.Result `json:"results" yaml:"results"`
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search workspace files",
		Long: `Search workspace files by name, role, hidden state and content.

Query Syntax:
  button               - Files whose content contains "button"
  "font-family: serif" - Quoted phrases
  name:index           - File names containing "index"
  role:css             - Stylesheets (also js, html)
  is:hidden            - Hidden files
  -role:js             - Negate a condition (also NOT role:js)

  Conditions are joined with AND unless OR is given.

Examples:
  # Find where a class is styled
  pagesmith search "role:css .card"

  # Scripts or pages
  pagesmith search "role:js OR role:html"

  # Hidden files, as JSON
  pagesmith search is:hidden -o json`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(outputFormat(cmd)); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	format := outputFormat(cmd)

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		var items []search.Item
		for _, f := range ws.Files() {
			items = append(items, search.Item{Name: f.Name, Content: f.Content, Hidden: ws.IsHidden(f.Name)})
		}

		results, err := search.NewEngine(items).Search(query)
		if err != nil {
			return err
		}

		if format != "text" {
			return cli.OutputResults(cmd.OutOrStdout(), format, SearchResultOutput{
				Query:   query,
				Count:   len(results),
				Results: results,
			})
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintf(out, "No files match %q\n", query)
			return nil
		}
		for _, r := range results {
			name := r.Name
			if r.Hidden {
				name += " (hidden)"
			}
			fmt.Fprintf(out, "%s  [%s]\n", name, r.Role)
			for _, l := range r.Lines {
				fmt.Fprintf(out, "  %4d: %s\n", l.Number, cli.TruncateString(l.Text, 100))
			}
		}
		return nil
	})
}
