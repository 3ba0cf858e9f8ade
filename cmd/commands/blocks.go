package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/canvas"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	blocksSample bool
	blocksInto   string
)

// NewBlocksCommand creates the blocks command
func NewBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks [type...]",
		Short: "Build a page from builder blocks",
		Long: `Build a page from page-builder blocks without opening the TUI.

Without arguments the available block types are listed with the content a
new block starts with. With arguments, one block of each type is placed on
the canvas in order and the rendered page is printed. Use -o json or -o yaml
to print the blocks themselves.

Block types: heading, paragraph, image, header, footer

Examples:
  # List block types
  pagesmith blocks

  # Render a page
  pagesmith blocks header heading paragraph footer

  # Start from the sample layout and store the page in the workspace
  pagesmith blocks --sample image --into page.html`,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(outputFormat(cmd)); err != nil {
				return err
			}
			if blocksInto == "" {
				return nil
			}
			if err := cli.ValidateFileName(blocksInto); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runBlocks,
	}

	cmd.Flags().BoolVar(&blocksSample, "sample", false, "Start from the sample layout")
	cmd.Flags().StringVar(&blocksInto, "into", "", "Store the rendered page in a workspace file")

	return cmd
}

// BlockTypeOutput describes one palette entry.
type BlockTypeOutput struct {
	Type    models.BlockType `json:"type" yaml:"type"`
	Label   string           `json:"label" yaml:"label"`
	Content string           `json:"content" yaml:"content"`
}

func runBlocks(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !blocksSample {
		return listBlockTypes(cmd)
	}

	types := make([]models.BlockType, 0, len(args))
	for _, arg := range args {
		t, err := models.ParseBlockType(arg)
		if err != nil {
			return fmt.Errorf("%w (valid: %s)", err, blockTypeNames())
		}
		types = append(types, t)
	}

	c := canvas.New()
	if blocksSample {
		c = canvas.NewSample()
	}
	for _, t := range types {
		if _, err := c.Insert(t); err != nil {
			return err
		}
	}

	if blocksInto != "" {
		return storePage(cmd, blocksInto, c.RenderHTML())
	}

	format := outputFormat(cmd)
	if format != "text" {
		return cli.OutputResults(cmd.OutOrStdout(), format, c.Blocks())
	}
	fmt.Fprint(cmd.OutOrStdout(), c.RenderHTML())
	return nil
}

func listBlockTypes(cmd *cobra.Command) error {
	var out []BlockTypeOutput
	for _, t := range models.BlockTypes() {
		out = append(out, BlockTypeOutput{Type: t, Label: t.Label(), Content: models.DefaultContent(t).Raw()})
	}

	format := outputFormat(cmd)
	if format != "text" {
		return cli.OutputResults(cmd.OutOrStdout(), format, out)
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("TYPE", "DEFAULT CONTENT")
	for _, o := range out {
		table.Row(string(o.Type), cli.TruncateString(o.Content, 60))
	}
	return table.Flush()
}

// storePage writes content to a workspace file, creating it when missing.
func storePage(cmd *cobra.Command, name, page string) error {
	name = strings.TrimSpace(name)
	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		if ws.Has(name) {
			if err := ws.EditFile(name, page); err != nil {
				return err
			}
			cli.PrintSuccess("Updated %s", name)
			return nil
		}
		if err := ws.AddFile(name, page); err != nil {
			return err
		}
		cli.PrintSuccess("Added %s", name)
		return nil
	})
}

func blockTypeNames() string {
	names := make([]string, 0, len(models.BlockTypes()))
	for _, t := range models.BlockTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
