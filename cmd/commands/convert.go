package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/convert"
)

var (
	convertMarkdown bool
	convertInto     string
)

// NewConvertCommand creates the convert command
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert plain text to HTML paragraphs",
		Long: `Convert plain text to HTML.

By default every line becomes a paragraph. With --markdown the text is
rendered as Markdown instead. Input is read from the file, or from stdin
when the argument is omitted or "-".

With --into, the result is stored in a workspace file (created when it
does not exist) instead of being printed.

Examples:
  # Paragraphs from stdin
  printf "first\nsecond" | pagesmith convert

  # Render Markdown into a workspace file
  pagesmith convert notes.md --markdown --into notes.html`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if convertInto == "" {
				return nil
			}
			if err := cli.ValidateFileName(convertInto); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runConvert,
	}

	cmd.Flags().BoolVarP(&convertMarkdown, "markdown", "m", false, "Render input as Markdown")
	cmd.Flags().StringVar(&convertInto, "into", "", "Store the result in a workspace file")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	input, err := cli.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	text := strings.TrimRight(string(input), "\n")
	var out string
	if convertMarkdown {
		if out, err = convert.Markdown(text); err != nil {
			return err
		}
	} else {
		out = convert.Paragraphs(text)
	}

	if convertInto == "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	return storePage(cmd, convertInto, out)
}
