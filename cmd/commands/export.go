package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/export"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	exportToFile string
	exportMinify bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Package every workspace file into a zip archive",
		Long: `Package every workspace file, hidden ones included, into a zip archive.

The archive is written to the configured export file name
(web-project.zip by default) in the project root, or to --file.
Use --file - to write the archive to stdout.

Examples:
  # Export to web-project.zip
  pagesmith export

  # Export somewhere else, minified
  pagesmith export --file dist/site.zip --minify

  # Stream to another tool
  pagesmith export --file - | unzip -l /dev/stdin`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Archive path (default from settings)")
	cmd.Flags().BoolVar(&exportMinify, "minify", false, "Minify HTML, CSS and JavaScript entries")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		settings := c.LoadSettingsWithDefault()
		opts := export.Options{Minify: exportMinify || settings.Export.Minify}

		if exportToFile == "-" {
			return export.WriteZip(cmd.OutOrStdout(), ws.Files(), opts)
		}

		var buf bytes.Buffer
		if err := export.WriteZip(&buf, ws.Files(), opts); err != nil {
			return err
		}

		path := c.ResolveOutput(exportToFile)
		if err := files.WriteFile(path, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		cli.PrintSuccess("Exported %d files to %s (%s)", ws.Len(), path, cli.FormatBytes(int64(buf.Len())))
		return nil
	})
}
