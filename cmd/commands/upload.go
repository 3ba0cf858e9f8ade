package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/export"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	uploadName    string
	uploadExtract bool
)

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Import a local file into the workspace",
		Long: `Import a local file into the workspace and make it the active file.

Files larger than 3MB are rejected. A workspace file with the same name
is overwritten.

With --extract, a zip archive is unpacked and every entry is imported.

Examples:
  # Import a stylesheet
  pagesmith upload ~/Downloads/theme.css

  # Import under a different name
  pagesmith upload notes.txt --name readme.txt

  # Import an exported project
  pagesmith upload web-project.zip --extract`,
		Aliases: []string{"import"},
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFilePath(args[0]); err != nil {
				return err
			}
			if err := cli.ValidateFileName(uploadName); err != nil {
				return err
			}
			return requireProject(cmd, args)
		},
		RunE: runUpload,
	}

	cmd.Flags().StringVarP(&uploadName, "name", "n", "", "Name of the file in the workspace (default: base name of path)")
	cmd.Flags().BoolVarP(&uploadExtract, "extract", "x", false, "Unpack a zip archive into the workspace")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		if uploadExtract {
			return extractArchive(ws, path)
		}

		content, err := files.ReadUpload(path)
		if err != nil {
			return err
		}
		name := uploadName
		if strings.TrimSpace(name) == "" {
			name = filepath.Base(path)
		}
		existed := ws.Has(strings.TrimSpace(name))
		if err := ws.UploadFile(name, content); err != nil {
			return err
		}

		if existed {
			cli.PrintWarning("Overwrote existing file %s", ws.Active())
		}
		cli.PrintSuccess("Uploaded %s (%s)", ws.Active(), cli.FormatBytes(int64(len(content))))
		return nil
	})
}

func extractArchive(ws *workspace.Workspace, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	entries, err := export.ReadZip(data)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cli.PrintInfo("Archive %s holds no files", filepath.Base(path))
		return nil
	}

	imported, err := importEntries(ws, entries)
	if err != nil {
		return err
	}
	cli.PrintSuccess("Imported %d of %d files from %s", imported, len(entries), filepath.Base(path))
	return nil
}

// importEntries uploads every entry with a safe name and returns how many
// were stored. Unsafe names are reported and skipped.
func importEntries(ws *workspace.Workspace, entries []models.File) (int, error) {
	imported := 0
	for _, f := range entries {
		if err := cli.ValidateFileName(f.Name); err != nil {
			cli.PrintWarning("Skipping %s: %v", f.Name, err)
			continue
		}
		if err := ws.UploadFile(f.Name, []byte(f.Content)); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
