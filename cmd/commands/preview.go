package commands

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/preview"
	"github.com/pagesmith/pagesmith-cli/pkg/server"
	"github.com/pagesmith/pagesmith-cli/pkg/storage"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

var (
	previewServe   bool
	previewMinify  bool
	previewAddr    string
	previewFile    string
	previewSummary bool
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compose the workspace into one HTML document",
		Long: `Compose the workspace into a single self-contained HTML document.

Every stylesheet is merged into one style block and every script into one
script block, in stored order, around the content of index.html.

With --serve, a live preview server is started. Open it in a browser; the
page reloads whenever the workspace changes, including edits made from
another terminal or the TUI.

Examples:
  # Print the composed document
  pagesmith preview

  # Write it to a file, minified
  pagesmith preview --minify --file preview.html

  # Show which files feed the document
  pagesmith preview --summary -o json

  # Serve with live reload
  pagesmith preview --serve --addr 127.0.0.1:3000`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runPreview,
	}

	cmd.Flags().BoolVarP(&previewServe, "serve", "s", false, "Start the live preview server")
	cmd.Flags().BoolVar(&previewMinify, "minify", false, "Minify the composed document")
	cmd.Flags().StringVar(&previewAddr, "addr", "", "Address to listen on (default from settings)")
	cmd.Flags().StringVarP(&previewFile, "file", "f", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&previewSummary, "summary", false, "Count the files feeding the document instead of printing it")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	if previewServe {
		return servePreview(cmd)
	}

	return withWorkspace(cmd, func(c *cli.CommandContext, ws *workspace.Workspace) error {
		if previewSummary {
			return printSummary(cmd, preview.Summarize(ws.Files()))
		}

		doc := ws.Preview()
		if previewMinify || c.LoadSettingsWithDefault().Preview.Minify {
			var err error
			if doc, err = preview.Minify(doc); err != nil {
				return err
			}
		}

		if previewFile != "" {
			if err := files.WriteFile(previewFile, []byte(doc)); err != nil {
				return err
			}
			cli.PrintSuccess("Wrote preview to %s", previewFile)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	})
}

func printSummary(cmd *cobra.Command, s preview.Summary) error {
	format := outputFormat(cmd)
	if err := cli.ValidateOutputFormat(format); err != nil {
		return err
	}
	if format != "text" {
		return cli.OutputResults(cmd.OutOrStdout(), format, s)
	}

	body := preview.BodyFile
	if !s.HasBody {
		body = "none (no " + preview.BodyFile + ")"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stylesheets: %d\n", s.Stylesheets)
	fmt.Fprintf(out, "Scripts:     %d\n", s.Scripts)
	fmt.Fprintf(out, "Markup:      %d\n", s.Markup)
	fmt.Fprintf(out, "Body:        %s\n", body)
	return nil
}

func servePreview(cmd *cobra.Command) error {
	c := cli.NewCommandContext()
	if err := c.ValidateProject(); err != nil {
		return err
	}
	settings := c.LoadSettingsWithDefault()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	addr := previewAddr
	if addr == "" {
		addr = settings.Preview.Addr
	}

	dir, file := watchTarget(kv)
	srv := server.New(ctx, kv, server.Options{
		WatchDir:   dir,
		WatchFile:  file,
		Minify:     previewMinify || settings.Preview.Minify,
		ExportName: settings.Export.Filename,
		Logger:     c.Logger,
	})

	cli.PrintInfo("Serving live preview at http://%s (Ctrl+C to stop)", addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("preview server failed: %w", err)
	}
	return nil
}

// watchTarget returns the directory, and for single-file stores the file,
// whose changes mean the store was written. Memory stores are not watched.
func watchTarget(kv storage.KV) (dir, file string) {
	switch st := kv.(type) {
	case *storage.DirStore:
		return st.Dir(), ""
	case *storage.SQLiteStore:
		return filepath.Dir(st.Path()), filepath.Base(st.Path())
	default:
		return "", ""
	}
}
