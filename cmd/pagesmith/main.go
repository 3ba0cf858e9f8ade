package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/cmd/commands"
	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/internal/logging"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/tui"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	quiet       bool
	noColor     bool
	skipConfirm bool
	ephemeral   bool
	projectDir  string
)

var rootCmd = &cobra.Command{
	Use:   "pagesmith",
	Short: "Terminal-based editor for small web projects",
	Long: `Pagesmith edits small HTML/CSS/JavaScript projects from the terminal.

It keeps a workspace of named files, composes them into a single live
preview document and exports the project as a zip archive. A block-based
page builder is available in the TUI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
		cli.SetProjectRoot(projectDir)
		cli.SetEphemeral(ephemeral)
		cli.SetStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, "")
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Pagesmith project",
	Long:  `Creates the .pagesmith folder with default settings in the project directory`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return cli.ValidateDirectoryPath(cli.ProjectRoot())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(cli.ProjectRoot())
		if err != nil {
			return fmt.Errorf("failed to determine project directory: %w", err)
		}

		cli.PrintInfo("Initializing Pagesmith project in %s...", root)
		if err := files.InitProjectStructure(root); err != nil {
			return fmt.Errorf("failed to initialize project structure: %w", err)
		}

		cli.PrintSuccess("Created %s folder", files.PagesmithDir)
		cli.PrintInfo("Run 'pagesmith' to start the interactive TUI.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Pagesmith",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Pagesmith version %s\n", version)
	},
}

var builderCmd = &cobra.Command{
	Use:   "builder",
	Short: "Open the TUI in the block-based page builder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, models.StartViewBuilder)
	},
}

// runTUI launches the terminal UI. Diagnostics go to the project log file so
// they do not corrupt the alternate screen.
func runTUI(cmd *cobra.Command, view string) error {
	c := cli.NewCommandContext()
	if err := c.ValidateProject(); err != nil {
		return fmt.Errorf("%w\nPlease run 'pagesmith init' first to initialize a new project", err)
	}
	settings := c.LoadSettingsWithDefault()

	logger, closer, err := logging.NewFile(files.LogPath(c.Root), settings.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	c.Logger = logger

	kv, err := c.OpenStore(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	if view == "" {
		view = settings.UI.StartView
	}
	ws := workspace.Load(cmd.Context(), kv, workspace.WithLogger(logger))
	app := tui.NewApp(ws, tui.Options{
		StartView:   view,
		ShowPreview: settings.UI.ShowPreview,
		ExportPath:  c.ResolveOutput(""),
		Logger:      logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep workspace changes in memory only")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".", "Project directory")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text|json|yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(builderCmd)
	for _, c := range commands.All() {
		rootCmd.AddCommand(c)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
