// Package tui is the interactive terminal UI: a workspace view for editing
// the project's files and a page builder view for composing blocks.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagesmith/pagesmith-cli/internal/logging"
	"github.com/pagesmith/pagesmith-cli/pkg/canvas"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

type sessionState int

const (
	workspaceView sessionState = iota
	builderView
)

// Options configures the app.
type Options struct {
	StartView   string // models.StartViewWorkspace or models.StartViewBuilder
	ShowPreview bool
	ExportPath  string
	Logger      logging.Logger
}

type App struct {
	state     sessionState
	workspace *WorkspaceModel
	builder   *BuilderModel
	status    *StatusManager
	log       logging.Logger
	width     int
	height    int
}

// SwitchViewMsg moves the app to another view
type SwitchViewMsg struct {
	view sessionState
}

func switchTo(view sessionState) tea.Cmd {
	return func() tea.Msg { return SwitchViewMsg{view: view} }
}

func NewApp(ws *workspace.Workspace, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		workspace: NewWorkspaceModel(ws, opts.ShowPreview, opts.ExportPath),
		builder:   NewBuilderModel(canvas.NewSample(), opts.ShowPreview),
		status:    NewStatusManager(),
		log:       log.With("component", "tui"),
	}
	if opts.StartView == models.StartViewBuilder {
		a.state = builderView
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// reserve the status bar row
		a.workspace.SetSize(msg.Width, msg.Height-1)
		a.builder.SetSize(msg.Width, msg.Height-1)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case StatusMsg:
		if msg.Type == StatusTypeError {
			a.log.Warn(context.Background(), "operation failed", "error", msg.Text)
		}
		return a, a.status.Show(msg)

	case ClearStatusMsg:
		a.status.Clear(msg)
		return a, nil

	case SwitchViewMsg:
		a.state = msg.view
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case workspaceView:
		cmd = a.workspace.Update(msg)
	case builderView:
		cmd = a.builder.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case workspaceView:
		content = a.workspace.View()
	case builderView:
		content = a.builder.View()
	}

	if bar := a.status.View(); bar != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, bar)
	}
	return content
}
