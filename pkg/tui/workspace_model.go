package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagesmith/pagesmith-cli/pkg/diffview"
	"github.com/pagesmith/pagesmith-cli/pkg/export"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/preview"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

type wsMode int

const (
	wsBrowse wsMode = iota
	wsEditing
	wsPrompting
	wsReviewing
)

type promptKind int

const (
	promptAdd promptKind = iota
	promptRename
	promptUpload
)

func (k promptKind) label() string {
	switch k {
	case promptRename:
		return "Rename to"
	case promptUpload:
		return "Upload file path"
	default:
		return "New file name"
	}
}

// WorkspaceModel is the file list, editor and live preview of the Document
// Model.
type WorkspaceModel struct {
	ws     *workspace.Workspace
	layout *SharedLayout

	mode       wsMode
	prompt     promptKind
	target     string // file the prompt or editor works on
	cursor     int
	showHidden bool
	exportPath string

	editor  textarea.Model
	input   textinput.Model
	preview viewport.Model
	review  viewport.Model
	confirm *ConfirmationModel
}

func NewWorkspaceModel(ws *workspace.Workspace, showPreview bool, exportPath string) *WorkspaceModel {
	if exportPath == "" {
		exportPath = export.DefaultFilename
	}

	editor := textarea.New()
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Prompt = ""

	input := textinput.New()
	input.CharLimit = 256

	m := &WorkspaceModel{
		ws:         ws,
		layout:     NewSharedLayout(80, 24, showPreview),
		exportPath: exportPath,
		editor:     editor,
		input:      input,
		preview:    viewport.New(0, 0),
		review:     viewport.New(0, 0),
		confirm:    NewConfirmation(),
	}
	m.syncCursor()
	return m
}

func (m *WorkspaceModel) SetSize(width, height int) {
	m.layout.SetSize(width, height)
	m.editor.SetWidth(m.layout.GetMainWidth() - 4)
	m.editor.SetHeight(m.layout.GetContentHeight())
	m.review.Width = m.layout.GetMainWidth() - 4
	m.review.Height = m.layout.GetContentHeight()
	m.input.Width = width - 30
}

// items returns the rows of the file list.
func (m *WorkspaceModel) items() []models.File {
	if m.showHidden {
		return m.ws.Files()
	}
	return m.ws.VisibleFiles()
}

// syncCursor points the list cursor at the active file when it is listed.
func (m *WorkspaceModel) syncCursor() {
	items := m.items()
	for i, f := range items {
		if f.Name == m.ws.Active() {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *WorkspaceModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		switch m.mode {
		case wsEditing:
			m.editor, cmd = m.editor.Update(msg)
		case wsPrompting:
			m.input, cmd = m.input.Update(msg)
		}
		return cmd
	}

	if m.confirm.Active() {
		return m.confirm.Update(keyMsg)
	}

	switch m.mode {
	case wsEditing:
		return m.handleEditorKey(keyMsg)
	case wsPrompting:
		return m.handlePromptKey(keyMsg)
	case wsReviewing:
		return m.handleReviewKey(keyMsg)
	default:
		return m.handleBrowseKey(keyMsg)
	}
}

func (m *WorkspaceModel) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab":
		return switchTo(builderView)
	case "up", "k":
		return m.move(-1)
	case "down", "j":
		return m.move(1)
	case "enter", "e":
		return m.startEditing()
	case "n", "a":
		return m.startPrompt(promptAdd, "")
	case "r":
		return m.startPrompt(promptRename, m.ws.Active())
	case "u":
		return m.startPrompt(promptUpload, "")
	case "d":
		return m.confirmDelete()
	case "h":
		return m.toggleHidden()
	case "H":
		m.showHidden = !m.showHidden
		m.syncCursor()
	case "x":
		return m.exportZip()
	case "y", "ctrl+y":
		return m.copyPreview()
	case "p":
		m.layout.SetShowPreview(!m.layout.ShowPreview)
		m.SetSize(m.layout.Width, m.layout.Height)
	}
	return nil
}

func (m *WorkspaceModel) move(delta int) tea.Cmd {
	items := m.items()
	if len(items) == 0 {
		return nil
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if err := m.ws.SetActive(items[m.cursor].Name); err != nil {
		return showError(err)
	}
	return nil
}

func (m *WorkspaceModel) startEditing() tea.Cmd {
	name := m.ws.Active()
	content, ok := m.ws.Content(name)
	if !ok {
		return showError(fmt.Errorf("%w: %s", models.ErrNotFound, name))
	}
	m.target = name
	m.mode = wsEditing
	m.editor.SetValue(content)
	return m.editor.Focus()
}

func (m *WorkspaceModel) stopEditing() tea.Cmd {
	m.editor.Blur()
	m.mode = wsBrowse
	m.target = ""
	return nil
}

// dirty reports whether the editor buffer differs from the stored content.
func (m *WorkspaceModel) dirty() bool {
	stored, _ := m.ws.Content(m.target)
	return stored != m.editor.Value()
}

func (m *WorkspaceModel) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		return m.commit()
	case "ctrl+r":
		if !m.dirty() {
			return showInfo("No changes to %s", m.target)
		}
		stored, _ := m.ws.Content(m.target)
		m.review.SetContent(renderDiff(stored, m.editor.Value()))
		m.review.GotoTop()
		m.mode = wsReviewing
		return nil
	case "esc":
		if !m.dirty() {
			return m.stopEditing()
		}
		m.confirm.Show(fmt.Sprintf("Discard changes to %s?", m.target), true, m.stopEditing, nil)
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *WorkspaceModel) handleReviewKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "ctrl+s", "y":
		return m.commit()
	case "esc", "q":
		m.mode = wsEditing
		return nil
	}
	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return cmd
}

// commit stores the editor buffer in the workspace.
func (m *WorkspaceModel) commit() tea.Cmd {
	name := m.target
	stored, _ := m.ws.Content(name)
	after := m.editor.Value()
	if err := m.ws.EditFile(name, after); err != nil {
		return showError(err)
	}
	m.stopEditing()

	stats := diffview.Compute(stored, after)
	if !stats.Changed() {
		return showInfo("No changes to %s", name)
	}
	return showSuccess("Saved %s (+%d -%d)", name, stats.Added, stats.Removed)
}

func (m *WorkspaceModel) startPrompt(kind promptKind, target string) tea.Cmd {
	m.prompt = kind
	m.target = target
	m.mode = wsPrompting
	m.input.Reset()
	m.input.Placeholder = ""
	switch kind {
	case promptAdd:
		m.input.Placeholder = "e.g. about.html"
	case promptRename:
		m.input.SetValue(target)
		m.input.CursorEnd()
	case promptUpload:
		m.input.Placeholder = "path to a local file"
	}
	return m.input.Focus()
}

func (m *WorkspaceModel) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.submitPrompt()
	case "esc":
		m.input.Blur()
		m.mode = wsBrowse
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submitPrompt applies the prompt. On error the prompt stays open so the
// value can be corrected.
func (m *WorkspaceModel) submitPrompt() tea.Cmd {
	value := m.input.Value()
	var done tea.Cmd

	switch m.prompt {
	case promptAdd:
		if err := m.ws.AddFile(value, ""); err != nil {
			return showError(err)
		}
		done = showSuccess("Added %s", m.ws.Active())
	case promptRename:
		if err := m.ws.RenameFile(m.target, value); err != nil {
			return showError(err)
		}
		done = showSuccess("Renamed %s to %s", m.target, strings.TrimSpace(value))
	case promptUpload:
		path := expandHome(strings.TrimSpace(value))
		content, err := files.ReadUpload(path)
		if err != nil {
			return showError(err)
		}
		name := filepath.Base(path)
		existed := m.ws.Has(name)
		if err := m.ws.UploadFile(name, content); err != nil {
			return showError(err)
		}
		if existed {
			done = notify(StatusTypeWarning, "Overwrote %s", name)
		} else {
			done = showSuccess("Uploaded %s", name)
		}
	}

	m.input.Blur()
	m.mode = wsBrowse
	m.target = ""
	m.syncCursor()
	return done
}

func (m *WorkspaceModel) confirmDelete() tea.Cmd {
	name := m.ws.Active()
	if m.ws.Len() == 1 {
		return showError(models.ErrLastFile)
	}
	m.confirm.Show(fmt.Sprintf("Delete %s?", name), true, func() tea.Cmd {
		if err := m.ws.DeleteFile(name); err != nil {
			return showError(err)
		}
		m.syncCursor()
		return showSuccess("Deleted %s", name)
	}, nil)
	return nil
}

// toggleHidden hides or unhides the file under the cursor.
func (m *WorkspaceModel) toggleHidden() tea.Cmd {
	items := m.items()
	if len(items) == 0 {
		return nil
	}
	name := items[m.cursor].Name

	if m.ws.IsHidden(name) {
		if err := m.ws.UnhideFile(name); err != nil {
			return showError(err)
		}
		m.syncCursor()
		return showSuccess("Unhid %s", name)
	}
	if err := m.ws.HideFile(name); err != nil {
		return showError(err)
	}
	m.syncCursor()
	return showSuccess("Hid %s", name)
}

func (m *WorkspaceModel) exportZip() tea.Cmd {
	var buf bytes.Buffer
	if err := export.WriteZip(&buf, m.ws.Files(), export.Options{}); err != nil {
		return showError(err)
	}
	if err := files.WriteFile(m.exportPath, buf.Bytes()); err != nil {
		return showError(err)
	}
	return showSuccess("Exported %d files to %s", m.ws.Len(), m.exportPath)
}

func (m *WorkspaceModel) copyPreview() tea.Cmd {
	if err := copyToClipboard(m.livePreview()); err != nil {
		return showError(fmt.Errorf("failed to copy to clipboard: %w", err))
	}
	return showSuccess("Copied preview to clipboard")
}

// livePreview composes the workspace with the unsaved editor buffer in place
// of the stored content.
func (m *WorkspaceModel) livePreview() string {
	if m.mode != wsEditing && m.mode != wsReviewing {
		return m.ws.Preview()
	}
	fs := m.ws.Files()
	for i := range fs {
		if fs[i].Name == m.target {
			fs[i].Content = m.editor.Value()
		}
	}
	return preview.Compose(fs)
}

func (m *WorkspaceModel) View() string {
	width := m.layout.Width

	listPane := m.layout.RenderPane("FILES", fmt.Sprintf("%d", len(m.items())), m.renderList(), m.mode == wsBrowse, m.layout.GetListWidth())
	mainPane := m.layout.RenderPane(m.mainHeading(), "", m.renderMain(), m.mode != wsBrowse, m.layout.GetMainWidth())
	columns := ContentPaddingStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, listPane, " ", mainPane))

	sections := []string{renderHeader(width, "Workspace"), columns}
	if p := m.layout.RenderPreviewPane("LIVE PREVIEW", m.livePreview(), &m.preview, false); p != "" {
		sections = append(sections, p)
	}
	if m.confirm.Active() {
		sections = append(sections, m.confirm.ViewWithWidth(width))
	} else if m.mode == wsPrompting {
		sections = append(sections, ContentPaddingStyle.Render(InputStyle.Render(m.prompt.label()+": "+m.input.View())))
	}
	sections = append(sections, m.layout.RenderHelpPane(m.helpRows()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *WorkspaceModel) mainHeading() string {
	switch m.mode {
	case wsEditing:
		if m.dirty() {
			return "EDITING " + m.target + " *"
		}
		return "EDITING " + m.target
	case wsReviewing:
		return "REVIEW CHANGES " + m.target
	default:
		return m.ws.Active()
	}
}

func (m *WorkspaceModel) renderList() string {
	var b strings.Builder
	for i, f := range m.items() {
		line := f.Name
		if f.Name == m.ws.Active() {
			line = "● " + line
		} else {
			line = "  " + line
		}
		switch {
		case i == m.cursor && m.mode == wsBrowse:
			line = SelectedStyle.Render(line)
		case m.ws.IsHidden(f.Name):
			line = DimStyle.Render(line + " (hidden)")
		default:
			line = NormalStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return PlaceholderStyle.Render("Every file is hidden. Press H to show them.")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *WorkspaceModel) renderMain() string {
	switch m.mode {
	case wsEditing:
		return m.editor.View()
	case wsReviewing:
		return m.review.View()
	}
	content, _ := m.ws.Content(m.ws.Active())
	lines := strings.Split(content, "\n")
	if h := m.layout.GetContentHeight(); len(lines) > h {
		lines = append(lines[:h-1], DescriptionStyle.Render("…"))
	}
	return strings.Join(lines, "\n")
}

func (m *WorkspaceModel) helpRows() [][]string {
	switch m.mode {
	case wsEditing:
		return [][]string{{"ctrl+s save", "ctrl+r review changes", "esc close"}}
	case wsReviewing:
		return [][]string{{"enter save", "↑/↓ scroll", "esc back to editor"}}
	case wsPrompting:
		return [][]string{{"enter confirm", "esc cancel"}}
	}
	return [][]string{
		{"↑/↓ select", "enter edit", "n new", "r rename", "u upload", "d delete"},
		{"h hide/unhide", "H show hidden", "x export zip", "y copy preview", "p toggle preview", "tab builder", "q quit"},
	}
}

// renderDiff renders a line diff with colored markers.
func renderDiff(before, after string) string {
	var b strings.Builder
	for _, l := range diffview.Lines(before, after) {
		text := l.Prefix() + " " + l.Text
		switch l.Op {
		case diffview.Insert:
			text = diffAddLine.Render(text)
		case diffview.Delete:
			text = diffDelLine.Render(text)
		default:
			text = diffSame.Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
