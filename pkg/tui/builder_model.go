package tui

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/pagesmith/pagesmith-cli/pkg/canvas"
	"github.com/pagesmith/pagesmith-cli/pkg/convert"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

type builderColumn int

const (
	paletteColumn builderColumn = iota
	canvasColumn
)

type builderMode int

const (
	builderBrowse builderMode = iota
	builderEditText
	builderEditImage
)

// BuilderModel is the block palette, canvas and rendered preview of the
// Canvas Model.
type BuilderModel struct {
	canvas *canvas.Canvas
	layout *SharedLayout

	focus   builderColumn
	mode    builderMode
	palette int
	cursor  int    // canvas row under the cursor
	editing string // id of the block being edited

	editor  textarea.Model
	input   textinput.Model
	preview viewport.Model
}

func NewBuilderModel(c *canvas.Canvas, showPreview bool) *BuilderModel {
	editor := textarea.New()
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Prompt = ""

	input := textinput.New()
	input.CharLimit = 0
	input.Placeholder = "image URL or local file path"

	return &BuilderModel{
		canvas:  c,
		layout:  NewSharedLayout(80, 24, showPreview),
		focus:   canvasColumn,
		editor:  editor,
		input:   input,
		preview: viewport.New(0, 0),
	}
}

func (m *BuilderModel) SetSize(width, height int) {
	m.layout.SetSize(width, height)
	m.editor.SetWidth(m.layout.GetMainWidth() - 4)
	m.editor.SetHeight(m.layout.GetContentHeight())
	m.input.Width = width - 30
}

func (m *BuilderModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		switch m.mode {
		case builderEditText:
			m.editor, cmd = m.editor.Update(msg)
		case builderEditImage:
			m.input, cmd = m.input.Update(msg)
		}
		return cmd
	}

	switch m.mode {
	case builderEditText:
		return m.handleTextKey(keyMsg)
	case builderEditImage:
		return m.handleImageKey(keyMsg)
	}

	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "tab":
		return switchTo(workspaceView)
	case "left", "h":
		m.focus = paletteColumn
		return nil
	case "right", "l":
		m.focus = canvasColumn
		return nil
	case "esc":
		m.canvas.ClearSelection()
		return nil
	case "p":
		m.layout.SetShowPreview(!m.layout.ShowPreview)
		m.SetSize(m.layout.Width, m.layout.Height)
		return nil
	case "y", "ctrl+y":
		if err := copyToClipboard(m.canvas.RenderHTML()); err != nil {
			return showError(fmt.Errorf("failed to copy to clipboard: %w", err))
		}
		return showSuccess("Copied page HTML to clipboard")
	}

	if m.focus == paletteColumn {
		return m.handlePaletteKey(keyMsg)
	}
	return m.handleCanvasKey(keyMsg)
}

func (m *BuilderModel) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	types := models.BlockTypes()
	switch msg.String() {
	case "up", "k":
		if m.palette > 0 {
			m.palette--
		}
	case "down", "j":
		if m.palette < len(types)-1 {
			m.palette++
		}
	case "enter", "i", " ":
		return m.insert(types[m.palette])
	}
	return nil
}

// insert drops a block of type t after the selected block, or at the end of
// the canvas when nothing is selected.
func (m *BuilderModel) insert(t models.BlockType) tea.Cmd {
	index := m.canvas.Len()
	if sel, ok := m.canvas.Selected(); ok {
		index = m.canvas.IndexOf(sel.ID) + 1
	}
	blk, err := m.canvas.InsertAt(t, index)
	if err != nil {
		return showError(err)
	}
	m.cursor = m.canvas.IndexOf(blk.ID)
	return showSuccess("Added %s block", t.Label())
}

func (m *BuilderModel) handleCanvasKey(msg tea.KeyMsg) tea.Cmd {
	if m.canvas.Len() == 0 {
		return nil
	}
	switch msg.String() {
	case "up", "k":
		return m.selectAt(m.cursor - 1)
	case "down", "j":
		return m.selectAt(m.cursor + 1)
	case "K", "shift+up":
		return m.moveSelected(-1)
	case "J", "shift+down":
		return m.moveSelected(1)
	case "d", "delete", "x":
		return m.deleteSelected()
	case "enter", "e":
		return m.startEditing()
	}
	return nil
}

func (m *BuilderModel) selectAt(i int) tea.Cmd {
	if i < 0 {
		i = 0
	}
	if i >= m.canvas.Len() {
		i = m.canvas.Len() - 1
	}
	m.cursor = i
	if err := m.canvas.Select(m.canvas.Blocks()[i].ID); err != nil {
		return showError(err)
	}
	return nil
}

// selected returns the block under the cursor, selecting it first.
func (m *BuilderModel) selected() (models.Block, bool) {
	if sel, ok := m.canvas.Selected(); ok {
		return sel, true
	}
	if m.cursor < 0 || m.cursor >= m.canvas.Len() {
		return models.Block{}, false
	}
	blk := m.canvas.Blocks()[m.cursor]
	_ = m.canvas.Select(blk.ID)
	return blk, true
}

func (m *BuilderModel) moveSelected(delta int) tea.Cmd {
	blk, ok := m.selected()
	if !ok {
		return nil
	}
	from := m.canvas.IndexOf(blk.ID)
	m.canvas.Move(from, from+delta)
	m.cursor = m.canvas.IndexOf(blk.ID)
	return nil
}

func (m *BuilderModel) deleteSelected() tea.Cmd {
	blk, ok := m.selected()
	if !ok {
		return nil
	}
	m.canvas.Delete(blk.ID)
	if m.cursor >= m.canvas.Len() {
		m.cursor = m.canvas.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return showSuccess("Deleted %s block", blk.Type.Label())
}

func (m *BuilderModel) startEditing() tea.Cmd {
	blk, ok := m.selected()
	if !ok {
		return nil
	}
	m.editing = blk.ID
	raw := blk.Content.Raw()

	if blk.Type == models.BlockImage {
		m.mode = builderEditImage
		m.input.SetValue(raw)
		m.input.CursorEnd()
		return m.input.Focus()
	}
	m.mode = builderEditText
	m.editor.SetValue(raw)
	return m.editor.Focus()
}

func (m *BuilderModel) stopEditing() {
	m.editor.Blur()
	m.input.Blur()
	m.mode = builderBrowse
	m.editing = ""
}

func (m *BuilderModel) handleTextKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		id := m.editing
		if err := m.canvas.Edit(id, m.editor.Value()); err != nil {
			return showError(err)
		}
		m.stopEditing()
		return showSuccess("Updated %s", id)
	case "esc":
		m.stopEditing()
		return nil
	case "ctrl+t":
		m.editor.SetValue(convert.Paragraphs(strings.TrimRight(m.editor.Value(), "\n")))
		return nil
	case "ctrl+k":
		out, err := convert.Markdown(m.editor.Value())
		if err != nil {
			return showError(err)
		}
		m.editor.SetValue(strings.TrimRight(out, "\n"))
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *BuilderModel) handleImageKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.applyImage(strings.TrimSpace(m.input.Value()))
	case "esc":
		m.stopEditing()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// applyImage embeds a local file as a data URI, or stores value as the
// image URL when it is not a readable file.
func (m *BuilderModel) applyImage(value string) tea.Cmd {
	id := m.editing
	path := expandHome(value)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		data, err := files.ReadUpload(path)
		if err != nil {
			return showError(err)
		}
		if err := m.canvas.SetImageData(id, imageType(path, data), data); err != nil {
			return showError(err)
		}
		m.stopEditing()
		return showSuccess("Embedded %s", filepath.Base(path))
	}

	if err := m.canvas.Edit(id, value); err != nil {
		return showError(err)
	}
	m.stopEditing()
	return showSuccess("Updated %s", id)
}

// imageType guesses the media type from the extension, then the content.
func imageType(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func (m *BuilderModel) View() string {
	width := m.layout.Width

	listWidth := m.layout.GetListWidth()
	paletteActive := m.focus == paletteColumn && m.mode == builderBrowse
	palettePane := m.layout.RenderPane("BLOCKS", "", m.renderPalette(), paletteActive, listWidth)
	canvasPane := m.layout.RenderPane("CANVAS", fmt.Sprintf("%d", m.canvas.Len()), m.renderCanvas(listWidth-6), !paletteActive && m.mode == builderBrowse, listWidth)
	left := lipgloss.JoinVertical(lipgloss.Left, palettePane, canvasPane)

	right := m.layout.RenderPane(m.editorHeading(), "", m.renderEditor(), m.mode != builderBrowse, m.layout.GetMainWidth())
	columns := ContentPaddingStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))

	sections := []string{renderHeader(width, "Page Builder"), columns}
	if p := m.layout.RenderPreviewPane("RENDERED HTML", m.canvas.RenderHTML(), &m.preview, false); p != "" {
		sections = append(sections, p)
	}
	sections = append(sections, m.layout.RenderHelpPane(m.helpRows()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BuilderModel) renderPalette() string {
	var b strings.Builder
	for i, t := range models.BlockTypes() {
		line := "  " + t.Label()
		if i == m.palette && m.focus == paletteColumn {
			line = SelectedStyle.Render("▸ " + t.Label())
		} else {
			line = NormalStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *BuilderModel) renderCanvas(width int) string {
	blocks := m.canvas.Blocks()
	if len(blocks) == 0 {
		return PlaceholderStyle.Render("Empty canvas. Pick a block on the left.")
	}
	sel, hasSel := m.canvas.Selected()

	var b strings.Builder
	for i, blk := range blocks {
		summary := strings.Join(strings.Fields(blk.Content.Raw()), " ")
		line := fmt.Sprintf("%-9s %s", blk.Type.Label(), summary)
		line = truncate.StringWithTail(line, uint(max(width, 10)), "…")
		marker := "  "
		if hasSel && sel.ID == blk.ID {
			marker = "● "
		}
		switch {
		case i == m.cursor && m.focus == canvasColumn:
			line = SelectedStyle.Render(marker + line)
		default:
			line = NormalStyle.Render(marker + line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *BuilderModel) editorHeading() string {
	switch m.mode {
	case builderEditText, builderEditImage:
		return "EDITING " + m.editing
	}
	if sel, ok := m.canvas.Selected(); ok {
		return sel.ID
	}
	return "NO SELECTION"
}

func (m *BuilderModel) renderEditor() string {
	switch m.mode {
	case builderEditText:
		return m.editor.View()
	case builderEditImage:
		return InputStyle.Render(m.input.View())
	}
	sel, ok := m.canvas.Selected()
	if !ok {
		return PlaceholderStyle.Render("Select a block to see its content.")
	}
	return canvas.RenderBlock(sel)
}

func (m *BuilderModel) helpRows() [][]string {
	switch m.mode {
	case builderEditText:
		return [][]string{{"ctrl+s save", "ctrl+t lines to paragraphs", "ctrl+k markdown to html", "esc cancel"}}
	case builderEditImage:
		return [][]string{{"enter apply", "esc cancel"}}
	}
	if m.focus == paletteColumn {
		return [][]string{{"↑/↓ choose block", "enter insert after selection", "→ canvas", "p preview", "tab workspace", "q quit"}}
	}
	return [][]string{
		{"↑/↓ select", "K/J move up/down", "enter edit", "d delete", "esc clear selection"},
		{"← blocks", "y copy html", "p preview", "tab workspace", "q quit"},
	}
}
