package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// SharedLayout provides the layout calculations used by both the workspace
// view and the page builder view
type SharedLayout struct {
	Width       int
	Height      int
	ShowPreview bool

	contentHeight int
	listWidth     int
	mainWidth     int
}

// NewSharedLayout creates a new shared layout with given dimensions
func NewSharedLayout(width, height int, showPreview bool) *SharedLayout {
	sl := &SharedLayout{
		Width:       width,
		Height:      height,
		ShowPreview: showPreview,
	}
	sl.recalculateDimensions()
	return sl
}

// SetSize updates the layout dimensions and recalculates cached values
func (sl *SharedLayout) SetSize(width, height int) {
	sl.Width = width
	sl.Height = height
	sl.recalculateDimensions()
}

func (sl *SharedLayout) SetShowPreview(show bool) {
	sl.ShowPreview = show
	sl.recalculateDimensions()
}

func (sl *SharedLayout) recalculateDimensions() {
	// list column takes a third, the main column the rest
	sl.listWidth = (sl.Width - 6) / 3
	if sl.listWidth < 20 {
		sl.listWidth = 20
	}
	sl.mainWidth = sl.Width - sl.listWidth - 6
	if sl.mainWidth < 20 {
		sl.mainWidth = 20
	}

	// header, help pane and status bar
	sl.contentHeight = sl.Height - 10
	if sl.ShowPreview {
		sl.contentHeight = sl.contentHeight / 2
	}
	if sl.contentHeight < 5 {
		sl.contentHeight = 5
	}
}

func (sl *SharedLayout) GetContentHeight() int {
	return sl.contentHeight
}

func (sl *SharedLayout) GetListWidth() int {
	return sl.listWidth
}

func (sl *SharedLayout) GetMainWidth() int {
	return sl.mainWidth
}

// PreviewHeight is the number of rows the preview viewport may use
func (sl *SharedLayout) PreviewHeight() int {
	h := sl.Height - sl.contentHeight - 14
	if h < 3 {
		h = 3
	}
	return h
}

// RenderHeader renders a heading followed by a run of colons
func (sl *SharedLayout) RenderHeader(heading string, active bool, badge string, availableWidth int) string {
	colonSpace := availableWidth - lipgloss.Width(heading) - 2
	if badge != "" {
		colonSpace -= lipgloss.Width(badge) + 2
	}
	if colonSpace < 3 {
		colonSpace = 3
	}

	var result strings.Builder
	result.WriteString(GetActiveHeaderStyle(active).Render(heading))
	result.WriteString(" ")
	result.WriteString(GetActiveColonStyle(active).Render(strings.Repeat(":", colonSpace)))
	if badge != "" {
		result.WriteString(" ")
		result.WriteString(badge)
	}
	return result.String()
}

// RenderPane renders body in a bordered pane with a header line
func (sl *SharedLayout) RenderPane(heading, badge, body string, active bool, width int) string {
	header := ContentPaddingStyle.Render(sl.RenderHeader(heading, active, badge, width-4))
	content := ContentPaddingStyle.Render(body)
	return borderStyle(active).Width(width).Render(header + "\n\n" + content)
}

// RenderPreviewPane wraps content to the viewport width and renders it full
// width below the columns
func (sl *SharedLayout) RenderPreviewPane(heading, content string, vp *viewport.Model, active bool) string {
	if !sl.ShowPreview {
		return ""
	}
	vp.Width = sl.Width - 8
	vp.Height = sl.PreviewHeight()
	vp.SetContent(wordwrap.String(content, vp.Width))
	return ContentPaddingStyle.Render(sl.RenderPane(heading, "", vp.View(), active, sl.Width-4))
}

// RenderHelpPane renders the help text in a bordered pane
func (sl *SharedLayout) RenderHelpPane(helpRows [][]string) string {
	style := HelpBorderStyle.
		Width(sl.Width-4).
		Padding(0, 1)
	return ContentPaddingStyle.Render(style.Render(formatHelpTextRows(helpRows, sl.Width-8)))
}

// formatHelpTextRows joins each row of key hints with separators, wrapping
// rows that do not fit.
func formatHelpTextRows(rows [][]string, width int) string {
	var lines []string
	for _, row := range rows {
		line := ""
		for _, item := range row {
			next := item
			if line != "" {
				next = line + "  •  " + item
			}
			if width > 0 && lipgloss.Width(next) > width && line != "" {
				lines = append(lines, line)
				next = item
			}
			line = next
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return DescriptionStyle.Render(strings.Join(lines, "\n"))
}
