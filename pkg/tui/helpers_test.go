package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// typeText sends each rune of s as its own key press.
func typeText(update func(tea.Msg) tea.Cmd, s string) {
	for _, r := range s {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// statusOf runs cmd and returns the notice it produces.
func statusOf(t *testing.T, cmd tea.Cmd) StatusMsg {
	t.Helper()
	require.NotNil(t, cmd, "expected a notice")
	msg, ok := cmd().(StatusMsg)
	require.True(t, ok, "expected StatusMsg")
	return msg
}

func stubClipboard(t *testing.T) *string {
	t.Helper()
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })
	return &copied
}
