package logoverlay

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curio/internal/log"
)

func TestNew(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, log.LevelDebug, m.minLevel)
}

func TestToggle(t *testing.T) {
	m := New()

	m = m.Toggle()
	assert.True(t, m.Visible())

	m = m.Toggle()
	assert.False(t, m.Visible())
}

func TestAppend_ShowsEntry(t *testing.T) {
	m := New().SetSize(80, 24).Toggle()
	m = m.Append("2026-08-29T10:00:00 [INFO] [store] loaded page page=0\n")

	view := ansi.Strip(m.View())

	assert.Contains(t, view, "[INFO] [store] loaded page")
	assert.Contains(t, view, "Logs")
}

func TestAppend_BuffersWhileHidden(t *testing.T) {
	m := New().SetSize(80, 24)
	m = m.Append("2026-08-29T10:00:00 [DEBUG] [ui] early entry")

	m = m.Toggle()

	assert.Contains(t, ansi.Strip(m.View()), "early entry")
}

func TestAppend_EvictsOldest(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+10; i++ {
		m = m.Append(fmt.Sprintf("[DEBUG] [ui] entry %d", i))
	}

	require.Len(t, m.entries, maxEntries)
	assert.Equal(t, "[DEBUG] [ui] entry 10", m.entries[0])
}

func TestUpdate_LevelFilter(t *testing.T) {
	m := New().SetSize(80, 24).Toggle()
	m = m.Append("[DEBUG] [ui] quiet detail")
	m = m.Append("[ERROR] [store] query failed")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	view := ansi.Strip(m.View())

	assert.Contains(t, view, "query failed")
	assert.NotContains(t, view, "quiet detail")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	view = ansi.Strip(m.View())

	assert.Contains(t, view, "quiet detail")
}

func TestUpdate_Clear(t *testing.T) {
	m := New().SetSize(80, 24).Toggle()
	m = m.Append("[INFO] [ui] something")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	assert.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestUpdate_EscCloses(t *testing.T) {
	m := New().Toggle()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.Visible())
}

func TestUpdate_IgnoredWhileHidden(t *testing.T) {
	m := New()
	m = m.Append("[INFO] [ui] kept")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	assert.Len(t, m.entries, 1)
}

func TestView_TruncatesLongEntries(t *testing.T) {
	m := New().SetSize(60, 24).Toggle()
	m = m.Append("[INFO] [ui] " + strings.Repeat("x", 300))

	for _, line := range strings.Split(ansi.Strip(m.View()), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), m.boxWidth()+2)
	}
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	m := New()

	assert.Equal(t, "background", m.Overlay("background", 80, 24))
}
