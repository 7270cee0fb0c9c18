// Package logoverlay shows a live tail of recent log entries inside the TUI.
// Entries arrive through the log broker feed; the overlay keeps a bounded
// buffer and renders the newest lines when toggled open.
package logoverlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"curio/internal/log"
	"curio/internal/ui/styles"
)

const (
	maxEntries    = 200 // Buffered log lines kept for display
	boxMaxWidth   = 120
	boxMinWidth   = 40
	bodyMaxHeight = 20
	bodyMinHeight = 4
)

// Model is the log overlay state. Value semantics, like the other overlays.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
}

// New creates a hidden overlay with an empty buffer.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append adds a log entry to the buffer, evicting the oldest once full.
// Entries are buffered even while hidden so opening the overlay shows
// history.
func (m Model) Append(entry string) Model {
	entry = strings.TrimSuffix(entry, "\n")
	entries := append(append([]string(nil), m.entries...), entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	m.entries = entries
	return m
}

// Toggle flips visibility.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	return m
}

// Visible returns whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// SetSize updates the overlay's knowledge of the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles keys while the overlay is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "c":
		m.entries = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "esc":
		m.visible = false
	}
	return m, nil
}

// View renders the overlay box with the newest matching entries.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()
	contentWidth := boxWidth - 2

	titleStyle := lipgloss.NewStyle().Bold(true).
		Foreground(styles.HeaderTitleColor).PaddingLeft(1)
	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).
		Render(strings.Repeat("─", boxWidth))

	body := m.renderEntries(contentWidth)

	sections := []string{
		titleStyle.Render("Logs"),
		divider,
		body,
		divider,
		m.filterHint(),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Width(boxWidth).
		Render(strings.Join(sections, "\n"))
}

// Overlay places the overlay centered over a background view.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible {
		return bg
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View(),
		lipgloss.WithWhitespaceChars(" "))
}

// renderEntries formats the newest buffered entries at or above the filter
// level, bounded by the body height.
func (m Model) renderEntries(width int) string {
	var matched []string
	for _, entry := range m.entries {
		if entryLevel(entry) >= m.minLevel {
			matched = append(matched, entry)
		}
	}

	if len(matched) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).
			Render("No logs to display")
	}

	if limit := m.bodyHeight(); len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}

	lines := make([]string, 0, len(matched))
	for _, entry := range matched {
		lines = append(lines, colorize(entry, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	w := m.width - 4
	if w > boxMaxWidth {
		w = boxMaxWidth
	}
	if w < boxMinWidth {
		w = boxMinWidth
	}
	return w
}

func (m Model) bodyHeight() int {
	// Title, two dividers, hint line, and the border rows surround the body.
	h := m.height - 8
	if h > bodyMaxHeight {
		h = bodyMaxHeight
	}
	if h < bodyMinHeight {
		h = bodyMinHeight
	}
	return h
}

// entryLevel infers severity from the bracketed level tag in the entry.
// Unknown entries rank highest so they always pass the filter.
func entryLevel(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError
	default:
		return log.LevelError
	}
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width-1, "…")
	}

	var color lipgloss.TerminalColor
	switch entryLevel(entry) {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.ToastBorderInfoColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	activeStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	hints := []string{hintStyle.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		if m.minLevel == f.level {
			hints = append(hints, activeStyle.Render(f.label))
		} else {
			hints = append(hints, hintStyle.Render(f.label))
		}
	}
	return " " + strings.Join(hints, "  ")
}
