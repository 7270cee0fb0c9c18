// Package pager provides the pagination control for the article collection.
// It is an external collaborator of the collection view: the host listens for
// its page events and re-slices the data it feeds the view. The view itself
// never depends on the pager.
package pager

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"curio/internal/ui/styles"
)

// PageChangedMsg announces the new current page after navigation.
type PageChangedMsg struct {
	Page int
}

// NextRequestedMsg signals that forward navigation was requested.
type NextRequestedMsg struct{}

// PrevRequestedMsg signals that backward navigation was requested.
type PrevRequestedMsg struct{}

// Model wraps bubbles/paginator with curio styling and page events.
type Model struct {
	paginator paginator.Model
	total     int
}

// New creates a pager with the given page size.
func New(perPage int) Model {
	if perPage < 1 {
		perPage = 1
	}

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = perPage
	p.ActiveDot = lipgloss.NewStyle().Foreground(styles.PagerActiveDotColor).Render("•")
	p.InactiveDot = lipgloss.NewStyle().Foreground(styles.PagerInactiveDotColor).Render("•")

	return Model{paginator: p}
}

// SetTotal updates the total item count, recomputing page boundaries and
// clamping the current page if it fell off the end.
func (m Model) SetTotal(items int) Model {
	if items < 0 {
		items = 0
	}
	m.total = items
	m.paginator.SetTotalPages(items)
	if m.paginator.Page >= m.paginator.TotalPages {
		m.paginator.Page = m.paginator.TotalPages - 1
	}
	if m.paginator.Page < 0 {
		m.paginator.Page = 0
	}
	return m
}

// SetPage jumps to a page, clamped to valid bounds.
func (m Model) SetPage(page int) Model {
	if page < 0 {
		page = 0
	}
	if page >= m.paginator.TotalPages {
		page = m.paginator.TotalPages - 1
	}
	if page < 0 {
		page = 0
	}
	m.paginator.Page = page
	return m
}

// Page returns the current page (zero-based).
func (m Model) Page() int {
	return m.paginator.Page
}

// TotalPages returns the page count for the current total.
func (m Model) TotalPages() int {
	return m.paginator.TotalPages
}

// PerPage returns the page size.
func (m Model) PerPage() int {
	return m.paginator.PerPage
}

// SetPerPage changes the page size and recomputes boundaries.
func (m Model) SetPerPage(perPage int) Model {
	if perPage < 1 {
		perPage = 1
	}
	m.paginator.PerPage = perPage
	return m.SetTotal(m.total)
}

// SliceBounds returns the [start, end) range of the current page within a
// slice of the given length.
func (m Model) SliceBounds(length int) (int, int) {
	return m.paginator.GetSliceBounds(length)
}

// Update handles navigation keys. Every next/prev keypress produces a
// request event; an actual page change additionally produces PageChangedMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.paginator.Page

	var cmds []tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.paginator.KeyMap.NextPage):
			cmds = append(cmds, func() tea.Msg { return NextRequestedMsg{} })
		case key.Matches(keyMsg, m.paginator.KeyMap.PrevPage):
			cmds = append(cmds, func() tea.Msg { return PrevRequestedMsg{} })
		}
	}

	var cmd tea.Cmd
	m.paginator, cmd = m.paginator.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if after := m.paginator.Page; after != before {
		cmds = append(cmds, func() tea.Msg { return PageChangedMsg{Page: after} })
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// View renders the page dots with a page counter.
func (m Model) View() string {
	if m.paginator.TotalPages <= 1 {
		return ""
	}
	counter := styles.HelpStyle.Render(
		fmt.Sprintf(" %d/%d", m.paginator.Page+1, m.paginator.TotalPages))
	return m.paginator.View() + counter
}
