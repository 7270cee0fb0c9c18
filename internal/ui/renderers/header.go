package renderers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"curio/internal/ui/collectionview"
	"curio/internal/ui/styles"
)

// header renders the collection title band with a clickable refresh
// affordance. It binds no data.
type header struct {
	collectionview.Base

	title string
	count func() int

	titleZone   string
	refreshZone string
}

func newHeader(cfg Config) *header {
	id := uuid.NewString()
	return &header{
		Base:        collectionview.NewBase(),
		title:       cfg.Title,
		count:       cfg.Count,
		titleZone:   "header-title-" + id,
		refreshZone: "header-refresh-" + id,
	}
}

func (h *header) Update(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || mouse.Action != tea.MouseActionRelease || mouse.Button != tea.MouseButtonLeft {
		return nil
	}

	switch {
	case zone.Get(h.refreshZone).InBounds(mouse):
		h.Emit(EventRefreshRequested, nil)
	case zone.Get(h.titleZone).InBounds(mouse):
		h.Emit(EventTitleClicked, h.title)
	}
	return nil
}

func (h *header) View(width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.HeaderTitleColor)
	countStyle := lipgloss.NewStyle().Foreground(styles.HeaderCountColor)

	title := zone.Mark(h.titleZone, titleStyle.Render(h.title))

	var count string
	if h.count != nil {
		count = countStyle.Render(fmt.Sprintf(" (%d)", h.count()))
	}

	refresh := zone.Mark(h.refreshZone, styles.HelpStyle.Render("[refresh]"))

	line := title + count
	// Right-align the refresh affordance when there is room.
	gap := width - lipgloss.Width(line) - lipgloss.Width(refresh)
	if gap < 1 {
		gap = 1
	}
	return line + lipgloss.NewStyle().Width(gap).Render("") + refresh
}
