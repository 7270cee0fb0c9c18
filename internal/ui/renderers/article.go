package renderers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"

	"curio/internal/domain"
	"curio/internal/ui/collectionview"
	"curio/internal/ui/styles"
)

// maxSummaryClusters bounds the plain-text summary fallback; longer
// summaries are cut at a cluster boundary with an ellipsis.
const maxSummaryClusters = 280

const minCardWidth = 20

// articleCard renders one article as a bordered card. The bound item is
// fixed at construction.
type articleCard struct {
	collectionview.Base

	item    domain.Item
	summary SummaryFunc
	starred bool

	cardZone string
}

func newArticleCard(cfg Config, item domain.Item) *articleCard {
	return &articleCard{
		Base:     collectionview.NewBase(),
		item:     item,
		summary:  cfg.Summary,
		cardZone: "article-" + uuid.NewString(),
	}
}

// Item returns the record bound at construction.
func (a *articleCard) Item() domain.Item {
	return a.item
}

func (a *articleCard) Update(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || mouse.Action != tea.MouseActionRelease {
		return nil
	}
	if !zone.Get(a.cardZone).InBounds(mouse) {
		return nil
	}

	switch mouse.Button {
	case tea.MouseButtonLeft:
		a.open()
	case tea.MouseButtonRight:
		a.toggleStar()
	}
	return nil
}

// open announces the bound article; the payload is its GUID.
func (a *articleCard) open() {
	a.Emit(EventArticleOpened, a.item.ID)
}

// toggleStar flips the local star state and announces the new state.
func (a *articleCard) toggleStar() {
	a.starred = !a.starred
	a.Emit(EventArticleStarred, a.starred)
}

func (a *articleCard) View(width int) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - 4 // border + padding

	title := runewidth.Truncate(a.item.String(domain.FieldTitle), inner, "…")
	titleLine := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Render(title)
	if a.starred {
		titleLine = styles.SelectionIndicatorStyle.Render("★ ") + titleLine
	}

	var lines []string
	lines = append(lines, titleLine)

	if byline := a.byline(inner); byline != "" {
		lines = append(lines, byline)
	}
	if summary := a.renderSummary(inner); summary != "" {
		lines = append(lines, "", summary)
	}
	if tags := a.renderTags(inner); tags != "" {
		lines = append(lines, "", tags)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))

	return zone.Mark(a.cardZone, card)
}

func (a *articleCard) byline(width int) string {
	author := a.item.String(domain.FieldAuthor)
	date := a.item.String(domain.FieldPublished)

	var parts []string
	if author != "" {
		parts = append(parts, author)
	}
	if date != "" {
		parts = append(parts, date)
	}
	if len(parts) == 0 {
		return ""
	}

	byline := strings.Join(parts, " • ")
	return lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).
		Render(runewidth.Truncate(byline, width, "…"))
}

func (a *articleCard) renderSummary(width int) string {
	raw := a.item.String(domain.FieldSummary)
	if raw == "" {
		return ""
	}

	if a.summary != nil {
		if out, err := a.summary(a.item, width); err == nil {
			return out
		}
		// Fall through to the plain rendering on error; the card must
		// still render.
	}

	if uniseg.GraphemeClusterCount(raw) > maxSummaryClusters {
		clusters := 0
		g := uniseg.NewGraphemes(raw)
		var b strings.Builder
		for g.Next() && clusters < maxSummaryClusters {
			b.WriteString(g.Str())
			clusters++
		}
		raw = strings.TrimRight(b.String(), " \n") + "…"
	}

	wrapped := wordwrap.String(raw, width)
	return lipgloss.NewStyle().Foreground(styles.TextDescriptionColor).Render(wrapped)
}

func (a *articleCard) renderTags(width int) string {
	tags := a.item.Strings(domain.FieldTags)
	if len(tags) == 0 {
		return ""
	}

	var badges []string
	used := 0
	for _, tag := range tags {
		badge := styles.TagStyle.Render(tag)
		w := lipgloss.Width(badge) + 1
		if used+w > width {
			break
		}
		badges = append(badges, badge)
		used += w
	}
	return strings.Join(badges, " ")
}
