// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Titles, primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Authors, dates
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Summary/body text

	// Semantic color names - Border
	BorderDefaultColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"} // Selected card border

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}

	// Tag badge colors
	TagTextColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	TagBgColor   = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}

	// Header band colors
	HeaderTitleColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#CBA6F7"}
	HeaderCountColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}

	// Pager colors
	PagerActiveDotColor   = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#CBA6F7"}
	PagerInactiveDotColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	// Toast border colors
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#89B4FA"}
	ToastBorderWarnColor    = StatusWarningColor

	// Selection indicator style (used for ">" prefix in lists)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Tag badge style
	TagStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(TagTextColor).
		Background(TagBgColor)

	// Muted footer/help style
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
