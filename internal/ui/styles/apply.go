package styles

import "github.com/charmbracelet/lipgloss"

// Apply overrides color tokens from a flattened dot-notation map, as produced
// by config.ThemeConfig.FlattenedColors. Unknown tokens are ignored so an old
// config keeps working after tokens are renamed. Overrides apply to both the
// light and dark variant of the token.
func Apply(overrides map[string]string) {
	for token, hex := range overrides {
		c := lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		switch ColorToken(token) {
		case TokenTextPrimary:
			TextPrimaryColor = c
		case TokenTextSecondary:
			TextSecondaryColor = c
		case TokenTextMuted:
			TextMutedColor = c
		case TokenTextDescription:
			TextDescriptionColor = c
		case TokenBorderDefault:
			BorderDefaultColor = c
		case TokenBorderHighlight:
			BorderHighlightColor = c
		case TokenStatusSuccess:
			StatusSuccessColor = c
			ToastBorderSuccessColor = c
		case TokenStatusWarning:
			StatusWarningColor = c
			ToastBorderWarnColor = c
		case TokenStatusError:
			StatusErrorColor = c
			ToastBorderErrorColor = c
		case TokenSelectionIndicator:
			SelectionIndicatorColor = c
			SelectionIndicatorStyle = SelectionIndicatorStyle.Foreground(c)
		case TokenTagText:
			TagTextColor = c
			TagStyle = TagStyle.Foreground(c)
		case TokenTagBg:
			TagBgColor = c
			TagStyle = TagStyle.Background(c)
		case TokenHeaderTitle:
			HeaderTitleColor = c
		case TokenHeaderCount:
			HeaderCountColor = c
		case TokenPagerActive:
			PagerActiveDotColor = c
		case TokenPagerInactive:
			PagerInactiveDotColor = c
		case TokenToastSuccess:
			ToastBorderSuccessColor = c
		case TokenToastError:
			ToastBorderErrorColor = c
		case TokenToastInfo:
			ToastBorderInfoColor = c
		case TokenToastWarn:
			ToastBorderWarnColor = c
		}
	}
}
