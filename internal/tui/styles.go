package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorAccent = lipgloss.Color("#A8D8EA")
	ColorDeep   = lipgloss.Color("#596E79")
	ColorText   = lipgloss.Color("#E0E0E0")
	ColorAlert  = lipgloss.Color("#FF6B6B")
	ColorGood   = lipgloss.Color("#4ECDC4")
	ColorWarn   = lipgloss.Color("#FFE66D")
	ColorMuted  = lipgloss.Color("#6c757d")
)

var (
	StyleApp = lipgloss.NewStyle().Margin(1, 2)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorDeep).
			Padding(0, 1).
			MarginBottom(1)

	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDeep).
			Padding(1, 3).
			Margin(0, 1).
			Width(28).
			Align(lipgloss.Center)

	StyleActiveCard = StyleCard.
			BorderForeground(ColorAccent)

	StyleFlaggedCard = StyleCard.
				BorderForeground(ColorAlert)

	StylePlayer = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleTime   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleLow    = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)
	StyleGain   = lipgloss.NewStyle().Foreground(ColorGood).Bold(true)
	StyleStatus = lipgloss.NewStyle().Foreground(ColorDeep).Italic(true)

	StyleBanner = lipgloss.NewStyle().Foreground(ColorAlert).Bold(true).MarginTop(1)
	StyleHelp   = lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)
)
