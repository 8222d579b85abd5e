// Package styles contains the Lip Gloss styles of the terminal host.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6E6E6"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#6E7681"}
	BarBgColor         = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#30363D"}
	SelectionBgColor   = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#1F6FEB"}
	SelectionTextColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	BorderColor        = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#484F58"}
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}

	// Menu bar
	BarStyle         = lipgloss.NewStyle().Background(BarBgColor).Foreground(TextPrimaryColor)
	BarItemStyle     = lipgloss.NewStyle().Padding(0, 1).Background(BarBgColor).Foreground(TextPrimaryColor)
	BarItemOpenStyle = lipgloss.NewStyle().Padding(0, 1).Background(SelectionBgColor).Foreground(SelectionTextColor).Bold(true)

	// Dropdowns
	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)
	ItemStyle         = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	ItemSelectedStyle = lipgloss.NewStyle().Background(SelectionBgColor).Foreground(SelectionTextColor)
	ItemDisabledStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	AcceleratorStyle  = lipgloss.NewStyle().Foreground(TextMutedColor)
	SeparatorStyle    = lipgloss.NewStyle().Foreground(BorderColor)

	// Status bar
	StatusBarStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	StatusOKStyle    = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
)
