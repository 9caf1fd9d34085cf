package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"bizexpense/internal/core"
)

var (
	// PrimaryColor is the ledger green used for headings.
	PrimaryColor = lipgloss.Color("#162A0A")
	AccentColor  = lipgloss.Color("#8FBF4D")
	WarningColor = lipgloss.Color("#E0A526")
	ErrorColor   = lipgloss.Color("#C0392B")
	SubtleColor  = lipgloss.Color("#777777")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// StatStyle frames one dashboard figure.
	StatStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1).
			Width(24)
)

// FormatINR renders an amount with thousands separators and two decimals.
func FormatINR(m core.Money) string {
	return "₹" + humanize.FormatFloat("#,###.##", m.Float())
}

// FormatPercent renders a utilization figure with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
