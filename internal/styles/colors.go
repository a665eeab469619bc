package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	Red    = "#FF6188" // Errors
	Orange = "#FC9867" // Warnings
	Yellow = "#FFD866" // Paths
	Green  = "#A9DC76" // Success

	Comment = "#727072" // Dim text, hints
)

// Status line styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	PathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
)

// Success renders a check-marked status line
func Success(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// Warning renders a warning status line
func Warning(msg string) string {
	return WarningStyle.Render("! " + msg)
}

// Hint renders a dimmed, indented follow-up line
func Hint(msg string) string {
	return DimStyle.Render("  " + msg)
}
