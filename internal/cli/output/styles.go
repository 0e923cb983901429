package output

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	SuccessIcon string
	WarningIcon string
	ErrorIcon   string
}

// NewStyles returns colored styles for a terminal and plain ones otherwise.
func NewStyles(isTTY bool) *Styles {
	if !isTTY {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:       plain,
			Subtitle:    plain,
			Bold:        plain,
			Muted:       plain,
			Success:     plain,
			Warning:     plain,
			Error:       plain,
			SuccessIcon: "[ok]",
			WarningIcon: "[warn]",
			ErrorIcon:   "[error]",
		}
	}
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Subtitle:    lipgloss.NewStyle().Bold(true),
		Bold:        lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
		Success:     lipgloss.NewStyle().Foreground(colorSuccess),
		Warning:     lipgloss.NewStyle().Foreground(colorWarning),
		Error:       lipgloss.NewStyle().Foreground(colorError).Bold(true),
		SuccessIcon: "✓",
		WarningIcon: "!",
		ErrorIcon:   "✗",
	}
}
