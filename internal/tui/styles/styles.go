package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7D56F4")
	Secondary = lipgloss.Color("#43BF6D")
	Danger    = lipgloss.Color("#FF79C6")
	Warning   = lipgloss.Color("#FFBD2E")
	Muted     = lipgloss.Color("#626262")

	// Text styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	// Interactive question
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	// Default shown after a question
	PromptHint = lipgloss.NewStyle().
			Foreground(Muted)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary)

	StatusError = lipgloss.NewStyle().
			Foreground(Danger)

	StatusPending = lipgloss.NewStyle().
			Foreground(Warning)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Error message
	Error = lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true)

	// Success message
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	// Dimmed text
	Dimmed = lipgloss.NewStyle().
		Foreground(Muted)
)

// StateIcon returns a coloured dot for a systemd active state
func StateIcon(state string) string {
	switch state {
	case "active":
		return StatusOK.Render("●")
	case "activating", "deactivating", "reloading":
		return StatusPending.Render("●")
	case "failed":
		return StatusError.Render("●")
	}
	return Dimmed.Render("●")
}

// CheckMark returns a styled checkmark
func CheckMark() string {
	return StatusOK.Render("✓")
}

// CrossMark returns a styled cross
func CrossMark() string {
	return StatusError.Render("✗")
}
