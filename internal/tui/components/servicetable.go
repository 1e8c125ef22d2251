package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmabora1/usvc/internal/catalog"
	"github.com/ahmabora1/usvc/internal/tui/styles"
)

// NewServiceTable creates a table for displaying services and their state
func NewServiceTable(entries []catalog.Entry, height int) table.Model {
	columns := []table.Column{
		{Title: "Service", Width: 18},
		{Title: "Port", Width: 7},
		{Title: "Domain", Width: 30},
		{Title: "Active", Width: 12},
		{Title: "Enabled", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(ServiceRows(entries)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Apply styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Primary).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)

	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(styles.Primary).
		Bold(true)

	t.SetStyles(s)

	return t
}

// ServiceRows converts entries into table rows
func ServiceRows(entries []catalog.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		port := "-"
		if e.Port != 0 {
			port = strconv.Itoa(e.Port)
		}
		domain := e.Domain
		if domain == "" {
			domain = "-"
		}

		rows[i] = table.Row{
			truncate(e.Name, 16),
			port,
			truncate(domain, 28),
			e.Active,
			e.Enabled,
		}
	}
	return rows
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
