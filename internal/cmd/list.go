package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ahmabora1/usvc/internal/catalog"
	"github.com/ahmabora1/usvc/internal/tui/views"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all services",
	Long: `Display every service in the user unit directory with its port,
domain and systemd state. Opens the interactive browser on a terminal;
use --plain for text output.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listPlain bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listPlain, "plain", "p", false, "Plain text output (no TUI)")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	if listPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runListPlain(a)
	}

	model := views.NewListModel(a.listSources())
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// listSources returns the loader and controller for the list view. The
// table owns the screen, so systemctl output is not streamed.
func (a *app) listSources() (views.LoadFunc, views.Controller) {
	quiet := a.quietSystemd()
	load := func() ([]catalog.Entry, error) {
		return catalog.Load(a.store, quiet)
	}
	return load, quiet
}

func runListPlain(a *app) error {
	entries, err := catalog.Load(a.store, a.systemd)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No services found in %s\n", a.store.Dir())
		return nil
	}

	fmt.Printf("%-18s %-7s %-30s %-12s %s\n", "SERVICE", "PORT", "DOMAIN", "ACTIVE", "ENABLED")
	fmt.Println(strings.Repeat("-", 80))

	for _, e := range entries {
		port := "-"
		if e.Port != 0 {
			port = strconv.Itoa(e.Port)
		}
		domain := e.Domain
		if domain == "" {
			domain = "-"
		}
		fmt.Printf("%-18s %-7s %-30s %-12s %s\n",
			e.Name, port, domain, e.Active, e.Enabled)
	}

	fmt.Printf("\nTotal: %d services\n", len(entries))
	return nil
}
