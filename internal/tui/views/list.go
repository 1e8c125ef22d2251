package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmabora1/usvc/internal/catalog"
	"github.com/ahmabora1/usvc/internal/tui/components"
	"github.com/ahmabora1/usvc/internal/tui/styles"
)

// ListState represents the view state
type ListState int

const (
	ListStateLoading ListState = iota
	ListStateReady
	ListStateError
)

// LoadFunc returns the services to display
type LoadFunc func() ([]catalog.Entry, error)

// Controller starts and stops the selected service
type Controller interface {
	Start(name string) error
	Stop(name string) error
}

// ListModel is the Bubbletea model for the list view
type ListModel struct {
	state    ListState
	load     LoadFunc
	ctl      Controller
	entries  []catalog.Entry
	table    table.Model
	spinner  spinner.Model
	status   string
	err      error
	width    int
	height   int
	showHelp bool
}

// Messages
type servicesLoadedMsg struct {
	entries []catalog.Entry
}

type listErrMsg struct {
	err error
}

type actionDoneMsg struct {
	action string
	name   string
	err    error
}

// NewListModel creates a new list view model
func NewListModel(load LoadFunc, ctl Controller) ListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return ListModel{
		state:   ListStateLoading,
		load:    load,
		ctl:     ctl,
		spinner: s,
		width:   80,
		height:  24,
	}
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadServicesCmd(),
	)
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "r":
			m.state = ListStateLoading
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, m.loadServicesCmd())
		case "s":
			if name, ok := m.selected(); ok {
				m.status = fmt.Sprintf("Starting %s...", name)
				return m, m.actionCmd("start", name, m.ctl.Start)
			}
		case "x":
			if name, ok := m.selected(); ok {
				m.status = fmt.Sprintf("Stopping %s...", name)
				return m, m.actionCmd("stop", name, m.ctl.Stop)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == ListStateReady {
			m.table.SetHeight(m.tableHeight())
		}

	case servicesLoadedMsg:
		m.state = ListStateReady
		m.entries = msg.entries
		m.table = components.NewServiceTable(msg.entries, m.tableHeight())
		return m, nil

	case listErrMsg:
		m.state = ListStateError
		m.err = msg.err
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = styles.CrossMark() + " " + styles.Error.Render(fmt.Sprintf("Failed to %s %s: %v", msg.action, msg.name, msg.err))
			return m, nil
		}
		m.status = styles.CheckMark() + " " + styles.Success.Render(fmt.Sprintf("%s %s", pastTense(msg.action), msg.name))
		return m, m.reloadCmd()

	case servicesReloadedMsg:
		cursor := m.table.Cursor()
		m.entries = msg.entries
		m.table.SetRows(components.ServiceRows(msg.entries))
		if cursor < len(msg.entries) {
			m.table.SetCursor(cursor)
		}
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.state == ListStateReady {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m ListModel) View() string {
	switch m.state {
	case ListStateLoading:
		return fmt.Sprintf("\n  %s Loading services...\n", m.spinner.View())

	case ListStateError:
		return styles.Error.Render(fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", m.err))

	case ListStateReady:
		var s string
		s += "\n"
		s += styles.Title.Render("  User Services") + "\n\n"

		if len(m.entries) == 0 {
			s += styles.Dimmed.Render("  No services found") + "\n"
		} else {
			s += m.table.View() + "\n"
			if e, ok := m.selectedEntry(); ok {
				s += "\n  " + styles.StateIcon(e.Active) + " " + styles.Dimmed.Render(e.StartCommand) + "\n"
			}
		}

		if m.status != "" {
			s += "\n  " + m.status + "\n"
		}

		if m.showHelp {
			s += "\n" + styles.HelpBar.Render("  ↑/k: up • ↓/j: down • s: start • x: stop • r: refresh • q: quit • ?: toggle help")
		} else {
			s += "\n" + styles.HelpBar.Render("  Press ? for help")
		}

		return s
	}

	return ""
}

func (m ListModel) tableHeight() int {
	height := m.height - 12
	if height < 5 {
		height = 10
	}
	return height
}

func (m ListModel) selectedEntry() (catalog.Entry, bool) {
	if m.state != ListStateReady || len(m.entries) == 0 {
		return catalog.Entry{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return catalog.Entry{}, false
	}
	return m.entries[i], true
}

func (m ListModel) selected() (string, bool) {
	e, ok := m.selectedEntry()
	return e.Name, ok
}

type servicesReloadedMsg struct {
	entries []catalog.Entry
}

// loadServicesCmd creates a command to load services
func (m ListModel) loadServicesCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.load()
		if err != nil {
			return listErrMsg{err: err}
		}
		return servicesLoadedMsg{entries: entries}
	}
}

// reloadCmd refreshes the rows without leaving the table
func (m ListModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.load()
		if err != nil {
			return listErrMsg{err: err}
		}
		return servicesReloadedMsg{entries: entries}
	}
}

func (m ListModel) actionCmd(action, name string, fn func(string) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{action: action, name: name, err: fn(name)}
	}
}

func pastTense(action string) string {
	switch action {
	case "start":
		return "Started"
	case "stop":
		return "Stopped"
	}
	return action
}
