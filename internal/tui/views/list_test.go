package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ahmabora1/usvc/internal/catalog"
	"github.com/ahmabora1/usvc/internal/unit"
)

type fakeController struct {
	calls []string
	err   error
}

func (f *fakeController) Start(name string) error {
	f.calls = append(f.calls, "start "+name)
	return f.err
}

func (f *fakeController) Stop(name string) error {
	f.calls = append(f.calls, "stop "+name)
	return f.err
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{Info: unit.Info{Name: "api", Port: 8080, Domain: "api.example.com", StartCommand: "./api"}, Active: "active", Enabled: "enabled"},
		{Info: unit.Info{Name: "worker", StartCommand: "./worker"}, Active: "inactive", Enabled: "disabled"},
	}
}

func readyModel(t *testing.T, ctl Controller) ListModel {
	t.Helper()
	m := NewListModel(func() ([]catalog.Entry, error) {
		return testEntries(), nil
	}, ctl)

	msg := m.loadServicesCmd()()
	updated, _ := m.Update(msg)
	return updated.(ListModel)
}

func TestListModelLoads(t *testing.T) {
	m := readyModel(t, &fakeController{})

	if m.state != ListStateReady {
		t.Fatalf("Expected ready state, got %v", m.state)
	}
	view := m.View()
	for _, want := range []string{"api", "worker", "8080", "api.example.com"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestListModelLoadError(t *testing.T) {
	m := NewListModel(func() ([]catalog.Entry, error) {
		return nil, errors.New("permission denied")
	}, &fakeController{})

	updated, _ := m.Update(m.loadServicesCmd()())
	m = updated.(ListModel)

	if m.state != ListStateError {
		t.Fatalf("Expected error state, got %v", m.state)
	}
	if !strings.Contains(m.View(), "permission denied") {
		t.Error("error not shown")
	}
}

func TestListModelStartSelected(t *testing.T) {
	ctl := &fakeController{}
	m := readyModel(t, ctl)

	updated, cmd := m.Update(key("s"))
	m = updated.(ListModel)
	if cmd == nil {
		t.Fatal("Expected a command for start")
	}

	done := cmd()
	if len(ctl.calls) != 1 || ctl.calls[0] != "start api" {
		t.Fatalf("unexpected controller calls %v", ctl.calls)
	}

	updated, _ = m.Update(done)
	m = updated.(ListModel)
	if !strings.Contains(m.status, "Started api") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestListModelStopFailure(t *testing.T) {
	ctl := &fakeController{err: errors.New("exit status 5")}
	m := readyModel(t, ctl)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(ListModel)

	_, cmd := m.Update(key("x"))
	done := cmd()
	if len(ctl.calls) != 1 || ctl.calls[0] != "stop worker" {
		t.Fatalf("unexpected controller calls %v", ctl.calls)
	}

	updated, _ = m.Update(done)
	m = updated.(ListModel)
	if !strings.Contains(m.status, "Failed to stop worker") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestListModelQuit(t *testing.T) {
	m := readyModel(t, &fakeController{})

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
