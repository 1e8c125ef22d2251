package lifecycle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ahmabora1/usvc/internal/store"
)

var errScriptExhausted = errors.New("scripted prompter has no more answers")

// scriptedPrompter answers questions from fixed lists, in order.
type scriptedPrompter struct {
	answers  []string
	confirms []bool

	asked     []string
	confirmed []string
}

func (p *scriptedPrompter) Ask(question string) (string, error) {
	p.asked = append(p.asked, question)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("%w: %q", errScriptExhausted, question)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Confirm(question string, def bool) (bool, error) {
	p.confirmed = append(p.confirmed, question)
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("%w: %q", errScriptExhausted, question)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

type fakeManager struct {
	calls []string

	startErr   error
	stopErr    error
	enableErr  error
	disableErr error
	reloadErr  error
}

func (m *fakeManager) Start(name string) error {
	m.calls = append(m.calls, "start "+name)
	return m.startErr
}

func (m *fakeManager) Stop(name string) error {
	m.calls = append(m.calls, "stop "+name)
	return m.stopErr
}

func (m *fakeManager) Enable(name string, now bool) error {
	m.calls = append(m.calls, fmt.Sprintf("enable %s now=%v", name, now))
	return m.enableErr
}

func (m *fakeManager) Disable(name string, now bool) error {
	m.calls = append(m.calls, fmt.Sprintf("disable %s now=%v", name, now))
	return m.disableErr
}

func (m *fakeManager) DaemonReload() error {
	m.calls = append(m.calls, "daemon-reload")
	return m.reloadErr
}

type addCall struct {
	domain string
	port   int
}

type fakeRegistrar struct {
	port    int
	portErr error
	addErr  error
	rmErr   error

	allocateCalls int
	addCalls      []addCall
	removeCalls   []string
}

func (r *fakeRegistrar) AllocatePort() (int, error) {
	r.allocateCalls++
	return r.port, r.portErr
}

func (r *fakeRegistrar) AddDomain(domain string, port int) error {
	r.addCalls = append(r.addCalls, addCall{domain: domain, port: port})
	return r.addErr
}

func (r *fakeRegistrar) RemoveDomain(domain string) error {
	r.removeCalls = append(r.removeCalls, domain)
	return r.rmErr
}

type harness struct {
	orch      *Orchestrator
	prompt    *scriptedPrompter
	manager   *fakeManager
	registrar *fakeRegistrar
	store     *store.Store
	out       *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		prompt:    &scriptedPrompter{},
		manager:   &fakeManager{},
		registrar: &fakeRegistrar{},
		store:     store.New(t.TempDir()),
		out:       &bytes.Buffer{},
	}
	h.orch = New(Env{Home: "/home/ada", WorkDir: "/home/ada/src/api"}, Deps{
		Prompter:  h.prompt,
		Manager:   h.manager,
		Registrar: h.registrar,
		Store:     h.store,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:       h.out,
	})
	return h
}

func (h *harness) exists(t *testing.T, name string) bool {
	t.Helper()
	ok, err := h.store.Exists(name)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	return ok
}
