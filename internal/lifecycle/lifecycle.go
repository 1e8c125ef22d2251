// Package lifecycle sequences the operator commands: prompts, unit file
// writes, systemctl calls and domain registration, including the rollback
// of a half-created service.
package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ahmabora1/usvc/internal/unit"
)

var (
	// ErrAborted is returned when the operator declines a confirmation.
	ErrAborted = errors.New("aborted by user")

	// ErrServiceExists is returned by Create when a unit file already exists.
	ErrServiceExists = errors.New("service already exists")
)

// Prompter asks the operator questions.
type Prompter interface {
	// Ask returns the trimmed answer to question.
	Ask(question string) (string, error)

	// Confirm asks a yes/no question; def is used for an empty answer.
	Confirm(question string, def bool) (bool, error)
}

// Manager is the service manager.
type Manager interface {
	Start(name string) error
	Stop(name string) error
	Enable(name string, now bool) error
	Disable(name string, now bool) error
	DaemonReload() error
}

// Registrar registers reverse-proxy domains.
type Registrar interface {
	AllocatePort() (int, error)
	AddDomain(domain string, port int) error
	RemoveDomain(domain string) error
}

// Store persists unit files.
type Store interface {
	PathFor(name string) string
	Exists(name string) (bool, error)
	Write(name, content string) error
	ReadFirstLine(name string) (string, bool, error)
	Delete(name string) error
}

// Env is the process state the orchestrator depends on.
type Env struct {
	Home    string
	WorkDir string
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Prompter  Prompter
	Manager   Manager
	Registrar Registrar
	Store     Store
	Logger    *slog.Logger
	Out       io.Writer
}

// Orchestrator runs one operator command at a time. It keeps no service
// state between calls; the unit files are the source of truth.
type Orchestrator struct {
	env       Env
	prompt    Prompter
	manager   Manager
	registrar Registrar
	store     Store
	logger    *slog.Logger
	out       io.Writer
}

// New creates an orchestrator.
func New(env Env, deps Deps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	return &Orchestrator{
		env:       env,
		prompt:    deps.Prompter,
		manager:   deps.Manager,
		registrar: deps.Registrar,
		store:     deps.Store,
		logger:    logger,
		out:       out,
	}
}

// Start starts a service
func (o *Orchestrator) Start(name string) error {
	if err := o.manager.Start(name); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	fmt.Fprintf(o.out, "✓ Started %s\n", name)
	return nil
}

// Stop stops a service
func (o *Orchestrator) Stop(name string) error {
	if err := o.manager.Stop(name); err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}
	fmt.Fprintf(o.out, "✓ Stopped %s\n", name)
	return nil
}

// Enable enables a service, starting it as well when now is set.
func (o *Orchestrator) Enable(name string, now bool) error {
	if err := o.manager.Enable(name, now); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}
	if now {
		fmt.Fprintf(o.out, "✓ Enabled and started %s\n", name)
	} else {
		fmt.Fprintf(o.out, "✓ Enabled %s\n", name)
	}
	return nil
}

// Disable disables a service, stopping it as well when now is set.
func (o *Orchestrator) Disable(name string, now bool) error {
	if err := o.manager.Disable(name, now); err != nil {
		return fmt.Errorf("failed to disable service: %w", err)
	}
	if now {
		fmt.Fprintf(o.out, "✓ Disabled and stopped %s\n", name)
	} else {
		fmt.Fprintf(o.out, "✓ Disabled %s\n", name)
	}
	return nil
}

// Delete stops and disables a service, removes its registered domain and
// deletes its unit file. The file is only touched once systemd has
// accepted the disable; domain removal failures are reported as warnings.
func (o *Orchestrator) Delete(name string, force bool) error {
	if err := unit.ValidateName(name); err != nil {
		return err
	}

	if !force {
		ok, err := o.prompt.Confirm(fmt.Sprintf("Do you really want to delete the service %q?", name), false)
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			return ErrAborted
		}
	}

	if err := o.manager.Disable(name, true); err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}

	o.removeDomain(name)

	if err := o.store.Delete(name); err != nil {
		return fmt.Errorf("delete unit file: %w", err)
	}

	if err := o.manager.DaemonReload(); err != nil {
		o.logger.Warn("daemon reload after delete failed", "service", name, "error", err)
	}

	fmt.Fprintf(o.out, "✓ Deleted %s\n", name)
	return nil
}

func (o *Orchestrator) removeDomain(name string) {
	line, ok, err := o.store.ReadFirstLine(name)
	if err != nil {
		o.logger.Warn("could not read registered domain", "service", name, "error", err)
		return
	}
	if !ok {
		return
	}

	domain, ok := unit.DomainFromLine(line)
	if !ok {
		o.logger.Warn("unreadable domain line", "service", name, "line", line)
		fmt.Fprintf(o.out, "✗ Could not read a domain from %q, remove it from the registrar manually\n", line)
		return
	}

	if err := o.registrar.RemoveDomain(domain); err != nil {
		o.logger.Warn("failed to remove domain", "service", name, "domain", domain, "error", err)
		fmt.Fprintf(o.out, "✗ Failed to remove domain %s: %v\n", domain, err)
		return
	}
	fmt.Fprintf(o.out, "✓ Removed domain %s\n", domain)
}
