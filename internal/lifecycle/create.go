package lifecycle

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ahmabora1/usvc/internal/unit"
)

// Port answers with special meaning.
const (
	PortAuto = "auto"
	PortNone = "-"
)

// Create interactively builds a new service, registers its domain when it
// has a port, writes the unit file and reloads systemd.
//
// Steps run in this order: domain registration, file write, daemon-reload.
// If the reload fails the file is removed again; the domain is left in
// place. A failure to enable the service afterwards leaves the service
// created and is returned to the caller.
func (o *Orchestrator) Create() (unit.Service, error) {
	name, err := o.askName()
	if err != nil {
		return unit.Service{}, err
	}

	exists, err := o.store.Exists(name)
	if err != nil {
		return unit.Service{}, err
	}
	if exists {
		return unit.Service{}, fmt.Errorf("%w: %s", ErrServiceExists, o.store.PathFor(name))
	}

	description, err := o.askDefault("Description [name]", name)
	if err != nil {
		return unit.Service{}, err
	}

	directory, err := o.askDefault("Directory [%h = home directory]", unit.HomeDir)
	if err != nil {
		return unit.Service{}, err
	}
	directory = o.expandDirectory(directory)

	port, err := o.askPort()
	if err != nil {
		return unit.Service{}, err
	}

	preStart, err := o.prompt.Ask("Pre start command [none]")
	if err != nil {
		return unit.Service{}, err
	}

	start, err := o.askRequired("Start command")
	if err != nil {
		return unit.Service{}, err
	}

	svc, err := unit.New(unit.Options{
		Name:            name,
		Description:     description,
		Directory:       directory,
		Port:            port,
		PreStartCommand: preStart,
		StartCommand:    start,
	})
	if err != nil {
		return unit.Service{}, err
	}

	if port != 0 {
		domain, err := o.askDomain()
		if err != nil {
			return unit.Service{}, err
		}
		if err := o.registrar.AddDomain(domain, port); err != nil {
			return unit.Service{}, fmt.Errorf("failed to create subdomain: %w", err)
		}
		fmt.Fprintf(o.out, "✓ Registered %s -> localhost:%d\n", domain, port)

		if svc, err = svc.WithDomain(domain); err != nil {
			return unit.Service{}, err
		}
	}

	if err := o.store.Write(name, unit.Render(svc)); err != nil {
		return unit.Service{}, fmt.Errorf("write unit file: %w", err)
	}

	if err := o.manager.DaemonReload(); err != nil {
		reloadErr := fmt.Errorf("failed to reload daemon: %w", err)
		if rmErr := o.store.Delete(name); rmErr != nil {
			o.logger.Error("rollback failed", "service", name, "error", rmErr)
			return unit.Service{}, errors.Join(reloadErr, fmt.Errorf("remove unit file: %w", rmErr))
		}
		o.logger.Info("rolled back unit file", "service", name)
		return unit.Service{}, reloadErr
	}

	fmt.Fprintf(o.out, "✓ Created %s\n", o.store.PathFor(name))

	enable, err := o.prompt.Confirm("Service created, should it be enabled and started now?", true)
	if err != nil {
		return svc, fmt.Errorf("read confirmation: %w", err)
	}
	if !enable {
		return svc, nil
	}

	if err := o.manager.Enable(name, true); err != nil {
		return svc, fmt.Errorf("failed to enable service: %w", err)
	}
	fmt.Fprintf(o.out, "✓ Enabled and started %s\n", name)

	return svc, nil
}

func (o *Orchestrator) askName() (string, error) {
	for {
		name, err := o.askRequired("Name")
		if err != nil {
			return "", err
		}
		if err := unit.ValidateName(name); err != nil {
			fmt.Fprintf(o.out, "✗ %v\n", err)
			continue
		}
		return name, nil
	}
}

// askDomain repeats the question until the answer is a single word, so the
// domain can be read back from the unit file on delete.
func (o *Orchestrator) askDomain() (string, error) {
	for {
		domain, err := o.askRequired("Full domain")
		if err != nil {
			return "", err
		}
		if err := unit.ValidateDomain(domain); err != nil {
			fmt.Fprintf(o.out, "✗ %v\n", err)
			continue
		}
		return domain, nil
	}
}

// askPort returns 0 when the operator opts out of a port.
func (o *Orchestrator) askPort() (int, error) {
	for {
		answer, err := o.prompt.Ask(`Port [auto, "-" = no subdomain created]`)
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(answer) {
		case "", PortAuto:
			port, err := o.registrar.AllocatePort()
			if err != nil {
				return 0, fmt.Errorf("allocate port: %w", err)
			}
			fmt.Fprintf(o.out, "Chose port %d\n", port)
			return port, nil
		case PortNone, "none":
			return 0, nil
		}

		port, err := strconv.Atoi(answer)
		if err != nil || port < 1 || port > 65535 {
			fmt.Fprintf(o.out, "✗ %q is not a valid port\n", answer)
			continue
		}
		return port, nil
	}
}

// askRequired repeats the question until the answer is non-empty.
func (o *Orchestrator) askRequired(question string) (string, error) {
	for {
		answer, err := o.prompt.Ask(question)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

func (o *Orchestrator) askDefault(question, def string) (string, error) {
	answer, err := o.prompt.Ask(question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// expandDirectory resolves "." to the working directory and "~" to the
// home directory. Everything else, including "%h", is kept for systemd.
func (o *Orchestrator) expandDirectory(dir string) string {
	switch {
	case dir == "." && o.env.WorkDir != "":
		return o.env.WorkDir
	case dir == "~":
		return unit.HomeDir
	case strings.HasPrefix(dir, "~/") && o.env.Home != "":
		return filepath.Join(o.env.Home, dir[2:])
	}
	return dir
}
