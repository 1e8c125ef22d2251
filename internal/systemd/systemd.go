// Package systemd drives the per-user systemd instance through systemctl.
package systemd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmabora1/usvc/internal/runner"
)

// DefaultBinary is the systemctl program used when none is configured.
const DefaultBinary = "systemctl"

// ManagerError reports a systemctl call that did not succeed.
// Status is the exit status, or -1 when the program could not be run.
type ManagerError struct {
	Operation string
	Unit      string
	Status    int
	Err       error
}

func (e *ManagerError) Error() string {
	target := e.Operation
	if e.Unit != "" {
		target += " " + e.Unit
	}
	if e.Err != nil {
		return fmt.Sprintf("systemctl %s: %v", target, e.Err)
	}
	return fmt.Sprintf("systemctl %s: exit status %d", target, e.Status)
}

func (e *ManagerError) Unwrap() error {
	return e.Err
}

// Client issues systemctl --user calls. Each call is made exactly once.
type Client struct {
	runner runner.Runner
	binary string
	logger *slog.Logger
}

// New creates a client that runs binary through r.
func New(r runner.Runner, binary string, logger *slog.Logger) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{runner: r, binary: binary, logger: logger}
}

// Start starts a service
func (c *Client) Start(name string) error {
	return c.call("start", name)
}

// Stop stops a service
func (c *Client) Stop(name string) error {
	return c.call("stop", name)
}

// Enable enables a service; with now it is also started.
func (c *Client) Enable(name string, now bool) error {
	return c.call("enable", name, nowFlag(now)...)
}

// Disable disables a service; with now it is also stopped.
func (c *Client) Disable(name string, now bool) error {
	return c.call("disable", name, nowFlag(now)...)
}

// DaemonReload makes systemd re-read the unit files.
func (c *Client) DaemonReload() error {
	return c.call("daemon-reload", "")
}

// IsActive returns the active state reported by systemctl is-active
// (e.g. "active", "inactive", "failed"). A non-zero exit is expected for
// inactive units and is not an error.
func (c *Client) IsActive(name string) string {
	return c.query("is-active", name)
}

// IsEnabled returns the state reported by systemctl is-enabled.
func (c *Client) IsEnabled(name string) string {
	return c.query("is-enabled", name)
}

func (c *Client) call(operation, name string, extra ...string) error {
	args := []string{"--user", operation}
	if name != "" {
		args = append(args, name)
	}
	args = append(args, extra...)

	res, err := c.runner.Run(c.binary, args...)
	if err != nil {
		return &ManagerError{Operation: operation, Unit: name, Status: -1, Err: err}
	}
	if !res.Success() {
		c.logger.Debug("systemctl failed", "operation", operation, "unit", name, "status", res.Status)
		return &ManagerError{Operation: operation, Unit: name, Status: res.Status}
	}
	return nil
}

func (c *Client) query(operation, name string) string {
	res, err := c.runner.Output(c.binary, "--user", operation, name)
	if err != nil {
		return "unknown"
	}
	state := strings.TrimSpace(res.Stdout)
	if state == "" {
		return "unknown"
	}
	return state
}

func nowFlag(now bool) []string {
	if now {
		return []string{"--now"}
	}
	return nil
}
