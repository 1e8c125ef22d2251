// Package registrar registers reverse-proxy domains through the nest tool.
package registrar

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/ahmabora1/usvc/internal/runner"
)

// ErrPortNotFound is returned when the port allocator's output does not
// contain "Port <N>".
var ErrPortNotFound = errors.New("unable to find port in allocator output")

// Pattern: Port 8080
var portRe = regexp.MustCompile(`Port (\d+)`)

// CallError reports a registrar call that did not succeed.
// Status is the exit status, or -1 when the program could not be run.
type CallError struct {
	Operation string
	Status    int
	Err       error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registrar %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("registrar %s: exit status %d", e.Operation, e.Status)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Options configures the registrar program and its sub-commands.
type Options struct {
	Command    string
	PortArgs   []string
	AddArgs    []string
	RemoveArgs []string
	ProxyHost  string
}

// DefaultOptions matches the nest CLI.
func DefaultOptions() Options {
	return Options{
		Command:    "nest",
		PortArgs:   []string{"get_port"},
		AddArgs:    []string{"caddy", "add"},
		RemoveArgs: []string{"caddy", "rm"},
		ProxyHost:  "localhost",
	}
}

// Client invokes the registrar program.
type Client struct {
	runner runner.Runner
	opts   Options
	logger *slog.Logger
}

// New creates a registrar client. Empty option fields fall back to
// DefaultOptions.
func New(r runner.Runner, opts Options, logger *slog.Logger) *Client {
	def := DefaultOptions()
	if opts.Command == "" {
		opts.Command = def.Command
	}
	if len(opts.PortArgs) == 0 {
		opts.PortArgs = def.PortArgs
	}
	if len(opts.AddArgs) == 0 {
		opts.AddArgs = def.AddArgs
	}
	if len(opts.RemoveArgs) == 0 {
		opts.RemoveArgs = def.RemoveArgs
	}
	if opts.ProxyHost == "" {
		opts.ProxyHost = def.ProxyHost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{runner: r, opts: opts, logger: logger}
}

// ProxyURL returns the upstream URL a domain is proxied to.
func (c *Client) ProxyURL(port int) string {
	return fmt.Sprintf("http://%s:%d", c.opts.ProxyHost, port)
}

// AllocatePort asks the registrar for a free port.
func (c *Client) AllocatePort() (int, error) {
	res, err := c.runner.Output(c.opts.Command, c.opts.PortArgs...)
	if err != nil {
		return 0, &CallError{Operation: "allocate port", Status: -1, Err: err}
	}
	if !res.Success() {
		return 0, &CallError{Operation: "allocate port", Status: res.Status}
	}

	port, err := ParsePort(res.Stdout)
	if err != nil {
		c.logger.Debug("allocator output", "stdout", res.Stdout)
		return 0, err
	}
	return port, nil
}

// AddDomain proxies domain to the local port.
func (c *Client) AddDomain(domain string, port int) error {
	args := append(append([]string{}, c.opts.AddArgs...), domain, "--proxy", c.ProxyURL(port))
	return c.call("add domain", args)
}

// RemoveDomain removes the proxy route for domain.
func (c *Client) RemoveDomain(domain string) error {
	args := append(append([]string{}, c.opts.RemoveArgs...), domain)
	return c.call("remove domain", args)
}

func (c *Client) call(operation string, args []string) error {
	res, err := c.runner.Run(c.opts.Command, args...)
	if err != nil {
		return &CallError{Operation: operation, Status: -1, Err: err}
	}
	if !res.Success() {
		return &CallError{Operation: operation, Status: res.Status}
	}
	return nil
}

// ParsePort extracts the port from allocator output.
func ParsePort(output string) (int, error) {
	matches := portRe.FindStringSubmatch(output)
	if matches == nil {
		return 0, ErrPortNotFound
	}
	port, err := strconv.Atoi(matches[1])
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %q is not a valid port", ErrPortNotFound, matches[1])
	}
	return port, nil
}
