package systemd

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ahmabora1/usvc/internal/runner"
)

type fakeRunner struct {
	calls   []string
	results map[string]runner.Result
	err     error
}

func (r *fakeRunner) record(name string, args []string) (runner.Result, error) {
	line := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, line)
	if r.err != nil {
		return runner.Result{Status: -1}, r.err
	}
	return r.results[line], nil
}

func (r *fakeRunner) Run(name string, args ...string) (runner.Result, error) {
	return r.record(name, args)
}

func (r *fakeRunner) Output(name string, args ...string) (runner.Result, error) {
	return r.record(name, args)
}

func newTestClient(r runner.Runner) *Client {
	return New(r, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCommandLines(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
		want string
	}{
		{"start", func(c *Client) error { return c.Start("api") }, "systemctl --user start api"},
		{"stop", func(c *Client) error { return c.Stop("api") }, "systemctl --user stop api"},
		{"enable", func(c *Client) error { return c.Enable("api", false) }, "systemctl --user enable api"},
		{"enable now", func(c *Client) error { return c.Enable("api", true) }, "systemctl --user enable api --now"},
		{"disable", func(c *Client) error { return c.Disable("api", false) }, "systemctl --user disable api"},
		{"disable now", func(c *Client) error { return c.Disable("api", true) }, "systemctl --user disable api --now"},
		{"daemon-reload", func(c *Client) error { return c.DaemonReload() }, "systemctl --user daemon-reload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{}
			if err := tt.call(newTestClient(r)); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if len(r.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(r.calls))
			}
			if r.calls[0] != tt.want {
				t.Errorf("expected %q, got %q", tt.want, r.calls[0])
			}
		})
	}
}

func TestNonZeroExitIsManagerError(t *testing.T) {
	r := &fakeRunner{results: map[string]runner.Result{
		"systemctl --user start api": {Status: 5},
	}}

	err := newTestClient(r).Start("api")

	var mgrErr *ManagerError
	if !errors.As(err, &mgrErr) {
		t.Fatalf("expected *ManagerError, got %T (%v)", err, err)
	}
	if mgrErr.Operation != "start" || mgrErr.Unit != "api" || mgrErr.Status != 5 {
		t.Errorf("unexpected error fields: %+v", mgrErr)
	}
	if !strings.Contains(err.Error(), "exit status 5") {
		t.Errorf("error message missing status: %s", err)
	}
	if len(r.calls) != 1 {
		t.Errorf("expected exactly 1 call (no retries), got %d", len(r.calls))
	}
}

func TestLaunchFailureIsManagerError(t *testing.T) {
	cause := errors.New("executable file not found")
	r := &fakeRunner{err: cause}

	err := newTestClient(r).DaemonReload()

	var mgrErr *ManagerError
	if !errors.As(err, &mgrErr) {
		t.Fatalf("expected *ManagerError, got %T (%v)", err, err)
	}
	if mgrErr.Status != -1 {
		t.Errorf("expected status -1, got %d", mgrErr.Status)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected error to wrap cause")
	}
}

func TestIsActive(t *testing.T) {
	r := &fakeRunner{results: map[string]runner.Result{
		"systemctl --user is-active api":    {Status: 0, Stdout: "active\n"},
		"systemctl --user is-active worker": {Status: 3, Stdout: "inactive\n"},
	}}
	c := newTestClient(r)

	if got := c.IsActive("api"); got != "active" {
		t.Errorf("expected 'active', got '%s'", got)
	}
	if got := c.IsActive("worker"); got != "inactive" {
		t.Errorf("expected 'inactive', got '%s'", got)
	}
	if got := c.IsActive("ghost"); got != "unknown" {
		t.Errorf("expected 'unknown', got '%s'", got)
	}
}

func TestIsEnabled(t *testing.T) {
	r := &fakeRunner{results: map[string]runner.Result{
		"systemctl --user is-enabled api": {Status: 0, Stdout: "enabled\n"},
	}}

	if got := newTestClient(r).IsEnabled("api"); got != "enabled" {
		t.Errorf("expected 'enabled', got '%s'", got)
	}
}
