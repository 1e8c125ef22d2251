// Package runner executes external programs and reports their exit status.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Result is the outcome of a finished program.
type Result struct {
	Status int
	Stdout string
	Stderr string
}

// Success reports whether the program exited with status 0.
func (r Result) Success() bool {
	return r.Status == 0
}

// Runner runs external programs. A non-zero exit is reported through
// Result.Status, not as an error; the error is reserved for programs that
// could not be started.
type Runner interface {
	// Run executes the program, passing its output through to the operator.
	Run(name string, args ...string) (Result, error)

	// Output executes the program and captures its stdout.
	Output(name string, args ...string) (Result, error)
}

// Exec runs programs with os/exec.
type Exec struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewExec creates a runner that forwards program output to stdout and stderr.
func NewExec(stdout, stderr io.Writer, logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{stdout: stdout, stderr: stderr, logger: logger}
}

func (e *Exec) Run(name string, args ...string) (Result, error) {
	return e.run(false, name, args...)
}

func (e *Exec) Output(name string, args ...string) (Result, error) {
	return e.run(true, name, args...)
}

func (e *Exec) run(capture bool, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(name, args...)
	if capture || e.stdout == nil {
		cmd.Stdout = &stdout
	} else {
		cmd.Stdout = io.MultiWriter(&stdout, e.stdout)
	}
	if e.stderr == nil {
		cmd.Stderr = &stderr
	} else {
		cmd.Stderr = io.MultiWriter(&stderr, e.stderr)
	}

	line := commandLine(name, args)
	e.logger.Debug("exec", "command", line)

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.logger.Debug("exec failed to start", "command", line, "error", err)
			return Result{Status: -1}, fmt.Errorf("run %s: %w", name, err)
		}
	}

	res := Result{
		Status: cmd.ProcessState.ExitCode(),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	e.logger.Debug("exec finished", "command", line, "status", res.Status)
	return res, nil
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
