package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ahmabora1/usvc/internal/lifecycle"
	"github.com/ahmabora1/usvc/internal/unit"
)

func TestFinish(t *testing.T) {
	if err := finish(lifecycle.ErrAborted); err != nil {
		t.Errorf("Expected nil for an aborted command, got %v", err)
	}
	if err := finish(fmt.Errorf("wrapped: %w", lifecycle.ErrAborted)); err != nil {
		t.Errorf("Expected nil for a wrapped abort, got %v", err)
	}

	other := errors.New("boom")
	if err := finish(other); err != other {
		t.Errorf("Expected the original error, got %v", err)
	}
	if err := finish(nil); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"create", "start", "stop", "enable", "disable", "delete", "list", "show", "version"}

	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		cmd   string
		flag  string
		short string
	}{
		{"enable", "now", "n"},
		{"disable", "now", "n"},
		{"delete", "force", "f"},
		{"list", "plain", "p"},
	}

	for _, tt := range tests {
		cmd, _, _ := rootCmd.Find([]string{tt.cmd})
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("%s: missing --%s", tt.cmd, tt.flag)
			continue
		}
		if f.Shorthand != tt.short {
			t.Errorf("%s --%s: expected shorthand %q, got %q", tt.cmd, tt.flag, tt.short, f.Shorthand)
		}
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetOut(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "usvc "+Version) {
		t.Errorf("unexpected version output %q", buf.String())
	}
}

func TestNameArgumentRequired(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	for _, name := range []string{"start", "stop", "enable", "disable", "delete", "show"} {
		rootCmd.SetArgs([]string{name})
		if err := rootCmd.Execute(); err == nil {
			t.Errorf("%s without a name should fail", name)
		}
	}
}

func TestShowRejectsInvalidName(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetErr(&buf)
	defer rootCmd.SetErr(nil)

	rootCmd.SetArgs([]string{"show", "../passwd"})
	err := rootCmd.Execute()
	if !errors.Is(err, unit.ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
}
