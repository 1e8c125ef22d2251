// Package prompt reads operator answers from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ahmabora1/usvc/internal/tui/styles"
)

// ErrNotInteractive is returned by NewStdio when stdin is not a terminal
// and interactive input is required.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// Terminal asks questions on out and reads line answers from in.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a prompter over arbitrary streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// NewStdio creates a prompter on the process's stdin and stdout.
// When requireTTY is set and stdin is not a terminal it fails instead of
// reading piped input.
func NewStdio(requireTTY bool) (*Terminal, error) {
	if requireTTY && !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotInteractive
	}
	return NewTerminal(os.Stdin, os.Stdout), nil
}

// Ask prints "question: " and returns the trimmed answer.
// End of input with nothing typed is returned as io.EOF.
func (t *Terminal) Ask(question string) (string, error) {
	fmt.Fprint(t.out, styles.Prompt.Render(question)+": ")
	return t.readLine()
}

// Confirm asks a yes/no question. An empty answer selects def; with def
// true only "n"/"no" declines, with def false only "y"/"yes" accepts.
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprint(t.out, styles.Prompt.Render(question)+" "+styles.PromptHint.Render(hint)+": ")

	answer, err := t.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
