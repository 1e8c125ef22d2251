// Package store keeps user unit files in the per-user systemd directory.
// The unit file is the only persisted state of a service.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ahmabora1/usvc/internal/unit"
)

// UserUnitDir returns the systemd user unit directory under home.
func UserUnitDir(home string) string {
	return filepath.Join(home, ".config", "systemd", "user")
}

// IOError records a failed file operation on a unit file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Store reads and writes unit files in a single directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the unit directory
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the unit file path for a service name.
func (s *Store) PathFor(name string) string {
	return filepath.Join(s.dir, unit.FileName(name))
}

// Exists reports whether a unit file exists for name.
func (s *Store) Exists(name string) (bool, error) {
	path := s.PathFor(name)
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &IOError{Op: "stat", Path: path, Err: err}
}

// Write creates or truncates the unit file for name.
func (s *Store) Write(name, content string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &IOError{Op: "create directory", Path: s.dir, Err: err}
	}

	path := s.PathFor(name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Read returns the content of the unit file for name.
func (s *Store) Read(name string) (string, error) {
	path := s.PathFor(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// ReadFirstLine returns the first line of the unit file when it is a
// "#" comment line, which is where a registered domain is recorded.
// A missing file is not an error.
func (s *Store) ReadFirstLine(name string) (string, bool, error) {
	path := s.PathFor(name)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", false, &IOError{Op: "read", Path: path, Err: err}
		}
		return "", false, nil
	}

	line := scanner.Text()
	if !strings.HasPrefix(line, "#") {
		return "", false, nil
	}
	return line, true, nil
}

// Delete removes the unit file for name. It fails if the file is missing.
func (s *Store) Delete(name string) error {
	path := s.PathFor(name)
	if err := os.Remove(path); err != nil {
		return &IOError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// List returns the names of all services with a unit file, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Op: "list", Path: s.dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), unit.Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), unit.Extension))
	}
	sort.Strings(names)
	return names, nil
}
