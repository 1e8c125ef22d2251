package catalog

import (
	"fmt"

	"github.com/ahmabora1/usvc/internal/unit"
)

// Lister reads stored unit files.
type Lister interface {
	List() ([]string, error)
	Read(name string) (string, error)
}

// StatusReader reports the systemd state of a unit.
type StatusReader interface {
	IsActive(name string) string
	IsEnabled(name string) string
}

// Entry is one service with its current state
type Entry struct {
	unit.Info `yaml:",inline"`
	Active    string `yaml:"active"`
	Enabled   string `yaml:"enabled"`
}

// Load reads every stored unit file and asks systemd for its state.
// A nil status skips the state queries.
func Load(l Lister, status StatusReader) ([]Entry, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entry, err := Get(l, status, name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Get loads a single service by name.
func Get(l Lister, status StatusReader, name string) (Entry, error) {
	content, err := l.Read(name)
	if err != nil {
		return Entry{}, err
	}

	info, err := unit.ParseContent(content)
	if err != nil {
		return Entry{}, fmt.Errorf("parse %s: %w", name, err)
	}
	info.Name = name

	entry := Entry{Info: info}
	if status != nil {
		entry.Active = status.IsActive(name)
		entry.Enabled = status.IsEnabled(name)
	}
	return entry, nil
}
