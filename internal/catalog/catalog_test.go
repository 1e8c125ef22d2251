package catalog

import (
	"errors"
	"testing"

	"github.com/ahmabora1/usvc/internal/store"
	"github.com/ahmabora1/usvc/internal/unit"
)

type fakeStatus map[string]string

func (f fakeStatus) IsActive(name string) string  { return f[name] }
func (f fakeStatus) IsEnabled(name string) string { return "enabled" }

func writeService(t *testing.T, st *store.Store, opts unit.Options) {
	t.Helper()
	svc, err := unit.New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := st.Write(svc.Name(), unit.Render(svc)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func TestLoad(t *testing.T) {
	st := store.New(t.TempDir())
	writeService(t, st, unit.Options{Name: "web", StartCommand: "./web", Port: 8080, Domain: "web.example.com"})
	writeService(t, st, unit.Options{Name: "api", StartCommand: "./api", Directory: "/srv/api"})

	entries, err := Load(st, fakeStatus{"web": "active", "api": "inactive"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// sorted by name
	api, web := entries[0], entries[1]
	if api.Name != "api" || web.Name != "web" {
		t.Fatalf("unexpected order: %s, %s", api.Name, web.Name)
	}
	if api.Directory != "/srv/api" || api.Active != "inactive" {
		t.Errorf("unexpected api entry %+v", api)
	}
	if web.Port != 8080 || web.Domain != "web.example.com" {
		t.Errorf("unexpected web entry %+v", web)
	}
	if web.Active != "active" || web.Enabled != "enabled" {
		t.Errorf("unexpected web state %q/%q", web.Active, web.Enabled)
	}
}

func TestLoadEmptyDir(t *testing.T) {
	st := store.New(t.TempDir() + "/missing")

	entries, err := Load(st, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestGetWithoutStatus(t *testing.T) {
	st := store.New(t.TempDir())
	writeService(t, st, unit.Options{Name: "worker", StartCommand: "./worker"})

	entry, err := Get(st, nil, "worker")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry.StartCommand != "./worker" {
		t.Errorf("Expected start command './worker', got '%s'", entry.StartCommand)
	}
	if entry.Active != "" || entry.Enabled != "" {
		t.Errorf("state queried without a status reader: %+v", entry)
	}
}

func TestGetMissing(t *testing.T) {
	st := store.New(t.TempDir())

	_, err := Get(st, nil, "ghost")
	var ioErr *store.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected *store.IOError, got %v", err)
	}
}
