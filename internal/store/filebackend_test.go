package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}

	if _, ok := backend.Get("authentiq_user"); ok {
		t.Fatal("Get on empty backend reported a hit")
	}

	backend.Set("authentiq_user", []byte(`{"id":"u-1"}`))
	data, ok := backend.Get("authentiq_user")
	if !ok || string(data) != `{"id":"u-1"}` {
		t.Fatalf("Get = %q, %v", data, ok)
	}

	if _, err := os.Stat(filepath.Join(dir, "authentiq_user.json")); err != nil {
		t.Fatalf("expected state file on disk: %v", err)
	}

	backend.Delete("authentiq_user")
	if _, ok := backend.Get("authentiq_user"); ok {
		t.Fatal("Get after delete reported a hit")
	}
	backend.Delete("authentiq_user") // idempotent
}

func TestFileBackendRejectsTraversalKeys(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}

	outside := filepath.Join(dir, "..", "escape.json")
	backend.Set("../escape", []byte("x"))
	if _, err := os.Stat(outside); err == nil {
		t.Fatal("traversal key escaped the state root")
	}
	if _, ok := backend.Get("../escape"); ok {
		t.Fatal("Get honored a traversal key")
	}
}

func TestNewFileBackendRequiresPath(t *testing.T) {
	if _, err := NewFileBackend("  "); err == nil {
		t.Fatal("expected error for empty base path")
	}
}

func TestStoreOverFileBackendSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	s := New(Options{Backend: backend})
	s.SaveUser(userFixture())

	reopened, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2 := New(Options{Backend: reopened})
	got := s2.User()
	if got == nil || got.ID != "u-1" || got.Token != "tok-abc" {
		t.Fatalf("reopened User() = %+v", got)
	}
}
