package session

import (
	"path/filepath"
	"testing"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store, err := NewFileTokenStore(path)
	if err != nil {
		t.Fatalf("NewFileTokenStore: %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token before save, got %q", token)
	}

	if err := store.Save("abc.def.ghi"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("loaded %q, want %q", token, "abc.def.ghi")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token after clear, got %q", token)
	}

	// Clearing twice must not fail.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestNewFileTokenStoreRequiresPath(t *testing.T) {
	if _, err := NewFileTokenStore("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestMemoryTokenStore(t *testing.T) {
	store := &MemoryTokenStore{}
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err := store.Load()
	if err != nil || token != "tok" {
		t.Fatalf("Load = %q, %v", token, err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if token, _ := store.Load(); token != "" {
		t.Fatalf("expected empty token after clear, got %q", token)
	}
}
