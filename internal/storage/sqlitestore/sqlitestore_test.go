package sqlitestore_test

import (
	"path/filepath"
	"testing"

	"github.com/idilsaglam/taskboard/internal/storage/sqlitestore"
)

func TestGetMissingKey(t *testing.T) {
	s, err := sqlitestore.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get("tasks"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
}

func TestSetOverwritesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), sqlitestore.FileName)
	s, err := sqlitestore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := sqlitestore.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected dark, got %q ok=%v err=%v", v, ok, err)
	}
}
