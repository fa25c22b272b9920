package jsonstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/taskboard/internal/storage/jsonstore"
)

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := jsonstore.Open(filepath.Join(t.TempDir(), "nested", jsonstore.FileName))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := s.Get("tasks"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
}

func TestSet_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", jsonstore.FileName)
	s, err := jsonstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("tasks", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := jsonstore.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected dark, got %q ok=%v err=%v", v, ok, err)
	}
	if v, _, _ := reopened.Get("tasks"); v != "[]" {
		t.Fatalf("expected [], got %q", v)
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonstore.FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := jsonstore.Open(path); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestSet_WriteFailureRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonstore.FileName)
	s, err := jsonstore.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	// A directory sitting where the file belongs makes every write fail.
	if err := os.Mkdir(path, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("theme", "dark"); err == nil {
		t.Fatal("expected write error")
	}
	if _, ok, _ := s.Get("theme"); ok {
		t.Fatal("failed Set should not leave the key behind")
	}
}
