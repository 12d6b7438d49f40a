package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	content := `{"name": "forge", "items": [1, 2, 3]}`

	if err := Write(path, content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != content {
		t.Errorf("Read() = %q, want %q", got, content)
	}
}

func TestWriteCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "doc.json")

	if err := Write(path, "{}"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !Exists(path) {
		t.Error("Write did not create parent directories")
	}
}

func TestWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	if err := Write(path, "old"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := Write(path, "new"); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != "new" {
		t.Errorf("Read() = %q, want %q", got, "new")
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() error = %v, want os.ErrNotExist", err)
	}
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := Write(path, "{}"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := Info(path)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Name != "doc.json" {
		t.Errorf("Name = %q, want doc.json", info.Name)
	}
	if info.Size != 2 {
		t.Errorf("Size = %d, want 2", info.Size)
	}
	if info.ModTime.IsZero() {
		t.Error("ModTime is zero")
	}
	if info.IsDir {
		t.Error("IsDir = true for a file")
	}

	if _, err := Info(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Info() error = %v, want os.ErrNotExist", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists() = true for a missing path")
	}
	if !Exists(dir) {
		t.Error("Exists() = false for an existing path")
	}
}
