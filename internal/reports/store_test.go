package reports

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error creating store, got: %v", err)
	}

	return store
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	generatedAt := time.Date(2025, 6, 1, 14, 30, 45, 0, time.UTC)

	saved, err := store.Save([]byte("%PDF-1.4 fake"), generatedAt)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if saved.ID != "comparison_report_20250601_143045" {
		t.Errorf("unexpected report id: %s", saved.ID)
	}

	if saved.Filename != "comparison_report_20250601_143045.pdf" {
		t.Errorf("unexpected filename: %s", saved.Filename)
	}

	got, err := store.Get(saved.ID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got.Path != saved.Path {
		t.Errorf("expected path %s, got %s", saved.Path, got.Path)
	}

	data, err := os.ReadFile(got.Path)
	if err != nil {
		t.Fatalf("expected report file to exist: %v", err)
	}

	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("unexpected file contents: %s", data)
	}
}

func TestStoreSaveEmptyData(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(nil, time.Now()); err == nil {
		t.Fatal("expected an error for empty report data")
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("comparison_report_20250601_143045")
	if !errors.Is(err, ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got: %v", err)
	}
}

func TestStoreGetRejectsMalformedIDs(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// a file outside the expected naming scheme must stay unreachable
	if err := os.WriteFile(filepath.Join(dir, "secrets.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ids := []string{
		"secrets",
		"../secrets",
		"comparison_report_20250601_143045.pdf",
		"comparison_report_2025_143045",
		"comparison_report_20250601_143045/../../etc/passwd",
		"",
	}

	for _, id := range ids {
		if _, err := store.Get(id); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("Get(%q): expected ErrReportNotFound, got: %v", id, err)
		}
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	if _, err := NewStore(dir); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestNewStoreEmptyDir(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Fatal("expected an error for an empty directory")
	}
}
