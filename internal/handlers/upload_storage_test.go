package handlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeDeleteUploadRejectsNonUploadPath(t *testing.T) {
	dir := t.TempDir()
	if err := safeDeleteUpload(dir, "avatars/photo.png"); err == nil {
		t.Fatal("expected refusal for path outside uploads/")
	}
}

func TestSafeDeleteUploadRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	if err := safeDeleteUpload(dir, "uploads/../../etc/passwd"); err == nil {
		t.Fatal("expected refusal for traversal path")
	}
}

func TestSafeDeleteUploadMissingFileIsNoop(t *testing.T) {
	dir := t.TempDir()
	if err := safeDeleteUpload(dir, "uploads/does-not-exist.png"); err != nil {
		t.Fatalf("expected missing file to be tolerated, got %v", err)
	}
}

func TestSafeDeleteUploadRemovesFile(t *testing.T) {
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	if err := os.MkdirAll(uploads, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(uploads, "image.png")
	if err := os.WriteFile(target, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload(dir, "uploads/image.png"); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestSafeDeleteUploadEmptyPathIsNoop(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "  "); err != nil {
		t.Fatalf("expected empty path to be tolerated, got %v", err)
	}
}
