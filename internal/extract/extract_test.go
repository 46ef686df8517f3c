package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTextFromBytesPlainText(t *testing.T) {
	got, err := TextFromBytes([]byte("Hello World"), "a.txt")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if got != "Hello World" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestTextFromBytesMarkdown(t *testing.T) {
	got, err := TextFromBytes([]byte("# Title\n\nbody"), "notes.md")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if got != "# Title\n\nbody" {
		t.Fatalf("markdown must not be transformed, got %q", got)
	}
}

func TestTextFromBytesDropsInvalidUTF8(t *testing.T) {
	got, err := TextFromBytes([]byte{'a', 0xff, 'b'}, "a.txt")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if got != "ab" {
		t.Fatalf("expected invalid bytes dropped, got %q", got)
	}
}

func TestTextFromBytesRejectsBadPDF(t *testing.T) {
	if _, err := TextFromBytes([]byte("not a pdf"), "doc.pdf"); err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestTextFromFileReadsDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("on disk"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := TextFromFile(path)
	if err != nil {
		t.Fatalf("TextFromFile: %v", err)
	}
	if got != "on disk" {
		t.Fatalf("expected file content, got %q", got)
	}
}

func TestTextFromFileMissing(t *testing.T) {
	if _, err := TextFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
