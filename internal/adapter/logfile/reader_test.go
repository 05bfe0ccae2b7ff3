package logfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daipham1210/lintsift/internal/adapter/logfile"
)

func TestReadLinesStripsTerminators(t *testing.T) {
	path := filepath.Join(t.TempDir(), "git_output.log")
	content := "src/a.py:10:5: unused import\nblack: reformatted src/a.py\r\nlast line without newline"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lines, err := logfile.NewReader().ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines returned error: %v", err)
	}

	want := []string{
		"src/a.py:10:5: unused import",
		"black: reformatted src/a.py",
		"last line without newline",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReadLinesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lines, err := logfile.NewReader().ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %v", lines)
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.log")

	_, err := logfile.NewReader().ReadLines(path)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !logfile.IsNotFound(err) {
		t.Errorf("expected IsNotFound to recognise the error, got %v", err)
	}
}
