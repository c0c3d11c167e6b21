package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileWriter_Write(t *testing.T) {
	tmpDir := t.TempDir()

	fw, err := NewFileWriter(tmpDir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer fw.Close()

	if _, err := fw.Write([]byte(`{"msg":"test"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	logFile := filepath.Join(tmpDir, time.Now().Format("2006-01-02")+".jsonl")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), `{"msg":"test"}`) {
		t.Errorf("expected content to contain test message, got: %s", content)
	}

	info, err := os.Stat(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("log file mode = %o, want 600", perm)
	}
}

func TestFileWriter_RotatesOnDateChange(t *testing.T) {
	tmpDir := t.TempDir()

	fw, err := NewFileWriter(tmpDir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer fw.Close()

	next := time.Now().AddDate(0, 0, 1)
	fw.now = func() time.Time { return next }
	if _, err := fw.Write([]byte("tomorrow\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := next.Format("2006-01-02") + ".jsonl"
	content, err := os.ReadFile(filepath.Join(tmpDir, want))
	if err != nil {
		t.Fatalf("reading rotated file: %v", err)
	}
	if string(content) != "tomorrow\n" {
		t.Errorf("rotated content = %q", content)
	}

	target, err := os.Readlink(filepath.Join(tmpDir, "latest"))
	if err != nil {
		t.Fatalf("reading symlink: %v", err)
	}
	if target != want {
		t.Errorf("latest -> %s, want %s", target, want)
	}
}

func TestFileWriter_LatestSymlink(t *testing.T) {
	tmpDir := t.TempDir()

	fw, err := NewFileWriter(tmpDir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer fw.Close()

	target, err := os.Readlink(filepath.Join(tmpDir, "latest"))
	if err != nil {
		t.Fatalf("reading symlink: %v", err)
	}
	expected := time.Now().Format("2006-01-02") + ".jsonl"
	if target != expected {
		t.Errorf("expected symlink to point to %s, got %s", expected, target)
	}
}

func TestCleanup(t *testing.T) {
	tmpDir := t.TempDir()

	old := filepath.Join(tmpDir, time.Now().AddDate(0, 0, -20).Format("2006-01-02")+".jsonl")
	recent := filepath.Join(tmpDir, time.Now().AddDate(0, 0, -2).Format("2006-01-02")+".jsonl")
	other := filepath.Join(tmpDir, "notes.txt")
	for _, p := range []string{old, recent, other} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	Cleanup(tmpDir, 14)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old log file should have been removed")
	}
	for _, p := range []string{recent, other} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s should be kept: %v", filepath.Base(p), err)
		}
	}
}
