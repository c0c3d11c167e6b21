package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInit_FileLogging(t *testing.T) {
	tmpDir := t.TempDir()

	if err := Init(Options{DebugDir: tmpDir, Stderr: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("test message", "key", "value")
	Close()

	logFile := filepath.Join(tmpDir, time.Now().Format("2006-01-02")+".jsonl")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), "test message") {
		t.Errorf("expected log file to contain 'test message', got: %s", content)
	}
}

func TestInit_StderrLevels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		visible []string
		hidden  []string
	}{
		{
			name:    "default",
			opts:    Options{},
			visible: []string{"warn message", "error message"},
			hidden:  []string{"debug message", "info message"},
		},
		{
			name:    "verbose",
			opts:    Options{Verbosity: 1},
			visible: []string{"info message", "warn message"},
			hidden:  []string{"debug message"},
		},
		{
			name:    "very verbose",
			opts:    Options{Verbosity: 2},
			visible: []string{"debug message", "info message"},
		},
		{
			name:    "quiet overrides verbose",
			opts:    Options{Verbosity: 3, Quiet: true},
			visible: []string{"error message"},
			hidden:  []string{"debug message", "info message", "warn message"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			tt.opts.Stderr = &stderr
			if err := Init(tt.opts); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer Close()

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			output := stderr.String()
			for _, s := range tt.visible {
				if !strings.Contains(output, s) {
					t.Errorf("%q should appear on stderr", s)
				}
			}
			for _, s := range tt.hidden {
				if strings.Contains(output, s) {
					t.Errorf("%q should not appear on stderr", s)
				}
			}
		})
	}
}

func TestFlowID(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	SetFlowID("flow_0123abcd")
	Info("in flow")
	ClearFlowID()
	Info("after flow")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "flow_id=flow_0123abcd") {
		t.Errorf("first line missing flow_id: %s", lines[0])
	}
	if strings.Contains(lines[1], "flow_id") {
		t.Errorf("flow_id should be cleared: %s", lines[1])
	}
}

func TestRedactAttributes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("saving", "provider", "claude", "api_key", "sk-ant-api03-verysecret")

	out := buf.String()
	if strings.Contains(out, "verysecret") {
		t.Errorf("secret leaked into log: %s", out)
	}
	if !strings.Contains(out, "api_key=sk-a****") {
		t.Errorf("expected masked api_key, got: %s", out)
	}
	if !strings.Contains(out, "provider=claude") {
		t.Errorf("non-secret attribute should be untouched: %s", out)
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AIzaSyAAAAAAAAAAAAAA", "AIza****"},
		{"  sk-ant-api03-x  ", "sk-a****"},
		{"short", "****"},
		{"", "****"},
	}
	for _, tt := range tests {
		if got := Redact(tt.in); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
