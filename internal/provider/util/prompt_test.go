package util

import (
	"bytes"
	"strings"
	"testing"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return &Prompter{In: strings.NewReader(input), Out: &out}, &out
}

func TestPrompterSecretPiped(t *testing.T) {
	p, out := newTestPrompter("  AIzaSecret  \n")
	got, err := p.Secret("API key")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if got != "AIzaSecret" {
		t.Errorf("Secret() = %q, want %q", got, "AIzaSecret")
	}
	if !strings.Contains(out.String(), "API key: ") {
		t.Errorf("prompt not written, got %q", out.String())
	}
}

func TestPrompterSecretNoTrailingNewline(t *testing.T) {
	p, _ := newTestPrompter("last-line")
	got, err := p.Secret("key")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if got != "last-line" {
		t.Errorf("Secret() = %q, want %q", got, "last-line")
	}
}

func TestPrompterSecretEOF(t *testing.T) {
	p, _ := newTestPrompter("")
	if _, err := p.Secret("key"); err == nil {
		t.Error("expected error on empty input")
	}
}

func TestPrompterChoice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"first", "1\n", 0, false},
		{"last", "3\n", 2, false},
		{"zero", "0\n", -1, true},
		{"too high", "4\n", -1, true},
		{"not a number", "gemini\n", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.Choice("Pick", []string{"a", "b", "c"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Choice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Choice() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrompterSequentialReads(t *testing.T) {
	p, _ := newTestPrompter("2\nsk-ant-abc\ny\n")
	idx, err := p.Choice("Pick", []string{"a", "b"})
	if err != nil || idx != 1 {
		t.Fatalf("Choice() = %d, %v", idx, err)
	}
	secret, err := p.Secret("key")
	if err != nil || secret != "sk-ant-abc" {
		t.Fatalf("Secret() = %q, %v", secret, err)
	}
	ok, err := p.Confirm("sure?")
	if err != nil || !ok {
		t.Fatalf("Confirm() = %v, %v", ok, err)
	}
}

func TestPrompterConfirm(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false,
	} {
		p, _ := newTestPrompter(input)
		got, err := p.Confirm("ok?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("Confirm(%q) = %v, want %v", input, got, want)
		}
	}
}
