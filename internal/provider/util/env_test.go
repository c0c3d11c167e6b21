package util

import (
	"path/filepath"
	"testing"
)

func TestFirstEnv(t *testing.T) {
	t.Run("returns first set value", func(t *testing.T) {
		t.Setenv("PP_TEST_A", "")
		t.Setenv("PP_TEST_B", "value_b")

		val, name := FirstEnv("PP_TEST_A", "PP_TEST_B")
		if val != "value_b" {
			t.Errorf("value = %q, want 'value_b'", val)
		}
		if name != "PP_TEST_B" {
			t.Errorf("name = %q, want 'PP_TEST_B'", name)
		}
	})

	t.Run("prefers first set", func(t *testing.T) {
		t.Setenv("PP_TEST_A", "value_a")
		t.Setenv("PP_TEST_B", "value_b")

		val, _ := FirstEnv("PP_TEST_A", "PP_TEST_B")
		if val != "value_a" {
			t.Errorf("value = %q, want 'value_a'", val)
		}
	})

	t.Run("whitespace-only counts as unset", func(t *testing.T) {
		t.Setenv("PP_TEST_A", "   ")
		t.Setenv("PP_TEST_B", "")

		val, name := FirstEnv("PP_TEST_A", "PP_TEST_B")
		if val != "" || name != "" {
			t.Errorf("expected empty strings, got %q, %q", val, name)
		}
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/proxypal", filepath.Join(home, ".config", "proxypal")},
		{"~", home},
		{"/etc/proxypal", "/etc/proxypal"},
		{"relative/~/path", "relative/~/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
