package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "proxypal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvAuthDir, "")
	t.Setenv(EnvOAuthClientID, "")
	t.Setenv(EnvRetentionDays, "")
	return home
}

func TestLoadGlobalConfig(t *testing.T) {
	home := setHome(t)
	writeConfig(t, home, `
auth_dir: ~/creds
oauth:
  client_ids:
    github: Iv1.abc
    gemini: 123.apps.googleusercontent.com
  scopes:
    Google: https://www.googleapis.com/auth/cloud-platform
debug:
  retention_days: 3
`)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if want := filepath.Join(home, "creds"); cfg.AuthDir != want {
		t.Errorf("AuthDir = %q, want %q", cfg.AuthDir, want)
	}
	if got := cfg.ClientID("copilot"); got != "Iv1.abc" {
		t.Errorf("ClientID(copilot) = %q, want alias-resolved value", got)
	}
	if got := cfg.ClientID("GEMINI"); got != "123.apps.googleusercontent.com" {
		t.Errorf("ClientID(GEMINI) = %q", got)
	}
	if got := cfg.Scope("gemini"); got != "https://www.googleapis.com/auth/cloud-platform" {
		t.Errorf("Scope(gemini) = %q", got)
	}
	if cfg.Debug.RetentionDays != 3 {
		t.Errorf("RetentionDays = %d, want 3", cfg.Debug.RetentionDays)
	}
}

func TestLoadGlobalConfigDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if want := filepath.Join(home, ".cli-proxy-api"); cfg.AuthDir != want {
		t.Errorf("AuthDir = %q, want default %q", cfg.AuthDir, want)
	}
	if cfg.Debug.RetentionDays != 14 {
		t.Errorf("RetentionDays = %d, want default 14", cfg.Debug.RetentionDays)
	}
	if got := cfg.ClientID("gemini"); got != "" {
		t.Errorf("ClientID = %q, want empty", got)
	}
}

func TestLoadGlobalConfigEnvOverride(t *testing.T) {
	home := setHome(t)
	writeConfig(t, home, "oauth:\n  client_ids:\n    gemini: from-file\n")

	t.Setenv(EnvAuthDir, filepath.Join(home, "override"))
	t.Setenv(EnvOAuthClientID, "from-env")
	t.Setenv(EnvRetentionDays, "30")

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if want := filepath.Join(home, "override"); cfg.AuthDir != want {
		t.Errorf("AuthDir = %q, want %q", cfg.AuthDir, want)
	}
	if got := cfg.ClientID("gemini"); got != "from-env" {
		t.Errorf("ClientID = %q, want env to win", got)
	}
	if cfg.Debug.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.Debug.RetentionDays)
	}
}

func TestLoadGlobalConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{"malformed yaml", "oauth: [", "parsing"},
		{"client id for api-key provider", "oauth:\n  client_ids:\n    claude: x\n", "invalid config"},
		{"empty client id", "oauth:\n  client_ids:\n    gemini: \"  \"\n", "invalid config"},
		{"negative retention", "debug:\n  retention_days: -1\n", "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setHome(t)
			writeConfig(t, home, tt.content)

			_, err := LoadGlobal()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestGlobalConfigDir(t *testing.T) {
	home := setHome(t)
	if want := filepath.Join(home, ".config", "proxypal"); GlobalConfigDir() != want {
		t.Errorf("GlobalConfigDir() = %q, want %q", GlobalConfigDir(), want)
	}
	if want := filepath.Join(home, ".config", "proxypal", "debug"); DebugDir() != want {
		t.Errorf("DebugDir() = %q, want %q", DebugDir(), want)
	}

	t.Setenv(EnvConfigDir, "~/elsewhere")
	if want := filepath.Join(home, "elsewhere"); GlobalConfigDir() != want {
		t.Errorf("GlobalConfigDir() with override = %q, want %q", GlobalConfigDir(), want)
	}
}
