// Package config loads the user's global proxypal settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/proxypal/proxypal/internal/credential"
	"github.com/proxypal/proxypal/internal/provider"
	"github.com/proxypal/proxypal/internal/provider/util"
)

// Environment overrides.
const (
	EnvConfigDir     = "PROXYPAL_CONFIG_DIR"
	EnvAuthDir       = "PROXYPAL_AUTH_DIR"
	EnvOAuthClientID = "PROXYPAL_OAUTH_CLIENT_ID"
	EnvRetentionDays = "PROXYPAL_DEBUG_RETENTION_DAYS"
)

// GlobalConfig holds settings from ~/.config/proxypal/config.yaml.
type GlobalConfig struct {
	// AuthDir is where credentials are stored. "~/" is expanded.
	AuthDir string      `yaml:"auth_dir"`
	OAuth   OAuthConfig `yaml:"oauth"`
	Debug   DebugConfig `yaml:"debug"`
}

// OAuthConfig holds per-provider device-code settings, keyed by provider ID.
type OAuthConfig struct {
	ClientIDs map[string]string `yaml:"client_ids" validate:"dive,keys,oneof=gemini copilot,endkeys,required"`
	Scopes    map[string]string `yaml:"scopes" validate:"dive,keys,oneof=gemini copilot,endkeys"`
}

// DebugConfig controls the debug log files.
type DebugConfig struct {
	RetentionDays int `yaml:"retention_days" validate:"gte=0,lte=365"`
}

// DefaultGlobalConfig returns the default global configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		AuthDir: credential.DefaultStoreDir(),
		Debug: DebugConfig{
			RetentionDays: 14,
		},
	}
}

var validate = validator.New()

// LoadGlobal reads config.yaml from GlobalConfigDir and applies environment
// overrides. A missing file yields the defaults; a malformed or invalid one
// is an error.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	path := filepath.Join(GlobalConfigDir(), "config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if dir := os.Getenv(EnvAuthDir); dir != "" {
		cfg.AuthDir = dir
	}
	if s := os.Getenv(EnvRetentionDays); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvRetentionDays, err)
		}
		cfg.Debug.RetentionDays = days
	}

	cfg.normalize()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// normalize resolves provider aliases in map keys and expands the auth dir.
func (c *GlobalConfig) normalize() {
	c.OAuth.ClientIDs = normalizeKeys(c.OAuth.ClientIDs)
	c.OAuth.Scopes = normalizeKeys(c.OAuth.Scopes)
	if c.AuthDir == "" {
		c.AuthDir = credential.DefaultStoreDir()
	}
	c.AuthDir = util.ExpandHome(c.AuthDir)
}

func normalizeKeys(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[provider.Normalize(k)] = strings.TrimSpace(v)
	}
	return out
}

// ClientID returns the OAuth client ID for a provider. The environment
// variable wins over the config file.
func (c *GlobalConfig) ClientID(providerID string) string {
	if v := strings.TrimSpace(os.Getenv(EnvOAuthClientID)); v != "" {
		return v
	}
	return c.OAuth.ClientIDs[provider.Normalize(providerID)]
}

// Scope returns the configured scope override for a provider, or "".
func (c *GlobalConfig) Scope(providerID string) string {
	return c.OAuth.Scopes[provider.Normalize(providerID)]
}

// GlobalConfigDir returns ~/.config/proxypal, or $PROXYPAL_CONFIG_DIR.
func GlobalConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return util.ExpandHome(dir)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "proxypal")
	}
	return filepath.Join(homeDir, ".config", "proxypal")
}

// DebugDir returns the directory for debug log files.
func DebugDir() string {
	return filepath.Join(GlobalConfigDir(), "debug")
}
