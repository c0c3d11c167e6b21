package importer

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Format is the detected shape of a credential file.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
	FormatEnv
	FormatServiceAccount
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatEnv:
		return "env"
	case FormatServiceAccount:
		return "service_account"
	default:
		return "unknown"
	}
}

// DetectFormat classifies content using the path's extension as a hint.
//
// The extension wins for .yaml, .yml and .env. Otherwise content starting
// with "{" is JSON (or a service account when it declares
// type "service_account" with a project_id), content with ": " and no "="
// is YAML, and any non-comment line containing "=" makes it an env file.
func DetectFormat(path, content string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".env":
		return FormatEnv
	}

	if strings.HasPrefix(strings.TrimSpace(content), "{") {
		if isServiceAccount([]byte(content)) {
			return FormatServiceAccount
		}
		return FormatJSON
	}

	if strings.Contains(content, ": ") && !strings.Contains(content, "=") {
		return FormatYAML
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			return FormatEnv
		}
	}

	return FormatUnknown
}

// serviceAccountHeader is the subset of a service-account key used for
// detection.
type serviceAccountHeader struct {
	Type      string `json:"type"`
	ProjectID any    `json:"project_id"`
}

func isServiceAccount(content []byte) bool {
	var h serviceAccountHeader
	if err := json.Unmarshal(content, &h); err != nil {
		return false
	}
	id, _ := h.ProjectID.(string)
	return h.Type == "service_account" && id != ""
}

// declaresServiceAccount reports whether a JSON document claims to be a
// service account, regardless of whether it is complete.
func declaresServiceAccount(doc map[string]any) bool {
	t, _ := doc["type"].(string)
	return t == "service_account"
}
