package provider

import (
	"fmt"
	"sort"
	"strings"
)

// Method is a credential acquisition method. Methods combine as a bit set.
type Method uint8

const (
	MethodDeviceCode Method = 1 << iota
	MethodAPIKey
	MethodFileImport
)

// allMethods lists methods in display order.
var allMethods = []Method{MethodDeviceCode, MethodAPIKey, MethodFileImport}

// String returns the wire name of a single method ("device_code", ...).
func (m Method) String() string {
	switch m {
	case MethodDeviceCode:
		return "device_code"
	case MethodAPIKey:
		return "api_key"
	case MethodFileImport:
		return "file_import"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// Label returns the human-facing name of a single method.
func (m Method) Label() string {
	switch m {
	case MethodDeviceCode:
		return "OAuth"
	case MethodAPIKey:
		return "API Key"
	case MethodFileImport:
		return "File Import"
	default:
		return m.String()
	}
}

// ParseMethod parses a method wire name. Hyphens are accepted in place of
// underscores so CLI spellings like "device-code" work.
func ParseMethod(s string) (Method, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, m := range allMethods {
		if m.String() == norm {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown auth method %q (valid: device_code, api_key, file_import)", s)
}

// Entry describes one supported provider.
type Entry struct {
	ID          string
	Name        string
	Description string
	Methods     Method
	ConsoleURL  string
	// EnvVars are environment variable names that conventionally hold
	// this provider's secret, most common first.
	EnvVars []string
}

// Supports reports whether the provider accepts the given method.
func (e Entry) Supports(m Method) bool {
	return m != 0 && e.Methods&m == m
}

// MethodList returns the supported methods in display order.
func (e Entry) MethodList() []Method {
	var out []Method
	for _, m := range allMethods {
		if e.Supports(m) {
			out = append(out, m)
		}
	}
	return out
}

var catalog = []Entry{
	{
		ID:          "gemini",
		Name:        "Google Gemini",
		Description: "Google AI Studio / Vertex AI",
		Methods:     MethodDeviceCode | MethodAPIKey,
		ConsoleURL:  "https://aistudio.google.com/apikey",
		EnvVars:     []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	},
	{
		ID:          "claude",
		Name:        "Anthropic Claude",
		Description: "Claude API (console.anthropic.com)",
		Methods:     MethodAPIKey,
		ConsoleURL:  "https://console.anthropic.com/settings/keys",
		EnvVars:     []string{"ANTHROPIC_API_KEY", "CLAUDE_API_KEY"},
	},
	{
		ID:          "openai",
		Name:        "OpenAI",
		Description: "GPT-4, GPT-3.5 (platform.openai.com)",
		Methods:     MethodAPIKey,
		ConsoleURL:  "https://platform.openai.com/api-keys",
		EnvVars:     []string{"OPENAI_API_KEY"},
	},
	{
		ID:          "copilot",
		Name:        "GitHub Copilot",
		Description: "GitHub Copilot (requires OAuth)",
		Methods:     MethodDeviceCode,
		ConsoleURL:  "https://github.com/settings/tokens",
		EnvVars:     []string{"COPILOT_TOKEN", "GITHUB_TOKEN"},
	},
	{
		ID:          "codex",
		Name:        "OpenAI Codex",
		Description: "Codex API (platform.openai.com)",
		Methods:     MethodAPIKey,
		ConsoleURL:  "https://platform.openai.com/api-keys",
	},
	{
		ID:          "qwen",
		Name:        "Alibaba Qwen",
		Description: "Qwen API (dashscope.aliyun.com)",
		Methods:     MethodAPIKey,
		ConsoleURL:  "https://dashscope.console.aliyun.com/apiKey",
		EnvVars:     []string{"QWEN_API_KEY", "DASHSCOPE_API_KEY"},
	},
	{
		ID:          "vertex",
		Name:        "Google Vertex AI",
		Description: "Vertex AI (service account JSON)",
		Methods:     MethodFileImport,
		ConsoleURL:  "https://console.cloud.google.com/iam-admin/serviceaccounts",
	},
}

// aliases maps alternative names to canonical provider IDs.
var aliases = map[string]string{
	"google":    "gemini",
	"github":    "copilot",
	"anthropic": "claude",
}

// index maps canonical IDs to catalog positions. Built once; never mutated.
var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, e := range catalog {
		m[e.ID] = i
	}
	return m
}()

// envIndex maps conventional environment variable names to provider IDs.
var envIndex = func() map[string]string {
	m := make(map[string]string)
	for _, e := range catalog {
		for _, v := range e.EnvVars {
			m[v] = e.ID
		}
	}
	return m
}()

// ForEnvVar returns the provider whose secret conventionally lives in the
// named environment variable. Matching is exact.
func ForEnvVar(name string) (string, bool) {
	id, ok := envIndex[name]
	return id, ok
}

// Normalize lower-cases and trims a provider name and resolves aliases.
// Unknown names are returned normalized but otherwise unchanged.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[n]; ok {
		return canonical
	}
	return n
}

// Lookup returns the catalog entry for a provider ID or alias.
// Matching is case-insensitive.
func Lookup(id string) (Entry, bool) {
	i, ok := index[Normalize(id)]
	if !ok {
		return Entry{}, false
	}
	return catalog[i], true
}

// MustLookup is like Lookup but returns ErrProviderNotFound with the list of
// valid providers when the ID is unknown.
func MustLookup(id string) (Entry, error) {
	e, ok := Lookup(id)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q\nValid providers: %s", ErrProviderNotFound, id, strings.Join(IDs(), ", "))
	}
	return e, nil
}

// Catalog returns a copy of all entries in display order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// IDs returns the canonical provider IDs in catalog order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.ID
	}
	return ids
}

// Aliases returns the registered aliases, sorted.
func Aliases() []string {
	out := make([]string, 0, len(aliases))
	for a := range aliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// SupportsDeviceCode reports whether the provider can use the device code flow.
func SupportsDeviceCode(id string) bool {
	e, ok := Lookup(id)
	return ok && e.Supports(MethodDeviceCode)
}

// FormatMethods returns a human summary of the entry's methods,
// e.g. "OAuth, API Key".
func FormatMethods(e Entry) string {
	methods := e.MethodList()
	labels := make([]string, len(methods))
	for i, m := range methods {
		labels[i] = m.Label()
	}
	return strings.Join(labels, ", ")
}
