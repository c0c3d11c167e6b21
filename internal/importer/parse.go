package importer

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/proxypal/proxypal/internal/provider"
)

// secretKeys are the document fields accepted as the secret, in priority order.
var secretKeys = []string{"api_key", "apiKey", "key", "access_token"}

// Parsed is the result of parsing a credential file.
//
// Provider and Secret are best effort. A service account has no Secret;
// its Raw bytes are the credential.
type Parsed struct {
	Provider   string
	Secret     string
	Format     Format
	Raw        []byte
	SourcePath string
}

// Parse classifies content and extracts the provider and secret from it.
// path is used for the extension hint and error messages only.
func Parse(path string, content []byte) (*Parsed, error) {
	format := DetectFormat(path, string(content))
	p := &Parsed{Format: format, Raw: content, SourcePath: path}

	var err error
	switch format {
	case FormatJSON:
		err = p.parseJSON(content)
	case FormatYAML:
		err = p.parseYAML(content)
	case FormatEnv:
		p.parseEnv(string(content))
	case FormatServiceAccount:
		err = p.parseServiceAccount(content)
	case FormatUnknown:
		return nil, &ParseError{Path: path, Err: ErrUnknownFormat}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ParseFile reads path and parses it.
func ParseFile(path string) (*Parsed, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ParseError{Path: path, Reason: "file not found", Err: err}
		}
		return nil, &ParseError{Path: path, Reason: "stat", Err: err}
	}
	if info.IsDir() {
		return nil, &ParseError{Path: path, Reason: "is a directory"}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "read", Err: err}
	}
	return Parse(path, content)
}

func (p *Parsed) parseJSON(content []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return &ParseError{Path: p.SourcePath, Reason: "invalid JSON", Err: err}
	}
	// A document that claims to be a service account but failed detection
	// is missing required fields. Report that rather than a missing key.
	if declaresServiceAccount(doc) {
		if err := ValidateServiceAccount(content); err != nil {
			return &ParseError{Path: p.SourcePath, Reason: "service account", Err: err}
		}
	}
	p.fromDocument(doc)
	return nil
}

func (p *Parsed) parseYAML(content []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return &ParseError{Path: p.SourcePath, Reason: "invalid YAML", Err: err}
	}
	p.fromDocument(doc)
	return nil
}

func (p *Parsed) fromDocument(doc map[string]any) {
	if v, ok := doc["provider"].(string); ok {
		p.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	for _, k := range secretKeys {
		if v, ok := doc[k].(string); ok && strings.TrimSpace(v) != "" {
			p.Secret = strings.TrimSpace(v)
			break
		}
	}
	if p.Provider == "" && p.Secret != "" {
		p.Provider, _ = InferProvider(p.Secret)
	}
}

// parseEnv takes the first KEY=value line whose KEY is a known provider
// variable. Later lines are ignored.
func (p *Parsed) parseEnv(content string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		id, known := provider.ForEnvVar(strings.TrimSpace(key))
		if !known {
			continue
		}
		value = strings.Trim(strings.Trim(strings.TrimSpace(value), `"`), `'`)
		p.Provider = id
		p.Secret = value
		return
	}
}

func (p *Parsed) parseServiceAccount(content []byte) error {
	if err := ValidateServiceAccount(content); err != nil {
		return &ParseError{Path: p.SourcePath, Reason: "service account", Err: err}
	}
	p.Provider = "vertex"
	return nil
}

// Resolve returns the provider the credential should be stored under.
// A non-empty override wins over the detected provider. It fails when no
// provider is known, or when a non service-account file has no secret.
func (p *Parsed) Resolve(override string) (string, error) {
	id := p.Provider
	if o := strings.TrimSpace(override); o != "" {
		id = provider.Normalize(o)
	}
	if id == "" {
		return "", &ParseError{Path: p.SourcePath, Reason: "use --provider to set it", Err: ErrNoProvider}
	}
	if p.Format != FormatServiceAccount && p.Secret == "" {
		return "", &ParseError{Path: p.SourcePath, Err: ErrNoSecret}
	}
	return id, nil
}
