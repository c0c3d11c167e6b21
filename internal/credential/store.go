package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/proxypal/proxypal/internal/importer"
	"github.com/proxypal/proxypal/internal/log"
)

const (
	// timestampLayout is YYYYmmddHHMMSS in UTC.
	timestampLayout = "20060102150405"

	// maxSuffix bounds the -N suffixes tried when a name is taken.
	maxSuffix = 100
)

// ErrNotJSON is returned by ImportFile for sources that are not JSON
// documents. Their secret should be extracted and saved instead.
var ErrNotJSON = errors.New("only JSON credential files can be copied into the store")

// StoreError wraps filesystem failures with the operation and file involved.
type StoreError struct {
	Op       string
	Provider string
	Path     string
	Err      error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s credential %s: %v", e.Op, e.Provider, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s credential: %v", e.Op, e.Provider, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// FileStore is a Store backed by a directory of JSON files.
type FileStore struct {
	dir  string
	now  func() time.Time
	link func(oldname, newname string) error
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir. The directory is created with
// mode 0700 on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now, link: os.Link}
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// DefaultStoreDir returns ~/.cli-proxy-api, the directory the proxy reads
// credentials from.
func DefaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".cli-proxy-api")
	}
	return filepath.Join(home, ".cli-proxy-api")
}

func (s *FileStore) ensureDir() error {
	return os.MkdirAll(s.dir, 0o700)
}

func stamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Save writes secret as a new "<provider>-<timestamp>.json" file and returns
// its path. It never overwrites an existing credential.
func (s *FileStore) Save(provider, secret string) (string, error) {
	provider = strings.ToLower(provider)
	now := s.now().UTC()
	doc := apiKeyDoc{
		APIKey:    secret,
		Provider:  provider,
		CreatedAt: now.Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &StoreError{Op: "save", Provider: provider, Err: err}
	}

	path, err := s.create(provider+"-"+stamp(now), data)
	if err != nil {
		return "", &StoreError{Op: "save", Provider: provider, Path: path, Err: err}
	}
	log.Debug("saved API key", "provider", provider, "path", path)
	return path, nil
}

// SaveOAuthToken writes a token set tagged type "oauth".
func (s *FileStore) SaveOAuthToken(provider string, tok OAuthToken) (string, error) {
	provider = strings.ToLower(provider)
	now := s.now().UTC()
	doc := oauthDoc{
		Type:         string(FormatOAuth),
		Provider:     provider,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Scope:        tok.Scope,
		CreatedAt:    now.Format(time.RFC3339),
	}
	if !tok.Expiry.IsZero() {
		doc.ExpiresAt = tok.Expiry.UTC().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &StoreError{Op: "save", Provider: provider, Err: err}
	}

	path, err := s.create(provider+"-"+stamp(now), data)
	if err != nil {
		return "", &StoreError{Op: "save", Provider: provider, Path: path, Err: err}
	}
	log.Debug("saved OAuth token", "provider", provider, "path", path)
	return path, nil
}

// ImportFile copies a JSON credential file into the store byte for byte.
// Service accounts are stored as "vertex-serviceaccount-<timestamp>.json";
// other files as "<provider>-<basename>", keeping the basename as is when it
// already carries the provider prefix.
func (s *FileStore) ImportFile(provider, sourcePath string) (string, error) {
	provider = strings.ToLower(provider)
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", &StoreError{Op: "import", Provider: provider, Path: sourcePath, Err: err}
	}

	var stem string
	switch importer.DetectFormat(sourcePath, string(content)) {
	case importer.FormatServiceAccount:
		if err := importer.ValidateServiceAccount(content); err != nil {
			return "", &StoreError{Op: "import", Provider: provider, Path: sourcePath, Err: err}
		}
		if provider != "vertex" {
			log.Warn("service account stored as vertex credential", "requested", provider)
		}
		stem = "vertex-serviceaccount-" + stamp(s.now())
	case importer.FormatJSON:
		if !json.Valid(content) {
			return "", &StoreError{Op: "import", Provider: provider, Path: sourcePath, Err: errors.New("invalid JSON")}
		}
		base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		if strings.HasPrefix(base, provider+"-") {
			stem = base
		} else {
			stem = provider + "-" + base
		}
	default:
		return "", &StoreError{Op: "import", Provider: provider, Path: sourcePath, Err: ErrNotJSON}
	}

	path, err := s.create(stem, content)
	if err != nil {
		return "", &StoreError{Op: "import", Provider: provider, Path: path, Err: err}
	}
	log.Debug("imported credential file", "provider", provider, "source", sourcePath, "path", path)
	return path, nil
}

// create publishes data under dir/<stem>.json, or <stem>-2.json and so on
// when that name is taken. The content is written to a hidden temp file
// first and hard-linked into place, so a reader never observes a partial
// credential and an existing file is never replaced. On filesystems without
// hard links the file is created in place with O_EXCL instead.
func (s *FileStore) create(stem string, data []byte) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", fmt.Errorf("creating credential dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".pending-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return "", fmt.Errorf("setting permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	canLink := true
	for n := 1; n <= maxSuffix; n++ {
		name := stem + ".json"
		if n > 1 {
			name = stem + "-" + strconv.Itoa(n) + ".json"
		}
		path := filepath.Join(s.dir, name)

		var err error
		if canLink {
			err = s.link(tmpPath, path)
			if err != nil && !errors.Is(err, fs.ErrExist) {
				log.Debug("hard link unavailable, creating credential in place", "path", path, "error", err)
				canLink = false
			}
		}
		if !canLink {
			err = writeExclusive(path, data)
		}
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return path, err
		}
	}
	return "", fmt.Errorf("no free filename for %s after %d attempts", stem, maxSuffix)
}

// writeExclusive creates path with mode 0600, failing with fs.ErrExist if it
// is already taken. A failed write removes the partial file.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("syncing credential: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing credential: %w", err)
	}
	return nil
}

// List returns the credentials stored for provider, oldest first.
// A missing store directory yields an empty list.
func (s *FileStore) List(provider string) ([]Entry, error) {
	provider = strings.ToLower(provider)
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range all {
		if e.Provider == provider {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every credential file in the store, sorted by provider and
// then by modification time.
func (s *FileStore) ListAll() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &StoreError{Op: "list", Provider: "all", Path: s.dir, Err: err}
	}

	var out []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		provider := providerFromName(name)
		if provider == "" {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(s.dir, name)
		out = append(out, Entry{
			Provider: provider,
			Name:     name,
			Path:     path,
			Format:   sniffFormat(path),
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.Before(out[j].ModTime)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Remove deletes every credential stored for provider and returns how many
// files were removed. Zero is not an error.
func (s *FileStore) Remove(provider string) (int, error) {
	provider = strings.ToLower(provider)
	entries, err := s.List(provider)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if err := os.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, &StoreError{Op: "remove", Provider: provider, Path: e.Path, Err: err}
		}
		removed++
	}
	log.Debug("removed credentials", "provider", provider, "count", removed)
	return removed, nil
}

// Load reads a stored credential back.
func Load(path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StoreError{Op: "load", Path: path, Err: err}
	}
	var doc struct {
		Type        string `json:"type"`
		Provider    string `json:"provider"`
		APIKey      string `json:"api_key"`
		AccessToken string `json:"access_token"`
		CreatedAt   string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &StoreError{Op: "load", Path: path, Err: err}
	}

	c := &Credential{
		Provider:   doc.Provider,
		Format:     formatOf(doc.Type, doc.APIKey),
		SourcePath: path,
	}
	if c.Provider == "" {
		c.Provider = providerFromName(filepath.Base(path))
	}
	switch c.Format {
	case FormatAPIKey:
		c.Secret = doc.APIKey
	case FormatOAuth:
		c.Secret = doc.AccessToken
	}
	if t, err := time.Parse(time.RFC3339, doc.CreatedAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func formatOf(typ, apiKey string) Format {
	switch {
	case typ == string(FormatOAuth):
		return FormatOAuth
	case typ == string(FormatServiceAccount):
		return FormatServiceAccount
	case apiKey != "":
		return FormatAPIKey
	default:
		return FormatImported
	}
}

// sniffFormat reads the format tag of a stored file. Unreadable files are
// reported as imported.
func sniffFormat(path string) Format {
	data, err := os.ReadFile(path)
	if err != nil {
		return FormatImported
	}
	var doc struct {
		Type   string `json:"type"`
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return FormatImported
	}
	return formatOf(doc.Type, doc.APIKey)
}
