package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/proxypal/proxypal/internal/id"
	"github.com/proxypal/proxypal/internal/importer"
	"github.com/proxypal/proxypal/internal/log"
	"github.com/proxypal/proxypal/internal/provider"
	"github.com/proxypal/proxypal/internal/ui"
)

// importExts are the extensions a directory import picks up.
var importExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".env":  true,
}

// ImportResult is the outcome of importing one file.
type ImportResult struct {
	Path     string
	Provider string
	OK       bool
	// Stored is the credential file written on success.
	Stored  string
	Message string
	Err     error
}

func (r ImportResult) fail(err error) ImportResult {
	r.OK = false
	r.Err = err
	r.Message = err.Error()
	return r
}

// ImportPath parses one file and stores its credential. An override replaces
// the detected provider. Service accounts are copied as is; every other
// format must yield a secret, which is saved as an API key.
func (m *Manager) ImportPath(path, override string) ImportResult {
	res := ImportResult{Path: path}

	parsed, err := importer.ParseFile(path)
	if err != nil {
		return res.fail(err)
	}
	providerID, err := parsed.Resolve(override)
	if err != nil {
		return res.fail(err)
	}
	entry, err := lookup(providerID)
	if err != nil {
		return res.fail(err)
	}
	res.Provider = entry.ID

	var stored string
	if parsed.Format == importer.FormatServiceAccount {
		stored, err = m.Store.ImportFile(entry.ID, path)
		res.Provider = parsed.Provider
	} else {
		if w := provider.ValidateSecretFormat(entry.ID, parsed.Secret); w != nil {
			log.Warn("API key format warning", "provider", entry.ID, "file", path, "reason", w.Error())
		}
		stored, err = m.Store.Save(entry.ID, parsed.Secret)
	}
	if err != nil {
		return res.fail(err)
	}

	res.OK = true
	res.Stored = stored
	res.Message = fmt.Sprintf("Imported %s credential", res.Provider)
	log.Info("imported credential", "provider", res.Provider, "file", path, "path", stored)
	return res
}

// ImportDirectory imports every .json, .yaml, .yml and .env file directly
// inside dir. Subdirectories and dotfiles are skipped. Each file succeeds or
// fails on its own; the error return covers only an unreadable dir.
func (m *Manager) ImportDirectory(dir, override string) ([]ImportResult, error) {
	log.SetFlowID(id.Flow())
	defer log.ClearFlowID()

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading import directory: %w", err)
	}
	if !info.IsDir() {
		return nil, configError("not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading import directory: %w", err)
	}

	var results []ImportResult
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !importExts[strings.ToLower(filepath.Ext(name))] {
			log.Debug("skipping file with unknown extension", "file", name)
			continue
		}
		results = append(results, m.ImportPath(filepath.Join(dir, name), override))
	}
	return results, nil
}

// Import imports path, which may be a single file or a directory.
func (m *Manager) Import(path, override string) ([]ImportResult, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return m.ImportDirectory(path, override)
	}

	log.SetFlowID(id.Flow())
	defer log.ClearFlowID()
	return []ImportResult{m.ImportPath(path, override)}, nil
}

// ImportSummary renders results split into succeeded and failed files.
func ImportSummary(results []ImportResult) string {
	items := make([]ui.SummaryItem, 0, len(results))
	for _, r := range results {
		item := ui.SummaryItem{OK: r.OK, Name: filepath.Base(r.Path), Detail: r.Message}
		if r.OK {
			item.Detail = r.Provider
		}
		items = append(items, item)
	}
	return ui.Summary("Import summary", items)
}
