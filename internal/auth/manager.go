// Package auth composes the provider catalog, the credential file parser,
// the device authorization client and the credential store into the
// add, import, list and remove flows.
//
// Every flow validates against the catalog first and persists only after
// its last fallible step has succeeded, so a failed flow never leaves a
// credential file behind.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"

	"github.com/proxypal/proxypal/internal/credential"
	"github.com/proxypal/proxypal/internal/deviceauth"
	"github.com/proxypal/proxypal/internal/id"
	"github.com/proxypal/proxypal/internal/importer"
	"github.com/proxypal/proxypal/internal/log"
	"github.com/proxypal/proxypal/internal/provider"
	"github.com/proxypal/proxypal/internal/ui"
)

// DeviceAuthorizer runs the two halves of a device authorization grant.
// *deviceauth.Client implements it.
type DeviceAuthorizer interface {
	RequestCode(ctx context.Context, providerID, clientID, scope string) (*deviceauth.Session, error)
	PollForToken(ctx context.Context, s *deviceauth.Session) (*oauth2.Token, error)
}

// Manager runs credential flows against a store.
type Manager struct {
	Store  credential.Store
	Device DeviceAuthorizer
	// Out receives device-code instructions. Defaults to the ui writer.
	Out io.Writer
}

// NewManager returns a Manager using store and the default device client.
func NewManager(store credential.Store) *Manager {
	return &Manager{Store: store, Device: deviceauth.New()}
}

func (m *Manager) out() io.Writer {
	if m.Out != nil {
		return m.Out
	}
	return ui.Writer()
}

// Request describes one add flow. Exactly one of APIKey, File or device code
// applies, selected by Method. A zero Method is inferred from which of
// APIKey and File is set.
type Request struct {
	Provider string
	Method   provider.Method
	APIKey   string
	File     string
	ClientID string
	Scope    string
}

func (r Request) method() provider.Method {
	switch {
	case r.Method != 0:
		return r.Method
	case r.APIKey != "":
		return provider.MethodAPIKey
	case r.File != "":
		return provider.MethodFileImport
	default:
		return 0
	}
}

// Result is the uniform outcome of an add flow.
type Result struct {
	OK       bool
	Provider string
	Method   provider.Method
	// Path is the stored credential file on success.
	Path     string
	Message  string
	Warnings []string
	Err      error
}

// Entry returns the catalog entry for the result's provider, or a bare
// entry carrying only the id when the provider is unknown.
func (r Result) Entry() provider.Entry {
	if e, ok := provider.Lookup(r.Provider); ok {
		return e
	}
	return provider.Entry{ID: r.Provider, Name: r.Provider}
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// lookup resolves a provider id, wrapping misses as configuration errors.
func lookup(providerID string) (provider.Entry, error) {
	e, err := provider.MustLookup(providerID)
	if err != nil {
		return provider.Entry{}, fmt.Errorf("%w: %w", ErrConfiguration, &provider.GrantError{
			Provider: providerID,
			Cause:    err,
			Hint:     "Run 'proxypal auth providers' to list all available providers",
		})
	}
	return e, nil
}

// Add runs one add flow and reports its outcome. It never returns a
// partially persisted credential: Path is set only when OK is true.
func (m *Manager) Add(ctx context.Context, req Request) Result {
	log.SetFlowID(id.Flow())
	defer log.ClearFlowID()

	res := Result{Provider: provider.Normalize(req.Provider), Method: req.method()}
	entry, err := lookup(req.Provider)
	if err != nil {
		return res.fail(err)
	}

	// An explicit file is accepted for every provider. The catalog flag only
	// decides whether file import is offered interactively.
	switch {
	case res.Method == 0:
		return res.fail(configError("no credential given for %s (use --api-key, --file or --device-code)", entry.ID))
	case res.Method != provider.MethodFileImport && !entry.Supports(res.Method):
		return res.fail(fmt.Errorf("%w: %w", ErrConfiguration, provider.MethodError(entry, res.Method)))
	}

	log.Debug("adding credential", "provider", entry.ID, "method", res.Method.String())

	var path string
	switch res.Method {
	case provider.MethodAPIKey:
		path, err = m.addAPIKey(entry, req.APIKey, &res)
	case provider.MethodFileImport:
		path, err = m.addFile(entry, req.File, &res)
	case provider.MethodDeviceCode:
		path, err = m.addDeviceCode(ctx, entry, req)
	}
	if err != nil {
		log.Error("add credential failed", "provider", entry.ID, "method", res.Method.String(), "error", err)
		return res.fail(err)
	}

	res.OK = true
	res.Path = path
	res.Message = fmt.Sprintf("Added %s credential", entry.Name)
	log.Info("credential added", "provider", entry.ID, "method", res.Method.String(), "path", path)
	return res
}

func (r Result) fail(err error) Result {
	r.OK = false
	r.Err = err
	r.Message = err.Error()
	return r
}

func (r *Result) warn(err error) {
	var fw *provider.FormatWarning
	if errors.As(err, &fw) {
		r.Warnings = append(r.Warnings, fw.Reason)
		log.Warn("API key format warning", "provider", fw.Provider, "reason", fw.Reason)
	}
}

func (m *Manager) addAPIKey(entry provider.Entry, key string, res *Result) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", configError("API key cannot be empty")
	}
	res.warn(provider.ValidateSecretFormat(entry.ID, key))
	log.Debug("saving API key", "provider", entry.ID, "key", log.Redact(key))
	return m.Store.Save(entry.ID, key)
}

// addFile parses path first so malformed files fail before anything is
// written. JSON documents and service accounts are copied as is; YAML and
// env files contribute their extracted secret.
func (m *Manager) addFile(entry provider.Entry, path string, res *Result) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", configError("credential file path is required")
	}
	parsed, err := importer.ParseFile(path)
	if err != nil {
		return "", err
	}
	if detected := provider.Normalize(parsed.Provider); detected != "" && detected != entry.ID {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("file looks like a %s credential, storing it as %s", detected, entry.ID))
	}

	switch parsed.Format {
	case importer.FormatServiceAccount, importer.FormatJSON:
		return m.Store.ImportFile(entry.ID, path)
	default:
		if parsed.Secret == "" {
			return "", &importer.ParseError{Path: path, Err: importer.ErrNoSecret}
		}
		res.warn(provider.ValidateSecretFormat(entry.ID, parsed.Secret))
		return m.Store.Save(entry.ID, parsed.Secret)
	}
}

func (m *Manager) addDeviceCode(ctx context.Context, entry provider.Entry, req Request) (string, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return "", fmt.Errorf("%w: %w", ErrConfiguration, deviceauth.ErrMissingClientID)
	}
	if m.Device == nil {
		return "", configError("device authorization is not available")
	}

	sess, err := m.Device.RequestCode(ctx, entry.ID, req.ClientID, req.Scope)
	if err != nil {
		if errors.Is(err, deviceauth.ErrMissingClientID) || errors.Is(err, deviceauth.ErrUnsupportedProvider) {
			return "", fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return "", err
	}

	fmt.Fprintln(m.out())
	fmt.Fprint(m.out(), deviceauth.Instructions(sess))
	fmt.Fprintln(m.out(), "\nWaiting for authorization...")
	l := log.With("provider", entry.ID, "verification_uri", sess.VerificationURI)
	l.Info("waiting for device authorization", "interval", sess.Interval.String())

	tok, err := m.Device.PollForToken(ctx, sess)
	if err != nil {
		return "", err
	}
	l.Debug("device authorization granted", "token_type", tok.TokenType, "expiry", tok.Expiry)
	return m.Store.SaveOAuthToken(entry.ID, credential.TokenFromOAuth2(tok))
}

// Remove deletes every stored credential of a provider and returns how many
// files went away. Zero is not an error.
func (m *Manager) Remove(providerID string) (int, error) {
	entry, err := lookup(providerID)
	if err != nil {
		return 0, err
	}
	n, err := m.Store.Remove(entry.ID)
	if err != nil {
		return n, err
	}
	if n == 0 {
		log.Warn("no credentials found", "provider", entry.ID)
	} else {
		log.Info("removed credentials", "provider", entry.ID, "count", n)
	}
	return n, nil
}

// List returns stored credentials for one provider, or all of them when
// providerID is empty.
func (m *Manager) List(providerID string) ([]credential.Entry, error) {
	if providerID == "" {
		return m.Store.ListAll()
	}
	entry, err := lookup(providerID)
	if err != nil {
		return nil, err
	}
	return m.Store.List(entry.ID)
}
