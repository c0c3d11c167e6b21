// Package credential stores provider credentials as plain JSON files, one
// file per credential, in a per-user directory.
//
// The filename is the only index: every file is named "<provider>-...json"
// and listing or removing credentials for a provider is a prefix match.
// Files are written once and never edited; adding a credential always
// creates a new file.
package credential

import (
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Format tags how a stored credential was produced.
type Format string

const (
	FormatAPIKey         Format = "api_key"
	FormatOAuth          Format = "oauth"
	FormatServiceAccount Format = "service_account"
	// FormatImported is a JSON file copied verbatim from elsewhere.
	FormatImported Format = "imported"
)

// Credential is a stored credential loaded back from disk.
type Credential struct {
	Provider  string
	Secret    string
	Format    Format
	CreatedAt time.Time
	// SourcePath is the file the credential was loaded from.
	SourcePath string
}

// OAuthToken is the token set persisted for a device-code login.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	Expiry       time.Time
}

// TokenFromOAuth2 converts an oauth2 token, picking the granted scope out of
// the raw response fields.
func TokenFromOAuth2(t *oauth2.Token) OAuthToken {
	tok := OAuthToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
	if s, ok := t.Extra("scope").(string); ok {
		tok.Scope = s
	}
	return tok
}

// Entry describes one file in the store.
type Entry struct {
	Provider string
	Name     string
	Path     string
	Format   Format
	ModTime  time.Time
	Size     int64
}

// Store is the persistence surface used by the auth flows.
type Store interface {
	Save(provider, secret string) (string, error)
	ImportFile(provider, sourcePath string) (string, error)
	SaveOAuthToken(provider string, tok OAuthToken) (string, error)
	List(provider string) ([]Entry, error)
	ListAll() ([]Entry, error)
	Remove(provider string) (int, error)
}

// apiKeyDoc is the on-disk shape of a saved API key.
type apiKeyDoc struct {
	APIKey    string `json:"api_key"`
	Provider  string `json:"provider"`
	CreatedAt string `json:"created_at"`
}

// oauthDoc is the on-disk shape of a device-code token.
type oauthDoc struct {
	Type         string `json:"type"`
	Provider     string `json:"provider"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// providerFromName returns the provider prefix of a stored filename.
func providerFromName(name string) string {
	p, _, ok := strings.Cut(name, "-")
	if !ok {
		return ""
	}
	return p
}
