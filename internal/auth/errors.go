package auth

import (
	"errors"

	"github.com/proxypal/proxypal/internal/config"
	"github.com/proxypal/proxypal/internal/credential"
	"github.com/proxypal/proxypal/internal/deviceauth"
	"github.com/proxypal/proxypal/internal/importer"
	"github.com/proxypal/proxypal/internal/provider"
)

// ErrConfiguration marks failures caused by the request itself: an unknown
// provider, an unsupported method, or a missing client id or input.
var ErrConfiguration = errors.New("configuration error")

// ErrorKind buckets an error for rendering and remediation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindParse
	KindNetwork
	KindProtocol
	KindPersistence
	KindDenied
	KindExpired
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindParse:
		return "parse"
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	case KindPersistence:
		return "persistence"
	case KindDenied:
		return "denied"
	case KindExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Kind classifies err. Checks run from the most specific cause outward, so a
// parse failure wrapped in a store error still reports as a parse failure.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var (
		protoErr  *deviceauth.ProtocolError
		netErr    *deviceauth.NetworkError
		serverErr *deviceauth.ServerError
		parseErr  *importer.ParseError
		storeErr  *credential.StoreError
	)
	switch {
	case errors.Is(err, ErrConfiguration),
		errors.Is(err, provider.ErrProviderNotFound),
		errors.Is(err, provider.ErrMethodNotSupported),
		errors.Is(err, deviceauth.ErrMissingClientID),
		errors.Is(err, deviceauth.ErrUnsupportedProvider):
		return KindConfiguration
	case errors.Is(err, deviceauth.ErrAccessDenied):
		return KindDenied
	case errors.Is(err, deviceauth.ErrExpired):
		return KindExpired
	case errors.As(err, &protoErr):
		return KindProtocol
	case errors.As(err, &netErr), errors.As(err, &serverErr):
		return KindNetwork
	case errors.As(err, &parseErr),
		errors.Is(err, importer.ErrUnknownFormat),
		errors.Is(err, credential.ErrNotJSON):
		return KindParse
	case errors.As(err, &storeErr):
		return KindPersistence
	default:
		return KindUnknown
	}
}

// Suggestions returns remediation hints for a failure of the given kind.
func Suggestions(kind ErrorKind, e provider.Entry) []string {
	var out []string
	switch kind {
	case KindConfiguration:
		out = append(out, "Run 'proxypal auth providers' to see providers and their methods")
		if e.Supports(provider.MethodDeviceCode) {
			out = append(out, "For OAuth, pass --client-id or set "+config.EnvOAuthClientID)
		}
	case KindParse:
		out = append(out,
			"Check that the file is JSON, YAML or KEY=value lines",
			"Pass --provider if the provider cannot be detected")
	case KindNetwork:
		out = append(out, "Check your network connection and try again")
	case KindProtocol:
		out = append(out, "Verify the OAuth client ID is registered for "+nameOf(e))
	case KindPersistence:
		out = append(out, "Check permissions on the credential directory")
	case KindDenied:
		out = append(out, "Approve the request in the browser to grant access")
	case KindExpired:
		out = append(out, "Run the command again and enter the code before it expires")
	default:
		out = append(out,
			"Check that your API key is correct and active",
			"Verify you have the necessary permissions")
	}
	if e.ConsoleURL != "" && (kind == KindUnknown || kind == KindProtocol) {
		out = append(out, "Get a new key from: "+e.ConsoleURL)
	}
	return out
}

func nameOf(e provider.Entry) string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}
