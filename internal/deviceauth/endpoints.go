package deviceauth

import (
	"golang.org/x/oauth2/endpoints"

	"github.com/proxypal/proxypal/internal/provider"
)

// Endpoint holds the URLs and request quirks for one vendor.
type Endpoint struct {
	DeviceAuthURL string
	TokenURL      string
	// DefaultScope is sent when the caller passes no scope.
	DefaultScope string
	// AcceptJSON sets "Accept: application/json". GitHub answers with a
	// form-encoded body otherwise.
	AcceptJSON bool
}

// DefaultEndpoints returns the vendor endpoints keyed by provider ID.
func DefaultEndpoints() map[string]Endpoint {
	return map[string]Endpoint{
		"gemini": {
			DeviceAuthURL: endpoints.Google.DeviceAuthURL,
			TokenURL:      endpoints.Google.TokenURL,
			DefaultScope:  "https://www.googleapis.com/auth/generative-language.retriever",
		},
		"copilot": {
			DeviceAuthURL: endpoints.GitHub.DeviceAuthURL,
			TokenURL:      endpoints.GitHub.TokenURL,
			DefaultScope:  "read:user",
			AcceptJSON:    true,
		},
	}
}

func (c *Client) endpoint(providerID string) (string, Endpoint, bool) {
	id := provider.Normalize(providerID)
	eps := c.Endpoints
	if eps == nil {
		eps = DefaultEndpoints()
	}
	ep, ok := eps[id]
	return id, ep, ok
}
