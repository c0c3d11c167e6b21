package deviceauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"

	"github.com/proxypal/proxypal/internal/log"
)

const (
	// GrantType is the RFC 8628 grant type sent when polling.
	GrantType = "urn:ietf:params:oauth:grant-type:device_code"

	// DefaultInterval is the poll interval used when the vendor does not
	// advertise one. It is also the floor for advertised intervals.
	DefaultInterval = 5 * time.Second

	// DefaultMaxPollDuration bounds the whole poll loop.
	DefaultMaxPollDuration = 900 * time.Second

	// DefaultSlowDownPenalty is slept in addition to the interval after a
	// slow_down response.
	DefaultSlowDownPenalty = 5 * time.Second
)

// maxResponseBytes caps how much of a vendor response is read.
const maxResponseBytes = 1 << 20 // 1 MB

var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

var validate = validator.New()

// Client runs device authorization flows. The zero value is usable and
// talks to the real vendor endpoints.
type Client struct {
	HTTPClient *http.Client // Override for testing
	Clock      Clock        // Override for testing
	// Endpoints maps provider IDs to vendor endpoints. Nil uses
	// DefaultEndpoints.
	Endpoints       map[string]Endpoint
	MaxPollDuration time.Duration
	SlowDownPenalty time.Duration
}

// New returns a Client with default settings.
func New() *Client {
	return &Client{
		HTTPClient:      defaultHTTPClient,
		Clock:           realClock{},
		Endpoints:       DefaultEndpoints(),
		MaxPollDuration: DefaultMaxPollDuration,
		SlowDownPenalty: DefaultSlowDownPenalty,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

func (c *Client) clock() Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return realClock{}
}

func (c *Client) maxPoll() time.Duration {
	if c.MaxPollDuration > 0 {
		return c.MaxPollDuration
	}
	return DefaultMaxPollDuration
}

func (c *Client) slowDownPenalty() time.Duration {
	if c.SlowDownPenalty > 0 {
		return c.SlowDownPenalty
	}
	return DefaultSlowDownPenalty
}

// Session is one in-progress device authorization. It is never persisted.
type Session struct {
	Provider                string
	ClientID                string
	DeviceCode              string
	UserCode                string
	VerificationURI         string
	VerificationURIComplete string
	ExpiresAt               time.Time
	// Interval is the wait before each poll, never below DefaultInterval.
	Interval time.Duration
}

type deviceCodeResponse struct {
	DeviceCode              string `json:"device_code" validate:"required"`
	UserCode                string `json:"user_code" validate:"required"`
	VerificationURI         string `json:"verification_uri" validate:"required,url"`
	VerificationURIComplete string `json:"verification_uri_complete" validate:"omitempty,url"`
	// Google names the field verification_url.
	VerificationURL         string `json:"verification_url"`
	ExpiresIn               int64  `json:"expires_in" validate:"gte=0"`
	Interval                int64  `json:"interval" validate:"gte=0"`
}

// RequestCode starts a device authorization for providerID. An empty scope
// uses the provider's default.
func (c *Client) RequestCode(ctx context.Context, providerID, clientID, scope string) (*Session, error) {
	id, ep, ok := c.endpoint(providerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s (use an API key instead)", ErrUnsupportedProvider, id)
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, ErrMissingClientID
	}
	if scope == "" {
		scope = ep.DefaultScope
	}

	form := url.Values{
		"client_id": {clientID},
		"scope":     {scope},
	}

	log.Info("requesting device code", "provider", id, "url", ep.DeviceAuthURL)

	status, body, err := c.post(ctx, ep, ep.DeviceAuthURL, form)
	if err != nil {
		return nil, &NetworkError{Op: "device code request", URL: ep.DeviceAuthURL, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &ServerError{Status: status, Body: strings.TrimSpace(string(body))}
	}

	var dr deviceCodeResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, &ProtocolError{Description: fmt.Sprintf("parsing device code response: %v", err), Body: string(body)}
	}
	if dr.VerificationURI == "" {
		dr.VerificationURI = dr.VerificationURL
	}
	if err := validate.Struct(dr); err != nil {
		return nil, &ProtocolError{Description: fmt.Sprintf("invalid device code response: %v", err), Body: string(body)}
	}

	interval := time.Duration(dr.Interval) * time.Second
	if interval < DefaultInterval {
		interval = DefaultInterval
	}
	expiresIn := time.Duration(dr.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = c.maxPoll()
	}

	log.Debug("device code issued", "provider", id, "user_code", dr.UserCode, "expires_in", expiresIn, "interval", interval)

	return &Session{
		Provider:                id,
		ClientID:                clientID,
		DeviceCode:              dr.DeviceCode,
		UserCode:                dr.UserCode,
		VerificationURI:         dr.VerificationURI,
		VerificationURIComplete: dr.VerificationURIComplete,
		ExpiresAt:               c.clock().Now().Add(expiresIn),
		Interval:                interval,
	}, nil
}

// PollForToken polls until the user approves the session, returning the
// issued token. It sleeps s.Interval before every attempt and gives up with
// ErrExpired once MaxPollDuration has elapsed on the Client's clock.
//
// Transport failures are logged and retried. ErrExpired, ErrAccessDenied and
// *ProtocolError end the loop immediately. Cancelling ctx returns ctx.Err().
func (c *Client) PollForToken(ctx context.Context, s *Session) (*oauth2.Token, error) {
	_, ep, ok := c.endpoint(s.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, s.Provider)
	}

	interval := s.Interval
	if interval < DefaultInterval {
		interval = DefaultInterval
	}

	form := url.Values{
		"client_id":   {s.ClientID},
		"device_code": {s.DeviceCode},
		"grant_type":  {GrantType},
	}

	clk := c.clock()
	start := clk.Now()
	log.Info("polling for token", "provider", s.Provider, "interval", interval, "max", c.maxPoll())

	for attempt := 1; ; attempt++ {
		if clk.Now().Sub(start) >= c.maxPoll() {
			log.Warn("device code poll ceiling reached", "provider", s.Provider, "attempts", attempt-1)
			return nil, ErrExpired
		}
		if err := clk.Sleep(ctx, interval); err != nil {
			return nil, err
		}

		_, body, err := c.post(ctx, ep, ep.TokenURL, form)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("token poll failed, retrying", "provider", s.Provider, "attempt", attempt, "error", err)
			continue
		}

		out := Classify(body)
		log.Debug("token poll", "provider", s.Provider, "attempt", attempt, "outcome", out.Kind)

		switch out.Kind {
		case OutcomeSuccess:
			tok := out.Token
			if tok.ExpiresIn > 0 {
				tok.Expiry = clk.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
			}
			log.Info("device authorization complete", "provider", s.Provider, "attempts", attempt)
			return tok, nil
		case OutcomePending:
			continue
		case OutcomeSlowDown:
			if err := clk.Sleep(ctx, c.slowDownPenalty()); err != nil {
				return nil, err
			}
		case OutcomeExpired:
			return nil, ErrExpired
		case OutcomeDenied:
			return nil, ErrAccessDenied
		case OutcomeError:
			return nil, out.Err
		}
	}
}

// post sends a form-encoded POST and returns the status and (capped) body.
func (c *Client) post(ctx context.Context, ep Endpoint, target string, form url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if ep.AcceptJSON {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}
