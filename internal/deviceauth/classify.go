package deviceauth

import (
	"encoding/json"
	"strings"

	"golang.org/x/oauth2"
)

// OutcomeKind is the result of one token poll.
type OutcomeKind int

const (
	OutcomePending OutcomeKind = iota
	OutcomeSlowDown
	OutcomeSuccess
	OutcomeExpired
	OutcomeDenied
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePending:
		return "pending"
	case OutcomeSlowDown:
		return "slow_down"
	case OutcomeSuccess:
		return "success"
	case OutcomeExpired:
		return "expired"
	case OutcomeDenied:
		return "denied"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is a classified token endpoint response. Token is set only for
// OutcomeSuccess; Err only for OutcomeError.
type Outcome struct {
	Kind  OutcomeKind
	Token *oauth2.Token
	Err   *ProtocolError
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

func (r tokenResponse) token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  r.AccessToken,
		TokenType:    r.TokenType,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    r.ExpiresIn,
	}
	if r.Scope != "" {
		tok = tok.WithExtra(map[string]any{"scope": r.Scope})
	}
	return tok
}

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// Classify interprets a token endpoint body. A token with a non-empty
// access_token wins over everything else; otherwise the OAuth error code
// decides; anything unparseable is an OutcomeError carrying the raw body.
//
// Classify does not set Token.Expiry since it has no clock. ExpiresIn is
// carried through instead.
func Classify(body []byte) Outcome {
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err == nil && tr.AccessToken != "" {
		return Outcome{Kind: OutcomeSuccess, Token: tr.token()}
	}

	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		switch er.Error {
		case "authorization_pending":
			return Outcome{Kind: OutcomePending}
		case "slow_down":
			return Outcome{Kind: OutcomeSlowDown}
		case "expired_token", "expired":
			return Outcome{Kind: OutcomeExpired}
		case "access_denied":
			return Outcome{Kind: OutcomeDenied}
		default:
			return Outcome{Kind: OutcomeError, Err: &ProtocolError{Code: er.Error, Description: er.Description}}
		}
	}

	return Outcome{Kind: OutcomeError, Err: &ProtocolError{Body: strings.TrimSpace(string(body))}}
}
