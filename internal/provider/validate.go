package provider

import (
	"fmt"
	"strings"

	"github.com/proxypal/proxypal/internal/provider/util"
)

// FormatWarning describes a secret that does not look like what the
// provider usually issues. It is advisory only.
type FormatWarning struct {
	Provider string
	Reason   string
}

func (w *FormatWarning) Error() string {
	return fmt.Sprintf("%s key format: %s", w.Provider, w.Reason)
}

// ValidateSecretFormat applies provider-specific heuristics (known prefixes,
// minimum lengths) to a secret. It returns nil when the secret looks fine and
// a *FormatWarning otherwise. Callers must not block persistence on the result.
func ValidateSecretFormat(providerID, secret string) error {
	id := Normalize(providerID)
	s := strings.TrimSpace(secret)
	if s == "" {
		return &FormatWarning{Provider: id, Reason: "API key cannot be empty"}
	}

	warn := func(err error) error {
		if err == nil {
			return nil
		}
		return &FormatWarning{Provider: id, Reason: err.Error()}
	}

	switch id {
	case "gemini":
		// Either signal is enough: AIza prefix or a plausible length.
		if util.ValidateTokenPrefix(s, "AIza", "Gemini API key") != nil &&
			util.ValidateTokenLength(s, 30, "Gemini API key") != nil {
			return &FormatWarning{Provider: id, Reason: "Gemini API keys typically start with 'AIza' and are 39+ characters"}
		}
		return nil
	case "claude":
		return warn(util.ValidateTokenPrefix(s, "sk-ant-", "Claude API key"))
	case "openai", "codex":
		return warn(util.ValidateTokenPrefix(s, "sk-", "OpenAI API key"))
	case "qwen":
		return warn(util.ValidateTokenLength(s, 20, "Qwen API key"))
	case "copilot":
		return warn(util.ValidateTokenPrefixes(s, []string{"ghp_", "gho_", "ghu_", "github_pat_"}, "GitHub token"))
	default:
		return warn(util.ValidateTokenLength(s, 10, "API key"))
	}
}
