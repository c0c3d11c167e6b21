package importer

import "strings"

// prefixRule maps a secret prefix to a provider ID.
type prefixRule struct {
	prefix   string
	provider string
}

// prefixRules is evaluated top to bottom. Longer vendor prefixes must come
// before the generic ones they share a stem with ("sk-ant-" before "sk-").
var prefixRules = []prefixRule{
	{"sk-ant-", "claude"},
	{"sk-", "openai"},
	{"AIza", "gemini"},
	{"ghp_", "copilot"},
	{"gho_", "copilot"},
}

// InferProvider guesses the provider that issued secret from its prefix.
func InferProvider(secret string) (string, bool) {
	for _, r := range prefixRules {
		if strings.HasPrefix(secret, r.prefix) {
			return r.provider, true
		}
	}
	return "", false
}
