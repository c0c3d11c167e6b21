package util

import (
	"fmt"
	"strings"
)

// ValidateTokenPrefix checks that a token has an expected prefix.
func ValidateTokenPrefix(token, prefix, tokenType string) error {
	if !strings.HasPrefix(token, prefix) {
		return fmt.Errorf("%s should start with %q", tokenType, prefix)
	}
	return nil
}

// ValidateTokenPrefixes checks that a token starts with one of prefixes.
func ValidateTokenPrefixes(token string, prefixes []string, tokenType string) error {
	for _, p := range prefixes {
		if strings.HasPrefix(token, p) {
			return nil
		}
	}
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return fmt.Errorf("%s should start with one of %s", tokenType, strings.Join(quoted, ", "))
}

// ValidateTokenLength checks that a token has a minimum length.
func ValidateTokenLength(token string, minLen int, tokenType string) error {
	if len(token) < minLen {
		return fmt.Errorf("%s should be at least %d characters", tokenType, minLen)
	}
	return nil
}
