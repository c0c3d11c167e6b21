package log

import (
	"log/slog"
	"strings"
)

// secretKeys are attribute keys whose values are always masked.
var secretKeys = map[string]bool{
	"api_key":       true,
	"secret":        true,
	"access_token":  true,
	"refresh_token": true,
	"device_code":   true,
	"client_secret": true,
}

// Redact masks a secret, keeping a short prefix so the provider can still be
// recognised in logs ("sk-a****").
func Redact(secret string) string {
	s := strings.TrimSpace(secret)
	if len(s) < 12 {
		return "****"
	}
	return s[:4] + "****"
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if secretKeys[strings.ToLower(a.Key)] && a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, Redact(a.Value.String()))
	}
	return a
}
