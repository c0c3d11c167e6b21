package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderNotFound is returned when a provider is not in the catalog.
	ErrProviderNotFound = errors.New("unknown provider")
	// ErrMethodNotSupported is returned when a provider does not accept the
	// requested acquisition method.
	ErrMethodNotSupported = errors.New("auth method not supported")
)

// GrantError wraps provider-specific acquisition failures with actionable guidance.
type GrantError struct {
	Provider string
	Cause    error
	Hint     string
}

func (e *GrantError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("add %s credential: %v\n\n%s", e.Provider, e.Cause, e.Hint)
	}
	return fmt.Sprintf("add %s credential: %v", e.Provider, e.Cause)
}

func (e *GrantError) Unwrap() error {
	return e.Cause
}

// MethodError reports a method the provider does not support, listing the
// methods it does.
func MethodError(e Entry, m Method) error {
	return &GrantError{
		Provider: e.ID,
		Cause:    fmt.Errorf("%w: %s", ErrMethodNotSupported, m),
		Hint:     fmt.Sprintf("%s supports: %s", e.Name, FormatMethods(e)),
	}
}
