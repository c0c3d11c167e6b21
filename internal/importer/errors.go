package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned when a file matches none of the
	// supported shapes.
	ErrUnknownFormat = errors.New("unknown file format")
	// ErrNoSecret is returned when a file parses but carries no secret.
	ErrNoSecret = errors.New("no API key found in file")
	// ErrNoProvider is returned when the provider can be neither read from
	// the file nor inferred from the secret.
	ErrNoProvider = errors.New("could not detect provider")
)

// ParseError reports a file that could not be turned into a credential.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("parse %s: %s: %v", e.Path, e.Reason, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
