package deviceauth

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProvider is returned for providers without a device
	// authorization endpoint.
	ErrUnsupportedProvider = errors.New("provider does not support device code flow")
	// ErrMissingClientID is returned when no OAuth client ID was supplied.
	ErrMissingClientID = errors.New("OAuth client ID is required")
	// ErrExpired is returned when the device code expires or the poll
	// ceiling is reached before the user approves.
	ErrExpired = errors.New("device code expired")
	// ErrAccessDenied is returned when the user rejects the authorization.
	ErrAccessDenied = errors.New("user denied access")
)

// NetworkError is a transport failure talking to a vendor endpoint.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response from the device authorization endpoint.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("device code request failed (HTTP %d): %s", e.Status, e.Body)
}

// ProtocolError is a vendor-reported OAuth error or a response that could
// not be understood.
type ProtocolError struct {
	Code        string
	Description string
	Body        string
}

func (e *ProtocolError) Error() string {
	switch {
	case e.Description != "":
		return "authorization failed: " + e.Description
	case e.Code != "":
		return "authorization failed: " + e.Code
	default:
		return "authorization failed: unexpected response: " + e.Body
	}
}
