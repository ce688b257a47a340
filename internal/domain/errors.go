package domain

import (
	"errors"
	"fmt"
)

// ErrMissingCredential means the active generation backend has no API
// credential configured. Detected before any network call is attempted.
var ErrMissingCredential = errors.New("no API credential configured")

// ErrUnknownPersona means a persona id did not resolve against the registry.
// This is a defect, not a user-facing condition.
var ErrUnknownPersona = errors.New("unknown persona")

// ProviderError reports a non-success response from a generation backend.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Message)
}
