package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for a blank prompt; nothing is sent
	ErrEmptyInput = errors.New("prompt is empty")
	// ErrRequestPending is returned while another request is in flight
	ErrRequestPending = errors.New("a request is already in progress")
)

// KeyRequiredError blocks a request to a provider that needs the caller's
// key when none is set. No network call is made.
type KeyRequiredError struct {
	Provider string
}

func (e *KeyRequiredError) Error() string {
	return fmt.Sprintf("%s requires your API key. Please add it in settings.", e.Provider)
}
