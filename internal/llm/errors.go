package llm

import "fmt"

// KeyError is returned when no credential can be resolved for a provider.
// Status is the HTTP status the proxy answers with.
type KeyError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *KeyError) Error() string {
	return e.Detail
}

// APIError is returned for a non-2xx response from a provider
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Body)
}

// ResponseError is returned when a provider answers 2xx with no usable text
type ResponseError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
