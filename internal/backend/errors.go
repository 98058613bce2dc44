package backend

import "fmt"

// RequestError is a non-2xx answer from the backend
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "Failed to get AI response"
}

// TransportError wraps a failure to reach the backend, including timeouts
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Failed to connect to AI service: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
