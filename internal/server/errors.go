package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/backend"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSectionNotFound indicates the addressed section does not exist
type ErrSectionNotFound struct {
	ID string
}

func (e *ErrSectionNotFound) Error() string {
	return fmt.Sprintf("section not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrSectionNotFound
		mismatchErr   *editor.TypeMismatchError
		keyRequired   *builder.KeyRequiredError
		keyErr        *llm.KeyError
		apiErr        *llm.APIError
		responseErr   *llm.ResponseError
		requestErr    *backend.RequestError
		transportErr  *backend.TransportError
		schemaErr     *schemas.ValidationError
		loadErr       *schemas.SchemaLoadError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &keyRequired),
		errors.As(err, &schemaErr), errors.As(err, &loadErr),
		errors.Is(err, builder.ErrEmptyInput),
		errors.Is(err, editor.ErrUnknownField), errors.Is(err, editor.ErrNoBullets):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.Is(err, editor.ErrSectionNotFound),
		errors.Is(err, editor.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.As(err, &mismatchErr), errors.Is(err, builder.ErrRequestPending),
		errors.Is(err, editor.ErrNotEditing):
		return http.StatusConflict
	case errors.As(err, &keyErr):
		return keyErr.Status
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &requestErr):
		if requestErr.Status >= 400 {
			return requestErr.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &responseErr), errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
