// Package server provides the HTTP REST API for the matching engine.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaiveerRaikhy/beacs/internal/store"
)

// ErrNotAuthorized indicates the authenticated user may not act on the
// requested resource.
type ErrNotAuthorized struct{}

func (e *ErrNotAuthorized) Error() string {
	return "not authorized"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	var notAuthorized *ErrNotAuthorized
	if errors.As(err, &notAuthorized) {
		return http.StatusForbidden
	}

	var validation *ErrValidation
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
