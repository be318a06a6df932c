package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ErrBatchTooLarge indicates a batch request above the configured limit.
type ErrBatchTooLarge struct {
	Limit int
}

func (e *ErrBatchTooLarge) Error() string {
	return fmt.Sprintf("maximum %d posts per batch request", e.Limit)
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *ErrBatchTooLarge:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
