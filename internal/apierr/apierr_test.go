package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad request", BadRequest("field name is required"), http.StatusBadRequest},
		{"not found", NotFound("invalid id parameter"), http.StatusNotFound},
		{"method not allowed", MethodNotAllowed(), http.StatusMethodNotAllowed},
		{"internal", Internal(errors.New("disk full")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("bind: %w", BadRequest("invalid request body")), http.StatusBadRequest},
		{"plain error", errors.New("connection refused"), http.StatusInternalServerError},
		{"missing status", &Error{Err: errors.New("?")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusOf(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal(cause)
	assert.Equal(t, "disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "api error (418)", New(http.StatusTeapot, nil).Error())

	var nilErr *Error
	assert.Equal(t, "", nilErr.Error())
}
