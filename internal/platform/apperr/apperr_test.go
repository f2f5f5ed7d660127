// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Book"), apperr.CodeNotFound, http.StatusNotFound},
		{"validation", apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{"conflict", apperr.Conflict("twice"), apperr.CodeConflict, http.StatusConflict},
		{"backend", apperr.Backend(500, ""), apperr.CodeBackend, http.StatusBadGateway},
		{"unavailable", apperr.BackendUnavailable(errors.New("dial")), apperr.CodeBackendUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}

	assert.Equal(t, "Book not found", apperr.NotFound("Book").Message)
	assert.Equal(t, "Backend request failed with status 500", apperr.Backend(500, "").Message)
}

func TestAs_TraversesWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("load books: %w", apperr.BackendUnavailable(cause))

	appErr := apperr.As(wrapped)
	require.NotNil(t, appErr)
	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, apperr.CodeBackendUnavailable, apperr.CodeOf(wrapped))

	assert.Nil(t, apperr.As(cause))
	assert.Empty(t, apperr.CodeOf(cause))
}
