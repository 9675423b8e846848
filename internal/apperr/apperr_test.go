package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/notify"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"invalid input", fmt.Errorf("diagnosis.Classify: %w", diagnosis.ErrInvalidInput), "INVALID_INPUT", http.StatusBadRequest},
		{"bad notification", fmt.Errorf("x: %w", notify.ErrInvalid), "BAD_REQUEST", http.StatusBadRequest},
		{"canceled", context.Canceled, "REQUEST_CANCELED", http.StatusRequestTimeout},
		{"deadline", context.DeadlineExceeded, "REQUEST_TIMEOUT", http.StatusGatewayTimeout},
		{"app error passthrough", ErrActionNotFound, "ACTION_NOT_FOUND", http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("ctx: %w", ErrRateLimited), "RATE_LIMIT_EXCEEDED", http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), "UNKNOWN_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.StatusCode)
		})
	}
}

func TestFromErrorKeepsCause(t *testing.T) {
	got := FromError(fmt.Errorf("decode: %w", diagnosis.ErrInvalidInput))
	assert.ErrorIs(t, got, diagnosis.ErrInvalidInput)
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	e := ErrNotFound.WithDetails(map[string]any{"key": "saude"})
	assert.Equal(t, "saude", e.Details["key"])
	assert.Empty(t, ErrNotFound.Details)
}

func TestParseValidationErrors(t *testing.T) {
	type body struct {
		Name string `validate:"required"`
		Kind string `validate:"oneof=info success"`
	}
	err := validator.New().Struct(body{Kind: "x"})
	require.Error(t, err)

	got := FromError(err)
	assert.Equal(t, "VALIDATION_ERROR", got.Code)
	fields, ok := got.Details["fields"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "Name", fields[0]["field"])
	assert.Equal(t, "Campo obrigatório", fields[0]["message"])
	assert.Contains(t, fields[1]["message"], "info success")
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: Recurso não encontrado", ErrNotFound.Error())
	assert.Contains(t, ErrNotFound.WithError(errors.New("x")).Error(), "- x")
}
