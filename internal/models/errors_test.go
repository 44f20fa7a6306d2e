package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("Question", 1), fiber.StatusNotFound},
		{"validation", NewValidationError("bad input"), fiber.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("login first"), fiber.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not yours"), fiber.StatusForbidden},
		{"conflict", NewConflictError("taken"), fiber.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("unknown"), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("context: %w", NewForbiddenError("not yours")), fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
