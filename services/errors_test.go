package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewDomainError(ErrorTypeNotFound, "camp not found", nil)
		assert.Equal(t, "not_found: camp not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("sql: no rows in result set")
		err := NewDomainError(ErrorTypeInternal, "database error", cause)
		assert.Contains(t, err.Error(), "database error")
		assert.Contains(t, err.Error(), "no rows")
	})
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDomainError(ErrorTypeInternal, "database error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestDomainError_Is(t *testing.T) {
	t.Run("matches same type and message", func(t *testing.T) {
		err := NewDomainError(ErrorTypeNotFound, "camp not found", errors.New("cause"))
		assert.ErrorIs(t, err, ErrCampNotFound)
	})

	t.Run("does not match different message", func(t *testing.T) {
		assert.NotErrorIs(t, ErrCampNotFound, ErrUserNotFound)
	})

	t.Run("does not match plain errors", func(t *testing.T) {
		assert.NotErrorIs(t, ErrCampNotFound, errors.New("camp not found"))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("%w: abc-123", ErrRegistrationNotFound)
		assert.ErrorIs(t, wrapped, ErrRegistrationNotFound)
	})
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorTypeValidation, "invalid input", nil).
		WithDetail("field", "email").
		WithDetail("reason", "malformed")

	assert.Equal(t, "email", err.Details["field"])
	assert.Equal(t, "malformed", err.Details["reason"])
}

func TestErrorTypeHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"not found", ErrCampNotFound, IsNotFoundError},
		{"validation", ErrInvalidInput, IsValidationError},
		{"unauthorized", ErrUnauthorized, IsUnauthorizedError},
		{"forbidden", ErrNotOrganizer, IsForbiddenError},
		{"conflict", ErrDuplicateRegistration, IsConflictError},
		{"internal", ErrDatabaseError, IsInternalError},
		{"external", ErrPaymentProvider, IsExternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.True(t, tt.checker(fmt.Errorf("%w: context", tt.err)))
			assert.False(t, tt.checker(errors.New("plain error")))
		})
	}
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeConflict, GetErrorType(ErrSelfRegistration))
	assert.Equal(t, ErrorTypeForbidden, GetErrorType(fmt.Errorf("%w: extra", ErrNotOwner)))
	assert.Equal(t, ErrorType(""), GetErrorType(errors.New("plain")))
}

func TestGetErrorDetails(t *testing.T) {
	err := NewDomainError(ErrorTypeValidation, "invalid input", nil).
		WithDetail("field", "age")

	details := GetErrorDetails(err)
	assert.Equal(t, "age", details["field"])
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}
