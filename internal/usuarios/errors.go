package usuarios

import (
	"errors"
	"fmt"
)

// Error types for usuario operations

// Usuario error types
const (
	UsuarioErrorTypeNotFound         = "not_found"
	UsuarioErrorTypeEmailConflict    = "email_conflict"
	UsuarioErrorTypeValidationFailed = "validation_failed"
	UsuarioErrorTypeStorage          = "storage"
)

// UsuarioError represents errors raised by the usuario service
type UsuarioError struct {
	Type       string
	Message    string
	Violations []FieldError
	Cause      error
}

func (e *UsuarioError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("usuario error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("usuario error [%s]: %s", e.Type, e.Message)
}

func (e *UsuarioError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates an error for when a usuario has no active record
func NewNotFoundError(id string) *UsuarioError {
	return &UsuarioError{
		Type:    UsuarioErrorTypeNotFound,
		Message: fmt.Sprintf("Usuário com ID %s não encontrado.", id),
	}
}

// NewEmailConflictError creates an error for email uniqueness violations
func NewEmailConflictError(email string) *UsuarioError {
	return &UsuarioError{
		Type:    UsuarioErrorTypeEmailConflict,
		Message: fmt.Sprintf("Email %s já cadastrado.", email),
	}
}

// NewValidationError creates an error carrying the full set of field violations
func NewValidationError(violations []FieldError) *UsuarioError {
	return &UsuarioError{
		Type:       UsuarioErrorTypeValidationFailed,
		Message:    "validation failed",
		Violations: violations,
	}
}

// NewStorageError creates an error for persistence failures
func NewStorageError(operation string, cause error) *UsuarioError {
	return &UsuarioError{
		Type:    UsuarioErrorTypeStorage,
		Message: fmt.Sprintf("storage operation %s failed", operation),
		Cause:   cause,
	}
}

// IsNotFound reports whether err is a not-found usuario error
func IsNotFound(err error) bool {
	return hasType(err, UsuarioErrorTypeNotFound)
}

// IsEmailConflict reports whether err is an email conflict
func IsEmailConflict(err error) bool {
	return hasType(err, UsuarioErrorTypeEmailConflict)
}

// IsValidationFailed reports whether err carries field violations
func IsValidationFailed(err error) bool {
	return hasType(err, UsuarioErrorTypeValidationFailed)
}

func hasType(err error, errType string) bool {
	var ue *UsuarioError
	return errors.As(err, &ue) && ue.Type == errType
}
