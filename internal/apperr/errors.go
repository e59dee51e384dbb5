package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTestNotFound       = errors.New("test not found or inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrAttemptNotFound    = errors.New("test attempt not found")
	ErrAlreadyAttempted   = errors.New("you have already attempted this test")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRegistered    = errors.New("email already exists")
	ErrTestCodeExists     = errors.New("test ID already exists")
	ErrForbidden          = errors.New("admin access required")
)

// FieldError ties a validation failure to the field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failed constraint so callers can report
// all of them at once instead of stopping at the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
