package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound    = "USER001"
	ErrCodeUsernameTaken   = "USER002"
	ErrCodeEmailTaken      = "USER003"
	ErrCodeWrongCredential = "USER004"
	ErrCodeAccessDenied    = "USER005"
	ErrCodePasswordRepeat  = "USER006"
	ErrCodeInvalidRequest  = "USER007"
)

// Errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmailTaken      = errors.New("email already taken")
	ErrWrongCredential = errors.New("wrong credentials")
	ErrAccessDenied    = errors.New("access denied")
	ErrPasswordRepeat  = errors.New("repeated password does not match")
	ErrInvalidRequest  = errors.New("invalid request")
)

// UserError carries a stable code for HTTP mapping.
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func NewUserNotFoundError(ref interface{}) *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: fmt.Sprintf("User %v does not exist", ref),
		Err:     ErrUserNotFound,
	}
}

func NewUsernameTakenError(username string) *UserError {
	return &UserError{
		Code:    ErrCodeUsernameTaken,
		Message: fmt.Sprintf("Username %q is already taken", username),
		Err:     ErrUsernameTaken,
	}
}

func NewEmailTakenError(email string) *UserError {
	return &UserError{
		Code:    ErrCodeEmailTaken,
		Message: fmt.Sprintf("Email %q is already registered", email),
		Err:     ErrEmailTaken,
	}
}

func NewWrongCredentialError() *UserError {
	return &UserError{
		Code:    ErrCodeWrongCredential,
		Message: "Invalid username or password",
		Err:     ErrWrongCredential,
	}
}

func NewAccessDeniedError() *UserError {
	return &UserError{
		Code:    ErrCodeAccessDenied,
		Message: "Access denied",
		Err:     ErrAccessDenied,
	}
}

func NewPasswordRepeatError() *UserError {
	return &UserError{
		Code:    ErrCodePasswordRepeat,
		Message: "New password and its repetition do not match",
		Err:     ErrPasswordRepeat,
	}
}

func NewInvalidRequestError(message string) *UserError {
	return &UserError{
		Code:    ErrCodeInvalidRequest,
		Message: message,
		Err:     ErrInvalidRequest,
	}
}
