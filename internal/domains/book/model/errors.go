package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound   = "BOOK001"
	ErrCodeInvalidRequest = "BOOK002"
	ErrCodeNoResults      = "BOOK003"
)

// Errors
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoResults      = errors.New("no books matched")
)

// BookError carries a stable code for HTTP mapping.
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

func NewBookNotFoundError(id interface{}) *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: fmt.Sprintf("Book %v does not exist", id),
		Err:     ErrBookNotFound,
	}
}

func NewInvalidRequestError(message string) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidRequest,
		Message: message,
		Err:     ErrInvalidRequest,
	}
}

func NewNoResultsError() *BookError {
	return &BookError{
		Code:    ErrCodeNoResults,
		Message: "No books matched the query",
		Err:     ErrNoResults,
	}
}
