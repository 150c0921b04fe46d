package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeShelfNotFound    = "SHELF001"
	ErrCodeNotOwner         = "SHELF002"
	ErrCodePermanentShelf   = "SHELF003"
	ErrCodeNameTaken        = "SHELF004"
	ErrCodeBookAlreadyShelf = "SHELF005"
	ErrCodeBookNotOnShelf   = "SHELF006"
	ErrCodeInvalidRequest   = "SHELF007"
	ErrCodePrivateShelf     = "SHELF008"
)

// Errors
var (
	ErrShelfNotFound  = errors.New("shelf not found")
	ErrNotOwner       = errors.New("not the shelf's owner")
	ErrPermanentShelf = errors.New("shelf is permanent")
	ErrNameTaken      = errors.New("shelf name already taken")
	ErrBookAlreadyOn  = errors.New("book already on shelf")
	ErrBookNotOnShelf = errors.New("book not on shelf")
	ErrInvalidRequest = errors.New("invalid request")
	ErrPrivateShelf   = errors.New("shelf belongs to a private profile")
)

// ShelfError carries a stable code for HTTP mapping.
type ShelfError struct {
	Code    string
	Message string
	Err     error
}

func (e *ShelfError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ShelfError) Unwrap() error {
	return e.Err
}

func NewShelfNotFoundError(id interface{}) *ShelfError {
	return &ShelfError{
		Code:    ErrCodeShelfNotFound,
		Message: fmt.Sprintf("Shelf %v does not exist", id),
		Err:     ErrShelfNotFound,
	}
}

func NewNotOwnerError() *ShelfError {
	return &ShelfError{
		Code:    ErrCodeNotOwner,
		Message: "A shelf can only be managed by its owner",
		Err:     ErrNotOwner,
	}
}

func NewPermanentShelfError(action string) *ShelfError {
	return &ShelfError{
		Code:    ErrCodePermanentShelf,
		Message: fmt.Sprintf("A permanent shelf cannot be %sd", action),
		Err:     ErrPermanentShelf,
	}
}

func NewNameTakenError(name string) *ShelfError {
	return &ShelfError{
		Code:    ErrCodeNameTaken,
		Message: fmt.Sprintf("You already have a shelf named %q", name),
		Err:     ErrNameTaken,
	}
}

func NewBookAlreadyOnShelfError() *ShelfError {
	return &ShelfError{
		Code:    ErrCodeBookAlreadyShelf,
		Message: "This book is already on the shelf",
		Err:     ErrBookAlreadyOn,
	}
}

func NewBookNotOnShelfError() *ShelfError {
	return &ShelfError{
		Code:    ErrCodeBookNotOnShelf,
		Message: "This book is not on the shelf",
		Err:     ErrBookNotOnShelf,
	}
}

func NewPrivateShelfError() *ShelfError {
	return &ShelfError{
		Code:    ErrCodePrivateShelf,
		Message: "This shelf belongs to a private profile",
		Err:     ErrPrivateShelf,
	}
}

func NewInvalidRequestError(message string) *ShelfError {
	return &ShelfError{
		Code:    ErrCodeInvalidRequest,
		Message: message,
		Err:     ErrInvalidRequest,
	}
}
