package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeRatingNotFound = "RAT001"
	ErrCodeInvalidRating  = "RAT002"
	ErrCodeAlreadyRated   = "RAT003"
	ErrCodeNotOwner       = "RAT004"
)

// Errors
var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrInvalidRating  = errors.New("invalid rating")
	ErrAlreadyRated   = errors.New("already rated this book")
	ErrNotOwner       = errors.New("not the rating's owner")
)

// RatingError carries a stable code for HTTP mapping.
type RatingError struct {
	Code    string
	Message string
	Err     error
}

func (e *RatingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RatingError) Unwrap() error {
	return e.Err
}

func NewRatingNotFoundError(id interface{}) *RatingError {
	return &RatingError{
		Code:    ErrCodeRatingNotFound,
		Message: fmt.Sprintf("Rating %v does not exist", id),
		Err:     ErrRatingNotFound,
	}
}

func NewInvalidRatingError(message string) *RatingError {
	return &RatingError{
		Code:    ErrCodeInvalidRating,
		Message: message,
		Err:     ErrInvalidRating,
	}
}

func NewAlreadyRatedError() *RatingError {
	return &RatingError{
		Code:    ErrCodeAlreadyRated,
		Message: "You have already rated this book",
		Err:     ErrAlreadyRated,
	}
}

func NewNotOwnerError(action string) *RatingError {
	return &RatingError{
		Code:    ErrCodeNotOwner,
		Message: fmt.Sprintf("A rating can only be %s by its creator", action),
		Err:     ErrNotOwner,
	}
}
