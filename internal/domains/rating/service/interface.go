package service

import (
	"context"

	"github.com/google/uuid"

	"bookshelves-backend/internal/domains/rating/model"
)

// ServiceInterface is the rating lifecycle manager. Every operation takes
// the caller's identity explicitly; ownership is decided by id equality.
type ServiceInterface interface {
	// CreateRating creates the caller's rating for a book. A caller can rate
	// each book once.
	CreateRating(ctx context.Context, callerID, bookID uuid.UUID, req model.CreateRatingRequest) (*model.RatingResponse, error)

	// ShowRating returns a rating with the owner redacted when the owner's
	// profile is private and the caller is someone else.
	ShowRating(ctx context.Context, callerID, ratingID uuid.UUID) (*model.RatingResponse, error)

	// UpdateRating replaces the caller's rating content, adjusting the
	// book's aggregate when the score moves.
	UpdateRating(ctx context.Context, callerID, ratingID uuid.UUID, req model.UpdateRatingRequest) (*model.RatingResponse, error)

	// DeleteRating removes the caller's rating, withdrawing its score from
	// the book's aggregate.
	DeleteRating(ctx context.Context, callerID, ratingID uuid.UUID) error
}
