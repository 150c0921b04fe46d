package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateRatingRequest carries a new rating's content. A rating must include
// a score from 1 to 10 or a non-blank review, or both.
type CreateRatingRequest struct {
	Score  int    `json:"score"`
	Review string `json:"review"`
}

func (r CreateRatingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Score,
			validation.Min(0).Error("score must be between 0 and 10"),
			validation.Max(10).Error("score must be between 0 and 10"),
		),
		validation.Field(&r.Review,
			validation.By(func(interface{}) error {
				if r.Score == 0 && strings.TrimSpace(r.Review) == "" {
					return errors.New("rating must include a score or a review")
				}
				return nil
			}),
		),
	)
}

// UpdateRatingRequest carries the replacement content for an existing
// rating. The same validity rule applies as on create.
type UpdateRatingRequest struct {
	Score  int    `json:"score"`
	Review string `json:"review"`
}

func (r UpdateRatingRequest) Validate() error {
	return CreateRatingRequest(r).Validate()
}

// ========================================
// RESPONSE DTOs
// ========================================

// OwnerInfo identifies a rating's owner. It is omitted entirely when the
// owner's profile is private and the caller is someone else.
type OwnerInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// RatingResponse is the outward projection of a rating. Score and review
// stay visible even when the owner is redacted.
type RatingResponse struct {
	ID     uuid.UUID  `json:"id"`
	Score  int        `json:"score"`
	Review string     `json:"review"`
	Date   time.Time  `json:"date"`
	BookID uuid.UUID  `json:"book_id"`
	Owner  *OwnerInfo `json:"owner"`
}

// ResponseOf projects a rating, attaching the given owner (nil = redacted).
func ResponseOf(rating *Rating, owner *OwnerInfo) RatingResponse {
	return RatingResponse{
		ID:     rating.ID,
		Score:  rating.Score,
		Review: rating.Review,
		Date:   rating.Date,
		BookID: rating.BookID,
		Owner:  owner,
	}
}
