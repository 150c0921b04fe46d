package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single user's take on a single book. Score 0 means "no numeric
// score given"; such a rating must carry a review instead. At most one rating
// exists per (user, book) pair, enforced by a unique constraint.
type Rating struct {
	ID     uuid.UUID `json:"id"`
	Score  int       `json:"score"` // 0-10, 0 = no score
	Review string    `json:"review"`
	Date   time.Time `json:"date"`

	UserID uuid.UUID `json:"user_id"`
	BookID uuid.UUID `json:"book_id"`
}

// RatingWithOwner joins a rating with the owner fields the visibility policy
// needs.
type RatingWithOwner struct {
	Rating
	OwnerUsername string
	OwnerPrivate  bool
}
