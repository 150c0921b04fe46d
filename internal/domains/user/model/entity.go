package model

import (
	"time"

	"github.com/google/uuid"
)

// User owns shelves and ratings. Username and email are globally unique,
// case-insensitive. The password hash never serializes outward.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	PrivateProfile bool       `json:"private_profile"`
	NowReading     *uuid.UUID `json:"now_reading"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
