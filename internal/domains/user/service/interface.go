package service

import (
	"context"

	"github.com/google/uuid"

	ratingmodel "bookshelves-backend/internal/domains/rating/model"
	shelfmodel "bookshelves-backend/internal/domains/shelf/model"
	"bookshelves-backend/internal/domains/user/model"
)

// ServiceInterface covers accounts, authentication and the user-scoped
// views. Profile identity (id, username) is always public; shelves, the
// library and the ratings collection of a private profile are visible to the
// owner only.
type ServiceInterface interface {
	// Register creates an account together with its two permanent shelves.
	Register(ctx context.Context, req model.RegisterRequest) (model.Profile, error)

	// Login verifies credentials and issues a JWT pair.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// Refresh exchanges a valid refresh token for a fresh JWT pair.
	Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error)

	// GetAccount returns the caller's own account.
	GetAccount(ctx context.Context, callerID uuid.UUID) (*model.User, error)

	// GetProfile returns a user's public identity.
	GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error)

	// SearchUsers lists users whose username contains the phrase.
	SearchUsers(ctx context.Context, phrase string) ([]model.Profile, error)

	// ChangePassword replaces the caller's password after verifying the old
	// one and the repetition.
	ChangePassword(ctx context.Context, callerID uuid.UUID, req model.ChangePasswordRequest) error

	// TogglePrivacy flips the caller's private-profile flag.
	TogglePrivacy(ctx context.Context, callerID uuid.UUID) (*model.User, error)

	// DeleteUser removes an account; only the account's owner may do it.
	DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error

	// SetNowReading marks a book as the caller's current read.
	SetNowReading(ctx context.Context, callerID, bookID uuid.UUID) (*model.User, error)

	// ClearNowReading clears the caller's current read.
	ClearNowReading(ctx context.Context, callerID uuid.UUID) (*model.User, error)

	// GetLibrary lists a user's shelves, subject to profile visibility.
	GetLibrary(ctx context.Context, callerID, userID uuid.UUID) ([]*shelfmodel.Shelf, error)

	// UserRatings lists a user's ratings, subject to profile visibility.
	UserRatings(ctx context.Context, callerID, userID uuid.UUID) ([]ratingmodel.RatingResponse, error)
}
