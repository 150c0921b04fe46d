package repository

import (
	"context"

	"github.com/google/uuid"

	shelfmodel "bookshelves-backend/internal/domains/shelf/model"
	"bookshelves-backend/internal/domains/user/model"
)

// UserRepository persists users. Registration writes the user and its
// permanent shelves in one transaction.
type UserRepository interface {
	// CreateWithShelves inserts a user together with its starter shelves;
	// either everything commits or nothing does.
	CreateWithShelves(ctx context.Context, user *model.User, shelves []*shelfmodel.Shelf) error

	// GetByID gets a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername gets a user by exact username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// ExistsByUsername reports a case-insensitive username collision.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports a case-insensitive email collision.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update overwrites a user's mutable fields.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user; shelves and ratings cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// SearchByUsername lists users whose username contains the phrase,
	// case-insensitive.
	SearchByUsername(ctx context.Context, phrase string) ([]*model.User, error)
}
