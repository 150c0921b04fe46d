package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshelves-backend/internal/domains/shelf/model"
)

// ShelfRepository persists shelves and their book sets.
type ShelfRepository interface {
	// Create inserts a shelf. Returns ErrNameTaken on a per-owner,
	// case-insensitive name collision.
	Create(ctx context.Context, shelf *model.Shelf) error

	// GetByID gets a shelf with its book set.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Shelf, error)

	// Rename changes a shelf's name.
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// Delete removes a shelf and its book placements.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddBook places a book on a shelf. Returns ErrBookAlreadyOn when the
	// book is already present.
	AddBook(ctx context.Context, shelfID, bookID uuid.UUID) error

	// RemoveBook takes a book off a shelf. Returns ErrBookNotOnShelf when
	// the book is absent.
	RemoveBook(ctx context.Context, shelfID, bookID uuid.UUID) error

	// ListByOwner lists a user's shelves with their book sets.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Shelf, error)

	// NameExistsForOwner reports whether the owner already has a shelf with
	// this name, case-insensitive.
	NameExistsForOwner(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
}
