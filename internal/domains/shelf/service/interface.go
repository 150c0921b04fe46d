package service

import (
	"context"

	"github.com/google/uuid"

	"bookshelves-backend/internal/domains/shelf/model"
)

// ServiceInterface is the shelf access and integrity manager. Every
// operation takes the caller's identity explicitly; ownership is decided by
// id equality.
type ServiceInterface interface {
	// CreateOwnShelf creates a non-permanent shelf for the caller. Shelf
	// names are unique per owner, case-insensitive.
	CreateOwnShelf(ctx context.Context, callerID uuid.UUID, req model.CreateShelfRequest) (*model.Shelf, error)

	// ShowShelf returns a shelf. A private owner's shelf is visible to the
	// owner only.
	ShowShelf(ctx context.Context, callerID, shelfID uuid.UUID) (*model.Shelf, error)

	// AddBookToShelf places a book on the caller's shelf; each book appears
	// at most once.
	AddBookToShelf(ctx context.Context, callerID, shelfID, bookID uuid.UUID) (*model.Shelf, error)

	// RemoveBookFromShelf takes a book off the caller's shelf.
	RemoveBookFromShelf(ctx context.Context, callerID, shelfID, bookID uuid.UUID) (*model.Shelf, error)

	// RenameShelf renames the caller's shelf. Permanent shelves cannot be
	// renamed.
	RenameShelf(ctx context.Context, callerID, shelfID uuid.UUID, req model.RenameShelfRequest) (*model.Shelf, error)

	// DeleteShelf removes the caller's shelf. Permanent shelves cannot be
	// deleted.
	DeleteShelf(ctx context.Context, callerID, shelfID uuid.UUID) error
}
