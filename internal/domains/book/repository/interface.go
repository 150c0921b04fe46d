package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshelves-backend/internal/domains/book/model"
)

// BookRepository is the persistence contract for the catalogue.
type BookRepository interface {
	// Create inserts a new book.
	Create(ctx context.Context, book *model.Book) error

	// GetByID gets a book by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// ExistsByID reports whether a book exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Update overwrites a book's editorial fields.
	Update(ctx context.Context, book *model.Book) error

	// Delete removes a book.
	Delete(ctx context.Context, id uuid.UUID) error

	// SearchByPhrase matches the phrase against "title author",
	// case-insensitive.
	SearchByPhrase(ctx context.Context, phrase string) ([]*model.Book, error)

	// ListByAuthor lists an author's books, newest publication first.
	ListByAuthor(ctx context.Context, author string) ([]*model.Book, error)

	// TopByGenre lists the highest-rated books of a genre.
	TopByGenre(ctx context.Context, genre string, limit int) ([]*model.Book, error)
}
