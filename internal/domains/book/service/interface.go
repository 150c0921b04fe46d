package service

import (
	"context"

	"github.com/google/uuid"

	"bookshelves-backend/internal/domains/book/model"
	ratingmodel "bookshelves-backend/internal/domains/rating/model"
)

// ServiceInterface manages the catalogue. Editorial updates never touch a
// book's aggregate score state.
type ServiceInterface interface {
	// AddBook inserts a catalogue entry with zero score state.
	AddBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)

	// GetBook gets a book by ID.
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// UpdateBook edits editorial fields.
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)

	// DeleteBook removes a book.
	DeleteBook(ctx context.Context, id uuid.UUID) error

	// SearchBooks matches a phrase against title and author.
	SearchBooks(ctx context.Context, phrase string) ([]model.BookSummary, error)

	// AuthorBooks lists an author's books, newest publication first.
	AuthorBooks(ctx context.Context, author string) ([]model.BookSummary, error)

	// TopOfGenre lists the ten highest-rated books of a genre.
	TopOfGenre(ctx context.Context, genre string) ([]model.BookSummary, error)

	// BookRatings lists a book's ratings; private owners are redacted for
	// everyone but themselves.
	BookRatings(ctx context.Context, callerID, bookID uuid.UUID) ([]ratingmodel.RatingResponse, error)
}
