package repository

import (
	"context"

	"github.com/google/uuid"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/rating/model"
)

// RatingRepository persists ratings. The mutating methods optionally take
// the parent book whose aggregate score changed in the same operation; when
// book is non-nil the rating write and the book write happen in one
// transaction, so neither can commit without the other.
type RatingRepository interface {
	// Create inserts a rating, updating the book's aggregate alongside when
	// book is non-nil. Returns ErrAlreadyRated on a (user, book) duplicate.
	Create(ctx context.Context, rating *model.Rating, book *bookmodel.Book) error

	// GetByID gets a rating by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Rating, error)

	// ExistsByUserAndBook reports whether the user already rated the book.
	ExistsByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error)

	// Update overwrites a rating's content, updating the book's aggregate
	// alongside when book is non-nil.
	Update(ctx context.Context, rating *model.Rating, book *bookmodel.Book) error

	// Delete removes a rating, updating the book's aggregate alongside when
	// book is non-nil.
	Delete(ctx context.Context, id uuid.UUID, book *bookmodel.Book) error

	// ListByBook lists a book's ratings joined with owner visibility fields.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.RatingWithOwner, error)

	// ListByUser lists a user's ratings, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Rating, error)
}
