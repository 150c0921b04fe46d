package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	bookrepo "bookshelves-backend/internal/domains/book/repository"
	"bookshelves-backend/internal/domains/rating/model"
	"bookshelves-backend/internal/domains/rating/repository"
	userrepo "bookshelves-backend/internal/domains/user/repository"
	"bookshelves-backend/pkg/cache"
)

type ratingService struct {
	ratingRepo repository.RatingRepository
	bookRepo   bookrepo.BookRepository
	userRepo   userrepo.UserRepository
	cache      cache.Cache
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	bookRepo bookrepo.BookRepository,
	userRepo userrepo.UserRepository,
	cacheClient cache.Cache,
) ServiceInterface {
	return &ratingService{
		ratingRepo: ratingRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		cache:      cacheClient,
	}
}

// =====================================================
// CREATE RATING
// =====================================================

func (s *ratingService) CreateRating(
	ctx context.Context,
	callerID, bookID uuid.UUID,
	req model.CreateRatingRequest,
) (*model.RatingResponse, error) {
	// Step 1: Validate request shape
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRatingError(err.Error())
	}

	// Step 2: One rating per (user, book)
	exists, err := s.ratingRepo.ExistsByUserAndBook(ctx, callerID, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing rating: %w", err)
	}
	if exists {
		return nil, model.NewAlreadyRatedError()
	}

	// Step 3: The target book must exist
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if err == bookmodel.ErrBookNotFound {
			return nil, bookmodel.NewBookNotFoundError(bookID)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	// Step 4: Build the rating
	rating := &model.Rating{
		ID:     uuid.New(),
		Score:  req.Score,
		Review: req.Review,
		Date:   time.Now(),
		UserID: callerID,
		BookID: bookID,
	}

	// Step 5: A non-zero score enters the book's aggregate; the book write
	// shares the rating's transaction
	var changedBook *bookmodel.Book
	if rating.Score != 0 {
		bookmodel.ApplyScoreChange(book, 0, rating.Score)
		changedBook = book
	}

	// Step 6: Persist
	if err := s.ratingRepo.Create(ctx, rating, changedBook); err != nil {
		if err == model.ErrAlreadyRated {
			return nil, model.NewAlreadyRatedError()
		}
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	s.invalidateGenreTop(ctx, changedBook)

	return s.respondAsOwner(ctx, callerID, rating)
}

// =====================================================
// SHOW RATING (with visibility)
// =====================================================

func (s *ratingService) ShowRating(
	ctx context.Context,
	callerID, ratingID uuid.UUID,
) (*model.RatingResponse, error) {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if err == model.ErrRatingNotFound {
			return nil, model.NewRatingNotFoundError(ratingID)
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	owner, err := s.userRepo.GetByID(ctx, rating.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating owner: %w", err)
	}

	// Private owners stay anonymous to everyone else; score and review
	// remain visible either way.
	var ownerInfo *model.OwnerInfo
	if !owner.PrivateProfile || callerID == owner.ID {
		ownerInfo = &model.OwnerInfo{ID: owner.ID, Username: owner.Username}
	}

	resp := model.ResponseOf(rating, ownerInfo)
	return &resp, nil
}

// =====================================================
// UPDATE RATING
// =====================================================

func (s *ratingService) UpdateRating(
	ctx context.Context,
	callerID, ratingID uuid.UUID,
	req model.UpdateRatingRequest,
) (*model.RatingResponse, error) {
	// Step 1: The rating must exist
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if err == model.ErrRatingNotFound {
			return nil, model.NewRatingNotFoundError(ratingID)
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	// Step 2: Only the owner edits
	if rating.UserID != callerID {
		return nil, model.NewNotOwnerError("edited")
	}

	// Step 3: Validate the replacement content
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRatingError(err.Error())
	}

	// Step 4: Move the score through the aggregate before overwriting it
	var changedBook *bookmodel.Book
	if rating.Score != req.Score {
		book, err := s.bookRepo.GetByID(ctx, rating.BookID)
		if err != nil {
			return nil, fmt.Errorf("failed to get book: %w", err)
		}
		bookmodel.ApplyScoreChange(book, rating.Score, req.Score)
		changedBook = book
	}

	rating.Score = req.Score
	rating.Review = req.Review
	rating.Date = time.Now()

	// Step 5: Persist
	if err := s.ratingRepo.Update(ctx, rating, changedBook); err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}

	s.invalidateGenreTop(ctx, changedBook)

	return s.respondAsOwner(ctx, callerID, rating)
}

// =====================================================
// DELETE RATING
// =====================================================

func (s *ratingService) DeleteRating(
	ctx context.Context,
	callerID, ratingID uuid.UUID,
) error {
	// Step 1: The rating must exist
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if err == model.ErrRatingNotFound {
			return model.NewRatingNotFoundError(ratingID)
		}
		return fmt.Errorf("failed to get rating: %w", err)
	}

	// Step 2: Only the owner deletes
	if rating.UserID != callerID {
		return model.NewNotOwnerError("deleted")
	}

	// Step 3: Withdraw a counted score from the aggregate
	var changedBook *bookmodel.Book
	if rating.Score != 0 {
		book, err := s.bookRepo.GetByID(ctx, rating.BookID)
		if err != nil {
			return fmt.Errorf("failed to get book: %w", err)
		}
		bookmodel.ApplyScoreChange(book, rating.Score, 0)
		changedBook = book
	}

	// Step 4: Persist
	if err := s.ratingRepo.Delete(ctx, rating.ID, changedBook); err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	s.invalidateGenreTop(ctx, changedBook)
	return nil
}

// =====================================================
// HELPERS
// =====================================================

// respondAsOwner builds the response for the rating's own creator; no
// redaction applies to oneself.
func (s *ratingService) respondAsOwner(ctx context.Context, callerID uuid.UUID, rating *model.Rating) (*model.RatingResponse, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get caller: %w", err)
	}

	resp := model.ResponseOf(rating, &model.OwnerInfo{ID: caller.ID, Username: caller.Username})
	return &resp, nil
}

// invalidateGenreTop drops the cached genre leaderboard after an aggregate
// change. A cache error never fails the operation.
func (s *ratingService) invalidateGenreTop(ctx context.Context, book *bookmodel.Book) {
	if book == nil || s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, "books:top:"+book.Genre)
}
