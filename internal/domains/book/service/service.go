package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/book/repository"
	ratingmodel "bookshelves-backend/internal/domains/rating/model"
	ratingrepo "bookshelves-backend/internal/domains/rating/repository"
	"bookshelves-backend/pkg/cache"
	"bookshelves-backend/pkg/logger"
)

const (
	genreTopLimit    = 10
	genreTopCacheTTL = 5 * time.Minute
)

func genreTopKey(genre string) string {
	return "books:top:" + genre
}

type bookService struct {
	bookRepo   repository.BookRepository
	ratingRepo ratingrepo.RatingRepository
	cache      cache.Cache
}

func NewBookService(
	bookRepo repository.BookRepository,
	ratingRepo ratingrepo.RatingRepository,
	cacheClient cache.Cache,
) ServiceInterface {
	return &bookService{
		bookRepo:   bookRepo,
		ratingRepo: ratingRepo,
		cache:      cacheClient,
	}
}

// =====================================================
// CATALOGUE CRUD
// =====================================================

func (s *bookService) AddBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err.Error())
	}

	now := time.Now()
	book := &model.Book{
		ID:        uuid.New(),
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		Genre:     req.Genre,
		Pages:     req.Pages,
		Year:      req.Year,
		// Score state always starts at zero
		AverageScore: 0,
		ScoreCount:   0,
		ScoreSum:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	s.invalidateGenreTop(ctx, book.Genre)
	logger.Info("book added", map[string]interface{}{"book_id": book.ID, "title": book.Title})
	return book, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrBookNotFound {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err.Error())
	}

	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	oldGenre := book.Genre

	// Editorial fields only; the aggregate belongs to the score engine
	book.Title = req.Title
	book.Author = req.Author
	book.Publisher = req.Publisher
	book.Genre = req.Genre
	book.Pages = req.Pages
	book.Year = req.Year
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.invalidateGenreTop(ctx, oldGenre)
	if book.Genre != oldGenre {
		s.invalidateGenreTop(ctx, book.Genre)
	}
	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.invalidateGenreTop(ctx, book.Genre)
	return nil
}

// =====================================================
// SEARCH & LISTINGS
// =====================================================

func (s *bookService) SearchBooks(ctx context.Context, phrase string) ([]model.BookSummary, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, model.NewInvalidRequestError("search phrase must not be blank")
	}

	books, err := s.bookRepo.SearchByPhrase(ctx, phrase)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	if len(books) == 0 {
		return nil, model.NewNoResultsError()
	}

	return summarize(books), nil
}

func (s *bookService) AuthorBooks(ctx context.Context, author string) ([]model.BookSummary, error) {
	if strings.TrimSpace(author) == "" {
		return nil, model.NewInvalidRequestError("author must not be blank")
	}

	books, err := s.bookRepo.ListByAuthor(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("failed to list author's books: %w", err)
	}
	if len(books) == 0 {
		return nil, model.NewNoResultsError()
	}

	return summarize(books), nil
}

func (s *bookService) TopOfGenre(ctx context.Context, genre string) ([]model.BookSummary, error) {
	if strings.TrimSpace(genre) == "" {
		return nil, model.NewInvalidRequestError("genre must not be blank")
	}

	// Serve from cache when possible; the leaderboard tolerates short
	// staleness
	key := genreTopKey(genre)
	if s.cache != nil {
		var cached []model.BookSummary
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	books, err := s.bookRepo.TopByGenre(ctx, genre, genreTopLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top of genre: %w", err)
	}
	if len(books) == 0 {
		return nil, model.NewNoResultsError()
	}

	summaries := summarize(books)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summaries, genreTopCacheTTL); err != nil {
			logger.Error("failed to cache genre top", err)
		}
	}
	return summaries, nil
}

// =====================================================
// RATINGS LISTING (with visibility)
// =====================================================

func (s *bookService) BookRatings(ctx context.Context, callerID, bookID uuid.UUID) ([]ratingmodel.RatingResponse, error) {
	exists, err := s.bookRepo.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check book existence: %w", err)
	}
	if !exists {
		return nil, model.NewBookNotFoundError(bookID)
	}

	ratings, err := s.ratingRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list book ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, model.NewNoResultsError()
	}

	responses := make([]ratingmodel.RatingResponse, 0, len(ratings))
	for _, rw := range ratings {
		// Private owners stay anonymous to everyone but themselves
		var owner *ratingmodel.OwnerInfo
		if !rw.OwnerPrivate || rw.UserID == callerID {
			owner = &ratingmodel.OwnerInfo{ID: rw.UserID, Username: rw.OwnerUsername}
		}
		responses = append(responses, ratingmodel.ResponseOf(&rw.Rating, owner))
	}
	return responses, nil
}

func (s *bookService) invalidateGenreTop(ctx context.Context, genre string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, genreTopKey(genre))
}

func summarize(books []*model.Book) []model.BookSummary {
	summaries := make([]model.BookSummary, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, model.SummaryOf(book))
	}
	return summaries
}
