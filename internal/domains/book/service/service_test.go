package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/book/service"
	ratingmodel "bookshelves-backend/internal/domains/rating/model"
)

// MockBookRepository is a mock implementation of repository.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) SearchByPhrase(ctx context.Context, phrase string) ([]*model.Book, error) {
	args := m.Called(ctx, phrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Book), args.Error(1)
}

func (m *MockBookRepository) ListByAuthor(ctx context.Context, author string) ([]*model.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Book), args.Error(1)
}

func (m *MockBookRepository) TopByGenre(ctx context.Context, genre string, limit int) ([]*model.Book, error) {
	args := m.Called(ctx, genre, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Book), args.Error(1)
}

// MockRatingRepository is a mock implementation of repository.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *ratingmodel.Rating, book *model.Book) error {
	args := m.Called(ctx, rating, book)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id uuid.UUID) (*ratingmodel.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratingmodel.Rating), args.Error(1)
}

func (m *MockRatingRepository) ExistsByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *ratingmodel.Rating, book *model.Book) error {
	args := m.Called(ctx, rating, book)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id uuid.UUID, book *model.Book) error {
	args := m.Called(ctx, id, book)
	return args.Error(0)
}

func (m *MockRatingRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*ratingmodel.RatingWithOwner, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ratingmodel.RatingWithOwner), args.Error(1)
}

func (m *MockRatingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ratingmodel.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ratingmodel.Rating), args.Error(1)
}

// fakeCache is an in-memory cache.Cache for exercising the leaderboard
// caching path without Redis.
type fakeCache struct {
	values map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := f.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = data
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func TestAddBook_StartsWithZeroScoreState(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := service.NewBookService(bookRepo, new(MockRatingRepository), nil)

	bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil).Once()

	book, err := svc.AddBook(context.Background(), model.CreateBookRequest{
		Title:     "The Left Hand of Darkness",
		Author:    "Ursula K. Le Guin",
		Publisher: "Ace Books",
		Genre:     "Science Fiction",
		Pages:     304,
		Year:      1969,
	})

	assert.NoError(t, err)
	assert.Zero(t, book.AverageScore)
	assert.Zero(t, book.ScoreCount)
	assert.Zero(t, book.ScoreSum)
	bookRepo.AssertExpectations(t)
}

func TestUpdateBook_LeavesAggregateAlone(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := service.NewBookService(bookRepo, new(MockRatingRepository), nil)

	bookID := uuid.New()
	book := &model.Book{
		ID: bookID, Title: "Old title", Author: "Someone", Genre: "Fantasy",
		AverageScore: 8.5, ScoreCount: 4, ScoreSum: 34,
	}

	bookRepo.On("GetByID", mock.Anything, bookID).Return(book, nil).Once()
	bookRepo.On("Update", mock.Anything, book).Return(nil).Once()

	got, err := svc.UpdateBook(context.Background(), bookID, model.UpdateBookRequest{
		Title:     "New title",
		Author:    "Someone",
		Publisher: "Press",
		Genre:     "Fantasy",
		Pages:     200,
		Year:      2001,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	// Editorial edits never move the score state
	assert.InDelta(t, 8.5, got.AverageScore, 1e-9)
	assert.Equal(t, 4, got.ScoreCount)
	assert.Equal(t, 34, got.ScoreSum)
}

func TestSearchBooks(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := service.NewBookService(bookRepo, new(MockRatingRepository), nil)

	// Blank phrase is rejected
	_, err := svc.SearchBooks(context.Background(), "  ")
	var bookErr *model.BookError
	assert.ErrorAs(t, err, &bookErr)
	assert.Equal(t, model.ErrCodeInvalidRequest, bookErr.Code)

	// No match is not-found
	bookRepo.On("SearchByPhrase", mock.Anything, "ghost").Return([]*model.Book{}, nil).Once()
	_, err = svc.SearchBooks(context.Background(), "ghost")
	assert.ErrorAs(t, err, &bookErr)
	assert.Equal(t, model.ErrCodeNoResults, bookErr.Code)

	// Matches come back as summaries
	books := []*model.Book{
		{ID: uuid.New(), Title: "Dune", Author: "Frank Herbert", AverageScore: 8.4},
	}
	bookRepo.On("SearchByPhrase", mock.Anything, "dune").Return(books, nil).Once()

	summaries, err := svc.SearchBooks(context.Background(), "dune")
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, "Dune", summaries[0].Title)
}

func TestTopOfGenre_CachesLeaderboard(t *testing.T) {
	bookRepo := new(MockBookRepository)
	cache := newFakeCache()
	svc := service.NewBookService(bookRepo, new(MockRatingRepository), cache)

	books := []*model.Book{
		{ID: uuid.New(), Title: "A", Genre: "Fantasy", AverageScore: 9.1},
		{ID: uuid.New(), Title: "B", Genre: "Fantasy", AverageScore: 8.7},
	}
	// Repository hit once; the second call is served from cache
	bookRepo.On("TopByGenre", mock.Anything, "Fantasy", 10).Return(books, nil).Once()

	first, err := svc.TopOfGenre(context.Background(), "Fantasy")
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.TopOfGenre(context.Background(), "Fantasy")
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	bookRepo.AssertExpectations(t)
}

func TestBookRatings_RedactsPrivateOwners(t *testing.T) {
	bookRepo := new(MockBookRepository)
	ratingRepo := new(MockRatingRepository)
	svc := service.NewBookService(bookRepo, ratingRepo, nil)

	callerID := uuid.New()
	bookID := uuid.New()
	privateOwner := uuid.New()

	ratings := []*ratingmodel.RatingWithOwner{
		{
			Rating:        ratingmodel.Rating{ID: uuid.New(), Score: 9, UserID: uuid.New(), BookID: bookID},
			OwnerUsername: "public_reader",
			OwnerPrivate:  false,
		},
		{
			Rating:        ratingmodel.Rating{ID: uuid.New(), Score: 3, UserID: privateOwner, BookID: bookID},
			OwnerUsername: "private_reader",
			OwnerPrivate:  true,
		},
		{
			Rating:        ratingmodel.Rating{ID: uuid.New(), Score: 7, UserID: callerID, BookID: bookID},
			OwnerUsername: "caller",
			OwnerPrivate:  true,
		},
	}

	bookRepo.On("ExistsByID", mock.Anything, bookID).Return(true, nil).Once()
	ratingRepo.On("ListByBook", mock.Anything, bookID).Return(ratings, nil).Once()

	got, err := svc.BookRatings(context.Background(), callerID, bookID)

	assert.NoError(t, err)
	assert.Len(t, got, 3)

	// Public owner stays visible
	assert.NotNil(t, got[0].Owner)
	assert.Equal(t, "public_reader", got[0].Owner.Username)

	// Private stranger is redacted but the content stays
	assert.Nil(t, got[1].Owner)
	assert.Equal(t, 3, got[1].Score)

	// The caller always sees themselves, private or not
	assert.NotNil(t, got[2].Owner)
	assert.Equal(t, "caller", got[2].Owner.Username)
}

func TestBookRatings_BookMissing(t *testing.T) {
	bookRepo := new(MockBookRepository)
	svc := service.NewBookService(bookRepo, new(MockRatingRepository), nil)

	bookID := uuid.New()
	bookRepo.On("ExistsByID", mock.Anything, bookID).Return(false, nil).Once()

	_, err := svc.BookRatings(context.Background(), uuid.New(), bookID)

	var bookErr *model.BookError
	assert.ErrorAs(t, err, &bookErr)
	assert.Equal(t, model.ErrCodeBookNotFound, bookErr.Code)
}
