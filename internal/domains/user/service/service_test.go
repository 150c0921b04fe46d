package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	ratingmodel "bookshelves-backend/internal/domains/rating/model"
	shelfmodel "bookshelves-backend/internal/domains/shelf/model"
	"bookshelves-backend/internal/domains/user/model"
	"bookshelves-backend/internal/domains/user/service"
	"bookshelves-backend/pkg/jwt"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithShelves(ctx context.Context, user *model.User, shelves []*shelfmodel.Shelf) error {
	args := m.Called(ctx, user, shelves)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) SearchByUsername(ctx context.Context, phrase string) ([]*model.User, error) {
	args := m.Called(ctx, phrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

// MockShelfRepository is a mock implementation of repository.ShelfRepository
type MockShelfRepository struct {
	mock.Mock
}

func (m *MockShelfRepository) Create(ctx context.Context, shelf *shelfmodel.Shelf) error {
	args := m.Called(ctx, shelf)
	return args.Error(0)
}

func (m *MockShelfRepository) GetByID(ctx context.Context, id uuid.UUID) (*shelfmodel.Shelf, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shelfmodel.Shelf), args.Error(1)
}

func (m *MockShelfRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockShelfRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShelfRepository) AddBook(ctx context.Context, shelfID, bookID uuid.UUID) error {
	args := m.Called(ctx, shelfID, bookID)
	return args.Error(0)
}

func (m *MockShelfRepository) RemoveBook(ctx context.Context, shelfID, bookID uuid.UUID) error {
	args := m.Called(ctx, shelfID, bookID)
	return args.Error(0)
}

func (m *MockShelfRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*shelfmodel.Shelf, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shelfmodel.Shelf), args.Error(1)
}

func (m *MockShelfRepository) NameExistsForOwner(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

// MockBookRepository is a mock implementation of repository.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *bookmodel.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookmodel.Book), args.Error(1)
}

func (m *MockBookRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *bookmodel.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) SearchByPhrase(ctx context.Context, phrase string) ([]*bookmodel.Book, error) {
	args := m.Called(ctx, phrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookmodel.Book), args.Error(1)
}

func (m *MockBookRepository) ListByAuthor(ctx context.Context, author string) ([]*bookmodel.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookmodel.Book), args.Error(1)
}

func (m *MockBookRepository) TopByGenre(ctx context.Context, genre string, limit int) ([]*bookmodel.Book, error) {
	args := m.Called(ctx, genre, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookmodel.Book), args.Error(1)
}

// MockRatingRepository is a mock implementation of repository.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *ratingmodel.Rating, book *bookmodel.Book) error {
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

func (m *MockRatingRepository) Update(ctx context.Context, rating *ratingmodel.Rating, book *bookmodel.Book) error {
	args := m.Called(ctx, rating, book)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id uuid.UUID, book *bookmodel.Book) error {
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

type testDeps struct {
	userRepo   *MockUserRepository
	shelfRepo  *MockShelfRepository
	bookRepo   *MockBookRepository
	ratingRepo *MockRatingRepository
}

func newTestService() (service.ServiceInterface, *testDeps) {
	deps := &testDeps{
		userRepo:   new(MockUserRepository),
		shelfRepo:  new(MockShelfRepository),
		bookRepo:   new(MockBookRepository),
		ratingRepo: new(MockRatingRepository),
	}
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	svc := service.NewUserService(deps.userRepo, deps.shelfRepo, deps.bookRepo, deps.ratingRepo, manager)
	return svc, deps
}

func TestRegister_CreatesPermanentShelves(t *testing.T) {
	svc, deps := newTestService()

	deps.userRepo.On("ExistsByUsername", mock.Anything, "ada").Return(false, nil).Once()
	deps.userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil).Once()

	var gotShelves []*shelfmodel.Shelf
	deps.userRepo.On("CreateWithShelves", mock.Anything, mock.AnythingOfType("*model.User"), mock.Anything).
		Run(func(args mock.Arguments) {
			gotShelves = args.Get(2).([]*shelfmodel.Shelf)
		}).
		Return(nil).Once()

	profile, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correcthorse",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ada", profile.Username)

	// Every account starts with exactly its two permanent shelves
	assert.Len(t, gotShelves, 2)
	assert.Equal(t, shelfmodel.PermanentShelfWantRead, gotShelves[0].Name)
	assert.Equal(t, shelfmodel.PermanentShelfHaveRead, gotShelves[1].Name)
	assert.True(t, gotShelves[0].Permanent)
	assert.True(t, gotShelves[1].Permanent)
	assert.Equal(t, profile.ID, gotShelves[0].OwnerID)

	deps.userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, deps := newTestService()

	deps.userRepo.On("ExistsByUsername", mock.Anything, "ada").Return(true, nil).Once()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correcthorse",
	})

	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeUsernameTaken, userErr.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, deps := newTestService()

	deps.userRepo.On("ExistsByUsername", mock.Anything, "ada").Return(false, nil).Once()
	deps.userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil).Once()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correcthorse",
	})

	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeEmailTaken, userErr.Code)
}

func TestLogin(t *testing.T) {
	svc, deps := newTestService()

	hash, err := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &model.User{ID: uuid.New(), Username: "ada", PasswordHash: string(hash)}
	deps.userRepo.On("GetByUsername", mock.Anything, "ada").Return(user, nil).Twice()

	// Right password issues a token pair
	tokens, err := svc.Login(context.Background(), model.LoginRequest{Username: "ada", Password: "correcthorse"})
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, user.ID, tokens.User.ID)

	// Wrong password fails like an unknown username
	_, err = svc.Login(context.Background(), model.LoginRequest{Username: "ada", Password: "wrong"})
	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeWrongCredential, userErr.Code)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc, deps := newTestService()

	deps.userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, model.ErrUserNotFound).Once()

	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "whatever"})

	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeWrongCredential, userErr.Code)
}

func TestChangePassword(t *testing.T) {
	svc, deps := newTestService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	userID := uuid.New()
	user := &model.User{ID: userID, Username: "ada", PasswordHash: string(hash)}

	deps.userRepo.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
	deps.userRepo.On("Update", mock.Anything, user).Return(nil).Once()

	err := svc.ChangePassword(context.Background(), userID, model.ChangePasswordRequest{
		OldPassword:       "oldpassword",
		NewPassword:       "newpassword",
		RepeatNewPassword: "newpassword",
	})

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
	deps.userRepo.AssertExpectations(t)
}

func TestChangePassword_RepeatMismatch(t *testing.T) {
	svc, _ := newTestService()

	err := svc.ChangePassword(context.Background(), uuid.New(), model.ChangePasswordRequest{
		OldPassword:       "oldpassword",
		NewPassword:       "newpassword",
		RepeatNewPassword: "different",
	})

	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodePasswordRepeat, userErr.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, deps := newTestService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	userID := uuid.New()
	user := &model.User{ID: userID, PasswordHash: string(hash)}
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(user, nil).Once()

	err := svc.ChangePassword(context.Background(), userID, model.ChangePasswordRequest{
		OldPassword:       "notit",
		NewPassword:       "newpassword",
		RepeatNewPassword: "newpassword",
	})

	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeWrongCredential, userErr.Code)
}

func TestTogglePrivacy(t *testing.T) {
	svc, deps := newTestService()

	userID := uuid.New()
	user := &model.User{ID: userID, Username: "ada"}
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
	deps.userRepo.On("Update", mock.Anything, user).Return(nil).Once()

	got, err := svc.TogglePrivacy(context.Background(), userID)

	assert.NoError(t, err)
	assert.True(t, got.PrivateProfile)
}

func TestDeleteUser_OnlySelf(t *testing.T) {
	svc, _ := newTestService()

	err := svc.DeleteUser(context.Background(), uuid.New(), uuid.New())

	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeAccessDenied, userErr.Code)
}

func TestDeleteUser(t *testing.T) {
	svc, deps := newTestService()

	userID := uuid.New()
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil).Once()
	deps.userRepo.On("Delete", mock.Anything, userID).Return(nil).Once()

	err := svc.DeleteUser(context.Background(), userID, userID)

	assert.NoError(t, err)
	deps.userRepo.AssertExpectations(t)
}

func TestSetNowReading_BookMissing(t *testing.T) {
	svc, deps := newTestService()

	userID := uuid.New()
	bookID := uuid.New()
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil).Once()
	deps.bookRepo.On("ExistsByID", mock.Anything, bookID).Return(false, nil).Once()

	_, err := svc.SetNowReading(context.Background(), userID, bookID)

	var bookErr *bookmodel.BookError
	assert.ErrorAs(t, err, &bookErr)
	assert.Equal(t, bookmodel.ErrCodeBookNotFound, bookErr.Code)
}

func TestSetNowReading(t *testing.T) {
	svc, deps := newTestService()

	userID := uuid.New()
	bookID := uuid.New()
	user := &model.User{ID: userID}
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
	deps.bookRepo.On("ExistsByID", mock.Anything, bookID).Return(true, nil).Once()
	deps.userRepo.On("Update", mock.Anything, user).Return(nil).Once()

	got, err := svc.SetNowReading(context.Background(), userID, bookID)

	assert.NoError(t, err)
	assert.NotNil(t, got.NowReading)
	assert.Equal(t, bookID, *got.NowReading)
}

func TestGetLibrary_PrivateProfile(t *testing.T) {
	svc, deps := newTestService()

	ownerID := uuid.New()
	owner := &model.User{ID: ownerID, Username: "ada", PrivateProfile: true}
	deps.userRepo.On("GetByID", mock.Anything, ownerID).Return(owner, nil).Twice()

	// A stranger is denied
	_, err := svc.GetLibrary(context.Background(), uuid.New(), ownerID)
	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeAccessDenied, userErr.Code)

	// The owner sees their own library
	shelves := []*shelfmodel.Shelf{
		{ID: uuid.New(), Name: shelfmodel.PermanentShelfWantRead, OwnerID: ownerID},
		{ID: uuid.New(), Name: shelfmodel.PermanentShelfHaveRead, OwnerID: ownerID},
	}
	deps.shelfRepo.On("ListByOwner", mock.Anything, ownerID).Return(shelves, nil).Once()

	got, err := svc.GetLibrary(context.Background(), ownerID, ownerID)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUserRatings_PrivateProfile(t *testing.T) {
	svc, deps := newTestService()

	ownerID := uuid.New()
	owner := &model.User{ID: ownerID, Username: "ada", PrivateProfile: true}
	deps.userRepo.On("GetByID", mock.Anything, ownerID).Return(owner, nil).Twice()

	// A stranger is denied
	_, err := svc.UserRatings(context.Background(), uuid.New(), ownerID)
	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeAccessDenied, userErr.Code)

	// The owner sees their ratings with themselves attached
	ratings := []*ratingmodel.Rating{
		{ID: uuid.New(), Score: 8, UserID: ownerID, BookID: uuid.New()},
	}
	deps.ratingRepo.On("ListByUser", mock.Anything, ownerID).Return(ratings, nil).Once()

	got, err := svc.UserRatings(context.Background(), ownerID, ownerID)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NotNil(t, got[0].Owner)
	assert.Equal(t, "ada", got[0].Owner.Username)
}

func TestUserRatings_EmptyListIsFine(t *testing.T) {
	svc, deps := newTestService()

	ownerID := uuid.New()
	owner := &model.User{ID: ownerID, Username: "ada"}
	deps.userRepo.On("GetByID", mock.Anything, ownerID).Return(owner, nil).Once()
	deps.ratingRepo.On("ListByUser", mock.Anything, ownerID).Return([]*ratingmodel.Rating{}, nil).Once()

	got, err := svc.UserRatings(context.Background(), uuid.New(), ownerID)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchUsers(t *testing.T) {
	svc, deps := newTestService()

	// Blank phrase is rejected before touching the repository
	_, err := svc.SearchUsers(context.Background(), "   ")
	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeInvalidRequest, userErr.Code)

	// No match is not-found
	deps.userRepo.On("SearchByUsername", mock.Anything, "ghost").Return([]*model.User{}, nil).Once()
	_, err = svc.SearchUsers(context.Background(), "ghost")
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeUserNotFound, userErr.Code)

	// Matches come back as public profiles
	users := []*model.User{
		{ID: uuid.New(), Username: "ada", Email: "ada@example.com"},
		{ID: uuid.New(), Username: "adamant"},
	}
	deps.userRepo.On("SearchByUsername", mock.Anything, "ada").Return(users, nil).Once()

	profiles, err := svc.SearchUsers(context.Background(), "ada")
	assert.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, "ada", profiles[0].Username)
}
