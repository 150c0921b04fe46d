package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	bookrepo "bookshelves-backend/internal/domains/book/repository"
	ratingmodel "bookshelves-backend/internal/domains/rating/model"
	ratingrepo "bookshelves-backend/internal/domains/rating/repository"
	shelfmodel "bookshelves-backend/internal/domains/shelf/model"
	shelfrepo "bookshelves-backend/internal/domains/shelf/repository"
	"bookshelves-backend/internal/domains/user/model"
	"bookshelves-backend/internal/domains/user/repository"
	"bookshelves-backend/pkg/jwt"
	"bookshelves-backend/pkg/logger"
)

const bcryptCost = 12

type userService struct {
	userRepo   repository.UserRepository
	shelfRepo  shelfrepo.ShelfRepository
	bookRepo   bookrepo.BookRepository
	ratingRepo ratingrepo.RatingRepository
	jwtManager *jwt.Manager
}

func NewUserService(
	userRepo repository.UserRepository,
	shelfRepo shelfrepo.ShelfRepository,
	bookRepo bookrepo.BookRepository,
	ratingRepo ratingrepo.RatingRepository,
	jwtManager *jwt.Manager,
) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		shelfRepo:  shelfRepo,
		bookRepo:   bookRepo,
		ratingRepo: ratingRepo,
		jwtManager: jwtManager,
	}
}

// =====================================================
// REGISTRATION & AUTH
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (model.Profile, error) {
	// Step 1: Validate request shape
	if err := req.Validate(); err != nil {
		return model.Profile{}, model.NewInvalidRequestError(err.Error())
	}

	// Step 2: Username and email are unique, case-insensitive
	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return model.Profile{}, model.NewUsernameTakenError(req.Username)
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return model.Profile{}, model.NewEmailTakenError(req.Email)
	}

	// Step 3: Hash the password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 4: Create the user together with its permanent shelves
	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.CreateWithShelves(ctx, user, shelfmodel.PermanentShelves(user.ID, now)); err != nil {
		if err == model.ErrUsernameTaken {
			return model.Profile{}, model.NewUsernameTakenError(req.Username)
		}
		return model.Profile{}, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user registered", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return model.ProfileOf(user), nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err.Error())
	}

	// An unknown username and a wrong password look identical to the caller
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewWrongCredentialError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewWrongCredentialError()
	}

	return s.issueTokens(user)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.NewWrongCredentialError()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.NewWrongCredentialError()
	}

	// The account may have been deleted since the token was issued
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewWrongCredentialError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issueTokens(user)
}

func (s *userService) issueTokens(user *model.User) (*model.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessExpiry()),
		User:         model.ProfileOf(user),
	}, nil
}

// =====================================================
// ACCOUNT
// =====================================================

func (s *userService) GetAccount(ctx context.Context, callerID uuid.UUID) (*model.User, error) {
	return s.getUser(ctx, callerID)
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	return model.ProfileOf(user), nil
}

func (s *userService) SearchUsers(ctx context.Context, phrase string) ([]model.Profile, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, model.NewInvalidRequestError("search phrase must not be blank")
	}

	users, err := s.userRepo.SearchByUsername(ctx, phrase)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	if len(users) == 0 {
		return nil, model.NewUserNotFoundError(phrase)
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, model.ProfileOf(user))
	}
	return profiles, nil
}

func (s *userService) ChangePassword(ctx context.Context, callerID uuid.UUID, req model.ChangePasswordRequest) error {
	// Step 1: Validate request shape
	if err := req.Validate(); err != nil {
		return model.NewInvalidRequestError(err.Error())
	}
	if req.NewPassword != req.RepeatNewPassword {
		return model.NewPasswordRepeatError()
	}

	// Step 2: Verify the old password
	user, err := s.getUser(ctx, callerID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return model.NewWrongCredentialError()
	}

	// Step 3: Persist the new hash
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *userService) TogglePrivacy(ctx context.Context, callerID uuid.UUID) (*model.User, error) {
	user, err := s.getUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user.PrivateProfile = !user.PrivateProfile
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error {
	// Accounts can only be deleted by their owner
	if callerID != userID {
		return model.NewAccessDeniedError()
	}

	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}

	// Shelves and ratings cascade away with the user
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Info("user deleted", map[string]interface{}{"user_id": userID})
	return nil
}

// =====================================================
// NOW READING
// =====================================================

func (s *userService) SetNowReading(ctx context.Context, callerID, bookID uuid.UUID) (*model.User, error) {
	user, err := s.getUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	exists, err := s.bookRepo.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check book existence: %w", err)
	}
	if !exists {
		return nil, bookmodel.NewBookNotFoundError(bookID)
	}

	user.NowReading = &bookID
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) ClearNowReading(ctx context.Context, callerID uuid.UUID) (*model.User, error) {
	user, err := s.getUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user.NowReading = nil
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// =====================================================
// USER-SCOPED VIEWS (with visibility)
// =====================================================

func (s *userService) GetLibrary(ctx context.Context, callerID, userID uuid.UUID) ([]*shelfmodel.Shelf, error) {
	owner, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner.PrivateProfile && callerID != owner.ID {
		return nil, model.NewAccessDeniedError()
	}

	shelves, err := s.shelfRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelves: %w", err)
	}
	return shelves, nil
}

func (s *userService) UserRatings(ctx context.Context, callerID, userID uuid.UUID) ([]ratingmodel.RatingResponse, error) {
	owner, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner.PrivateProfile && callerID != owner.ID {
		return nil, model.NewAccessDeniedError()
	}

	ratings, err := s.ratingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	// The owner is never redacted here: whoever got this far may see them
	ownerInfo := &ratingmodel.OwnerInfo{ID: owner.ID, Username: owner.Username}
	responses := make([]ratingmodel.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, ratingmodel.ResponseOf(rating, ownerInfo))
	}
	return responses, nil
}

func (s *userService) getUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewUserNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
