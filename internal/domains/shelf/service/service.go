package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	bookrepo "bookshelves-backend/internal/domains/book/repository"
	"bookshelves-backend/internal/domains/shelf/model"
	"bookshelves-backend/internal/domains/shelf/repository"
	userrepo "bookshelves-backend/internal/domains/user/repository"
)

type shelfService struct {
	shelfRepo repository.ShelfRepository
	bookRepo  bookrepo.BookRepository
	userRepo  userrepo.UserRepository
}

func NewShelfService(
	shelfRepo repository.ShelfRepository,
	bookRepo bookrepo.BookRepository,
	userRepo userrepo.UserRepository,
) ServiceInterface {
	return &shelfService{
		shelfRepo: shelfRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *shelfService) CreateOwnShelf(
	ctx context.Context,
	callerID uuid.UUID,
	req model.CreateShelfRequest,
) (*model.Shelf, error) {
	// Step 1: Validate request shape
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err.Error())
	}

	// Step 2: Names are unique per owner, permanent shelves included
	taken, err := s.shelfRepo.NameExistsForOwner(ctx, callerID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check shelf name: %w", err)
	}
	if taken {
		return nil, model.NewNameTakenError(req.Name)
	}

	// Step 3: Persist a non-permanent shelf owned by the caller
	shelf := &model.Shelf{
		ID:        uuid.New(),
		Name:      req.Name,
		Permanent: false,
		OwnerID:   callerID,
		CreatedAt: time.Now(),
	}

	if err := s.shelfRepo.Create(ctx, shelf); err != nil {
		if err == model.ErrNameTaken {
			return nil, model.NewNameTakenError(req.Name)
		}
		return nil, fmt.Errorf("failed to create shelf: %w", err)
	}
	return shelf, nil
}

// =====================================================
// SHOW (with visibility)
// =====================================================

func (s *shelfService) ShowShelf(ctx context.Context, callerID, shelfID uuid.UUID) (*model.Shelf, error) {
	shelf, err := s.getShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}

	// Shelf visibility is all-or-nothing: a private owner's shelf is denied
	// outright to everyone else
	owner, err := s.userRepo.GetByID(ctx, shelf.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shelf owner: %w", err)
	}
	if owner.PrivateProfile && callerID != owner.ID {
		return nil, model.NewPrivateShelfError()
	}
	return shelf, nil
}

// =====================================================
// BOOK PLACEMENT
// =====================================================

func (s *shelfService) AddBookToShelf(ctx context.Context, callerID, shelfID, bookID uuid.UUID) (*model.Shelf, error) {
	// Step 1: The shelf must exist and belong to the caller
	shelf, err := s.getShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if shelf.OwnerID != callerID {
		return nil, model.NewNotOwnerError()
	}

	// Step 2: The book must exist
	exists, err := s.bookRepo.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check book existence: %w", err)
	}
	if !exists {
		return nil, bookmodel.NewBookNotFoundError(bookID)
	}

	// Step 3: Each book appears on a shelf at most once
	if shelf.ContainsBook(bookID) {
		return nil, model.NewBookAlreadyOnShelfError()
	}

	// Step 4: Persist
	if err := s.shelfRepo.AddBook(ctx, shelfID, bookID); err != nil {
		if err == model.ErrBookAlreadyOn {
			return nil, model.NewBookAlreadyOnShelfError()
		}
		return nil, fmt.Errorf("failed to add book to shelf: %w", err)
	}

	shelf.BookIDs = append(shelf.BookIDs, bookID)
	return shelf, nil
}

func (s *shelfService) RemoveBookFromShelf(ctx context.Context, callerID, shelfID, bookID uuid.UUID) (*model.Shelf, error) {
	// Step 1: The shelf must exist and belong to the caller
	shelf, err := s.getShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if shelf.OwnerID != callerID {
		return nil, model.NewNotOwnerError()
	}

	// Step 2: Removing an absent book is not-found, unlike the duplicate
	// add which is a bad request
	if !shelf.ContainsBook(bookID) {
		return nil, model.NewBookNotOnShelfError()
	}

	// Step 3: Persist
	if err := s.shelfRepo.RemoveBook(ctx, shelfID, bookID); err != nil {
		if err == model.ErrBookNotOnShelf {
			return nil, model.NewBookNotOnShelfError()
		}
		return nil, fmt.Errorf("failed to remove book from shelf: %w", err)
	}

	kept := shelf.BookIDs[:0]
	for _, id := range shelf.BookIDs {
		if id != bookID {
			kept = append(kept, id)
		}
	}
	shelf.BookIDs = kept
	return shelf, nil
}

// =====================================================
// RENAME / DELETE
// =====================================================

func (s *shelfService) RenameShelf(
	ctx context.Context,
	callerID, shelfID uuid.UUID,
	req model.RenameShelfRequest,
) (*model.Shelf, error) {
	// Step 1: The shelf must exist and belong to the caller
	shelf, err := s.getShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if shelf.OwnerID != callerID {
		return nil, model.NewNotOwnerError()
	}

	// Step 2: Permanent shelves keep their name forever
	if shelf.Permanent {
		return nil, model.NewPermanentShelfError("rename")
	}

	// Step 3: Validate the new name
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err.Error())
	}

	taken, err := s.shelfRepo.NameExistsForOwner(ctx, callerID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check shelf name: %w", err)
	}
	if taken {
		return nil, model.NewNameTakenError(req.Name)
	}

	// Step 4: Persist
	if err := s.shelfRepo.Rename(ctx, shelfID, req.Name); err != nil {
		if err == model.ErrNameTaken {
			return nil, model.NewNameTakenError(req.Name)
		}
		return nil, fmt.Errorf("failed to rename shelf: %w", err)
	}

	shelf.Name = req.Name
	return shelf, nil
}

func (s *shelfService) DeleteShelf(ctx context.Context, callerID, shelfID uuid.UUID) error {
	// Step 1: The shelf must exist and belong to the caller
	shelf, err := s.getShelf(ctx, shelfID)
	if err != nil {
		return err
	}
	if shelf.OwnerID != callerID {
		return model.NewNotOwnerError()
	}

	// Step 2: Permanent shelves cannot be deleted
	if shelf.Permanent {
		return model.NewPermanentShelfError("delete")
	}

	// Step 3: Persist
	if err := s.shelfRepo.Delete(ctx, shelfID); err != nil {
		return fmt.Errorf("failed to delete shelf: %w", err)
	}
	return nil
}

func (s *shelfService) getShelf(ctx context.Context, shelfID uuid.UUID) (*model.Shelf, error) {
	shelf, err := s.shelfRepo.GetByID(ctx, shelfID)
	if err != nil {
		if err == model.ErrShelfNotFound {
			return nil, model.NewShelfNotFoundError(shelfID)
		}
		return nil, fmt.Errorf("failed to get shelf: %w", err)
	}
	return shelf, nil
}
