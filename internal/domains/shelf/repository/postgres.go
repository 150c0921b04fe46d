package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelves-backend/internal/domains/shelf/model"
)

const uniqueViolation = "23505"

type postgresShelfRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresShelfRepository(pool *pgxpool.Pool) ShelfRepository {
	return &postgresShelfRepository{pool: pool}
}

func (r *postgresShelfRepository) Create(ctx context.Context, shelf *model.Shelf) error {
	query := `
		INSERT INTO shelves (id, name, permanent, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		shelf.ID,
		shelf.Name,
		shelf.Permanent,
		shelf.OwnerID,
		shelf.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrNameTaken
		}
		return fmt.Errorf("failed to create shelf: %w", err)
	}
	return nil
}

func (r *postgresShelfRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shelf, error) {
	query := `
		SELECT id, name, permanent, owner_id, created_at
		FROM shelves
		WHERE id = $1
	`

	shelf := &model.Shelf{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&shelf.ID,
		&shelf.Name,
		&shelf.Permanent,
		&shelf.OwnerID,
		&shelf.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrShelfNotFound
		}
		return nil, fmt.Errorf("failed to get shelf: %w", err)
	}

	shelf.BookIDs, err = r.bookIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return shelf, nil
}

func (r *postgresShelfRepository) bookIDs(ctx context.Context, shelfID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT book_id FROM books_on_shelves WHERE shelf_id = $1 ORDER BY added_at`,
		shelfID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelf books: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan shelf book: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shelf books: %w", err)
	}
	return ids, nil
}

func (r *postgresShelfRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE shelves SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrNameTaken
		}
		return fmt.Errorf("failed to rename shelf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShelfNotFound
	}
	return nil
}

func (r *postgresShelfRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// books_on_shelves rows go with the shelf via ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, `DELETE FROM shelves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shelf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShelfNotFound
	}
	return nil
}

func (r *postgresShelfRepository) AddBook(ctx context.Context, shelfID, bookID uuid.UUID) error {
	query := `
		INSERT INTO books_on_shelves (shelf_id, book_id, added_at)
		VALUES ($1, $2, now())
	`

	_, err := r.pool.Exec(ctx, query, shelfID, bookID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrBookAlreadyOn
		}
		return fmt.Errorf("failed to add book to shelf: %w", err)
	}
	return nil
}

func (r *postgresShelfRepository) RemoveBook(ctx context.Context, shelfID, bookID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM books_on_shelves WHERE shelf_id = $1 AND book_id = $2`,
		shelfID, bookID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove book from shelf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotOnShelf
	}
	return nil
}

func (r *postgresShelfRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Shelf, error) {
	query := `
		SELECT id, name, permanent, owner_id, created_at
		FROM shelves
		WHERE owner_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelves: %w", err)
	}
	defer rows.Close()

	var shelves []*model.Shelf
	for rows.Next() {
		shelf := &model.Shelf{}
		err := rows.Scan(
			&shelf.ID,
			&shelf.Name,
			&shelf.Permanent,
			&shelf.OwnerID,
			&shelf.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shelf: %w", err)
		}
		shelves = append(shelves, shelf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shelves: %w", err)
	}

	for _, shelf := range shelves {
		shelf.BookIDs, err = r.bookIDs(ctx, shelf.ID)
		if err != nil {
			return nil, err
		}
	}
	return shelves, nil
}

func (r *postgresShelfRepository) NameExistsForOwner(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shelves WHERE owner_id = $1 AND lower(name) = lower($2))`,
		ownerID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check shelf name: %w", err)
	}
	return exists, nil
}
