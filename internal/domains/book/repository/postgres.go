package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelves-backend/internal/domains/book/model"
)

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

const bookColumns = `
	id, title, author, publisher, genre, pages, publication_year,
	average_score, score_count, score_sum, created_at, updated_at
`

func scanBook(row pgx.Row) (*model.Book, error) {
	book := &model.Book{}
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Publisher,
		&book.Genre,
		&book.Pages,
		&book.Year,
		&book.AverageScore,
		&book.ScoreCount,
		&book.ScoreSum,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, publisher, genre, pages, publication_year,
			average_score, score_count, score_sum, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Publisher,
		book.Genre,
		book.Pages,
		book.Year,
		book.AverageScore,
		book.ScoreCount,
		book.ScoreSum,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *postgresBookRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books SET
			title = $2, author = $3, publisher = $4, genre = $5,
			pages = $6, publication_year = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Publisher,
		book.Genre,
		book.Pages,
		book.Year,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresBookRepository) SearchByPhrase(ctx context.Context, phrase string) ([]*model.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE (title || ' ' || author) ILIKE '%' || $1 || '%'
		ORDER BY title
	`

	return r.queryBooks(ctx, query, phrase)
}

func (r *postgresBookRepository) ListByAuthor(ctx context.Context, author string) ([]*model.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE author = $1
		ORDER BY publication_year DESC
	`

	return r.queryBooks(ctx, query, author)
}

func (r *postgresBookRepository) TopByGenre(ctx context.Context, genre string, limit int) ([]*model.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE genre = $1
		ORDER BY average_score DESC
		LIMIT $2
	`

	return r.queryBooks(ctx, query, genre, limit)
}

func (r *postgresBookRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]*model.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}
	return books, nil
}
