package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/rating/model"
	"bookshelves-backend/pkg/database"
)

const uniqueViolation = "23505"

type postgresRatingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRatingRepository(pool *pgxpool.Pool) RatingRepository {
	return &postgresRatingRepository{pool: pool}
}

// updateBookAggregate persists the score fields recomputed by the score
// engine. Runs inside the same transaction as the rating write.
func updateBookAggregate(ctx context.Context, tx pgx.Tx, book *bookmodel.Book) error {
	query := `
		UPDATE books SET
			average_score = $2, score_count = $3, score_sum = $4,
			updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, book.ID, book.AverageScore, book.ScoreCount, book.ScoreSum)
	if err != nil {
		return fmt.Errorf("failed to update book aggregate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bookmodel.ErrBookNotFound
	}
	return nil
}

func (r *postgresRatingRepository) Create(ctx context.Context, rating *model.Rating, book *bookmodel.Book) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO ratings (id, score, review, rating_date, owner_id, book_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		_, err := tx.Exec(ctx, query,
			rating.ID,
			rating.Score,
			rating.Review,
			rating.Date,
			rating.UserID,
			rating.BookID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return model.ErrAlreadyRated
			}
			return fmt.Errorf("failed to create rating: %w", err)
		}

		if book != nil {
			return updateBookAggregate(ctx, tx, book)
		}
		return nil
	})
}

func (r *postgresRatingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Rating, error) {
	query := `
		SELECT id, score, review, rating_date, owner_id, book_id
		FROM ratings
		WHERE id = $1
	`

	rating := &model.Rating{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rating.ID,
		&rating.Score,
		&rating.Review,
		&rating.Date,
		&rating.UserID,
		&rating.BookID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}

func (r *postgresRatingRepository) ExistsByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ratings WHERE owner_id = $1 AND book_id = $2)`,
		userID, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check rating existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRatingRepository) Update(ctx context.Context, rating *model.Rating, book *bookmodel.Book) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE ratings SET score = $2, review = $3, rating_date = $4
			WHERE id = $1
		`

		tag, err := tx.Exec(ctx, query, rating.ID, rating.Score, rating.Review, rating.Date)
		if err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrRatingNotFound
		}

		if book != nil {
			return updateBookAggregate(ctx, tx, book)
		}
		return nil
	})
}

func (r *postgresRatingRepository) Delete(ctx context.Context, id uuid.UUID, book *bookmodel.Book) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete rating: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrRatingNotFound
		}

		if book != nil {
			return updateBookAggregate(ctx, tx, book)
		}
		return nil
	})
}

func (r *postgresRatingRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.RatingWithOwner, error) {
	query := `
		SELECT r.id, r.score, r.review, r.rating_date, r.owner_id, r.book_id,
		       u.username, u.private_profile
		FROM ratings r
		JOIN users u ON u.id = r.owner_id
		WHERE r.book_id = $1
		ORDER BY r.rating_date DESC
	`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*model.RatingWithOwner
	for rows.Next() {
		rw := &model.RatingWithOwner{}
		err := rows.Scan(
			&rw.ID,
			&rw.Score,
			&rw.Review,
			&rw.Date,
			&rw.UserID,
			&rw.BookID,
			&rw.OwnerUsername,
			&rw.OwnerPrivate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	return ratings, nil
}

func (r *postgresRatingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Rating, error) {
	query := `
		SELECT id, score, review, rating_date, owner_id, book_id
		FROM ratings
		WHERE owner_id = $1
		ORDER BY rating_date DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*model.Rating
	for rows.Next() {
		rating := &model.Rating{}
		err := rows.Scan(
			&rating.ID,
			&rating.Score,
			&rating.Review,
			&rating.Date,
			&rating.UserID,
			&rating.BookID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	return ratings, nil
}
