package repository

import (
	"context"
	"errors"
	"fmt"

	"bookstore-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ratingRepo struct {
	db DB
}

func NewRatingRepository(db DB) RatingRepository {
	return &ratingRepo{db: db}
}

// Upsert keeps at most one rating per (user, book); a repeated submission
// overwrites the stored value.
func (r *ratingRepo) Upsert(ctx context.Context, rating *models.Rating) error {
	if rating == nil {
		return fmt.Errorf("%w: rating cannot be nil", ErrInvalidInput)
	}
	if rating.UserID <= 0 || rating.BookID <= 0 {
		return fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}
	if rating.Value < 1 || rating.Value > 5 {
		return fmt.Errorf("%w: rating value must be between 1 and 5", ErrInvalidInput)
	}

	sql := `
	INSERT INTO ratings (user_id, book_id, value)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, book_id) DO UPDATE SET value = EXCLUDED.value
	RETURNING rating_id
	`

	err := r.db.QueryRow(ctx, sql, rating.UserID, rating.BookID, rating.Value).Scan(&rating.RatingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: user or book does not exist", ErrNotFound)
		}
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

func (r *ratingRepo) GetByUserAndBook(ctx context.Context, userID, bookID int) (*models.Rating, error) {
	if userID <= 0 || bookID <= 0 {
		return nil, fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT rating_id, user_id, book_id, value
	FROM ratings
	WHERE user_id = $1 AND book_id = $2
	`

	var rating models.Rating

	err := r.db.QueryRow(ctx, sql, userID, bookID).Scan(
		&rating.RatingID,
		&rating.UserID,
		&rating.BookID,
		&rating.Value,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rating (user %d, book %d): %w", userID, bookID, err)
	}

	return &rating, nil
}

func (r *ratingRepo) AverageForBook(ctx context.Context, bookID int) (float64, error) {
	if bookID <= 0 {
		return 0, fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT COALESCE(AVG(value), 0)
	FROM ratings
	WHERE book_id = $1
	`

	var avg float64

	if err := r.db.QueryRow(ctx, sql, bookID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to get average rating for book %d: %w", bookID, err)
	}

	return avg, nil
}
