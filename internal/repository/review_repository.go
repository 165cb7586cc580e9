package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type reviewRepo struct {
	db DB
}

func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review == nil {
		return fmt.Errorf("%w: review cannot be nil", ErrInvalidInput)
	}
	if review.UserID <= 0 || review.BookID <= 0 {
		return fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}
	if review.Body == "" {
		return fmt.Errorf("%w: review body cannot be empty", ErrInvalidInput)
	}

	sql := `
	INSERT INTO reviews (user_id, book_id, body, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING review_id
	`

	review.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, sql,
		review.UserID,
		review.BookID,
		review.Body,
		review.CreatedAt,
	).Scan(&review.ReviewID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: user or book does not exist", ErrNotFound)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepo) GetByID(ctx context.Context, id int) (*models.Review, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: review ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT review_id, user_id, book_id, body, created_at, is_deleted, deleted_on
	FROM reviews
	WHERE review_id = $1 AND is_deleted = FALSE
	`

	var review models.Review

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&review.ReviewID,
		&review.UserID,
		&review.BookID,
		&review.Body,
		&review.CreatedAt,
		&review.IsDeleted,
		&review.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review by id %d: %w", id, err)
	}

	return &review, nil
}

func (r *reviewRepo) GetByBook(ctx context.Context, bookID int) ([]models.Review, error) {
	if bookID <= 0 {
		return nil, fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT review_id, user_id, book_id, body, created_at, is_deleted, deleted_on
	FROM reviews
	WHERE book_id = $1 AND is_deleted = FALSE
	ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, sql, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for book %d: %w", bookID, err)
	}

	defer rows.Close()

	var reviews []models.Review

	for rows.Next() {
		var rv models.Review

		err := rows.Scan(&rv.ReviewID,
			&rv.UserID,
			&rv.BookID,
			&rv.Body,
			&rv.CreatedAt,
			&rv.IsDeleted,
			&rv.DeletedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviews: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *models.Review) error {
	if review == nil {
		return fmt.Errorf("%w: review cannot be nil", ErrInvalidInput)
	}
	if review.ReviewID <= 0 {
		return fmt.Errorf("%w: review ID must be positive", ErrInvalidInput)
	}
	if review.Body == "" {
		return fmt.Errorf("%w: review body cannot be empty", ErrInvalidInput)
	}

	sql := `
	UPDATE reviews
	SET body = $1
	WHERE review_id = $2 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, review.Body, review.ReviewID)
	if err != nil {
		return fmt.Errorf("failed to update review %d: %w", review.ReviewID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: review ID must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE reviews
	SET is_deleted = TRUE, deleted_on = NOW()
	WHERE review_id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
