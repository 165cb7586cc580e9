package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepo struct {
	db DB
}

var validate = validator.New()

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if err := validate.Struct(u); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			firstErr := validationErr[0]
			switch firstErr.Field() {
			case "Email":
				return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
			case "FirstName", "LastName":
				return fmt.Errorf("%w: name must be 2-150 characters", ErrInvalidInput)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sql := `
		INSERT INTO users (
			first_name,
			last_name,
			email,
			address,
			registered_at
	) VALUES ($1, $2, $3, $4, $5)
	RETURNING user_id
	`

	u.RegisteredAt = time.Now()

	err := r.db.QueryRow(ctx, sql,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Address,
		u.RegisteredAt,
	).Scan(&u.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return fmt.Errorf("%w: email already exists", ErrDuplicate)
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			user_id,
			first_name,
			last_name,
			email,
			address,
			registered_at,
			is_deleted,
			deleted_on
		FROM users
		WHERE user_id = $1 AND is_deleted = FALSE
	`

	var user models.User

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Address,
		&user.RegisteredAt,
		&user.IsDeleted,
		&user.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user with id %d: %w", id, err)
	}

	return &user, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	sql := `
	SELECT
		user_id,
		first_name,
		last_name,
		email,
		address,
		registered_at,
		is_deleted,
		deleted_on
	FROM users
	WHERE is_deleted = FALSE
	ORDER BY user_id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}

	defer rows.Close()

	var users []models.User

	for rows.Next() {
		var u models.User

		err := rows.Scan(&u.UserID,
			&u.FirstName,
			&u.LastName,
			&u.Email,
			&u.Address,
			&u.RegisteredAt,
			&u.IsDeleted,
			&u.DeletedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return users, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	if u.UserID <= 0 {
		return fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)
	}
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sql := `
	UPDATE users
	SET
		first_name = $1,
		last_name = $2,
		email = $3,
		address = $4
	WHERE user_id = $5 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Address,
		u.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email already exists", ErrDuplicate)
		}
		return fmt.Errorf("failed to update user %d: %w", u.UserID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE users
	SET is_deleted = TRUE, deleted_on = NOW()
	WHERE user_id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	sql := `
		SELECT
			user_id,
			first_name,
			last_name,
			email,
			address,
			registered_at,
			is_deleted,
			deleted_on
		FROM users
		WHERE email = $1 AND is_deleted = FALSE
	`

	var user models.User

	err := r.db.QueryRow(ctx, sql, email).Scan(
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Address,
		&user.RegisteredAt,
		&user.IsDeleted,
		&user.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}
