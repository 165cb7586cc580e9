package repository

import (
	"context"
	"errors"
	"fmt"

	"bookstore-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type authorRepo struct {
	db DB
}

func NewAuthorRepository(db DB) AuthorRepository {
	return &authorRepo{db: db}
}

func (r *authorRepo) Create(ctx context.Context, a *models.Author) error {
	if a.FirstName == "" || a.LastName == "" {
		return fmt.Errorf("%w: author name required", ErrInvalidInput)
	}

	sql := `
	INSERT INTO authors (first_name, last_name)
	VALUES ($1, $2)
	RETURNING author_id
	`

	err := r.db.QueryRow(ctx, sql, a.FirstName, a.LastName).Scan(&a.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}

	return nil
}

func (r *authorRepo) GetByID(ctx context.Context, id int) (*models.Author, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: author ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT author_id, first_name, last_name, is_deleted, deleted_on
	FROM authors
	WHERE author_id = $1 AND is_deleted = FALSE
	`

	var author models.Author

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&author.AuthorID,
		&author.FirstName,
		&author.LastName,
		&author.IsDeleted,
		&author.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get author by id %d: %w", id, err)
	}

	return &author, nil
}

func (r *authorRepo) GetAll(ctx context.Context) ([]models.Author, error) {
	sql := `
	SELECT author_id, first_name, last_name, is_deleted, deleted_on
	FROM authors
	WHERE is_deleted = FALSE
	ORDER BY author_id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all authors: %w", err)
	}

	defer rows.Close()

	var authors []models.Author

	for rows.Next() {
		var a models.Author

		err := rows.Scan(&a.AuthorID, &a.FirstName, &a.LastName, &a.IsDeleted, &a.DeletedOn)
		if err != nil {
			return nil, fmt.Errorf("failed to scan authors: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return authors, nil
}

type publisherRepo struct {
	db DB
}

func NewPublisherRepository(db DB) PublisherRepository {
	return &publisherRepo{db: db}
}

func (r *publisherRepo) Create(ctx context.Context, p *models.Publisher) error {
	if p.Name == "" {
		return fmt.Errorf("%w: publisher name required", ErrInvalidInput)
	}

	sql := `
	INSERT INTO publishers (name)
	VALUES ($1)
	RETURNING publisher_id
	`

	err := r.db.QueryRow(ctx, sql, p.Name).Scan(&p.PublisherID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: publisher already exists", ErrDuplicate)
		}
		return fmt.Errorf("failed to create publisher: %w", err)
	}

	return nil
}

func (r *publisherRepo) GetByID(ctx context.Context, id int) (*models.Publisher, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: publisher ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT publisher_id, name, is_deleted, deleted_on
	FROM publishers
	WHERE publisher_id = $1 AND is_deleted = FALSE
	`

	var publisher models.Publisher

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&publisher.PublisherID,
		&publisher.Name,
		&publisher.IsDeleted,
		&publisher.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get publisher by id %d: %w", id, err)
	}

	return &publisher, nil
}

func (r *publisherRepo) GetAll(ctx context.Context) ([]models.Publisher, error) {
	sql := `
	SELECT publisher_id, name, is_deleted, deleted_on
	FROM publishers
	WHERE is_deleted = FALSE
	ORDER BY publisher_id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all publishers: %w", err)
	}

	defer rows.Close()

	var publishers []models.Publisher

	for rows.Next() {
		var p models.Publisher

		err := rows.Scan(&p.PublisherID, &p.Name, &p.IsDeleted, &p.DeletedOn)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publishers: %w", err)
		}
		publishers = append(publishers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return publishers, nil
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	if c.Name == "" {
		return fmt.Errorf("%w: category name required", ErrInvalidInput)
	}

	sql := `
	INSERT INTO categories (name)
	VALUES ($1)
	RETURNING category_id
	`

	err := r.db.QueryRow(ctx, sql, c.Name).Scan(&c.CategoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category already exists", ErrDuplicate)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int) (*models.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: category ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT category_id, name, is_deleted, deleted_on
	FROM categories
	WHERE category_id = $1 AND is_deleted = FALSE
	`

	var category models.Category

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&category.CategoryID,
		&category.Name,
		&category.IsDeleted,
		&category.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by id %d: %w", id, err)
	}

	return &category, nil
}

func (r *categoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	sql := `
	SELECT category_id, name, is_deleted, deleted_on
	FROM categories
	WHERE is_deleted = FALSE
	ORDER BY category_id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}

	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var c models.Category

		err := rows.Scan(&c.CategoryID, &c.Name, &c.IsDeleted, &c.DeletedOn)
		if err != nil {
			return nil, fmt.Errorf("failed to scan categories: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return categories, nil
}
