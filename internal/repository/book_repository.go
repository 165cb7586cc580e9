package repository

import (
	"context"
	"errors"
	"fmt"

	"bookstore-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type bookRepo struct {
	db DB
}

func NewBookRepository(db DB) BookRepository {
	return &bookRepo{db: db}
}

const bookViewSelect = `
	SELECT
		b.book_id,
		b.isbn,
		b.title,
		b.description,
		b.year,
		b.price,
		b.pages,
		b.quantity,
		b.image_url,
		a.first_name || ' ' || a.last_name AS author_name,
		p.name AS publisher_name
	FROM books b
	JOIN authors a ON a.author_id = b.author_id
	JOIN publishers p ON p.publisher_id = b.publisher_id
	WHERE b.is_deleted = FALSE`

func (r *bookRepo) Create(ctx context.Context, b *models.Book) error {
	if b.Title == "" {
		return fmt.Errorf("%w: book title required", ErrInvalidInput)
	}
	if b.ISBN == "" {
		return fmt.Errorf("%w: book ISBN required", ErrInvalidInput)
	}
	if b.Price <= 0 {
		return fmt.Errorf("%w: book price must be positive", ErrInvalidInput)
	}
	if b.Quantity < 0 {
		return fmt.Errorf("%w: book quantity cannot be negative", ErrInvalidInput)
	}

	sql := `
		INSERT INTO books (
			isbn,
			title,
			description,
			year,
			price,
			pages,
			quantity,
			image_url,
			author_id,
			publisher_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING book_id
	`

	err := r.db.QueryRow(ctx, sql,
		b.ISBN,
		b.Title,
		b.Description,
		b.Year,
		b.Price,
		b.Pages,
		b.Quantity,
		b.ImageURL,
		b.AuthorID,
		b.PublisherID,
	).Scan(&b.BookID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: ISBN already exists", ErrDuplicate)
			case "23503":
				return fmt.Errorf("%w: author or publisher does not exist", ErrNotFound)
			}
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *bookRepo) GetByID(ctx context.Context, id int) (*models.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			book_id,
			isbn,
			title,
			description,
			year,
			price,
			pages,
			quantity,
			image_url,
			author_id,
			publisher_id,
			is_deleted,
			deleted_on
		FROM books
		WHERE book_id = $1 AND is_deleted = FALSE
		`

	var book models.Book

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&book.BookID,
		&book.ISBN,
		&book.Title,
		&book.Description,
		&book.Year,
		&book.Price,
		&book.Pages,
		&book.Quantity,
		&book.ImageURL,
		&book.AuthorID,
		&book.PublisherID,
		&book.IsDeleted,
		&book.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by id %d: %w", id, err)
	}

	return &book, nil
}

func (r *bookRepo) GetAll(ctx context.Context) ([]models.BookView, error) {
	sql := bookViewSelect + `
	ORDER BY b.book_id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all books: %w", err)
	}

	return scanBookViews(rows)
}

func (r *bookRepo) GetByCategory(ctx context.Context, category string) ([]models.BookView, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category cannot be empty", ErrInvalidInput)
	}

	sql := bookViewSelect + `
	AND EXISTS (
		SELECT 1
		FROM book_categories bc
		JOIN categories c ON c.category_id = bc.category_id
		WHERE bc.book_id = b.book_id AND c.name = $1 AND c.is_deleted = FALSE
	)
	ORDER BY b.book_id`

	rows, err := r.db.Query(ctx, sql, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get books by category: %w", err)
	}

	return scanBookViews(rows)
}

func (r *bookRepo) GetByAuthor(ctx context.Context, author string) ([]models.BookView, error) {
	if author == "" {
		return nil, fmt.Errorf("%w: author name cannot be empty", ErrInvalidInput)
	}

	sql := bookViewSelect + `
	AND a.first_name || ' ' || a.last_name = $1
	ORDER BY b.book_id`

	rows, err := r.db.Query(ctx, sql, author)
	if err != nil {
		return nil, fmt.Errorf("failed to get books by author: %w", err)
	}

	return scanBookViews(rows)
}

func (r *bookRepo) GetByPublisher(ctx context.Context, publisher string) ([]models.BookView, error) {
	if publisher == "" {
		return nil, fmt.Errorf("%w: publisher name cannot be empty", ErrInvalidInput)
	}

	sql := bookViewSelect + `
	AND p.name = $1
	ORDER BY b.book_id`

	rows, err := r.db.Query(ctx, sql, publisher)
	if err != nil {
		return nil, fmt.Errorf("failed to get books by publisher: %w", err)
	}

	return scanBookViews(rows)
}

func scanBookViews(rows pgx.Rows) ([]models.BookView, error) {
	defer rows.Close()

	var books []models.BookView

	for rows.Next() {
		var v models.BookView

		err := rows.Scan(&v.BookID,
			&v.ISBN,
			&v.Title,
			&v.Description,
			&v.Year,
			&v.Price,
			&v.Pages,
			&v.Quantity,
			&v.ImageURL,
			&v.AuthorName,
			&v.PublisherName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan books: %w", err)
		}
		books = append(books, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return books, nil
}

func (r *bookRepo) Update(ctx context.Context, b *models.Book) error {
	if b.BookID <= 0 {
		return fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}
	if b.Title == "" {
		return fmt.Errorf("%w: book title required", ErrInvalidInput)
	}
	if b.Price <= 0 {
		return fmt.Errorf("%w: book price must be positive", ErrInvalidInput)
	}
	if b.Quantity < 0 {
		return fmt.Errorf("%w: book quantity cannot be negative", ErrInvalidInput)
	}

	sql := `
	UPDATE books
	SET
		isbn = $1,
		title = $2,
		description = $3,
		year = $4,
		price = $5,
		pages = $6,
		quantity = $7,
		image_url = $8,
		author_id = $9,
		publisher_id = $10
	WHERE book_id = $11 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql,
		b.ISBN,
		b.Title,
		b.Description,
		b.Year,
		b.Price,
		b.Pages,
		b.Quantity,
		b.ImageURL,
		b.AuthorID,
		b.PublisherID,
		b.BookID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book %d: %w", b.BookID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *bookRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE books
	SET is_deleted = TRUE, deleted_on = NOW()
	WHERE book_id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *bookRepo) AddCategory(ctx context.Context, bookID, categoryID int) error {
	if bookID <= 0 || categoryID <= 0 {
		return fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}

	sql := `
	INSERT INTO book_categories (book_id, category_id)
	VALUES ($1, $2)
	ON CONFLICT (book_id, category_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, sql, bookID, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: book or category does not exist", ErrNotFound)
		}
		return fmt.Errorf("failed to assign category %d to book %d: %w", categoryID, bookID, err)
	}

	return nil
}

// DecrementStock is the hardened stock guard: the quantity check and the
// decrement happen in one statement, so two buyers of the last copy cannot
// both pass the check.
func (r *bookRepo) DecrementStock(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE books
	SET quantity = quantity - 1
	WHERE book_id = $1 AND quantity >= 1 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock of book %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		// Zero rows means either a missing book or an empty shelf.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}

	return nil
}

func (r *bookRepo) IncrementStock(ctx context.Context, id, change int) error {
	if id <= 0 {
		return fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}
	if change <= 0 {
		return fmt.Errorf("%w: stock change must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE books
	SET quantity = quantity + $1
	WHERE book_id = $2 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, change, id)
	if err != nil {
		return fmt.Errorf("failed to increment stock of book %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
