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

type orderRepo struct {
	db DB
}

func NewOrderRepository(db DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateForCustomer(ctx context.Context, customerID int) (*models.Order, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", ErrInvalidInput)
	}

	order := models.Order{
		CustomerID: customerID,
		Status:     models.OrderStatusAccepted,
		CreatedAt:  time.Now(),
	}

	sql := `
	INSERT INTO orders (customer_id, status, created_at)
	VALUES ($1, $2, $3)
	RETURNING order_id
	`

	err := r.db.QueryRow(ctx, sql, order.CustomerID, order.Status, order.CreatedAt).Scan(&order.OrderID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				// One standing order per customer, enforced by the
				// partial unique index on orders(customer_id).
				return nil, fmt.Errorf("%w: customer already has a standing order", ErrDuplicate)
			case "23503":
				return nil, fmt.Errorf("%w: customer does not exist", ErrNotFound)
			}
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &order, nil
}

func (r *orderRepo) GetStandingOrder(ctx context.Context, customerID int) (*models.Order, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT
		order_id,
		customer_id,
		status,
		created_at,
		is_deleted,
		deleted_on
	FROM orders
	WHERE customer_id = $1 AND is_deleted = FALSE
	`

	var order models.Order

	err := r.db.QueryRow(ctx, sql, customerID).Scan(
		&order.OrderID,
		&order.CustomerID,
		&order.Status,
		&order.CreatedAt,
		&order.IsDeleted,
		&order.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get standing order for customer %d: %w", customerID, err)
	}

	return &order, nil
}

func (r *orderRepo) HasOrderForBook(ctx context.Context, bookID int) (bool, error) {
	if bookID <= 0 {
		return false, fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT EXISTS (
		SELECT 1
		FROM book_orders
		WHERE book_id = $1 AND is_deleted = FALSE
	)
	`

	var exists bool

	if err := r.db.QueryRow(ctx, sql, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe orders for book %d: %w", bookID, err)
	}

	return exists, nil
}

func (r *orderRepo) AddLine(ctx context.Context, orderID, bookID, copies int) error {
	if orderID <= 0 || bookID <= 0 {
		return fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}
	if copies < 0 {
		return fmt.Errorf("%w: copies cannot be negative", ErrInvalidInput)
	}

	sql := `
	INSERT INTO book_orders (order_id, book_id, copies)
	VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, sql, orderID, bookID, copies)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: line for this book already exists", ErrDuplicate)
			case "23503":
				return fmt.Errorf("%w: order or book does not exist", ErrNotFound)
			}
		}
		return fmt.Errorf("failed to add line (order %d, book %d): %w", orderID, bookID, err)
	}

	return nil
}

func (r *orderRepo) GetLine(ctx context.Context, orderID, bookID int) (*models.BookOrder, error) {
	if orderID <= 0 || bookID <= 0 {
		return nil, fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT
		order_id,
		book_id,
		copies,
		is_deleted,
		deleted_on
	FROM book_orders
	WHERE order_id = $1 AND book_id = $2 AND is_deleted = FALSE
	`

	var line models.BookOrder

	err := r.db.QueryRow(ctx, sql, orderID, bookID).Scan(
		&line.OrderID,
		&line.BookID,
		&line.Copies,
		&line.IsDeleted,
		&line.DeletedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to get line (order %d, book %d): %w", orderID, bookID, err)
	}

	return &line, nil
}

func (r *orderRepo) IncrementLineCopies(ctx context.Context, orderID, bookID int) error {
	if orderID <= 0 || bookID <= 0 {
		return fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE book_orders
	SET copies = copies + 1
	WHERE order_id = $1 AND book_id = $2 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, orderID, bookID)
	if err != nil {
		return fmt.Errorf("failed to increment line (order %d, book %d): %w", orderID, bookID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrLineNotFound
	}

	return nil
}

// DecrementLineCopies floors the counter at zero: decrementing a line that
// is already at zero copies is a silent no-op, not an error.
func (r *orderRepo) DecrementLineCopies(ctx context.Context, orderID, bookID int) error {
	if orderID <= 0 || bookID <= 0 {
		return fmt.Errorf("%w: IDs must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE book_orders
	SET copies = copies - 1
	WHERE order_id = $1 AND book_id = $2 AND copies > 0 AND is_deleted = FALSE
	`

	result, err := r.db.Exec(ctx, sql, orderID, bookID)
	if err != nil {
		return fmt.Errorf("failed to decrement line (order %d, book %d): %w", orderID, bookID, err)
	}

	if result.RowsAffected() == 0 {
		// Either the line is missing or it is already at zero.
		if _, err := r.GetLine(ctx, orderID, bookID); err != nil {
			return err
		}
	}

	return nil
}

func (r *orderRepo) ListActiveLines(ctx context.Context, customerID int) ([]models.OrderLineView, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT
		b.book_id,
		b.title,
		a.first_name || ' ' || a.last_name AS author_name,
		b.price,
		b.image_url,
		bo.copies
	FROM orders o
	JOIN book_orders bo ON bo.order_id = o.order_id
	JOIN books b ON b.book_id = bo.book_id
	JOIN authors a ON a.author_id = b.author_id
	WHERE o.customer_id = $1
		AND o.is_deleted = FALSE
		AND bo.is_deleted = FALSE
		AND bo.copies > 0
	ORDER BY b.book_id
	`

	rows, err := r.db.Query(ctx, sql, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines for customer %d: %w", customerID, err)
	}

	defer rows.Close()

	var lines []models.OrderLineView

	for rows.Next() {
		var l models.OrderLineView

		err := rows.Scan(&l.BookID,
			&l.Title,
			&l.AuthorName,
			&l.Price,
			&l.ImageURL,
			&l.Copies,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order lines: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return lines, nil
}
