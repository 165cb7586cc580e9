package repository

import (
	"context"
	"fmt"
	"time"

	"bookstore-backend/internal/models"
)

type stockMovementRepo struct {
	db DB
}

func NewStockMovementRepository(db DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Record(ctx context.Context, m *models.StockMovement) error {
	if m == nil {
		return fmt.Errorf("%w: movement cannot be nil", ErrInvalidInput)
	}
	if m.BookID <= 0 {
		return fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}
	if m.Change == 0 {
		return fmt.Errorf("%w: movement change cannot be 0", ErrInvalidInput)
	}

	validTypes := map[string]bool{
		models.MovementOutgoing: true,
		models.MovementIncoming: true,
		models.MovementRestock:  true,
	}
	if !validTypes[m.MovementType] {
		return fmt.Errorf("%w: invalid movement type '%s'", ErrInvalidInput, m.MovementType)
	}

	var orderID interface{}
	if m.OrderID != nil && *m.OrderID > 0 {
		orderID = *m.OrderID
	}

	sql := `
	INSERT INTO stock_movements (
		book_id,
		order_id,
		movement_type,
		change,
		created_at
	) VALUES ($1, $2, $3, $4, $5)
	RETURNING movement_id
	`

	m.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, sql,
		m.BookID,
		orderID,
		m.MovementType,
		m.Change,
		m.CreatedAt,
	).Scan(&m.MovementID)
	if err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}

	return nil
}

func (r *stockMovementRepo) GetByBook(ctx context.Context, bookID int) ([]models.StockMovement, error) {
	if bookID <= 0 {
		return nil, fmt.Errorf("%w: book ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT movement_id, book_id, order_id, movement_type, change, created_at
	FROM stock_movements
	WHERE book_id = $1
	ORDER BY created_at
	`

	return r.query(ctx, sql, bookID)
}

func (r *stockMovementRepo) GetByOrder(ctx context.Context, orderID int) ([]models.StockMovement, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}

	sql := `
	SELECT movement_id, book_id, order_id, movement_type, change, created_at
	FROM stock_movements
	WHERE order_id = $1
	ORDER BY created_at
	`

	return r.query(ctx, sql, orderID)
}

func (r *stockMovementRepo) query(ctx context.Context, sql string, arg any) ([]models.StockMovement, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock movements: %w", err)
	}

	defer rows.Close()

	var movements []models.StockMovement

	for rows.Next() {
		var m models.StockMovement

		err := rows.Scan(&m.MovementID,
			&m.BookID,
			&m.OrderID,
			&m.MovementType,
			&m.Change,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movements: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return movements, nil
}
