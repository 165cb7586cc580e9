package service

import (
	"context"
	"fmt"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"go.uber.org/zap"
)

type WarehouseServiceInterface interface {
	Restock(ctx context.Context, bookID, copies int) error
	StockHistory(ctx context.Context, bookID int) ([]models.StockMovement, error)
	OrderMovements(ctx context.Context, orderID int) ([]models.StockMovement, error)
}

// WarehouseService is the admin-facing side of inventory: restocking and
// the movement audit trail.
type WarehouseService struct {
	books     repository.BookRepository
	movements repository.StockMovementRepository
	logger    *zap.Logger
}

func NewWarehouseService(
	books repository.BookRepository,
	movements repository.StockMovementRepository,
	logger *zap.Logger,
) *WarehouseService {
	return &WarehouseService{
		books:     books,
		movements: movements,
		logger:    logger,
	}
}

func (s *WarehouseService) Restock(ctx context.Context, bookID, copies int) error {
	if copies <= 0 {
		return fmt.Errorf("%w: restock copies must be positive", repository.ErrInvalidInput)
	}

	if err := s.books.IncrementStock(ctx, bookID, copies); err != nil {
		s.logger.Error("Restock: failed to increment stock",
			zap.Int("book_id", bookID),
			zap.Int("copies", copies),
			zap.Error(err))
		return err
	}

	m := models.StockMovement{
		BookID:       bookID,
		MovementType: models.MovementRestock,
		Change:       copies,
	}
	if err := s.movements.Record(ctx, &m); err != nil {
		s.logger.Error("Restock: failed to record movement",
			zap.Int("book_id", bookID),
			zap.Error(err))
	}

	s.logger.Info("Book restocked",
		zap.Int("book_id", bookID),
		zap.Int("copies", copies))
	return nil
}

func (s *WarehouseService) StockHistory(ctx context.Context, bookID int) ([]models.StockMovement, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.movements.GetByBook(ctx, bookID)
}

func (s *WarehouseService) OrderMovements(ctx context.Context, orderID int) ([]models.StockMovement, error) {
	return s.movements.GetByOrder(ctx, orderID)
}
