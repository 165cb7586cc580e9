package service

import (
	"context"
	"errors"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"go.uber.org/zap"
)

// OrderServiceInterface is the order/inventory workflow: it keeps a
// customer's standing order, its per-book line items, and book stock levels
// consistent with each other.
type OrderServiceInterface interface {
	Order(ctx context.Context, bookID, userID int) error
	PlaceFirstOrderForBook(ctx context.Context, bookID, userID int) error
	AddCopy(ctx context.Context, bookID, userID int) error
	AddNewTitleToExistingOrder(ctx context.Context, bookID, userID int) error
	RemoveOneCopy(ctx context.Context, bookID, userID int) error
	ListUserOrders(ctx context.Context, userID int) ([]models.OrderLineView, error)
	HasStandingOrder(ctx context.Context, userID int) (bool, error)
	HasAnyOrderForBook(ctx context.Context, bookID int) (bool, error)
}

type OrderService struct {
	books     repository.BookRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	movements repository.StockMovementRepository
	logger    *zap.Logger
}

func NewOrderService(
	books repository.BookRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	movements repository.StockMovementRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		books:     books,
		orders:    orders,
		users:     users,
		movements: movements,
		logger:    logger,
	}
}

// Order dispatches a purchase to the right primitive: a first purchase
// creates the standing order, a repeat purchase of the same title bumps the
// line, a new title joins the existing order.
func (s *OrderService) Order(ctx context.Context, bookID, userID int) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	order, err := s.orders.GetStandingOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return s.PlaceFirstOrderForBook(ctx, bookID, userID)
		}
		return err
	}

	if _, err := s.orders.GetLine(ctx, order.OrderID, bookID); err != nil {
		if errors.Is(err, repository.ErrLineNotFound) {
			return s.AddNewTitleToExistingOrder(ctx, bookID, userID)
		}
		return err
	}

	return s.AddCopy(ctx, bookID, userID)
}

// PlaceFirstOrderForBook creates the customer's standing order with a single
// one-copy line and takes one copy off the shelf. A customer who already has
// a standing order gets ErrDuplicate, not a second order.
func (s *OrderService) PlaceFirstOrderForBook(ctx context.Context, bookID, userID int) error {
	s.logger.Info("Placing first order",
		zap.Int("book_id", bookID),
		zap.Int("user_id", userID))

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.books.DecrementStock(ctx, bookID); err != nil {
		s.logger.Warn("Place first order failed: stock decrement",
			zap.Int("book_id", bookID),
			zap.Error(err))
		return err
	}

	order, err := s.orders.CreateForCustomer(ctx, userID)
	if err != nil {
		s.restoreStock(ctx, bookID)
		s.logger.Error("PlaceFirstOrderForBook: failed to create order",
			zap.Int("user_id", userID),
			zap.Error(err))
		return err
	}

	if err := s.orders.AddLine(ctx, order.OrderID, bookID, 1); err != nil {
		s.restoreStock(ctx, bookID)
		s.logger.Error("PlaceFirstOrderForBook: failed to add line",
			zap.Int("order_id", order.OrderID),
			zap.Int("book_id", bookID),
			zap.Error(err))
		return err
	}

	s.recordMovement(ctx, bookID, order.OrderID, models.MovementOutgoing, -1)

	s.logger.Info("First order placed",
		zap.Int("order_id", order.OrderID),
		zap.Int("book_id", bookID),
		zap.Int("user_id", userID))
	return nil
}

// AddCopy bumps an existing line by one copy and takes one copy off the
// shelf.
func (s *OrderService) AddCopy(ctx context.Context, bookID, userID int) error {
	s.logger.Info("Adding copy to order",
		zap.Int("book_id", bookID),
		zap.Int("user_id", userID))

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	order, err := s.orders.GetStandingOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			// No standing order means no line either.
			return repository.ErrLineNotFound
		}
		return err
	}

	if _, err := s.orders.GetLine(ctx, order.OrderID, bookID); err != nil {
		return err
	}

	if err := s.books.DecrementStock(ctx, bookID); err != nil {
		s.logger.Warn("Add copy failed: stock decrement",
			zap.Int("book_id", bookID),
			zap.Error(err))
		return err
	}

	if err := s.orders.IncrementLineCopies(ctx, order.OrderID, bookID); err != nil {
		s.restoreStock(ctx, bookID)
		s.logger.Error("AddCopy: failed to increment line",
			zap.Int("order_id", order.OrderID),
			zap.Int("book_id", bookID),
			zap.Error(err))
		return err
	}

	s.recordMovement(ctx, bookID, order.OrderID, models.MovementOutgoing, -1)

	s.logger.Info("Copy added",
		zap.Int("order_id", order.OrderID),
		zap.Int("book_id", bookID))
	return nil
}

// AddNewTitleToExistingOrder appends a one-copy line for a title the
// customer's standing order does not contain yet.
func (s *OrderService) AddNewTitleToExistingOrder(ctx context.Context, bookID, userID int) error {
	s.logger.Info("Adding new title to order",
		zap.Int("book_id", bookID),
		zap.Int("user_id", userID))

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	order, err := s.orders.GetStandingOrder(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.books.DecrementStock(ctx, bookID); err != nil {
		s.logger.Warn("Add new title failed: stock decrement",
			zap.Int("book_id", bookID),
			zap.Error(err))
		return err
	}

	if err := s.orders.AddLine(ctx, order.OrderID, bookID, 1); err != nil {
		s.restoreStock(ctx, bookID)
		s.logger.Error("AddNewTitleToExistingOrder: failed to add line",
			zap.Int("order_id", order.OrderID),
			zap.Int("book_id", bookID),
			zap.Error(err))
		return err
	}

	s.recordMovement(ctx, bookID, order.OrderID, models.MovementOutgoing, -1)

	s.logger.Info("New title added",
		zap.Int("order_id", order.OrderID),
		zap.Int("book_id", bookID))
	return nil
}

// RemoveOneCopy counts a line down by one (flooring at zero) and puts one
// copy back on the shelf. The shelf increment happens even when the line was
// already at zero; that matches the historical behavior of this workflow and
// callers rely on the listing filter to hide empty lines.
func (s *OrderService) RemoveOneCopy(ctx context.Context, bookID, userID int) error {
	s.logger.Info("Removing copy from order",
		zap.Int("book_id", bookID),
		zap.Int("user_id", userID))

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	order, err := s.orders.GetStandingOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return repository.ErrLineNotFound
		}
		return err
	}

	if _, err := s.orders.GetLine(ctx, order.OrderID, bookID); err != nil {
		return err
	}

	if err := s.orders.DecrementLineCopies(ctx, order.OrderID, bookID); err != nil {
		return err
	}

	if err := s.books.IncrementStock(ctx, bookID, 1); err != nil {
		s.logger.Error("RemoveOneCopy: failed to restore stock",
			zap.Int("book_id", bookID),
			zap.Error(err))
		return err
	}

	s.recordMovement(ctx, bookID, order.OrderID, models.MovementIncoming, 1)

	s.logger.Info("Copy removed",
		zap.Int("order_id", order.OrderID),
		zap.Int("book_id", bookID))
	return nil
}

// ListUserOrders returns the display projection of the user's standing
// order: every line still holding at least one copy.
func (s *OrderService) ListUserOrders(ctx context.Context, userID int) ([]models.OrderLineView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	lines, err := s.orders.ListActiveLines(ctx, userID)
	if err != nil {
		s.logger.Error("ListUserOrders: failed to list lines",
			zap.Int("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	return lines, nil
}

// HasStandingOrder reports whether the user has a standing order. Absence is
// not an error.
func (s *OrderService) HasStandingOrder(ctx context.Context, userID int) (bool, error) {
	_, err := s.orders.GetStandingOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// HasAnyOrderForBook reports whether any order line references the book.
func (s *OrderService) HasAnyOrderForBook(ctx context.Context, bookID int) (bool, error) {
	return s.orders.HasOrderForBook(ctx, bookID)
}

// restoreStock compensates a decrement whose follow-up mutation failed.
func (s *OrderService) restoreStock(ctx context.Context, bookID int) {
	if err := s.books.IncrementStock(ctx, bookID, 1); err != nil {
		s.logger.Error("Failed to restore stock after aborted order mutation",
			zap.Int("book_id", bookID),
			zap.Error(err))
	}
}

// recordMovement writes the audit row for a stock transition. Audit failures
// are logged, not surfaced: the order mutation already committed.
func (s *OrderService) recordMovement(ctx context.Context, bookID, orderID int, movementType string, change int) {
	m := models.StockMovement{
		BookID:       bookID,
		OrderID:      &orderID,
		MovementType: movementType,
		Change:       change,
	}
	if err := s.movements.Record(ctx, &m); err != nil {
		s.logger.Error("Failed to record stock movement",
			zap.Int("book_id", bookID),
			zap.Int("order_id", orderID),
			zap.Error(err))
	}
}
