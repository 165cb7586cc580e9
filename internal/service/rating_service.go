package service

import (
	"context"
	"fmt"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"go.uber.org/zap"
)

type RatingServiceInterface interface {
	AddOrUpdateRating(ctx context.Context, bookID, userID, value int) error
	AverageForBook(ctx context.Context, bookID int) (float64, error)
}

type RatingService struct {
	ratings repository.RatingRepository
	books   repository.BookRepository
	users   repository.UserRepository
	logger  *zap.Logger
}

func NewRatingService(
	ratings repository.RatingRepository,
	books repository.BookRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *RatingService {
	return &RatingService{
		ratings: ratings,
		books:   books,
		users:   users,
		logger:  logger,
	}
}

// AddOrUpdateRating upserts the user's rating of a book. A second call by
// the same user replaces the stored value.
func (s *RatingService) AddOrUpdateRating(ctx context.Context, bookID, userID, value int) error {
	if value < 1 || value > 5 {
		return fmt.Errorf("%w: rating value must be between 1 and 5", repository.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return err
	}

	rating := models.Rating{
		UserID: userID,
		BookID: bookID,
		Value:  value,
	}

	if err := s.ratings.Upsert(ctx, &rating); err != nil {
		s.logger.Error("AddOrUpdateRating: failed to upsert rating",
			zap.Int("book_id", bookID),
			zap.Int("user_id", userID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Rating stored",
		zap.Int("book_id", bookID),
		zap.Int("user_id", userID),
		zap.Int("value", value))
	return nil
}

func (s *RatingService) AverageForBook(ctx context.Context, bookID int) (float64, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return 0, err
	}
	return s.ratings.AverageForBook(ctx, bookID)
}
