package service

import (
	"context"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"go.uber.org/zap"
)

type ReviewServiceInterface interface {
	AddReview(ctx context.Context, bookID, userID int, body string) (*models.Review, error)
	UpdateReview(ctx context.Context, reviewID, userID int, body string) error
	DeleteReview(ctx context.Context, reviewID, userID int) error
	ListBookReviews(ctx context.Context, bookID int) ([]models.Review, error)
}

type ReviewService struct {
	reviews repository.ReviewRepository
	books   repository.BookRepository
	users   repository.UserRepository
	logger  *zap.Logger
}

func NewReviewService(
	reviews repository.ReviewRepository,
	books repository.BookRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		books:   books,
		users:   users,
		logger:  logger,
	}
}

func (s *ReviewService) AddReview(ctx context.Context, bookID, userID int, body string) (*models.Review, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	review := models.Review{
		UserID: userID,
		BookID: bookID,
		Body:   body,
	}

	if err := s.reviews.Create(ctx, &review); err != nil {
		s.logger.Error("AddReview: failed to create review",
			zap.Int("book_id", bookID),
			zap.Int("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Review created",
		zap.Int("review_id", review.ReviewID),
		zap.Int("book_id", bookID))
	return &review, nil
}

// UpdateReview is an owner-only mutation: a user can only edit their own
// review.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, userID int, body string) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		return repository.ErrNotOwner
	}

	review.Body = body
	if err := s.reviews.Update(ctx, review); err != nil {
		s.logger.Error("UpdateReview: failed to update review",
			zap.Int("review_id", reviewID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Review updated", zap.Int("review_id", reviewID))
	return nil
}

// DeleteReview soft-deletes the review; owner-only like UpdateReview.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID int) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		return repository.ErrNotOwner
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		s.logger.Error("DeleteReview: failed to delete review",
			zap.Int("review_id", reviewID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Review deleted", zap.Int("review_id", reviewID))
	return nil
}

func (s *ReviewService) ListBookReviews(ctx context.Context, bookID int) ([]models.Review, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.reviews.GetByBook(ctx, bookID)
}
