package service

import (
	"context"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"go.uber.org/zap"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int) error
}

type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("CreateUser: failed to create user",
			zap.String("email", user.Email),
			zap.Error(err))
		return err
	}

	s.logger.Info("User created", zap.Int("user_id", user.UserID))
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("UpdateUser: failed to update user",
			zap.Int("user_id", user.UserID),
			zap.Error(err))
		return err
	}

	s.logger.Info("User updated", zap.Int("user_id", user.UserID))
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		s.logger.Error("DeleteUser: failed to delete user",
			zap.Int("user_id", id),
			zap.Error(err))
		return err
	}

	s.logger.Info("User deleted", zap.Int("user_id", id))
	return nil
}
