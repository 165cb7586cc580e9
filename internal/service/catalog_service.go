package service

import (
	"context"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"go.uber.org/zap"
)

type CatalogServiceInterface interface {
	CreateBook(ctx context.Context, book *models.Book, categoryIDs []int) error
	GetBook(ctx context.Context, id int) (*models.Book, error)
	ListBooks(ctx context.Context) ([]models.BookView, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id int) error
	BooksByCategory(ctx context.Context, name string) ([]models.BookView, error)
	BooksByAuthor(ctx context.Context, name string) ([]models.BookView, error)
	BooksByPublisher(ctx context.Context, name string) ([]models.BookView, error)

	CreateAuthor(ctx context.Context, author *models.Author) error
	ListAuthors(ctx context.Context) ([]models.Author, error)
	CreatePublisher(ctx context.Context, publisher *models.Publisher) error
	ListPublishers(ctx context.Context) ([]models.Publisher, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type CatalogService struct {
	books      repository.BookRepository
	authors    repository.AuthorRepository
	publishers repository.PublisherRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func NewCatalogService(
	books repository.BookRepository,
	authors repository.AuthorRepository,
	publishers repository.PublisherRepository,
	categories repository.CategoryRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		books:      books,
		authors:    authors,
		publishers: publishers,
		categories: categories,
		logger:     logger,
	}
}

func (s *CatalogService) CreateBook(ctx context.Context, book *models.Book, categoryIDs []int) error {
	if _, err := s.authors.GetByID(ctx, book.AuthorID); err != nil {
		return err
	}
	if _, err := s.publishers.GetByID(ctx, book.PublisherID); err != nil {
		return err
	}
	for _, id := range categoryIDs {
		if _, err := s.categories.GetByID(ctx, id); err != nil {
			return err
		}
	}

	if err := s.books.Create(ctx, book); err != nil {
		s.logger.Error("CreateBook: failed to create book",
			zap.String("isbn", book.ISBN),
			zap.Error(err))
		return err
	}

	for _, id := range categoryIDs {
		if err := s.books.AddCategory(ctx, book.BookID, id); err != nil {
			s.logger.Error("CreateBook: failed to assign category",
				zap.Int("book_id", book.BookID),
				zap.Int("category_id", id),
				zap.Error(err))
			return err
		}
	}

	s.logger.Info("Book created",
		zap.Int("book_id", book.BookID),
		zap.String("title", book.Title))
	return nil
}

func (s *CatalogService) GetBook(ctx context.Context, id int) (*models.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]models.BookView, error) {
	return s.books.GetAll(ctx)
}

func (s *CatalogService) UpdateBook(ctx context.Context, book *models.Book) error {
	if err := s.books.Update(ctx, book); err != nil {
		s.logger.Error("UpdateBook: failed to update book",
			zap.Int("book_id", book.BookID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Book updated", zap.Int("book_id", book.BookID))
	return nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id int) error {
	if err := s.books.Delete(ctx, id); err != nil {
		s.logger.Error("DeleteBook: failed to delete book",
			zap.Int("book_id", id),
			zap.Error(err))
		return err
	}

	s.logger.Info("Book deleted", zap.Int("book_id", id))
	return nil
}

// A filter yielding zero rows is reported as not found, not as an empty
// success. Debatable, but it is the contract the web layer was built
// against.
func (s *CatalogService) BooksByCategory(ctx context.Context, name string) ([]models.BookView, error) {
	return s.filtered(s.books.GetByCategory(ctx, name))
}

func (s *CatalogService) BooksByAuthor(ctx context.Context, name string) ([]models.BookView, error) {
	return s.filtered(s.books.GetByAuthor(ctx, name))
}

func (s *CatalogService) BooksByPublisher(ctx context.Context, name string) ([]models.BookView, error) {
	return s.filtered(s.books.GetByPublisher(ctx, name))
}

func (s *CatalogService) filtered(books []models.BookView, err error) ([]models.BookView, error) {
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, repository.ErrNotFound
	}
	return books, nil
}

func (s *CatalogService) CreateAuthor(ctx context.Context, author *models.Author) error {
	if err := s.authors.Create(ctx, author); err != nil {
		s.logger.Error("CreateAuthor: failed to create author", zap.Error(err))
		return err
	}
	return nil
}

func (s *CatalogService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.authors.GetAll(ctx)
}

func (s *CatalogService) CreatePublisher(ctx context.Context, publisher *models.Publisher) error {
	if err := s.publishers.Create(ctx, publisher); err != nil {
		s.logger.Error("CreatePublisher: failed to create publisher", zap.Error(err))
		return err
	}
	return nil
}

func (s *CatalogService) ListPublishers(ctx context.Context) ([]models.Publisher, error) {
	return s.publishers.GetAll(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.categories.Create(ctx, category); err != nil {
		s.logger.Error("CreateCategory: failed to create category", zap.Error(err))
		return err
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}
