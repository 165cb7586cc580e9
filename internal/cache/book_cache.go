package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedBookRepository decorates a BookRepository with a read-through redis
// cache for the catalog queries. Redis being down degrades to the database,
// never to an error.
type CachedBookRepository struct {
	realRepo repository.BookRepository
	redis    *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
}

func NewCachedBookRepository(realRepo repository.BookRepository, redis *redis.Client, logger *zap.Logger) *CachedBookRepository {
	return &CachedBookRepository{
		realRepo: realRepo,
		redis:    redis,
		ttl:      5 * time.Minute,
		logger:   logger,
	}
}

const (
	allBooksKey  = "books:all"
	notFoundMark = "notfound"
)

func bookKey(id int) string { return fmt.Sprintf("book:%d", id) }

func (c *CachedBookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	key := bookKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundMark {
			return nil, repository.ErrNotFound
		}

		var book models.Book
		if err := json.Unmarshal(data, &book); err != nil {
			c.logger.Warn("Failed to unmarshal cached book, falling back to DB", zap.Error(err))
			break
		}

		return &book, nil

	case errors.Is(err, redis.Nil):

	default:
		c.logger.Warn("Redis error, falling back to DB", zap.Error(err))
	}

	book, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMark, 1*time.Minute).Err(); setErr != nil {
				c.logger.Warn("Failed to cache notfound marker", zap.Error(setErr))
			}
		}
		return nil, err
	}

	c.store(ctx, key, book)
	return book, nil
}

func (c *CachedBookRepository) GetAll(ctx context.Context) ([]models.BookView, error) {
	return c.cachedList(ctx, allBooksKey, func() ([]models.BookView, error) {
		return c.realRepo.GetAll(ctx)
	})
}

func (c *CachedBookRepository) GetByCategory(ctx context.Context, category string) ([]models.BookView, error) {
	key := "books:category:" + category
	return c.cachedList(ctx, key, func() ([]models.BookView, error) {
		return c.realRepo.GetByCategory(ctx, category)
	})
}

func (c *CachedBookRepository) GetByAuthor(ctx context.Context, author string) ([]models.BookView, error) {
	key := "books:author:" + author
	return c.cachedList(ctx, key, func() ([]models.BookView, error) {
		return c.realRepo.GetByAuthor(ctx, author)
	})
}

func (c *CachedBookRepository) GetByPublisher(ctx context.Context, publisher string) ([]models.BookView, error) {
	key := "books:publisher:" + publisher
	return c.cachedList(ctx, key, func() ([]models.BookView, error) {
		return c.realRepo.GetByPublisher(ctx, publisher)
	})
}

func (c *CachedBookRepository) cachedList(ctx context.Context, key string, load func() ([]models.BookView, error)) ([]models.BookView, error) {
	data, err := c.redis.Get(ctx, key).Bytes()

	if err == nil {
		var books []models.BookView
		if err := json.Unmarshal(data, &books); err == nil {
			return books, nil
		}
		c.logger.Warn("Failed to unmarshal cached book list, falling back to DB", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Redis error, falling back to DB", zap.Error(err))
	}

	books, err := load()
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, books)
	return books, nil
}

func (c *CachedBookRepository) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to marshal for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops the per-book entry and every list key. List keys are
// parameterized by name, so they are cleared wholesale via SCAN.
func (c *CachedBookRepository) invalidate(ctx context.Context, bookID int) {
	if err := c.redis.Del(ctx, bookKey(bookID), allBooksKey).Err(); err != nil {
		c.logger.Warn("Failed to delete book cache", zap.Int("book_id", bookID), zap.Error(err))
	}

	for _, prefix := range []string{"books:category:*", "books:author:*", "books:publisher:*"} {
		iter := c.redis.Scan(ctx, 0, prefix, 0).Iterator()
		for iter.Next(ctx) {
			if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
				c.logger.Warn("Failed to delete list cache", zap.String("key", iter.Val()), zap.Error(err))
			}
		}
		if err := iter.Err(); err != nil {
			c.logger.Warn("Cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

func (c *CachedBookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := c.realRepo.Create(ctx, book); err != nil {
		return err
	}
	c.invalidate(ctx, book.BookID)
	return nil
}

func (c *CachedBookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := c.realRepo.Update(ctx, book); err != nil {
		return err
	}
	c.invalidate(ctx, book.BookID)
	return nil
}

func (c *CachedBookRepository) Delete(ctx context.Context, id int) error {
	if err := c.realRepo.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachedBookRepository) AddCategory(ctx context.Context, bookID, categoryID int) error {
	if err := c.realRepo.AddCategory(ctx, bookID, categoryID); err != nil {
		return err
	}
	c.invalidate(ctx, bookID)
	return nil
}

// Stock transitions go through the decorator too, so a cached quantity never
// outlives the mutation that changed it.
func (c *CachedBookRepository) DecrementStock(ctx context.Context, id int) error {
	if err := c.realRepo.DecrementStock(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachedBookRepository) IncrementStock(ctx context.Context, id, change int) error {
	if err := c.realRepo.IncrementStock(ctx, id, change); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}
