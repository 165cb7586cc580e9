package repository

import (
	"context"

	"bookstore-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgx used by the repositories. Both *pgxpool.Pool and
// pgx.Tx satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int) (*models.Book, error)
	GetAll(ctx context.Context) ([]models.BookView, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int) error

	GetByCategory(ctx context.Context, category string) ([]models.BookView, error)
	GetByAuthor(ctx context.Context, author string) ([]models.BookView, error)
	GetByPublisher(ctx context.Context, publisher string) ([]models.BookView, error)
	AddCategory(ctx context.Context, bookID, categoryID int) error

	// DecrementStock takes one copy off the shelf as a single conditional
	// update; it fails with ErrInsufficientStock instead of going negative.
	DecrementStock(ctx context.Context, id int) error
	IncrementStock(ctx context.Context, id, change int) error
}

type OrderRepository interface {
	CreateForCustomer(ctx context.Context, customerID int) (*models.Order, error)
	GetStandingOrder(ctx context.Context, customerID int) (*models.Order, error)
	HasOrderForBook(ctx context.Context, bookID int) (bool, error)

	AddLine(ctx context.Context, orderID, bookID, copies int) error
	GetLine(ctx context.Context, orderID, bookID int) (*models.BookOrder, error)
	IncrementLineCopies(ctx context.Context, orderID, bookID int) error
	DecrementLineCopies(ctx context.Context, orderID, bookID int) error
	ListActiveLines(ctx context.Context, customerID int) ([]models.OrderLineView, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id int) (*models.Author, error)
	GetAll(ctx context.Context) ([]models.Author, error)
}

type PublisherRepository interface {
	Create(ctx context.Context, publisher *models.Publisher) error
	GetByID(ctx context.Context, id int) (*models.Publisher, error)
	GetAll(ctx context.Context) ([]models.Publisher, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByUserAndBook(ctx context.Context, userID, bookID int) (*models.Rating, error)
	AverageForBook(ctx context.Context, bookID int) (float64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int) (*models.Review, error)
	GetByBook(ctx context.Context, bookID int) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int) error
}

type StockMovementRepository interface {
	Record(ctx context.Context, movement *models.StockMovement) error
	GetByBook(ctx context.Context, bookID int) ([]models.StockMovement, error)
	GetByOrder(ctx context.Context, orderID int) ([]models.StockMovement, error)
}
