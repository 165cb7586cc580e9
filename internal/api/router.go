package api

import (
	"net/http"

	"bookstore-backend/internal/api/handlers"
	"bookstore-backend/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handlers struct {
	Books     *handlers.BookHandler
	Catalog   *handlers.CatalogHandler
	Orders    *handlers.OrderHandler
	Ratings   *handlers.RatingHandler
	Reviews   *handlers.ReviewHandler
	Users     *handlers.UserHandler
	Warehouse *handlers.WarehouseHandler
}

func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.Books.GetAll)
		r.Post("/", h.Books.Create)
		r.Get("/{bookID}", h.Books.GetByID)
		r.Put("/{bookID}", h.Books.Update)
		r.Delete("/{bookID}", h.Books.Delete)
		r.Get("/category/{category}", h.Books.GetByCategory)
		r.Get("/author/{author}", h.Books.GetByAuthor)
		r.Get("/publisher/{publisher}", h.Books.GetByPublisher)
		r.Get("/{bookID}/reviews", h.Reviews.ListByBook)
		r.Get("/{bookID}/rating", h.Ratings.Average)
		r.Get("/{bookID}/ordered", h.Orders.HasAnyOrderForBook)
	})

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", h.Catalog.ListAuthors)
		r.Post("/", h.Catalog.CreateAuthor)
	})

	r.Route("/publishers", func(r chi.Router) {
		r.Get("/", h.Catalog.ListPublishers)
		r.Post("/", h.Catalog.CreatePublisher)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Catalog.ListCategories)
		r.Post("/", h.Catalog.CreateCategory)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.Users.GetAll)
		r.Post("/", h.Users.Create)
		r.Get("/{userID}", h.Users.GetByID)
		r.Put("/{userID}", h.Users.Update)
		r.Delete("/{userID}", h.Users.Delete)
		r.Get("/{userID}/orders", h.Orders.ListUserOrders)
		r.Get("/{userID}/orders/exists", h.Orders.HasStandingOrder)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Orders.Order)
		r.Post("/remove", h.Orders.RemoveCopy)
	})

	r.Post("/ratings", h.Ratings.AddOrUpdate)

	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.Reviews.Create)
		r.Put("/{id}", h.Reviews.Update)
		r.Delete("/{id}", h.Reviews.Delete)
	})

	r.Route("/warehouse", func(r chi.Router) {
		r.Post("/books/{bookID}/restock", h.Warehouse.Restock)
		r.Get("/books/{bookID}/movements", h.Warehouse.StockHistory)
		r.Get("/orders/{orderID}/movements", h.Warehouse.OrderMovements)
	})

	return r
}
