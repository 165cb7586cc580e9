package handlers

import (
	"net/http"
	"strconv"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type BookHandler struct {
	catalog service.CatalogServiceInterface
}

func NewBookHandler(catalog service.CatalogServiceInterface) *BookHandler {
	return &BookHandler{catalog: catalog}
}

type BookCreateRequest struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Year        int     `json:"year"`
	Price       float64 `json:"price"`
	Pages       int     `json:"pages"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
	AuthorID    int     `json:"author_id"`
	PublisherID int     `json:"publisher_id"`
	CategoryIDs []int   `json:"category_ids"`
}

func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get book")
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.ListBooks(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get books")
		return
	}

	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "category is required", nil)
		return
	}

	books, err := h.catalog.BooksByCategory(r.Context(), category)
	if err != nil {
		writeServiceError(w, err, "failed to get books by category")
		return
	}

	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	author := chi.URLParam(r, "author")
	if author == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "author is required", nil)
		return
	}

	books, err := h.catalog.BooksByAuthor(r.Context(), author)
	if err != nil {
		writeServiceError(w, err, "failed to get books by author")
		return
	}

	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) GetByPublisher(w http.ResponseWriter, r *http.Request) {
	publisher := chi.URLParam(r, "publisher")
	if publisher == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "publisher is required", nil)
		return
	}

	books, err := h.catalog.BooksByPublisher(r.Context(), publisher)
	if err != nil {
		writeServiceError(w, err, "failed to get books by publisher")
		return
	}

	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookCreateRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	book := models.Book{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		Price:       req.Price,
		Pages:       req.Pages,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		AuthorID:    req.AuthorID,
		PublisherID: req.PublisherID,
	}

	if err := h.catalog.CreateBook(r.Context(), &book, req.CategoryIDs); err != nil {
		writeServiceError(w, err, "failed to create book")
		return
	}

	w.Header().Set("Location", "/books/"+strconv.Itoa(book.BookID))
	writeJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	var req BookCreateRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	book := models.Book{
		BookID:      id,
		ISBN:        req.ISBN,
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		Price:       req.Price,
		Pages:       req.Pages,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		AuthorID:    req.AuthorID,
		PublisherID: req.PublisherID,
	}

	if err := h.catalog.UpdateBook(r.Context(), &book); err != nil {
		writeServiceError(w, err, "failed to update book")
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	if err := h.catalog.DeleteBook(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete book")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
