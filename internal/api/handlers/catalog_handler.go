package handlers

import (
	"net/http"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/service"
)

// CatalogHandler covers the admin side of the catalog: authors, publishers
// and categories.
type CatalogHandler struct {
	catalog service.CatalogServiceInterface
}

func NewCatalogHandler(catalog service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type AuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type NameRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req AuthorRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	author := models.Author{FirstName: req.FirstName, LastName: req.LastName}

	if err := h.catalog.CreateAuthor(r.Context(), &author); err != nil {
		writeServiceError(w, err, "failed to create author")
		return
	}

	writeJSON(w, http.StatusCreated, author)
}

func (h *CatalogHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalog.ListAuthors(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get authors")
		return
	}

	writeJSON(w, http.StatusOK, authors)
}

func (h *CatalogHandler) CreatePublisher(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	publisher := models.Publisher{Name: req.Name}

	if err := h.catalog.CreatePublisher(r.Context(), &publisher); err != nil {
		writeServiceError(w, err, "failed to create publisher")
		return
	}

	writeJSON(w, http.StatusCreated, publisher)
}

func (h *CatalogHandler) ListPublishers(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.catalog.ListPublishers(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get publishers")
		return
	}

	writeJSON(w, http.StatusOK, publishers)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	category := models.Category{Name: req.Name}

	if err := h.catalog.CreateCategory(r.Context(), &category); err != nil {
		writeServiceError(w, err, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get categories")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
