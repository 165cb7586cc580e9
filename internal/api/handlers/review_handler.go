package handlers

import (
	"net/http"
	"strconv"

	"bookstore-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	reviews service.ReviewServiceInterface
}

func NewReviewHandler(reviews service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type ReviewCreateRequest struct {
	BookID int    `json:"book_id"`
	UserID int    `json:"user_id"`
	Body   string `json:"body"`
}

type ReviewUpdateRequest struct {
	UserID int    `json:"user_id"`
	Body   string `json:"body"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ReviewCreateRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	review, err := h.reviews.AddReview(r.Context(), req.BookID, req.UserID, req.Body)
	if err != nil {
		writeServiceError(w, err, "failed to create review")
		return
	}

	w.Header().Set("Location", "/reviews/"+strconv.Itoa(review.ReviewID))
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid review id", nil)
		return
	}

	var req ReviewUpdateRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if err := h.reviews.UpdateReview(r.Context(), id, req.UserID, req.Body); err != nil {
		writeServiceError(w, err, "failed to update review")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid review id", nil)
		return
	}

	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_input", "user_id is required", nil)
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), id, userID); err != nil {
		writeServiceError(w, err, "failed to delete review")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ReviewHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")

	bookID, err := strconv.Atoi(idStr)
	if err != nil || bookID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	reviews, err := h.reviews.ListBookReviews(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err, "failed to list reviews")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}
