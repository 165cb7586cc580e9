package handlers

import (
	"net/http"
	"strconv"

	"bookstore-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type RatingHandler struct {
	ratings service.RatingServiceInterface
}

func NewRatingHandler(ratings service.RatingServiceInterface) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

type RatingRequest struct {
	BookID int `json:"book_id"`
	UserID int `json:"user_id"`
	Value  int `json:"value"`
}

func (h *RatingHandler) AddOrUpdate(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if err := h.ratings.AddOrUpdateRating(r.Context(), req.BookID, req.UserID, req.Value); err != nil {
		writeServiceError(w, err, "failed to store rating")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rated"})
}

func (h *RatingHandler) Average(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")

	bookID, err := strconv.Atoi(idStr)
	if err != nil || bookID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	avg, err := h.ratings.AverageForBook(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err, "failed to get average rating")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"average": avg})
}
