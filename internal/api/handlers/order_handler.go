package handlers

import (
	"net/http"
	"strconv"

	"bookstore-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders service.OrderServiceInterface
}

func NewOrderHandler(orders service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type OrderRequest struct {
	BookID int `json:"book_id"`
	UserID int `json:"user_id"`
}

// Order is the purchase entry point: it dispatches to first-order,
// add-copy, or add-new-title depending on the customer's current state.
func (h *OrderHandler) Order(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	if req.BookID <= 0 || req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_input", "book_id and user_id are required", nil)
		return
	}

	if err := h.orders.Order(r.Context(), req.BookID, req.UserID); err != nil {
		writeServiceError(w, err, "failed to place order")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ordered"})
}

func (h *OrderHandler) RemoveCopy(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	if req.BookID <= 0 || req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_input", "book_id and user_id are required", nil)
		return
	}

	if err := h.orders.RemoveOneCopy(r.Context(), req.BookID, req.UserID); err != nil {
		writeServiceError(w, err, "failed to remove copy")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *OrderHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "userID")

	userID, err := strconv.Atoi(idStr)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id", nil)
		return
	}

	lines, err := h.orders.ListUserOrders(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to list orders")
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

func (h *OrderHandler) HasStandingOrder(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "userID")

	userID, err := strconv.Atoi(idStr)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id", nil)
		return
	}

	has, err := h.orders.HasStandingOrder(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to probe standing order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"has_standing_order": has})
}

func (h *OrderHandler) HasAnyOrderForBook(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")

	bookID, err := strconv.Atoi(idStr)
	if err != nil || bookID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	has, err := h.orders.HasAnyOrderForBook(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err, "failed to probe orders for book")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"has_orders": has})
}
