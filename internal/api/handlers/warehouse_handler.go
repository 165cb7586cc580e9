package handlers

import (
	"net/http"
	"strconv"

	"bookstore-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type WarehouseHandler struct {
	warehouse service.WarehouseServiceInterface
}

func NewWarehouseHandler(warehouse service.WarehouseServiceInterface) *WarehouseHandler {
	return &WarehouseHandler{warehouse: warehouse}
}

type RestockRequest struct {
	Copies int `json:"copies"`
}

func (h *WarehouseHandler) Restock(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")

	bookID, err := strconv.Atoi(idStr)
	if err != nil || bookID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	var req RestockRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if err := h.warehouse.Restock(r.Context(), bookID, req.Copies); err != nil {
		writeServiceError(w, err, "failed to restock book")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "restocked"})
}

func (h *WarehouseHandler) StockHistory(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "bookID")

	bookID, err := strconv.Atoi(idStr)
	if err != nil || bookID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid book id", nil)
		return
	}

	movements, err := h.warehouse.StockHistory(r.Context(), bookID)
	if err != nil {
		writeServiceError(w, err, "failed to get stock history")
		return
	}

	writeJSON(w, http.StatusOK, movements)
}

func (h *WarehouseHandler) OrderMovements(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "orderID")

	orderID, err := strconv.Atoi(idStr)
	if err != nil || orderID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid order id", nil)
		return
	}

	movements, err := h.warehouse.OrderMovements(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, "failed to get order movements")
		return
	}

	writeJSON(w, http.StatusOK, movements)
}
