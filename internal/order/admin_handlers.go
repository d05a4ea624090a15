package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

// AdminHandler provides administrative order management endpoints.
type AdminHandler struct {
	Q   dbgen.Querier
	Svc *Service
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// PatchStatus updates the order status with state-machine validation.
// Setting the status to cancelled restores the order's stock.
func (h *AdminHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order queries not configured", nil)
		return
	}
	orderID := chi.URLParam(r, "id")
	oID, err := cart.ToUUID(orderID)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	}
	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if !IsValidStatus(req.Status) {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown order status", map[string]any{"status": req.Status})
		return
	}

	if req.Status == StatusCancelled {
		if h.Svc == nil {
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
			return
		}
		updated, err := h.Svc.AdminCancel(r.Context(), orderID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		common.JSON(w, http.StatusOK, map[string]any{"data": orderView(updated)})
		return
	}

	ord, err := h.Q.GetOrderByID(r.Context(), oID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load order", nil)
		return
	}
	if !CanTransition(ord.Status, req.Status) {
		common.JSONError(w, http.StatusConflict, "INVALID_STATE", "status transition not allowed", map[string]any{
			"from": ord.Status,
			"to":   req.Status,
		})
		return
	}
	// The write only lands if the status is still the one the transition was
	// checked against.
	updated, err := h.Q.UpdateOrderStatus(r.Context(), dbgen.UpdateOrderStatusParams{
		Status:        req.Status,
		ID:            ord.ID,
		CurrentStatus: ord.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			h.writeError(w, statusConflict(ord.Status, req.Status))
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update order", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": orderView(updated)})
}

func (h *AdminHandler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update order", nil)
}
