package report

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/noah-isme/backend-gstbill/internal/common"
)

// Handler exposes reporting endpoints.
type Handler struct {
	Svc *Service
}

// Sales handles GET /api/v1/admin/reports/sales.
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	userID, rng, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.SalesReport(r.Context(), userID, rng)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// TopProducts handles GET /api/v1/admin/reports/top-products.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	userID, rng, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := h.Svc.TopProducts(r.Context(), userID, rng, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Inventory handles GET /api/v1/admin/reports/inventory.
func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "report service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	out, err := h.Svc.InventoryReport(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (string, Range, bool) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "report service not configured", nil)
		return "", Range{}, false
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return "", Range{}, false
	}
	rng, err := ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"), time.Now())
	if err != nil {
		h.writeError(w, err)
		return "", Range{}, false
	}
	return userID, rng, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
