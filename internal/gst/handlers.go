package gst

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
)

// Handler exposes GST summary endpoints.
type Handler struct {
	Svc *Service
}

// Summary handles GET /api/v1/admin/gst/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.MonthlySummary(r.Context(), userID, p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// GSTR1 handles GET /api/v1/admin/gst/gstr1.
func (h *Handler) GSTR1(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.BuildGSTR1(r.Context(), userID, p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// GSTR3B handles GET /api/v1/admin/gst/gstr3b.
func (h *Handler) GSTR3B(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.BuildGSTR3B(r.Context(), userID, p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Stored handles GET /api/v1/admin/gst/reports.
func (h *Handler) Stored(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "gst service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := h.Svc.StoredReports(r.Context(), userID, page, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		view := map[string]any{
			"id":         cart.UUIDString(row.ID),
			"reportType": row.ReportType,
			"month":      row.Month,
			"year":       row.Year,
			"totalSales": row.TotalSales,
			"totalTax":   row.TotalTax,
		}
		if row.CreatedAt.Valid {
			view["createdAt"] = row.CreatedAt.Time
		}
		out = append(out, view)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (string, Period, bool) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "gst service not configured", nil)
		return "", Period{}, false
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return "", Period{}, false
	}
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	p, err := ParsePeriod(month, year, time.Now())
	if err != nil {
		h.writeError(w, err)
		return "", Period{}, false
	}
	return userID, p, true
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
