package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

// Handler exposes stock movement operations over HTTP.
type Handler struct {
	Svc *Service
}

// RecordMovement handles POST /inventory/movements.
func (h *Handler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inventory service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var payload struct {
		ProductID string `json:"productId"`
		Type      string `json:"type"`
		Quantity  int    `json:"quantity"`
		Reference string `json:"reference"`
		Notes     string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	payload.ProductID = strings.TrimSpace(payload.ProductID)
	payload.Type = strings.ToLower(strings.TrimSpace(payload.Type))
	if payload.ProductID == "" {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "productId is required", nil)
		return
	}
	product, movement, err := h.Svc.RecordMovement(r.Context(), userID, MovementInput{
		ProductID: payload.ProductID,
		Type:      payload.Type,
		Quantity:  payload.Quantity,
		Reference: strings.TrimSpace(payload.Reference),
		Notes:     strings.TrimSpace(payload.Notes),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := map[string]any{
		"product": productView(product),
	}
	if movement.ID.Valid {
		resp["movement"] = movementView(movement)
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": resp})
}

// ListMovements handles GET /inventory/products/{productId}/movements.
func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inventory service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	productID := chi.URLParam(r, "productId")
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	movements, err := h.Svc.Movements(r.Context(), userID, productID, int32(limit), int32(offset))
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]map[string]any, 0, len(movements))
	for _, m := range movements {
		views = append(views, movementView(m))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}

// RecentMovements handles GET /inventory/movements. The response carries the
// newest ledger entries across all products plus per-type totals for the
// requested window.
func (h *Handler) RecentMovements(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inventory service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 200 {
		limit = 20
	}
	days := queryInt(r, "days", 30)
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	movements, err := h.Svc.RecentMovements(r.Context(), userID, int32(limit))
	if err != nil {
		h.writeError(w, err)
		return
	}
	totals, err := h.Svc.MovementTotals(r.Context(), userID, since)
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]map[string]any, 0, len(movements))
	for _, m := range movements {
		views = append(views, recentMovementView(m))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"movements": views,
		"totals":    totals,
		"since":     since,
	}})
}

// LowStock handles GET /inventory/low-stock.
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inventory service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	products, err := h.Svc.LowStock(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]map[string]any, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}

func productView(p dbgen.Product) map[string]any {
	return map[string]any{
		"id":            cart.UUIDString(p.ID),
		"name":          p.Name,
		"sku":           p.Sku,
		"stockQuantity": p.StockQuantity,
		"minStockLevel": p.MinStockLevel,
		"stockState":    Classify(p.StockQuantity, p.MinStockLevel),
	}
}

func movementView(m dbgen.StockMovement) map[string]any {
	view := map[string]any{
		"id":        cart.UUIDString(m.ID),
		"productId": cart.UUIDString(m.ProductID),
		"type":      m.MovementType,
		"quantity":  m.Quantity,
	}
	if m.Reference.Valid {
		view["reference"] = m.Reference.String
	}
	if m.Notes.Valid {
		view["notes"] = m.Notes.String
	}
	if m.CreatedAt.Valid {
		view["createdAt"] = m.CreatedAt.Time
	}
	return view
}

func recentMovementView(m dbgen.ListRecentStockMovementsRow) map[string]any {
	view := map[string]any{
		"id":          cart.UUIDString(m.ID),
		"productId":   cart.UUIDString(m.ProductID),
		"productName": m.ProductName,
		"type":        m.MovementType,
		"quantity":    m.Quantity,
	}
	if m.Reference.Valid {
		view["reference"] = m.Reference.String
	}
	if m.Notes.Valid {
		view["notes"] = m.Notes.String
	}
	if m.CreatedAt.Valid {
		view["createdAt"] = m.CreatedAt.Time
	}
	return view
}

func queryInt(r *http.Request, key string, fallback int) int {
	return common.AtoiDefault(strings.TrimSpace(r.URL.Query().Get(key)), fallback)
}
