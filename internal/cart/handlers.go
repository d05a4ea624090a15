package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/pricing"
)

// Handler wires cart services to HTTP.
type Handler struct {
	Q        *dbgen.Queries
	Svc      *Service
	Currency string
}

// Get returns the user's cart contents together with a GST totals preview.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	cart, err := h.Svc.EnsureCart(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.renderCart(w, r, cart)
}

func (h *Handler) renderCart(w http.ResponseWriter, r *http.Request, cart dbgen.Cart) {
	items, err := h.Q.ListCartItems(r.Context(), cart.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load cart items", nil)
		return
	}
	intra, err := h.Svc.IntraState(r.Context(), cart)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to resolve tax jurisdiction", nil)
		return
	}

	responseItems := make([]map[string]any, 0, len(items))
	pricingItems := make([]pricing.Item, 0, len(items))
	for _, it := range items {
		responseItems = append(responseItems, map[string]any{
			"id":         UUIDString(it.ID),
			"productId":  UUIDString(it.ProductID),
			"name":       it.ProductName,
			"qty":        it.Qty,
			"unitPrice":  it.UnitPrice,
			"gstRateBps": it.GstRateBps,
			"lineTotal":  pricing.LineTotal(int(it.Qty), it.UnitPrice),
		})
		pricingItems = append(pricingItems, pricing.Item{
			Qty:        int(it.Qty),
			UnitPrice:  pricing.Money(it.UnitPrice),
			GSTRateBps: int(it.GstRateBps),
		})
	}
	summary := pricing.Compute(pricingItems, intra)

	var customerID *string
	if cart.CustomerID.Valid {
		s := UUIDString(cart.CustomerID)
		customerID = &s
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"id":         UUIDString(cart.ID),
			"customerId": customerID,
			"items":      responseItems,
			"intraState": intra,
			"pricing": map[string]any{
				"subtotal": summary.Subtotal,
				"cgst":     summary.CGST,
				"sgst":     summary.SGST,
				"igst":     summary.IGST,
				"total":    summary.Total,
			},
			"currency": h.Currency,
		},
	})
}

// AssignCustomer attaches or detaches the cart's customer.
func (h *Handler) AssignCustomer(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var payload struct {
		CustomerID string `json:"customerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	cart, err := h.Svc.AssignCustomer(r.Context(), userID, strings.TrimSpace(payload.CustomerID))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.renderCart(w, r, cart)
}

// AddItem adds or increments a cart line item.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var payload struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "productId is required", nil)
		return
	}
	if payload.Qty <= 0 {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "qty must be positive", nil)
		return
	}
	if err := h.Svc.AddItem(r.Context(), userID, payload.ProductID, payload.Qty); err != nil {
		h.writeError(w, err)
		return
	}
	h.Get(w, r)
}

// UpdateItem updates the quantity for a cart line item. A zero quantity
// removes the line.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	itemID := chi.URLParam(r, "itemId")
	var payload struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if err := h.Svc.UpdateQty(r.Context(), userID, itemID, payload.Qty); err != nil {
		h.writeError(w, err)
		return
	}
	h.Get(w, r)
}

// RemoveItem deletes a cart line item.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	itemID := chi.URLParam(r, "itemId")
	if err := h.Svc.RemoveItem(r.Context(), userID, itemID); err != nil {
		h.writeError(w, err)
		return
	}
	h.Get(w, r)
}

// Clear removes every line from the user's cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	if err := h.Svc.Clear(r.Context(), userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.Get(w, r)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "VALIDATION_ERROR"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
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
