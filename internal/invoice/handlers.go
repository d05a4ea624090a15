package invoice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

// Handler exposes invoice endpoints.
type Handler struct {
	Svc      *Service
	Q        *dbgen.Queries
	Validate *validator.Validate
}

// Create handles POST /api/v1/admin/invoices.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var payload Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if err := h.validatePayload(payload, "invalid invoice payload"); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.Svc.Create(r.Context(), userID, payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// CreateFromOrder handles POST /api/v1/admin/invoices/from-order.
func (h *Handler) CreateFromOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var payload FromOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if err := h.validatePayload(payload, "invalid invoice payload"); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.Svc.CreateFromOrder(r.Context(), userID, payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// List handles GET /api/v1/admin/invoices.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, total, err := h.Svc.List(r.Context(), userID, ListFilter{
		Status:     r.URL.Query().Get("status"),
		CustomerID: r.URL.Query().Get("customerId"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Get handles GET /api/v1/admin/invoices/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	detail, err := h.Svc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": detail})
}

// Update handles PUT /api/v1/admin/invoices/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var payload UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if err := h.validatePayload(payload, "invalid invoice payload"); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Svc.Update(r.Context(), userID, chi.URLParam(r, "id"), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// PatchStatus handles PATCH /api/v1/admin/invoices/{id}/status.
func (h *Handler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var payload patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	updated, err := h.Svc.UpdateStatus(r.Context(), userID, chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// PDF handles GET /api/v1/admin/invoices/{id}/pdf.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice queries not configured", nil)
		return
	}
	detail, err := h.Svc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	uID, err := cart.ToUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user id", nil)
		return
	}
	user, err := h.Q.GetUserByID(r.Context(), uID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load business profile", nil)
		return
	}
	data := PDFData{
		BusinessName:  user.BusinessName.String,
		BusinessGSTIN: user.GstNumber.String,
		BusinessState: user.BusinessState.String,
		Invoice:       detail,
	}
	if data.BusinessName == "" {
		data.BusinessName = user.Name
	}
	if cID, err := cart.ToUUID(detail.CustomerID); err == nil {
		if cust, err := h.Q.GetCustomerByID(r.Context(), cID); err == nil {
			data.CustomerName = cust.Name
			data.CustomerGSTIN = cust.Gstin.String
			data.CustomerState = cust.State.String
			data.BillingAddress = cust.BillingAddress.String
			data.ShippingAddress = cust.ShippingAddress.String
		}
	}
	doc, err := RenderPDF(data)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to render invoice pdf", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+detail.InvoiceNumber+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice service not configured", nil)
		return "", false
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return "", false
	}
	return userID, true
}

func (h *Handler) validatePayload(payload any, message string) error {
	if h.Validate == nil {
		return nil
	}
	err := h.Validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return &common.AppError{
			Code:       "VALIDATION_ERROR",
			Message:    message,
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
			Details:    map[string]any{"fields": strings.Join(fields, ", ")},
		}
	}
	return err
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := appErr.Code
		if code == "" {
			code = "INTERNAL"
		}
		var details any
		if appErr.Details != nil {
			details = appErr.Details
		}
		common.JSONError(w, status, code, appErr.Message, details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
