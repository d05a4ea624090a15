package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/inventory"
	"github.com/noah-isme/backend-gstbill/internal/lock"
	"github.com/noah-isme/backend-gstbill/internal/obs"
	"github.com/noah-isme/backend-gstbill/internal/pricing"
)

const numberLockTTL = 10 * time.Second

// Service creates and manages GST invoices. Invoice numbers are allocated
// sequentially per business under a redis lock so concurrent creates cannot
// skip or duplicate a number.
type Service struct {
	Q       *dbgen.Queries
	Pool    *pgxpool.Pool
	Locker  lock.Locker
	Prefix  string
	DueDays int
}

// ItemInput is one invoice line. UnitPrice and GSTRateBps default to the
// customer-specific price (if set) and the product's rate.
type ItemInput struct {
	ProductID   string `json:"productId" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Qty         int32  `json:"qty" validate:"required,gt=0"`
	UnitPrice   *int64 `json:"unitPrice" validate:"omitempty,gte=0"`
	GSTRateBps  *int32 `json:"gstRateBps" validate:"omitempty,gte=0,lte=10000"`
}

// Input carries a direct invoice creation payload.
type Input struct {
	CustomerID    string         `json:"customerId" validate:"required"`
	InvoiceDate   string         `json:"invoiceDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string         `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Status        string         `json:"status" validate:"omitempty,oneof=draft pending"`
	PaymentTerms  string         `json:"paymentTerms" validate:"omitempty,max=200"`
	Notes         string         `json:"notes" validate:"omitempty,max=1000"`
	CustomColumns map[string]any `json:"customColumns"`
	Items         []ItemInput    `json:"items" validate:"required,min=1,dive"`
}

// FromOrderInput carries the payload for invoicing an existing order.
type FromOrderInput struct {
	OrderID       string         `json:"orderId" validate:"required"`
	DueDate       string         `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentTerms  string         `json:"paymentTerms" validate:"omitempty,max=200"`
	Notes         string         `json:"notes" validate:"omitempty,max=1000"`
	CustomColumns map[string]any `json:"customColumns"`
}

// UpdateInput replaces an editable invoice's lines and metadata.
type UpdateInput struct {
	DueDate       string         `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentTerms  string         `json:"paymentTerms" validate:"omitempty,max=200"`
	Notes         string         `json:"notes" validate:"omitempty,max=1000"`
	CustomColumns map[string]any `json:"customColumns"`
	Items         []ItemInput    `json:"items" validate:"required,min=1,dive"`
}

// View is the API representation of an invoice.
type View struct {
	ID            string         `json:"id"`
	InvoiceNumber string         `json:"invoiceNumber"`
	CustomerID    string         `json:"customerId"`
	OrderID       string         `json:"orderId,omitempty"`
	InvoiceDate   string         `json:"invoiceDate,omitempty"`
	DueDate       string         `json:"dueDate,omitempty"`
	Subtotal      int64          `json:"subtotal"`
	CGST          int64          `json:"cgst"`
	SGST          int64          `json:"sgst"`
	IGST          int64          `json:"igst"`
	Total         int64          `json:"total"`
	Status        string         `json:"status"`
	PaymentTerms  string         `json:"paymentTerms,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	CustomColumns map[string]any `json:"customColumns,omitempty"`
	Items         []ItemView     `json:"items,omitempty"`
}

// ItemView is one rendered invoice line.
type ItemView struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId,omitempty"`
	Description string `json:"description"`
	Qty         int32  `json:"qty"`
	UnitPrice   int64  `json:"unitPrice"`
	GSTRateBps  int32  `json:"gstRateBps"`
	GSTAmount   int64  `json:"gstAmount"`
	Total       int64  `json:"total"`
}

type resolvedItem struct {
	ProductID   pgtype.UUID
	Description string
	Qty         int32
	UnitPrice   int64
	RateBps     int32
	GSTAmount   int64
	Total       int64
}

// Create issues a direct invoice. Stock is decremented and an "out" movement
// written per line, referencing the invoice number.
func (s *Service) Create(ctx context.Context, userID string, in Input) (View, error) {
	var out View
	err := s.withNumberLock(ctx, userID, func(ctx context.Context) error {
		v, err := s.create(ctx, userID, in)
		out = v
		return err
	})
	if obs.InvoicesIssuedTotal != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		obs.InvoicesIssuedTotal.WithLabelValues(result).Inc()
	}
	return out, err
}

func (s *Service) create(ctx context.Context, userID string, in Input) (View, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return View{}, badRequest("invalid user id")
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	customCols, err := marshalCustomColumns(in.CustomColumns)
	if err != nil {
		return View{}, badRequest("invalid custom columns")
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return View{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	cust, intra, err := s.customerSplit(ctx, qtx, uID, in.CustomerID)
	if err != nil {
		return View{}, err
	}

	seq, err := qtx.NextDocumentNumber(ctx, dbgen.NextDocumentNumberParams{UserID: uID, Kind: "invoice"})
	if err != nil {
		return View{}, err
	}
	number := fmt.Sprintf("%s-%04d", s.prefix(), seq)

	resolved, summary, err := s.resolveItems(ctx, qtx, uID, cust.ID, intra, in.Items)
	if err != nil {
		return View{}, err
	}
	if err := decrementStock(ctx, qtx, resolved, number); err != nil {
		return View{}, err
	}

	invoiceDate := dateOrToday(in.InvoiceDate)
	inv, err := qtx.CreateInvoice(ctx, dbgen.CreateInvoiceParams{
		UserID:        uID,
		CustomerID:    cust.ID,
		InvoiceNumber: number,
		InvoiceDate:   invoiceDate,
		DueDate:       s.dueDate(in.DueDate, invoiceDate),
		Subtotal:      summary.Subtotal,
		CgstAmount:    summary.CGST,
		SgstAmount:    summary.SGST,
		IgstAmount:    summary.IGST,
		TotalAmount:   summary.Total,
		Status:        status,
		PaymentTerms:  optionalText(in.PaymentTerms),
		Notes:         optionalText(in.Notes),
		CustomColumns: customCols,
	})
	if err != nil {
		return View{}, err
	}
	items, err := insertItems(ctx, qtx, inv.ID, resolved)
	if err != nil {
		return View{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return View{}, err
	}
	return toView(inv, items), nil
}

// CreateFromOrder issues an invoice for an existing order. Stock was already
// decremented at checkout, so only the invoice rows are written.
func (s *Service) CreateFromOrder(ctx context.Context, userID string, in FromOrderInput) (View, error) {
	var out View
	err := s.withNumberLock(ctx, userID, func(ctx context.Context) error {
		v, err := s.createFromOrder(ctx, userID, in)
		out = v
		return err
	})
	if obs.InvoicesIssuedTotal != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		obs.InvoicesIssuedTotal.WithLabelValues(result).Inc()
	}
	return out, err
}

func (s *Service) createFromOrder(ctx context.Context, userID string, in FromOrderInput) (View, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return View{}, badRequest("invalid user id")
	}
	oID, err := cart.ToUUID(in.OrderID)
	if err != nil {
		return View{}, notFound("order not found")
	}
	customCols, err := marshalCustomColumns(in.CustomColumns)
	if err != nil {
		return View{}, badRequest("invalid custom columns")
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return View{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	ord, err := qtx.GetOrderByID(ctx, oID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return View{}, notFound("order not found")
		}
		return View{}, err
	}
	if !cart.UUIDEqual(ord.UserID, uID) {
		return View{}, notFound("order not found")
	}
	if ord.Status == "cancelled" {
		return View{}, invalidState("cannot invoice a cancelled order", ord.Status)
	}

	_, intra, err := s.customerSplit(ctx, qtx, uID, cart.UUIDString(ord.CustomerID))
	if err != nil {
		return View{}, err
	}

	orderItems, err := qtx.ListOrderItems(ctx, ord.ID)
	if err != nil {
		return View{}, err
	}
	if len(orderItems) == 0 {
		return View{}, badRequest("order has no items")
	}
	resolved := make([]resolvedItem, 0, len(orderItems))
	var summary pricing.Summary
	for _, it := range orderItems {
		rate := int32(0)
		if product, err := qtx.GetProductByID(ctx, it.ProductID); err == nil {
			rate = product.GstRateBps
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return View{}, err
		}
		line := pricing.LineTotal(int(it.Qty), it.UnitPrice)
		split := pricing.SplitGST(line, int(rate), intra)
		gst := split.CGST + split.SGST + split.IGST
		resolved = append(resolved, resolvedItem{
			ProductID:   it.ProductID,
			Description: it.Name,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			RateBps:     rate,
			GSTAmount:   gst,
			Total:       line + gst,
		})
		summary.Subtotal += line
		summary.CGST += split.CGST
		summary.SGST += split.SGST
		summary.IGST += split.IGST
	}
	summary.Total = summary.Subtotal + summary.CGST + summary.SGST + summary.IGST

	seq, err := qtx.NextDocumentNumber(ctx, dbgen.NextDocumentNumberParams{UserID: uID, Kind: "invoice"})
	if err != nil {
		return View{}, err
	}
	number := fmt.Sprintf("%s-%04d", s.prefix(), seq)

	invoiceDate := dateOrToday("")
	inv, err := qtx.CreateInvoice(ctx, dbgen.CreateInvoiceParams{
		UserID:        uID,
		CustomerID:    ord.CustomerID,
		OrderID:       ord.ID,
		InvoiceNumber: number,
		InvoiceDate:   invoiceDate,
		DueDate:       s.dueDate(in.DueDate, invoiceDate),
		Subtotal:      summary.Subtotal,
		CgstAmount:    summary.CGST,
		SgstAmount:    summary.SGST,
		IgstAmount:    summary.IGST,
		TotalAmount:   summary.Total,
		Status:        StatusPending,
		PaymentTerms:  optionalText(in.PaymentTerms),
		Notes:         optionalText(in.Notes),
		CustomColumns: customCols,
	})
	if err != nil {
		return View{}, err
	}
	items, err := insertItems(ctx, qtx, inv.ID, resolved)
	if err != nil {
		return View{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return View{}, err
	}
	return toView(inv, items), nil
}

// Update replaces the lines of an editable direct invoice. The old lines'
// stock is returned with compensating "in" movements before the new lines
// are decremented. The GST split is re-derived from the customer's current
// state, not from the amounts stored on the invoice.
func (s *Service) Update(ctx context.Context, userID, invoiceID string, in UpdateInput) (View, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return View{}, badRequest("invalid user id")
	}
	customCols, err := marshalCustomColumns(in.CustomColumns)
	if err != nil {
		return View{}, badRequest("invalid custom columns")
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return View{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	inv, err := s.ownedTx(ctx, qtx, uID, invoiceID)
	if err != nil {
		return View{}, err
	}
	if !Editable(inv.Status) {
		return View{}, invalidState("invoice can no longer be edited", inv.Status)
	}
	if inv.OrderID.Valid {
		return View{}, invalidState("order-backed invoices cannot be edited", inv.Status)
	}

	oldItems, err := qtx.ListInvoiceItems(ctx, inv.ID)
	if err != nil {
		return View{}, err
	}
	for _, it := range oldItems {
		if !it.ProductID.Valid {
			continue
		}
		if _, err := qtx.IncrementProductStock(ctx, dbgen.IncrementProductStockParams{
			ID:       it.ProductID,
			Quantity: it.Qty,
		}); err != nil {
			return View{}, err
		}
		if _, err := qtx.CreateStockMovement(ctx, dbgen.CreateStockMovementParams{
			ProductID:    it.ProductID,
			MovementType: inventory.MovementIn,
			Quantity:     it.Qty,
			Reference:    pgtype.Text{String: inv.InvoiceNumber, Valid: true},
			Notes:        pgtype.Text{String: "invoice edited", Valid: true},
		}); err != nil {
			return View{}, err
		}
	}
	if err := qtx.DeleteInvoiceItems(ctx, inv.ID); err != nil {
		return View{}, err
	}

	_, intra, err := s.customerSplit(ctx, qtx, uID, cart.UUIDString(inv.CustomerID))
	if err != nil {
		return View{}, err
	}
	resolved, summary, err := s.resolveItems(ctx, qtx, uID, inv.CustomerID, intra, in.Items)
	if err != nil {
		return View{}, err
	}
	if err := decrementStock(ctx, qtx, resolved, inv.InvoiceNumber); err != nil {
		return View{}, err
	}

	dueDate := inv.DueDate
	if in.DueDate != "" {
		dueDate = parseDate(in.DueDate)
	}
	updated, err := qtx.UpdateInvoice(ctx, dbgen.UpdateInvoiceParams{
		ID:            inv.ID,
		DueDate:       dueDate,
		Subtotal:      summary.Subtotal,
		CgstAmount:    summary.CGST,
		SgstAmount:    summary.SGST,
		IgstAmount:    summary.IGST,
		TotalAmount:   summary.Total,
		PaymentTerms:  optionalText(in.PaymentTerms),
		Notes:         optionalText(in.Notes),
		CustomColumns: customCols,
	})
	if err != nil {
		return View{}, err
	}
	items, err := insertItems(ctx, qtx, updated.ID, resolved)
	if err != nil {
		return View{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return View{}, err
	}
	return toView(updated, items), nil
}

// UpdateStatus moves the invoice through its lifecycle. Cancelling a direct
// invoice restores its stock; order-backed invoices leave stock to the order.
func (s *Service) UpdateStatus(ctx context.Context, userID, invoiceID, target string) (View, error) {
	if !IsValidStatus(target) {
		return View{}, badRequest("unknown invoice status")
	}
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return View{}, badRequest("invalid user id")
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return View{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	inv, err := s.ownedTx(ctx, qtx, uID, invoiceID)
	if err != nil {
		return View{}, err
	}
	if !CanTransition(inv.Status, target) {
		return View{}, invalidState("status transition not allowed", inv.Status)
	}

	if target == StatusCancelled && !inv.OrderID.Valid {
		items, err := qtx.ListInvoiceItems(ctx, inv.ID)
		if err != nil {
			return View{}, err
		}
		for _, it := range items {
			if !it.ProductID.Valid {
				continue
			}
			if _, err := qtx.IncrementProductStock(ctx, dbgen.IncrementProductStockParams{
				ID:       it.ProductID,
				Quantity: it.Qty,
			}); err != nil {
				return View{}, err
			}
			if _, err := qtx.CreateStockMovement(ctx, dbgen.CreateStockMovementParams{
				ProductID:    it.ProductID,
				MovementType: inventory.MovementIn,
				Quantity:     it.Qty,
				Reference:    pgtype.Text{String: inv.InvoiceNumber, Valid: true},
				Notes:        pgtype.Text{String: "invoice cancelled", Valid: true},
			}); err != nil {
				return View{}, err
			}
		}
	}

	updated, err := qtx.UpdateInvoiceStatus(ctx, dbgen.UpdateInvoiceStatusParams{ID: inv.ID, Status: target})
	if err != nil {
		return View{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return View{}, err
	}
	if obs.InvoiceStatusTotal != nil {
		obs.InvoiceStatusTotal.WithLabelValues(target).Inc()
	}
	return toView(updated, nil), nil
}

// Get returns one invoice with its lines.
func (s *Service) Get(ctx context.Context, userID, invoiceID string) (View, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return View{}, badRequest("invalid user id")
	}
	inv, err := s.ownedTx(ctx, s.Q, uID, invoiceID)
	if err != nil {
		return View{}, err
	}
	items, err := s.Q.ListInvoiceItems(ctx, inv.ID)
	if err != nil {
		return View{}, err
	}
	return toView(inv, items), nil
}

// ListFilter narrows List results.
type ListFilter struct {
	Status     string
	CustomerID string
	Page       int
	Limit      int
}

// List pages through the user's invoices, newest first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]View, int64, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return nil, 0, badRequest("invalid user id")
	}
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, badRequest("unknown invoice status")
	}
	var custID pgtype.UUID
	if filter.CustomerID != "" {
		custID, err = cart.ToUUID(filter.CustomerID)
		if err != nil {
			return nil, 0, badRequest("invalid customer id")
		}
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.Q.ListInvoices(ctx, dbgen.ListInvoicesParams{
		UserID:     uID,
		Status:     optionalText(filter.Status),
		CustomerID: custID,
		Limit:      int32(limit),
		Offset:     int32((page - 1) * limit),
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Q.CountInvoices(ctx, dbgen.CountInvoicesParams{
		UserID:     uID,
		Status:     optionalText(filter.Status),
		CustomerID: custID,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]View, 0, len(rows))
	for _, inv := range rows {
		out = append(out, toView(inv, nil))
	}
	return out, total, nil
}

// MarkOverdue flips pending invoices past their due date to overdue. Used by
// the worker sweep.
func (s *Service) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	rows, err := s.Q.MarkInvoicesOverdue(ctx, pgtype.Date{Time: asOf, Valid: true})
	if err != nil {
		return 0, err
	}
	if obs.InvoiceStatusTotal != nil && len(rows) > 0 {
		obs.InvoiceStatusTotal.WithLabelValues(StatusOverdue).Add(float64(len(rows)))
	}
	return len(rows), nil
}

type invoiceQuerier interface {
	GetInvoiceByID(ctx context.Context, id pgtype.UUID) (dbgen.Invoice, error)
}

func (s *Service) ownedTx(ctx context.Context, q invoiceQuerier, uID pgtype.UUID, invoiceID string) (dbgen.Invoice, error) {
	iID, err := cart.ToUUID(invoiceID)
	if err != nil {
		return dbgen.Invoice{}, notFound("invoice not found")
	}
	inv, err := q.GetInvoiceByID(ctx, iID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Invoice{}, notFound("invoice not found")
		}
		return dbgen.Invoice{}, err
	}
	if !cart.UUIDEqual(inv.UserID, uID) {
		return dbgen.Invoice{}, notFound("invoice not found")
	}
	return inv, nil
}

type partyQuerier interface {
	GetCustomerByID(ctx context.Context, id pgtype.UUID) (dbgen.Customer, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (dbgen.User, error)
}

// customerSplit loads an owned active customer and decides the GST split
// against the business state.
func (s *Service) customerSplit(ctx context.Context, qtx partyQuerier, uID pgtype.UUID, customerID string) (dbgen.Customer, bool, error) {
	cID, err := cart.ToUUID(customerID)
	if err != nil {
		return dbgen.Customer{}, false, notFound("customer not found")
	}
	cust, err := qtx.GetCustomerByID(ctx, cID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Customer{}, false, notFound("customer not found")
		}
		return dbgen.Customer{}, false, err
	}
	if !cart.UUIDEqual(cust.UserID, uID) || !cust.IsActive {
		return dbgen.Customer{}, false, notFound("customer not found")
	}
	user, err := qtx.GetUserByID(ctx, uID)
	if err != nil {
		return dbgen.Customer{}, false, err
	}
	return cust, cart.SameState(user.BusinessState, cust.State), nil
}

func (s *Service) resolveItems(ctx context.Context, qtx *dbgen.Queries, uID, customerID pgtype.UUID, intra bool, items []ItemInput) ([]resolvedItem, pricing.Summary, error) {
	resolved := make([]resolvedItem, 0, len(items))
	var summary pricing.Summary
	for _, in := range items {
		if in.Qty <= 0 {
			return nil, pricing.Summary{}, badRequest("item quantity must be positive")
		}
		pID, err := cart.ToUUID(in.ProductID)
		if err != nil {
			return nil, pricing.Summary{}, badRequest("invalid product id")
		}
		product, err := qtx.GetProductByID(ctx, pID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, pricing.Summary{}, notFound("product not found")
			}
			return nil, pricing.Summary{}, err
		}
		if !cart.UUIDEqual(product.UserID, uID) || !product.IsActive {
			return nil, pricing.Summary{}, notFound("product not found")
		}

		unitPrice := product.Price
		if cp, err := qtx.GetCustomerPrice(ctx, dbgen.GetCustomerPriceParams{
			CustomerID: customerID,
			ProductID:  pID,
		}); err == nil {
			unitPrice = cp.Price
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, pricing.Summary{}, err
		}
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		rate := product.GstRateBps
		if in.GSTRateBps != nil {
			rate = *in.GSTRateBps
		}
		description := strings.TrimSpace(in.Description)
		if description == "" {
			description = product.Name
		}

		line := pricing.LineTotal(int(in.Qty), unitPrice)
		split := pricing.SplitGST(line, int(rate), intra)
		gst := split.CGST + split.SGST + split.IGST
		resolved = append(resolved, resolvedItem{
			ProductID:   pID,
			Description: description,
			Qty:         in.Qty,
			UnitPrice:   unitPrice,
			RateBps:     rate,
			GSTAmount:   gst,
			Total:       line + gst,
		})
		summary.Subtotal += line
		summary.CGST += split.CGST
		summary.SGST += split.SGST
		summary.IGST += split.IGST
	}
	summary.Total = summary.Subtotal + summary.CGST + summary.SGST + summary.IGST
	return resolved, summary, nil
}

func decrementStock(ctx context.Context, qtx *dbgen.Queries, items []resolvedItem, reference string) error {
	for _, it := range items {
		if _, err := qtx.DecrementProductStock(ctx, dbgen.DecrementProductStockParams{
			ID:       it.ProductID,
			Quantity: it.Qty,
		}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				if obs.StockRejectionsTotal != nil {
					obs.StockRejectionsTotal.Inc()
				}
				current, lookupErr := qtx.GetProductByID(ctx, it.ProductID)
				available := int32(0)
				if lookupErr == nil {
					available = current.StockQuantity
				}
				appErr := inventory.InsufficientStock(available, int(it.Qty))
				appErr.Details["productId"] = cart.UUIDString(it.ProductID)
				appErr.Details["productName"] = it.Description
				return appErr
			}
			return err
		}
		if _, err := qtx.CreateStockMovement(ctx, dbgen.CreateStockMovementParams{
			ProductID:    it.ProductID,
			MovementType: inventory.MovementOut,
			Quantity:     it.Qty,
			Reference:    pgtype.Text{String: reference, Valid: true},
		}); err != nil {
			return err
		}
	}
	return nil
}

func insertItems(ctx context.Context, qtx *dbgen.Queries, invoiceID pgtype.UUID, items []resolvedItem) ([]dbgen.InvoiceItem, error) {
	out := make([]dbgen.InvoiceItem, 0, len(items))
	for _, it := range items {
		row, err := qtx.CreateInvoiceItem(ctx, dbgen.CreateInvoiceItemParams{
			InvoiceID:   invoiceID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			GstRateBps:  it.RateBps,
			GstAmount:   it.GSTAmount,
			Total:       it.Total,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Service) withNumberLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	if s == nil || s.Q == nil || s.Pool == nil {
		return errors.New("invoice service not configured")
	}
	if s.Locker.R == nil {
		return fn(ctx)
	}
	return s.Locker.WithLock(ctx, "lock:invoice-number:"+userID, numberLockTTL, fn)
}

func (s *Service) prefix() string {
	if s.Prefix == "" {
		return "INV"
	}
	return s.Prefix
}

func toView(inv dbgen.Invoice, items []dbgen.InvoiceItem) View {
	v := View{
		ID:            cart.UUIDString(inv.ID),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    cart.UUIDString(inv.CustomerID),
		Subtotal:      inv.Subtotal,
		CGST:          inv.CgstAmount,
		SGST:          inv.SgstAmount,
		IGST:          inv.IgstAmount,
		Total:         inv.TotalAmount,
		Status:        inv.Status,
		PaymentTerms:  inv.PaymentTerms.String,
		Notes:         inv.Notes.String,
	}
	if inv.OrderID.Valid {
		v.OrderID = cart.UUIDString(inv.OrderID)
	}
	if inv.InvoiceDate.Valid {
		v.InvoiceDate = inv.InvoiceDate.Time.Format("2006-01-02")
	}
	if inv.DueDate.Valid {
		v.DueDate = inv.DueDate.Time.Format("2006-01-02")
	}
	if len(inv.CustomColumns) > 0 {
		var cols map[string]any
		if err := json.Unmarshal(inv.CustomColumns, &cols); err == nil {
			v.CustomColumns = cols
		}
	}
	for _, it := range items {
		iv := ItemView{
			ID:          cart.UUIDString(it.ID),
			Description: it.Description,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			GSTRateBps:  it.GstRateBps,
			GSTAmount:   it.GstAmount,
			Total:       it.Total,
		}
		if it.ProductID.Valid {
			iv.ProductID = cart.UUIDString(it.ProductID)
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

func marshalCustomColumns(cols map[string]any) ([]byte, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	return json.Marshal(cols)
}

func parseDate(value string) pgtype.Date {
	if value == "" {
		return pgtype.Date{}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t, Valid: true}
}

// dueDate resolves the due date, falling back to invoiceDate plus the
// configured payment window when none is supplied.
func (s *Service) dueDate(value string, invoiceDate pgtype.Date) pgtype.Date {
	if d := parseDate(value); d.Valid {
		return d
	}
	if s.DueDays <= 0 || !invoiceDate.Valid {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: invoiceDate.Time.AddDate(0, 0, s.DueDays), Valid: true}
}

func dateOrToday(value string) pgtype.Date {
	if d := parseDate(value); d.Valid {
		return d
	}
	return pgtype.Date{Time: time.Now().UTC(), Valid: true}
}

func optionalText(v string) pgtype.Text {
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}

func badRequest(message string) *common.AppError {
	return &common.AppError{Code: "VALIDATION_ERROR", Message: message, HTTPStatus: http.StatusBadRequest}
}

func notFound(message string) *common.AppError {
	return &common.AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
}

func invalidState(message, current string) *common.AppError {
	return &common.AppError{
		Code:       "INVALID_STATE",
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"status": current},
	}
}
