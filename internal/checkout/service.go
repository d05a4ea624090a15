package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/inventory"
	"github.com/noah-isme/backend-gstbill/internal/obs"
	"github.com/noah-isme/backend-gstbill/internal/pricing"
)

// Input carries the checkout request payload.
type Input struct {
	Notes *string `json:"notes"`
}

// Output summarises the order produced by a successful checkout.
type Output struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Subtotal    int64  `json:"subtotal"`
	CGST        int64  `json:"cgst"`
	SGST        int64  `json:"sgst"`
	IGST        int64  `json:"igst"`
	Total       int64  `json:"total"`
}

// Service converts the user's cart into an order. Stock is decremented and
// the movement ledger written in the same transaction, so a failed line
// leaves nothing behind.
type Service struct {
	Q           dbgen.Querier
	Pool        *pgxpool.Pool
	CartSvc     *cart.Service
	OrderPrefix string
}

// Create submits the user's cart as a new order.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Output, error) {
	if s == nil || s.Q == nil || s.Pool == nil || s.CartSvc == nil {
		return Output{}, errors.New("checkout service not configured")
	}
	if userID == "" {
		return Output{}, errors.New("user is required for checkout")
	}
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return Output{}, fmt.Errorf("invalid user id: %w", err)
	}

	out, err := s.create(ctx, uID, in)
	if obs.OrdersSubmittedTotal != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		obs.OrdersSubmittedTotal.WithLabelValues(result).Inc()
	}
	return out, err
}

// ensureSubmittable rejects carts that cannot be checked out: a missing cart,
// a cart with no customer, or a cart with no lines. It runs before the
// transaction opens; the same conditions are enforced again against the
// transactional snapshot.
func (s *Service) ensureSubmittable(ctx context.Context, uID pgtype.UUID) error {
	cartRow, err := s.Q.GetCartByUser(ctx, uID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyCart()
		}
		return err
	}
	if !cartRow.CustomerID.Valid {
		return customerRequired()
	}
	items, err := s.Q.ListCartItems(ctx, cartRow.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return emptyCart()
	}
	return nil
}

func (s *Service) create(ctx context.Context, uID pgtype.UUID, in Input) (Output, error) {
	if err := s.ensureSubmittable(ctx, uID); err != nil {
		return Output{}, err
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Output{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := dbgen.New(tx)

	cartRow, err := qtx.GetCartByUser(ctx, uID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Output{}, emptyCart()
		}
		return Output{}, err
	}
	if !cartRow.CustomerID.Valid {
		return Output{}, customerRequired()
	}
	items, err := qtx.ListCartItems(ctx, cartRow.ID)
	if err != nil {
		return Output{}, err
	}
	if len(items) == 0 {
		return Output{}, emptyCart()
	}

	intra, err := s.CartSvc.IntraState(ctx, cartRow)
	if err != nil {
		return Output{}, err
	}
	pricingItems := make([]pricing.Item, 0, len(items))
	for _, it := range items {
		pricingItems = append(pricingItems, pricing.Item{
			Qty:        int(it.Qty),
			UnitPrice:  pricing.Money(it.UnitPrice),
			GSTRateBps: int(it.GstRateBps),
		})
	}
	summary := pricing.Compute(pricingItems, intra)

	seq, err := qtx.NextDocumentNumber(ctx, dbgen.NextDocumentNumberParams{UserID: uID, Kind: "order"})
	if err != nil {
		return Output{}, err
	}
	prefix := s.OrderPrefix
	if prefix == "" {
		prefix = "ORD"
	}
	orderNumber := fmt.Sprintf("%s-%04d", prefix, seq)

	order, err := qtx.CreateOrder(ctx, dbgen.CreateOrderParams{
		UserID:      uID,
		CustomerID:  cartRow.CustomerID,
		OrderNumber: orderNumber,
		Status:      "pending",
		Subtotal:    summary.Subtotal,
		Total:       summary.Total,
		Notes:       toNullableText(in.Notes),
	})
	if err != nil {
		return Output{}, err
	}

	for _, it := range items {
		if _, err := qtx.DecrementProductStock(ctx, dbgen.DecrementProductStockParams{
			ID:       it.ProductID,
			Quantity: it.Qty,
		}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				if obs.StockRejectionsTotal != nil {
					obs.StockRejectionsTotal.Inc()
				}
				appErr := inventory.InsufficientStock(it.StockQuantity, int(it.Qty))
				appErr.Details["productId"] = cart.UUIDString(it.ProductID)
				appErr.Details["productName"] = it.ProductName
				return Output{}, appErr
			}
			return Output{}, err
		}
		if _, err := qtx.CreateStockMovement(ctx, dbgen.CreateStockMovementParams{
			ProductID:    it.ProductID,
			MovementType: inventory.MovementOut,
			Quantity:     it.Qty,
			Reference:    pgtype.Text{String: orderNumber, Valid: true},
		}); err != nil {
			return Output{}, err
		}
		if _, err := qtx.CreateOrderItem(ctx, dbgen.CreateOrderItemParams{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Total:     pricing.LineTotal(int(it.Qty), it.UnitPrice),
		}); err != nil {
			return Output{}, err
		}
	}

	if err := qtx.ClearCart(ctx, cartRow.ID); err != nil {
		return Output{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Output{}, err
	}

	return Output{
		OrderID:     cart.UUIDString(order.ID),
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Subtotal:    summary.Subtotal,
		CGST:        summary.CGST,
		SGST:        summary.SGST,
		IGST:        summary.IGST,
		Total:       summary.Total,
	}, nil
}

func emptyCart() *common.AppError {
	return &common.AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "cart is empty",
		HTTPStatus: http.StatusBadRequest,
	}
}

func customerRequired() *common.AppError {
	return &common.AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "a customer must be assigned before checkout",
		HTTPStatus: http.StatusBadRequest,
	}
}

func toNullableText(v *string) pgtype.Text {
	if v == nil || *v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}
