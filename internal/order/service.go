package order

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/inventory"
	"github.com/noah-isme/backend-gstbill/internal/obs"
)

// ErrNotFound is returned when the order does not exist or belongs to
// another user.
var ErrNotFound = errors.New("order not found")

// Service performs order mutations that touch stock and therefore need a
// transaction.
type Service struct {
	Q    *dbgen.Queries
	Pool *pgxpool.Pool
}

// Cancel cancels a pending or confirmed order owned by userID and returns
// its reserved stock. Each line produces an "in" movement referencing the
// order number, so the ledger shows the reversal instead of silently
// mutating quantities.
func (s *Service) Cancel(ctx context.Context, userID, orderID string) (dbgen.Order, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return dbgen.Order{}, ErrNotFound
	}
	return s.cancel(ctx, orderID, &uID)
}

// AdminCancel cancels an order regardless of owner. Stock is restored the
// same way as a user-initiated cancellation.
func (s *Service) AdminCancel(ctx context.Context, orderID string) (dbgen.Order, error) {
	return s.cancel(ctx, orderID, nil)
}

func (s *Service) cancel(ctx context.Context, orderID string, owner *pgtype.UUID) (dbgen.Order, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return dbgen.Order{}, errors.New("order service not configured")
	}
	oID, err := cart.ToUUID(orderID)
	if err != nil {
		return dbgen.Order{}, ErrNotFound
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return dbgen.Order{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	ord, err := qtx.GetOrderByID(ctx, oID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Order{}, ErrNotFound
		}
		return dbgen.Order{}, err
	}
	if owner != nil && !cart.UUIDEqual(ord.UserID, *owner) {
		return dbgen.Order{}, ErrNotFound
	}
	if !CanTransition(ord.Status, StatusCancelled) {
		return dbgen.Order{}, &common.AppError{
			Code:       "INVALID_STATE",
			Message:    "order can no longer be cancelled",
			HTTPStatus: http.StatusConflict,
			Details:    map[string]any{"status": ord.Status},
		}
	}

	items, err := qtx.ListOrderItems(ctx, ord.ID)
	if err != nil {
		return dbgen.Order{}, err
	}
	for _, it := range items {
		if _, err := qtx.IncrementProductStock(ctx, dbgen.IncrementProductStockParams{
			ID:       it.ProductID,
			Quantity: it.Qty,
		}); err != nil {
			return dbgen.Order{}, err
		}
		if _, err := qtx.CreateStockMovement(ctx, dbgen.CreateStockMovementParams{
			ProductID:    it.ProductID,
			MovementType: inventory.MovementIn,
			Quantity:     it.Qty,
			Reference:    pgtype.Text{String: ord.OrderNumber, Valid: true},
			Notes:        pgtype.Text{String: "order cancelled", Valid: true},
		}); err != nil {
			return dbgen.Order{}, err
		}
	}

	updated, err := qtx.UpdateOrderStatus(ctx, dbgen.UpdateOrderStatusParams{
		Status:        StatusCancelled,
		ID:            ord.ID,
		CurrentStatus: ord.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Order{}, statusConflict(ord.Status, StatusCancelled)
		}
		return dbgen.Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return dbgen.Order{}, err
	}
	if obs.StockMovementsTotal != nil && len(items) > 0 {
		obs.StockMovementsTotal.WithLabelValues(inventory.MovementIn).Add(float64(len(items)))
	}
	return updated, nil
}

// statusConflict reports that the order's status moved between the
// transition check and the write.
func statusConflict(from, to string) *common.AppError {
	return &common.AppError{
		Code:       "INVALID_STATE",
		Message:    "order status changed concurrently",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"from": from, "to": to},
	}
}
