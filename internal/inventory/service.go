package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/obs"
)

// Movement type values stored in stock_movements.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound indicates the product could not be located for this user.
var ErrNotFound = errors.New("product not found")

// InsufficientStock builds the rejection returned when an outward movement
// would drive stock negative. Stock is never clamped.
func InsufficientStock(available int32, requested int) *common.AppError {
	return &common.AppError{
		Code:       "INSUFFICIENT_STOCK",
		Message:    "insufficient stock for requested quantity",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"available": available,
			"requested": requested,
		},
	}
}

// Service records stock movements and keeps the product quantity and the
// movement ledger consistent within a single transaction.
type Service struct {
	Pool *pgxpool.Pool
	Q    dbgen.Querier
}

// MovementInput describes a requested stock movement. For adjustments,
// Quantity carries the new absolute stock quantity rather than a delta.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	Reference string
	Notes     string
}

// RecordMovement applies a stock movement for a product owned by userID and
// returns the updated product together with the ledger entry. Adjustments
// that change nothing return a zero-valued movement.
func (s *Service) RecordMovement(ctx context.Context, userID string, in MovementInput) (dbgen.Product, dbgen.StockMovement, error) {
	if s == nil || s.Pool == nil || s.Q == nil {
		return dbgen.Product{}, dbgen.StockMovement{}, errors.New("inventory service not configured")
	}
	uid, err := cart.ToUUID(userID)
	if err != nil {
		return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("parse user id: %w", err)
	}
	pID, err := cart.ToUUID(in.ProductID)
	if err != nil {
		return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("parse product id: %w", ErrInvalidInput)
	}
	switch in.Type {
	case MovementIn, MovementOut:
		if in.Quantity <= 0 {
			return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
		}
	case MovementAdjustment:
		if in.Quantity < 0 {
			return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("quantity cannot be negative: %w", ErrInvalidInput)
		}
	default:
		return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("unknown movement type %q: %w", in.Type, ErrInvalidInput)
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	q := dbgen.New(tx)

	product, err := q.GetProductByID(ctx, pID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Product{}, dbgen.StockMovement{}, ErrNotFound
		}
		return dbgen.Product{}, dbgen.StockMovement{}, err
	}
	if !cart.UUIDEqual(product.UserID, uid) {
		return dbgen.Product{}, dbgen.StockMovement{}, ErrNotFound
	}

	var (
		updated   dbgen.Product
		ledgerQty int32
	)
	switch in.Type {
	case MovementIn:
		ledgerQty = int32(in.Quantity)
		updated, err = q.IncrementProductStock(ctx, dbgen.IncrementProductStockParams{ID: pID, Quantity: ledgerQty})
		if err != nil {
			return dbgen.Product{}, dbgen.StockMovement{}, err
		}
	case MovementOut:
		ledgerQty = int32(in.Quantity)
		updated, err = q.DecrementProductStock(ctx, dbgen.DecrementProductStockParams{ID: pID, Quantity: ledgerQty})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				if obs.StockRejectionsTotal != nil {
					obs.StockRejectionsTotal.Inc()
				}
				return dbgen.Product{}, dbgen.StockMovement{}, InsufficientStock(product.StockQuantity, in.Quantity)
			}
			return dbgen.Product{}, dbgen.StockMovement{}, err
		}
	case MovementAdjustment:
		target := int32(in.Quantity)
		delta := target - product.StockQuantity
		if delta == 0 {
			if err := tx.Commit(ctx); err != nil {
				return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("commit tx: %w", err)
			}
			return product, dbgen.StockMovement{}, nil
		}
		if delta < 0 {
			ledgerQty = -delta
		} else {
			ledgerQty = delta
		}
		updated, err = q.SetProductStock(ctx, dbgen.SetProductStockParams{ID: pID, StockQuantity: target})
		if err != nil {
			return dbgen.Product{}, dbgen.StockMovement{}, err
		}
	}

	movement, err := q.CreateStockMovement(ctx, dbgen.CreateStockMovementParams{
		ProductID:    pID,
		MovementType: in.Type,
		Quantity:     ledgerQty,
		Reference:    optionalText(in.Reference),
		Notes:        optionalText(in.Notes),
	})
	if err != nil {
		return dbgen.Product{}, dbgen.StockMovement{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return dbgen.Product{}, dbgen.StockMovement{}, fmt.Errorf("commit tx: %w", err)
	}
	if obs.StockMovementsTotal != nil {
		obs.StockMovementsTotal.WithLabelValues(in.Type).Inc()
	}
	return updated, movement, nil
}

// LowStock lists active products at or below their minimum stock level.
func (s *Service) LowStock(ctx context.Context, userID string) ([]dbgen.Product, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("inventory service not configured")
	}
	uid, err := cart.ToUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return s.Q.ListLowStockProducts(ctx, uid)
}

// Movements returns the movement ledger for a product owned by userID.
func (s *Service) Movements(ctx context.Context, userID string, productID string, limit, offset int32) ([]dbgen.StockMovement, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("inventory service not configured")
	}
	uid, err := cart.ToUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	pID, err := cart.ToUUID(productID)
	if err != nil {
		return nil, fmt.Errorf("parse product id: %w", ErrInvalidInput)
	}
	product, err := s.Q.GetProductByID(ctx, pID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !cart.UUIDEqual(product.UserID, uid) {
		return nil, ErrNotFound
	}
	return s.Q.ListStockMovementsByProduct(ctx, dbgen.ListStockMovementsByProductParams{
		ProductID: pID,
		Limit:     limit,
		Offset:    offset,
	})
}

// RecentMovements returns the newest ledger entries across every product the
// user owns, product name included for display.
func (s *Service) RecentMovements(ctx context.Context, userID string, limit int32) ([]dbgen.ListRecentStockMovementsRow, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("inventory service not configured")
	}
	uid, err := cart.ToUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return s.Q.ListRecentStockMovements(ctx, dbgen.ListRecentStockMovementsParams{
		UserID: uid,
		Limit:  limit,
	})
}

// MovementTotals sums ledger quantities per movement type for the user's
// products since the given cutoff. Types with no movements are absent from
// the map.
func (s *Service) MovementTotals(ctx context.Context, userID string, since time.Time) (map[string]int64, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("inventory service not configured")
	}
	uid, err := cart.ToUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	rows, err := s.Q.SumStockMovementsSince(ctx, dbgen.SumStockMovementsSinceParams{
		UserID: uid,
		Since:  pgtype.Timestamptz{Time: since, Valid: true},
	})
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.MovementType] = row.TotalQuantity
	}
	return totals, nil
}

func optionalText(v string) pgtype.Text {
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}
