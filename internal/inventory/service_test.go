package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

type fakeLedger struct {
	dbgen.Querier

	recentArgs dbgen.ListRecentStockMovementsParams
	recentRows []dbgen.ListRecentStockMovementsRow
	sumArgs    dbgen.SumStockMovementsSinceParams
	sumRows    []dbgen.SumStockMovementsSinceRow
}

func (f *fakeLedger) ListRecentStockMovements(_ context.Context, arg dbgen.ListRecentStockMovementsParams) ([]dbgen.ListRecentStockMovementsRow, error) {
	f.recentArgs = arg
	return f.recentRows, nil
}

func (f *fakeLedger) SumStockMovementsSince(_ context.Context, arg dbgen.SumStockMovementsSinceParams) ([]dbgen.SumStockMovementsSinceRow, error) {
	f.sumArgs = arg
	return f.sumRows, nil
}

func TestRecentMovementsScopesToUser(t *testing.T) {
	const userID = "11111111-2222-3333-4444-555555555555"
	uid, _ := cart.ToUUID(userID)
	f := &fakeLedger{
		recentRows: []dbgen.ListRecentStockMovementsRow{
			{MovementType: MovementOut, Quantity: 2, ProductName: "Blue Pen"},
		},
	}
	svc := &Service{Q: f}

	rows, err := svc.RecentMovements(context.Background(), userID, 20)
	if err != nil {
		t.Fatalf("RecentMovements: %v", err)
	}
	if len(rows) != 1 || rows[0].ProductName != "Blue Pen" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if !cart.UUIDEqual(f.recentArgs.UserID, uid) {
		t.Fatal("query not scoped to the requesting user")
	}
	if f.recentArgs.Limit != 20 {
		t.Fatalf("limit = %d, want 20", f.recentArgs.Limit)
	}
}

func TestMovementTotalsGroupsByType(t *testing.T) {
	const userID = "11111111-2222-3333-4444-555555555555"
	f := &fakeLedger{
		sumRows: []dbgen.SumStockMovementsSinceRow{
			{MovementType: MovementIn, TotalQuantity: 40},
			{MovementType: MovementOut, TotalQuantity: 15},
		},
	}
	svc := &Service{Q: f}
	since := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	totals, err := svc.MovementTotals(context.Background(), userID, since)
	if err != nil {
		t.Fatalf("MovementTotals: %v", err)
	}
	if totals[MovementIn] != 40 || totals[MovementOut] != 15 {
		t.Fatalf("unexpected totals: %v", totals)
	}
	if _, ok := totals[MovementAdjustment]; ok {
		t.Fatal("adjustment total should be absent when no rows were returned")
	}
	if !f.sumArgs.Since.Valid || !f.sumArgs.Since.Time.Equal(since) {
		t.Fatalf("since = %+v, want %v", f.sumArgs.Since, since)
	}
}

func TestRecentMovementsRejectsBadUserID(t *testing.T) {
	svc := &Service{Q: &fakeLedger{}}
	if _, err := svc.RecentMovements(context.Background(), "not-a-uuid", 20); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := svc.MovementTotals(context.Background(), "not-a-uuid", time.Now()); err == nil {
		t.Fatal("expected parse error")
	}
}
