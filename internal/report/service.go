package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-gstbill/internal/cache"
	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

type queryProvider interface {
	GetSalesTotals(ctx context.Context, arg dbgen.GetSalesTotalsParams) (dbgen.GetSalesTotalsRow, error)
	ListTopCustomers(ctx context.Context, arg dbgen.ListTopCustomersParams) ([]dbgen.ListTopCustomersRow, error)
	ListTopProducts(ctx context.Context, arg dbgen.ListTopProductsParams) ([]dbgen.ListTopProductsRow, error)
	GetInventoryValuation(ctx context.Context, userID pgtype.UUID) (dbgen.GetInventoryValuationRow, error)
}

// Service builds business reports over paid invoices and current stock.
type Service struct {
	q     queryProvider
	cache *cache.Cache
}

// NewService constructs a Service.
func NewService(q queryProvider, c *cache.Cache) *Service {
	return &Service{q: q, cache: c}
}

// Range is a half-open date range [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// ParseRange validates from/to query values. Both default to the last 30
// days when empty.
func ParseRange(from, to string, now time.Time) (Range, error) {
	if from == "" && to == "" {
		end := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)
		return Range{From: end.AddDate(0, 0, -30), To: end}, nil
	}
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return Range{}, badRequest("invalid from date, want YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return Range{}, badRequest("invalid to date, want YYYY-MM-DD")
	}
	// The range is half-open, so include the whole `to` day.
	end = end.AddDate(0, 0, 1)
	if !end.After(start) {
		return Range{}, badRequest("to must not be before from")
	}
	return Range{From: start, To: end}, nil
}

func (r Range) key() string {
	return r.From.Format("2006-01-02") + ":" + r.To.Format("2006-01-02")
}

// Sales is the invoice revenue summary for a range, with the biggest
// customers by revenue.
type Sales struct {
	From         string        `json:"from"`
	To           string        `json:"to"`
	InvoiceCount int64         `json:"invoiceCount"`
	TotalSales   int64         `json:"totalSales"`
	TotalTax     int64         `json:"totalTax"`
	TopCustomers []TopCustomer `json:"topCustomers"`
}

// TopCustomer is one customer revenue entry.
type TopCustomer struct {
	CustomerID   string `json:"customerId"`
	Name         string `json:"name"`
	TotalAmount  int64  `json:"totalAmount"`
	InvoiceCount int64  `json:"invoiceCount"`
}

// TopProduct is one product revenue entry.
type TopProduct struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	QuantitySold int64  `json:"quantitySold"`
	Revenue      int64  `json:"revenue"`
}

// Inventory is the current stock position.
type Inventory struct {
	TotalProducts   int64 `json:"totalProducts"`
	TotalValue      int64 `json:"totalValue"`
	LowStockCount   int64 `json:"lowStockCount"`
	OutOfStockCount int64 `json:"outOfStockCount"`
}

// SalesReport returns revenue totals and top customers for a range.
func (s *Service) SalesReport(ctx context.Context, userID string, r Range) (Sales, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return Sales{}, badRequest("invalid user id")
	}
	key := fmt.Sprintf("report:sales:%s:%s", userID, r.key())
	var cached Sales
	if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	start := pgtype.Date{Time: r.From, Valid: true}
	end := pgtype.Date{Time: r.To, Valid: true}
	totals, err := s.q.GetSalesTotals(ctx, dbgen.GetSalesTotalsParams{
		UserID:      uID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return Sales{}, err
	}
	customers, err := s.q.ListTopCustomers(ctx, dbgen.ListTopCustomersParams{
		UserID:      uID,
		PeriodStart: start,
		PeriodEnd:   end,
		Limit:       5,
	})
	if err != nil {
		return Sales{}, err
	}

	out := Sales{
		From:         r.From.Format("2006-01-02"),
		To:           r.To.AddDate(0, 0, -1).Format("2006-01-02"),
		InvoiceCount: totals.InvoiceCount,
		TotalSales:   totals.TotalSales,
		TotalTax:     totals.TotalTax,
		TopCustomers: make([]TopCustomer, 0, len(customers)),
	}
	for _, c := range customers {
		out.TopCustomers = append(out.TopCustomers, TopCustomer{
			CustomerID:   cart.UUIDString(c.CustomerID),
			Name:         c.Name,
			TotalAmount:  c.TotalAmount,
			InvoiceCount: c.InvoiceCount,
		})
	}
	_ = s.cache.SetJSON(ctx, key, out)
	return out, nil
}

// TopProducts returns the highest-revenue products for a range.
func (s *Service) TopProducts(ctx context.Context, userID string, r Range, limit int) ([]TopProduct, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return nil, badRequest("invalid user id")
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	key := fmt.Sprintf("report:top-products:%s:%s:%d", userID, r.key(), limit)
	var cached []TopProduct
	if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	rows, err := s.q.ListTopProducts(ctx, dbgen.ListTopProductsParams{
		UserID:      uID,
		PeriodStart: pgtype.Date{Time: r.From, Valid: true},
		PeriodEnd:   pgtype.Date{Time: r.To, Valid: true},
		Limit:       int32(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, TopProduct{
			ProductID:    cart.UUIDString(row.ProductID),
			Name:         row.Name,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue,
		})
	}
	_ = s.cache.SetJSON(ctx, key, out)
	return out, nil
}

// InventoryReport returns the current stock valuation. Not cached; stock
// moves too often for a stale count to be useful.
func (s *Service) InventoryReport(ctx context.Context, userID string) (Inventory, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return Inventory{}, badRequest("invalid user id")
	}
	row, err := s.q.GetInventoryValuation(ctx, uID)
	if err != nil {
		return Inventory{}, err
	}
	return Inventory{
		TotalProducts:   row.TotalProducts,
		TotalValue:      row.TotalValue,
		LowStockCount:   row.LowStockCount,
		OutOfStockCount: row.OutOfStockCount,
	}, nil
}

func badRequest(message string) *common.AppError {
	return &common.AppError{Code: "VALIDATION_ERROR", Message: message, HTTPStatus: http.StatusBadRequest}
}
