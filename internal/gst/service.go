package gst

import (
	"context"
	"encoding/json"
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
	GetGSTTotalsForPeriod(ctx context.Context, arg dbgen.GetGSTTotalsForPeriodParams) (dbgen.GetGSTTotalsForPeriodRow, error)
	GetGSTSummaryByRate(ctx context.Context, arg dbgen.GetGSTSummaryByRateParams) ([]dbgen.GetGSTSummaryByRateRow, error)
	ListPaidInvoicesForPeriod(ctx context.Context, arg dbgen.ListPaidInvoicesForPeriodParams) ([]dbgen.ListPaidInvoicesForPeriodRow, error)
	CreateGSTReport(ctx context.Context, arg dbgen.CreateGSTReportParams) (dbgen.GstReport, error)
	ListGSTReports(ctx context.Context, arg dbgen.ListGSTReportsParams) ([]dbgen.GstReport, error)
}

// Service assembles GSTR-style monthly summaries from paid invoices. Results
// are cached in redis and persisted to gst_reports for later retrieval.
type Service struct {
	q     queryProvider
	cache *cache.Cache
}

// NewService constructs a Service.
func NewService(q queryProvider, c *cache.Cache) *Service {
	return &Service{q: q, cache: c}
}

// Period is a calendar month.
type Period struct {
	Month int
	Year  int
}

// ParsePeriod validates month/year query values, defaulting to the previous
// month when both are zero.
func ParsePeriod(month, year int, now time.Time) (Period, error) {
	if month == 0 && year == 0 {
		prev := now.AddDate(0, -1, 0)
		return Period{Month: int(prev.Month()), Year: prev.Year()}, nil
	}
	if month < 1 || month > 12 {
		return Period{}, &common.AppError{
			Code:       "VALIDATION_ERROR",
			Message:    "month must be between 1 and 12",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	if year < 2017 || year > now.Year()+1 {
		return Period{}, &common.AppError{
			Code:       "VALIDATION_ERROR",
			Message:    "year out of range",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	return Period{Month: month, Year: year}, nil
}

func (p Period) bounds() (pgtype.Date, pgtype.Date) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return pgtype.Date{Time: start, Valid: true}, pgtype.Date{Time: end, Valid: true}
}

// String renders the period as MM-YYYY, the GSTR filing convention.
func (p Period) String() string {
	return fmt.Sprintf("%02d-%04d", p.Month, p.Year)
}

// RateLine is one rate-wise summary row.
type RateLine struct {
	RateBps       int32 `json:"rateBps"`
	TaxableAmount int64 `json:"taxableAmount"`
	TaxAmount     int64 `json:"taxAmount"`
}

// Summary is the month's tax position across paid invoices.
type Summary struct {
	Period        string     `json:"period"`
	InvoiceCount  int64      `json:"invoiceCount"`
	TaxableAmount int64      `json:"taxableAmount"`
	CGST          int64      `json:"cgst"`
	SGST          int64      `json:"sgst"`
	IGST          int64      `json:"igst"`
	TotalTax      int64      `json:"totalTax"`
	TotalAmount   int64      `json:"totalAmount"`
	ByRate        []RateLine `json:"byRate"`
}

// GSTR1Invoice is one outward supply entry in a GSTR-1 report.
type GSTR1Invoice struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	CustomerName  string `json:"customerName"`
	CustomerGSTIN string `json:"customerGstin,omitempty"`
	PlaceOfSupply string `json:"placeOfSupply,omitempty"`
	TaxableAmount int64  `json:"taxableAmount"`
	CGST          int64  `json:"cgst"`
	SGST          int64  `json:"sgst"`
	IGST          int64  `json:"igst"`
	TotalAmount   int64  `json:"totalAmount"`
}

// GSTR1 groups outward supplies into registered (B2B) and unregistered
// (B2C) sections.
type GSTR1 struct {
	Period      string         `json:"period"`
	B2B         []GSTR1Invoice `json:"b2b"`
	B2CCount    int64          `json:"b2cCount"`
	B2CTaxable  int64          `json:"b2cTaxable"`
	B2CTax      int64          `json:"b2cTax"`
	TotalSales  int64          `json:"totalSales"`
	TotalTax    int64          `json:"totalTax"`
	ByRate      []RateLine     `json:"byRate"`
}

// GSTR3B is the condensed monthly liability summary.
type GSTR3B struct {
	Period          string `json:"period"`
	OutwardTaxable  int64  `json:"outwardTaxable"`
	CGST            int64  `json:"cgst"`
	SGST            int64  `json:"sgst"`
	IGST            int64  `json:"igst"`
	TotalTaxPayable int64  `json:"totalTaxPayable"`
	TotalAmount     int64  `json:"totalAmount"`
	InvoiceCount    int64  `json:"invoiceCount"`
}

// MonthlySummary returns the rate-wise tax summary for a period.
func (s *Service) MonthlySummary(ctx context.Context, userID string, p Period) (Summary, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return Summary{}, badRequest("invalid user id")
	}
	key := fmt.Sprintf("gst:summary:%s:%s", userID, p)
	var cached Summary
	if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	start, end := p.bounds()
	totals, err := s.q.GetGSTTotalsForPeriod(ctx, dbgen.GetGSTTotalsForPeriodParams{
		UserID:      uID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return Summary{}, err
	}
	rates, err := s.q.GetGSTSummaryByRate(ctx, dbgen.GetGSTSummaryByRateParams{
		UserID:      uID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		Period:        p.String(),
		InvoiceCount:  totals.InvoiceCount,
		TaxableAmount: totals.TaxableAmount,
		CGST:          totals.CgstAmount,
		SGST:          totals.SgstAmount,
		IGST:          totals.IgstAmount,
		TotalTax:      totals.CgstAmount + totals.SgstAmount + totals.IgstAmount,
		TotalAmount:   totals.TotalAmount,
		ByRate:        make([]RateLine, 0, len(rates)),
	}
	for _, r := range rates {
		out.ByRate = append(out.ByRate, RateLine{
			RateBps:       r.GstRateBps,
			TaxableAmount: r.TaxableAmount,
			TaxAmount:     r.TaxAmount,
		})
	}
	_ = s.cache.SetJSON(ctx, key, out)
	return out, nil
}

// BuildGSTR1 assembles the outward supply register for a period and stores
// it as a gst_reports row.
func (s *Service) BuildGSTR1(ctx context.Context, userID string, p Period) (GSTR1, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return GSTR1{}, badRequest("invalid user id")
	}
	key := fmt.Sprintf("gst:gstr1:%s:%s", userID, p)
	var cached GSTR1
	if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	start, end := p.bounds()
	invoices, err := s.q.ListPaidInvoicesForPeriod(ctx, dbgen.ListPaidInvoicesForPeriodParams{
		UserID:      uID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return GSTR1{}, err
	}
	rates, err := s.q.GetGSTSummaryByRate(ctx, dbgen.GetGSTSummaryByRateParams{
		UserID:      uID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return GSTR1{}, err
	}

	report := GSTR1{Period: p.String(), B2B: []GSTR1Invoice{}}
	for _, inv := range invoices {
		tax := inv.CgstAmount + inv.SgstAmount + inv.IgstAmount
		report.TotalSales += inv.TotalAmount
		report.TotalTax += tax
		if inv.CustomerGstin.Valid && inv.CustomerGstin.String != "" {
			entry := GSTR1Invoice{
				InvoiceNumber: inv.InvoiceNumber,
				CustomerName:  inv.CustomerName,
				CustomerGSTIN: inv.CustomerGstin.String,
				PlaceOfSupply: inv.CustomerState.String,
				TaxableAmount: inv.Subtotal,
				CGST:          inv.CgstAmount,
				SGST:          inv.SgstAmount,
				IGST:          inv.IgstAmount,
				TotalAmount:   inv.TotalAmount,
			}
			if inv.InvoiceDate.Valid {
				entry.InvoiceDate = inv.InvoiceDate.Time.Format("2006-01-02")
			}
			report.B2B = append(report.B2B, entry)
		} else {
			report.B2CCount++
			report.B2CTaxable += inv.Subtotal
			report.B2CTax += tax
		}
	}
	for _, r := range rates {
		report.ByRate = append(report.ByRate, RateLine{
			RateBps:       r.GstRateBps,
			TaxableAmount: r.TaxableAmount,
			TaxAmount:     r.TaxAmount,
		})
	}

	if err := s.persist(ctx, uID, "gstr1", p, report.TotalSales, report.TotalTax, report); err != nil {
		return GSTR1{}, err
	}
	_ = s.cache.SetJSON(ctx, key, report)
	return report, nil
}

// BuildGSTR3B assembles the condensed liability summary for a period and
// stores it as a gst_reports row.
func (s *Service) BuildGSTR3B(ctx context.Context, userID string, p Period) (GSTR3B, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return GSTR3B{}, badRequest("invalid user id")
	}
	key := fmt.Sprintf("gst:gstr3b:%s:%s", userID, p)
	var cached GSTR3B
	if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	start, end := p.bounds()
	totals, err := s.q.GetGSTTotalsForPeriod(ctx, dbgen.GetGSTTotalsForPeriodParams{
		UserID:      uID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return GSTR3B{}, err
	}
	report := GSTR3B{
		Period:          p.String(),
		OutwardTaxable:  totals.TaxableAmount,
		CGST:            totals.CgstAmount,
		SGST:            totals.SgstAmount,
		IGST:            totals.IgstAmount,
		TotalTaxPayable: totals.CgstAmount + totals.SgstAmount + totals.IgstAmount,
		TotalAmount:     totals.TotalAmount,
		InvoiceCount:    totals.InvoiceCount,
	}
	if err := s.persist(ctx, uID, "gstr3b", p, report.TotalAmount, report.TotalTaxPayable, report); err != nil {
		return GSTR3B{}, err
	}
	_ = s.cache.SetJSON(ctx, key, report)
	return report, nil
}

// StoredReports pages through previously generated reports.
func (s *Service) StoredReports(ctx context.Context, userID string, page, limit int) ([]dbgen.GstReport, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return nil, badRequest("invalid user id")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.q.ListGSTReports(ctx, dbgen.ListGSTReportsParams{
		UserID: uID,
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
}

func (s *Service) persist(ctx context.Context, uID pgtype.UUID, kind string, p Period, totalSales, totalTax int64, detail any) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	_, err = s.q.CreateGSTReport(ctx, dbgen.CreateGSTReportParams{
		UserID:     uID,
		ReportType: kind,
		Month:      int32(p.Month),
		Year:       int32(p.Year),
		TotalSales: totalSales,
		TotalTax:   totalTax,
		Data:       data,
	})
	return err
}

func badRequest(message string) *common.AppError {
	return &common.AppError{Code: "VALIDATION_ERROR", Message: message, HTTPStatus: http.StatusBadRequest}
}
