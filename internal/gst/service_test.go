package gst_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-gstbill/internal/cache"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/gst"
)

const ownerID = "11111111-1111-1111-1111-111111111111"

type fakeQueries struct {
	totals      dbgen.GetGSTTotalsForPeriodRow
	rates       []dbgen.GetGSTSummaryByRateRow
	invoices    []dbgen.ListPaidInvoicesForPeriodRow
	stored      []dbgen.GstReport
	totalsCalls int
}

func (f *fakeQueries) GetGSTTotalsForPeriod(_ context.Context, _ dbgen.GetGSTTotalsForPeriodParams) (dbgen.GetGSTTotalsForPeriodRow, error) {
	f.totalsCalls++
	return f.totals, nil
}

func (f *fakeQueries) GetGSTSummaryByRate(_ context.Context, _ dbgen.GetGSTSummaryByRateParams) ([]dbgen.GetGSTSummaryByRateRow, error) {
	return f.rates, nil
}

func (f *fakeQueries) ListPaidInvoicesForPeriod(_ context.Context, _ dbgen.ListPaidInvoicesForPeriodParams) ([]dbgen.ListPaidInvoicesForPeriodRow, error) {
	return f.invoices, nil
}

func (f *fakeQueries) CreateGSTReport(_ context.Context, arg dbgen.CreateGSTReportParams) (dbgen.GstReport, error) {
	row := dbgen.GstReport{
		UserID:     arg.UserID,
		ReportType: arg.ReportType,
		Month:      arg.Month,
		Year:       arg.Year,
		TotalSales: arg.TotalSales,
		TotalTax:   arg.TotalTax,
		Data:       arg.Data,
	}
	f.stored = append(f.stored, row)
	return row, nil
}

func (f *fakeQueries) ListGSTReports(_ context.Context, _ dbgen.ListGSTReportsParams) ([]dbgen.GstReport, error) {
	return f.stored, nil
}

func newCache(t *testing.T) *cache.Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute)
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	p, err := gst.ParsePeriod(0, 0, now)
	require.NoError(t, err)
	require.Equal(t, gst.Period{Month: 2, Year: 2026}, p)
	require.Equal(t, "02-2026", p.String())

	_, err = gst.ParsePeriod(13, 2026, now)
	require.Error(t, err)
	_, err = gst.ParsePeriod(4, 2016, now)
	require.Error(t, err)
}

func TestMonthlySummaryCaches(t *testing.T) {
	fake := &fakeQueries{
		totals: dbgen.GetGSTTotalsForPeriodRow{
			InvoiceCount:  3,
			TaxableAmount: 300000,
			CgstAmount:    27000,
			SgstAmount:    27000,
			TotalAmount:   354000,
		},
		rates: []dbgen.GetGSTSummaryByRateRow{
			{GstRateBps: 1800, TaxableAmount: 300000, TaxAmount: 54000},
		},
	}
	svc := gst.NewService(fake, newCache(t))
	p := gst.Period{Month: 2, Year: 2026}

	first, err := svc.MonthlySummary(context.Background(), ownerID, p)
	require.NoError(t, err)
	require.Equal(t, int64(54000), first.TotalTax)
	require.Equal(t, int64(354000), first.TotalAmount)
	require.Len(t, first.ByRate, 1)
	require.Equal(t, int32(1800), first.ByRate[0].RateBps)

	second, err := svc.MonthlySummary(context.Background(), ownerID, p)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, fake.totalsCalls)
}

func TestBuildGSTR1SplitsB2BAndB2C(t *testing.T) {
	date := pgtype.Date{Time: time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), Valid: true}
	fake := &fakeQueries{
		invoices: []dbgen.ListPaidInvoicesForPeriodRow{
			{
				InvoiceNumber: "INV-0001",
				InvoiceDate:   date,
				Subtotal:      100000,
				CgstAmount:    9000,
				SgstAmount:    9000,
				TotalAmount:   118000,
				CustomerName:  "Sharma Traders",
				CustomerGstin: pgtype.Text{String: "27AAPFU0939F1ZV", Valid: true},
				CustomerState: pgtype.Text{String: "Maharashtra", Valid: true},
			},
			{
				InvoiceNumber: "INV-0002",
				InvoiceDate:   date,
				Subtotal:      50000,
				IgstAmount:    9000,
				TotalAmount:   59000,
				CustomerName:  "Walk-in",
			},
		},
	}
	svc := gst.NewService(fake, newCache(t))

	report, err := svc.BuildGSTR1(context.Background(), ownerID, gst.Period{Month: 2, Year: 2026})
	require.NoError(t, err)
	require.Len(t, report.B2B, 1)
	require.Equal(t, "27AAPFU0939F1ZV", report.B2B[0].CustomerGSTIN)
	require.Equal(t, "2026-02-10", report.B2B[0].InvoiceDate)
	require.Equal(t, int64(1), report.B2CCount)
	require.Equal(t, int64(50000), report.B2CTaxable)
	require.Equal(t, int64(9000), report.B2CTax)
	require.Equal(t, int64(177000), report.TotalSales)
	require.Equal(t, int64(27000), report.TotalTax)

	require.Len(t, fake.stored, 1)
	require.Equal(t, "gstr1", fake.stored[0].ReportType)
	require.Equal(t, int64(177000), fake.stored[0].TotalSales)
}

func TestBuildGSTR3B(t *testing.T) {
	fake := &fakeQueries{
		totals: dbgen.GetGSTTotalsForPeriodRow{
			InvoiceCount:  2,
			TaxableAmount: 150000,
			IgstAmount:    27000,
			TotalAmount:   177000,
		},
	}
	svc := gst.NewService(fake, newCache(t))

	report, err := svc.BuildGSTR3B(context.Background(), ownerID, gst.Period{Month: 2, Year: 2026})
	require.NoError(t, err)
	require.Equal(t, int64(150000), report.OutwardTaxable)
	require.Equal(t, int64(27000), report.TotalTaxPayable)
	require.Len(t, fake.stored, 1)
	require.Equal(t, "gstr3b", fake.stored[0].ReportType)
}
