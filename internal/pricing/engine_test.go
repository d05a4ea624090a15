package pricing_test

import (
	"testing"

	"github.com/noah-isme/backend-gstbill/internal/pricing"
)

func TestLineTotalExact(t *testing.T) {
	// 3 x 19.99 must be 59.97, never 59.970000000000006.
	if got := pricing.LineTotal(3, 1999); got != 5997 {
		t.Fatalf("LineTotal(3, 1999) = %d, want 5997", got)
	}
	if got := pricing.LineTotal(0, 1999); got != 0 {
		t.Fatalf("LineTotal(0, 1999) = %d, want 0", got)
	}
	if got := pricing.LineTotal(-2, 1999); got != 0 {
		t.Fatalf("LineTotal(-2, 1999) = %d, want 0", got)
	}
}

func TestSplitGST(t *testing.T) {
	cases := []struct {
		name       string
		taxable    pricing.Money
		rateBps    int
		intraState bool
		want       pricing.TaxSplit
	}{
		{"intra 18% on 1000.00", 100000, 1800, true, pricing.TaxSplit{CGST: 9000, SGST: 9000}},
		{"inter 18% on 1000.00", 100000, 1800, false, pricing.TaxSplit{IGST: 18000}},
		{"intra odd gst lands extra paisa on sgst", 50, 1800, true, pricing.TaxSplit{CGST: 4, SGST: 5}},
		{"intra 5% on 199.99", 19999, 500, true, pricing.TaxSplit{CGST: 500, SGST: 500}},
		{"zero rate", 100000, 0, true, pricing.TaxSplit{}},
		{"zero taxable", 0, 1800, false, pricing.TaxSplit{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.SplitGST(tc.taxable, tc.rateBps, tc.intraState)
			if got != tc.want {
				t.Fatalf("SplitGST(%d, %d, %v) = %+v, want %+v", tc.taxable, tc.rateBps, tc.intraState, got, tc.want)
			}
		})
	}
}

func TestSplitHalvesAlwaysSum(t *testing.T) {
	for taxable := pricing.Money(1); taxable < 2000; taxable++ {
		for _, rate := range []int{300, 500, 1200, 1800, 2800} {
			full := pricing.GSTAmount(taxable, rate)
			split := pricing.SplitGST(taxable, rate, true)
			if split.CGST+split.SGST != full {
				t.Fatalf("taxable=%d rate=%d: cgst %d + sgst %d != gst %d", taxable, rate, split.CGST, split.SGST, full)
			}
			inter := pricing.SplitGST(taxable, rate, false)
			if inter.IGST != full || inter.CGST != 0 || inter.SGST != 0 {
				t.Fatalf("taxable=%d rate=%d: inter split %+v, want igst %d", taxable, rate, inter, full)
			}
		}
	}
}

func TestComputeIntraState(t *testing.T) {
	items := []pricing.Item{
		{Qty: 2, UnitPrice: 50000, GSTRateBps: 1800},
		{Qty: 1, UnitPrice: 19999, GSTRateBps: 500},
	}
	got := pricing.Compute(items, true)
	if got.Subtotal != 119999 {
		t.Fatalf("subtotal = %d, want 119999", got.Subtotal)
	}
	// 18% on 1000.00 and 5% on 199.99, each split per item then summed.
	if got.IGST != 0 {
		t.Fatalf("igst = %d, want 0 for intra-state", got.IGST)
	}
	wantGST := pricing.GSTAmount(100000, 1800) + pricing.GSTAmount(19999, 500)
	if got.CGST+got.SGST != wantGST {
		t.Fatalf("cgst+sgst = %d, want %d", got.CGST+got.SGST, wantGST)
	}
	if got.Total != got.Subtotal+got.CGST+got.SGST {
		t.Fatalf("total = %d does not reconcile with components", got.Total)
	}
}

func TestComputeInterState(t *testing.T) {
	items := []pricing.Item{{Qty: 1, UnitPrice: 100000, GSTRateBps: 1800}}
	got := pricing.Compute(items, false)
	want := pricing.Summary{Subtotal: 100000, IGST: 18000, Total: 118000}
	if got != want {
		t.Fatalf("Compute inter-state = %+v, want %+v", got, want)
	}
}

func TestComputeSkipsNonPositiveQty(t *testing.T) {
	items := []pricing.Item{
		{Qty: 0, UnitPrice: 100000, GSTRateBps: 1800},
		{Qty: -1, UnitPrice: 100000, GSTRateBps: 1800},
		{Qty: 1, UnitPrice: 5000, GSTRateBps: 1800},
	}
	got := pricing.Compute(items, true)
	if got.Subtotal != 5000 {
		t.Fatalf("subtotal = %d, want 5000", got.Subtotal)
	}
}

func TestComputeZeroRateKeepsAllComponentsZero(t *testing.T) {
	got := pricing.Compute([]pricing.Item{{Qty: 4, UnitPrice: 2500, GSTRateBps: 0}}, true)
	want := pricing.Summary{Subtotal: 10000, Total: 10000}
	if got != want {
		t.Fatalf("Compute = %+v, want %+v", got, want)
	}
}
