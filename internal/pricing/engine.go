package pricing

// Money represents a monetary value stored in minor units (paise).
type Money = int64

// Item describes a line item used for tax calculation.
type Item struct {
	Qty        int
	UnitPrice  Money
	GSTRateBps int
}

// TaxSplit holds the GST components for a taxable amount.
type TaxSplit struct {
	CGST Money
	SGST Money
	IGST Money
}

// Summary aggregates computed invoice components.
type Summary struct {
	Subtotal Money
	CGST     Money
	SGST     Money
	IGST     Money
	Total    Money
}

// LineTotal returns the exact extended price for a line.
func LineTotal(qty int, unitPrice Money) Money {
	if qty <= 0 {
		return 0
	}
	return Money(qty) * unitPrice
}

// GSTAmount returns the tax due on taxable at rateBps, rounded
// half-up to the nearest minor unit.
func GSTAmount(taxable Money, rateBps int) Money {
	if taxable <= 0 || rateBps <= 0 {
		return 0
	}
	return (taxable*Money(rateBps) + 5000) / 10000
}

// SplitGST divides the GST due on taxable between CGST/SGST for
// intra-state supplies or IGST for inter-state supplies. The halves
// always sum back to the full amount; when the amount is odd the
// extra minor unit lands on SGST.
func SplitGST(taxable Money, rateBps int, intraState bool) TaxSplit {
	gst := GSTAmount(taxable, rateBps)
	if gst == 0 {
		return TaxSplit{}
	}
	if !intraState {
		return TaxSplit{IGST: gst}
	}
	cgst := gst / 2
	return TaxSplit{CGST: cgst, SGST: gst - cgst}
}

// Compute calculates invoice totals for the given line items. Tax is
// split per item and then summed so lines with different GST rates
// combine correctly. Lines with a non-positive quantity are skipped.
func Compute(items []Item, intraState bool) Summary {
	var s Summary
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		line := LineTotal(it.Qty, it.UnitPrice)
		split := SplitGST(line, it.GSTRateBps, intraState)
		s.Subtotal += line
		s.CGST += split.CGST
		s.SGST += split.SGST
		s.IGST += split.IGST
	}
	s.Total = s.Subtotal + s.CGST + s.SGST + s.IGST
	return s
}
