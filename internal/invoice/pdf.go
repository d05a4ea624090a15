package invoice

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFData carries everything the invoice PDF needs, already formatted.
type PDFData struct {
	BusinessName  string
	BusinessGSTIN string
	BusinessState string

	CustomerName    string
	CustomerGSTIN   string
	CustomerState   string
	BillingAddress  string
	ShippingAddress string

	Invoice View
}

// RenderPDF produces a tax invoice PDF. Intra-state invoices show CGST and
// SGST rows, inter-state invoices a single IGST row.
func RenderPDF(data PDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "TAX INVOICE", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	inv := data.Invoice
	m.AddRow(22,
		col.New(6).Add(
			text.New(data.BusinessName, props.Text{Style: fontstyle.Bold}),
			text.New("GSTIN: "+data.BusinessGSTIN, props.Text{Top: 5, Size: 9}),
			text.New("State: "+data.BusinessState, props.Text{Top: 9, Size: 9}),
		),
		col.New(6).Add(
			text.New("Invoice no: "+inv.InvoiceNumber, props.Text{Align: align.Right}),
			text.New("Invoice date: "+inv.InvoiceDate, props.Text{Top: 5, Size: 9, Align: align.Right}),
			text.New("Due date: "+inv.DueDate, props.Text{Top: 9, Size: 9, Align: align.Right}),
		),
	)

	m.AddRow(26,
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.CustomerName, props.Text{Top: 5, Size: 9}),
			text.New(data.BillingAddress, props.Text{Top: 9, Size: 8}),
			text.New("GSTIN: "+data.CustomerGSTIN, props.Text{Top: 17, Size: 8}),
		),
		col.New(6).Add(
			text.New("Ship to", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.ShippingAddress, props.Text{Top: 5, Size: 8}),
			text.New("Place of supply: "+data.CustomerState, props.Text{Top: 17, Size: 8}),
		),
	)

	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "GST %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "GST", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range inv.Items {
		m.AddRow(8,
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatMoney(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, formatRate(item.GSTRateBps), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, FormatMoney(item.GSTAmount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatMoney(item.Total), props.Text{Size: 9, Align: align.Right}),
		)
	}

	totalRow := func(label string, amount int64, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			col.New(8),
			text.NewCol(2, label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, FormatMoney(amount), props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}
	totalRow("Subtotal", inv.Subtotal, false)
	if inv.IGST > 0 {
		totalRow("IGST", inv.IGST, false)
	} else {
		totalRow("CGST", inv.CGST, false)
		totalRow("SGST", inv.SGST, false)
	}
	totalRow("Total", inv.Total, true)

	if inv.PaymentTerms != "" {
		m.AddRow(10,
			text.NewCol(12, "Payment terms: "+inv.PaymentTerms, props.Text{Size: 8, Top: 3}),
		)
	}
	if inv.Notes != "" {
		m.AddRow(10,
			text.NewCol(12, inv.Notes, props.Text{Size: 8, Top: 3}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// FormatMoney renders paise as rupees with two decimals.
func FormatMoney(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%sRs %d.%02d", sign, paise/100, paise%100)
}

func formatRate(bps int32) string {
	if bps%100 == 0 {
		return fmt.Sprintf("%d%%", bps/100)
	}
	return fmt.Sprintf("%d.%02d%%", bps/100, bps%100)
}
