// Package notify composes and sends operational email alerts.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

// LowStockNotifier emails each business owner a digest of their products at or
// below the minimum stock level. One email per owner regardless of how many
// products tripped the threshold.
type LowStockNotifier struct {
	Mail    common.EmailSender
	Enabled bool
}

// Notify groups alert rows by owner email and sends the digests. It returns
// the number of emails sent. Rows must be ordered by email, which is how
// ListLowStockAlerts returns them.
func (n LowStockNotifier) Notify(_ context.Context, rows []dbgen.ListLowStockAlertsRow) (int, error) {
	if !n.Enabled || n.Mail == nil || len(rows) == 0 {
		return 0, nil
	}

	sent := 0
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i].Email == rows[start].Email {
			continue
		}
		group := rows[start:i]
		if err := n.Mail.Send(group[0].Email, subjectFor(len(group)), digestBody(group)); err != nil {
			return sent, fmt.Errorf("low stock notify %s: %w", group[0].Email, err)
		}
		sent++
		start = i
	}
	return sent, nil
}

func subjectFor(count int) string {
	if count == 1 {
		return "Low stock alert: 1 product needs restocking"
	}
	return fmt.Sprintf("Low stock alert: %d products need restocking", count)
}

func digestBody(rows []dbgen.ListLowStockAlertsRow) string {
	var b strings.Builder
	name := strings.TrimSpace(rows[0].BusinessName.String)
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "<p>Hello %s,</p>", name)
	b.WriteString("<p>The following products are at or below their minimum stock level:</p><ul>")
	for _, row := range rows {
		fmt.Fprintf(&b, "<li>%s (SKU %s): %d %s left, minimum %d</li>",
			row.Name, row.Sku, row.StockQuantity, row.Unit, row.MinStockLevel)
	}
	b.WriteString("</ul><p>Restock soon to keep orders flowing.</p>")
	return b.String()
}
