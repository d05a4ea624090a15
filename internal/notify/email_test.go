package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

func alertRow(email, business, name, sku string, qty, min int32) dbgen.ListLowStockAlertsRow {
	row := dbgen.ListLowStockAlertsRow{
		Name:          name,
		Sku:           sku,
		StockQuantity: qty,
		MinStockLevel: min,
		Unit:          "pcs",
		Email:         email,
	}
	if business != "" {
		row.BusinessName.String = business
		row.BusinessName.Valid = true
	}
	return row
}

func TestLowStockNotifierGroupsByOwner(t *testing.T) {
	mail := &common.InMemoryEmail{}
	notifier := LowStockNotifier{Mail: mail, Enabled: true}

	rows := []dbgen.ListLowStockAlertsRow{
		alertRow("a@example.com", "Agarwal Traders", "PVC Pipe 2in", "PVC-2", 3, 10),
		alertRow("a@example.com", "Agarwal Traders", "PVC Pipe 4in", "PVC-4", 0, 5),
		alertRow("b@example.com", "", "Copper Wire 1mm", "CU-1", 8, 20),
	}

	sent, err := notifier.Notify(context.Background(), rows)
	require.NoError(t, err)
	require.Equal(t, 2, sent)
	require.Len(t, mail.Outbox, 2)

	first := mail.Outbox[0]
	require.Equal(t, "a@example.com", first.To)
	require.Equal(t, "Low stock alert: 2 products need restocking", first.Subject)
	require.Contains(t, first.HTML, "Agarwal Traders")
	require.Contains(t, first.HTML, "PVC-2")
	require.Contains(t, first.HTML, "PVC-4")
	require.Contains(t, first.HTML, "0 pcs left, minimum 5")

	second := mail.Outbox[1]
	require.Equal(t, "b@example.com", second.To)
	require.Equal(t, "Low stock alert: 1 product needs restocking", second.Subject)
	require.True(t, strings.Contains(second.HTML, "Hello there,"))
}

func TestLowStockNotifierDisabled(t *testing.T) {
	mail := &common.InMemoryEmail{}
	notifier := LowStockNotifier{Mail: mail, Enabled: false}

	sent, err := notifier.Notify(context.Background(), []dbgen.ListLowStockAlertsRow{
		alertRow("a@example.com", "", "PVC Pipe", "PVC-2", 1, 10),
	})
	require.NoError(t, err)
	require.Zero(t, sent)
	require.Empty(t, mail.Outbox)
}
