package inventory

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		quantity int32
		minLevel int32
		want     StockState
	}{
		{"zero is out of stock", 0, 10, StateOutOfStock},
		{"zero with zero minimum", 0, 0, StateOutOfStock},
		{"at minimum is low", 10, 10, StateLowStock},
		{"below minimum is low", 1, 10, StateLowStock},
		{"one above minimum is in stock", 11, 10, StateInStock},
		{"positive with zero minimum", 1, 0, StateInStock},
		{"large quantity", 100000, 10, StateInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.quantity, tc.minLevel); got != tc.want {
				t.Fatalf("Classify(%d, %d) = %s, want %s", tc.quantity, tc.minLevel, got, tc.want)
			}
		})
	}
}

func TestInsufficientStockDetails(t *testing.T) {
	appErr := InsufficientStock(3, 5)
	if appErr.Code != "INSUFFICIENT_STOCK" {
		t.Fatalf("unexpected code %q", appErr.Code)
	}
	if appErr.HTTPStatus != 409 {
		t.Fatalf("unexpected status %d", appErr.HTTPStatus)
	}
	if appErr.Details["available"] != int32(3) {
		t.Fatalf("unexpected available detail %v", appErr.Details["available"])
	}
	if appErr.Details["requested"] != 5 {
		t.Fatalf("unexpected requested detail %v", appErr.Details["requested"])
	}
}
