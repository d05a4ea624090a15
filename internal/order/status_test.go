package order

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending skips to shipped", StatusPending, StatusShipped, true},
		{"confirmed to processing", StatusConfirmed, StatusProcessing, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"no backward move", StatusShipped, StatusConfirmed, false},
		{"delivered is terminal", StatusDelivered, StatusShipped, false},
		{"pending can cancel", StatusPending, StatusCancelled, true},
		{"confirmed can cancel", StatusConfirmed, StatusCancelled, true},
		{"processing cannot cancel", StatusProcessing, StatusCancelled, false},
		{"shipped cannot cancel", StatusShipped, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"unknown target", StatusPending, "archived", false},
		{"unknown source", "archived", StatusConfirmed, false},
		{"same status", StatusConfirmed, StatusConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.allowed {
				t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !IsValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if IsValidStatus("archived") {
		t.Fatal("expected unknown status to be invalid")
	}
}
