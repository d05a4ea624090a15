package invoice

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"draft to pending", StatusDraft, StatusPending, true},
		{"draft to cancelled", StatusDraft, StatusCancelled, true},
		{"draft cannot skip to paid", StatusDraft, StatusPaid, false},
		{"pending to paid", StatusPending, StatusPaid, true},
		{"pending to overdue", StatusPending, StatusOverdue, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to done", StatusPending, StatusDone, true},
		{"overdue to paid", StatusOverdue, StatusPaid, true},
		{"overdue to done", StatusOverdue, StatusDone, true},
		{"overdue to cancelled", StatusOverdue, StatusCancelled, true},
		{"overdue cannot go back to pending", StatusOverdue, StatusPending, false},
		{"draft cannot skip to done", StatusDraft, StatusDone, false},
		{"paid is immutable", StatusPaid, StatusCancelled, false},
		{"done is terminal", StatusDone, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"same status", StatusPending, StatusPending, false},
		{"unknown status", StatusPending, "void", false},
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
	for _, status := range []string{StatusDraft, StatusPending, StatusPaid, StatusDone, StatusCancelled, StatusOverdue} {
		if !IsValidStatus(status) {
			t.Fatalf("IsValidStatus(%q) = false, want true", status)
		}
	}
	if IsValidStatus("void") {
		t.Fatal(`IsValidStatus("void") = true, want false`)
	}
}

func TestEditable(t *testing.T) {
	for status, want := range map[string]bool{
		StatusDraft:     true,
		StatusPending:   true,
		StatusPaid:      false,
		StatusDone:      false,
		StatusOverdue:   false,
		StatusCancelled: false,
	} {
		if got := Editable(status); got != want {
			t.Fatalf("Editable(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[int64]string{
		0:      "Rs 0.00",
		5:      "Rs 0.05",
		123456: "Rs 1234.56",
		-250:   "-Rs 2.50",
	}
	for paise, want := range cases {
		if got := FormatMoney(paise); got != want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", paise, got, want)
		}
	}
}
