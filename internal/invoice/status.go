package invoice

// Invoice status values stored in invoices.status.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
	StatusOverdue   = "overdue"
)

// IsValidStatus reports whether the value is a known invoice status.
func IsValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPending, StatusPaid, StatusDone, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// CanTransition reports whether an invoice may move from current to target.
// Paid, done and cancelled invoices are terminal. Overdue is set by the
// worker for pending invoices past their due date and can still be settled
// or cancelled.
func CanTransition(current, target string) bool {
	if !IsValidStatus(current) || !IsValidStatus(target) || current == target {
		return false
	}
	switch current {
	case StatusDraft:
		return target == StatusPending || target == StatusCancelled
	case StatusPending:
		return target == StatusPaid || target == StatusDone || target == StatusOverdue || target == StatusCancelled
	case StatusOverdue:
		return target == StatusPaid || target == StatusDone || target == StatusCancelled
	}
	return false
}

// Editable reports whether the invoice's line items and amounts may still be
// changed.
func Editable(status string) bool {
	return status == StatusDraft || status == StatusPending
}
