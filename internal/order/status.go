package order

// Order status values stored in orders.status.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// statusRank orders the forward fulfilment states. Cancelled and unknown
// statuses sit outside the forward chain.
func statusRank(status string) int {
	switch status {
	case StatusPending:
		return 0
	case StatusConfirmed:
		return 1
	case StatusProcessing:
		return 2
	case StatusShipped:
		return 3
	case StatusDelivered:
		return 4
	case StatusCancelled:
		return -1
	default:
		return -2
	}
}

// IsValidStatus reports whether the value is a known order status.
func IsValidStatus(status string) bool {
	return statusRank(status) >= -1
}

// CanTransition reports whether an order may move from current to target.
// Fulfilment only moves forward; cancellation is allowed while the order is
// still pending or confirmed.
func CanTransition(current, target string) bool {
	if !IsValidStatus(current) || !IsValidStatus(target) {
		return false
	}
	if target == StatusCancelled {
		return current == StatusPending || current == StatusConfirmed
	}
	if current == StatusCancelled {
		return false
	}
	return statusRank(target) > statusRank(current)
}
