package inventory

// StockState labels a product's inventory position relative to its minimum
// stock level.
type StockState string

const (
	// StateInStock means quantity is strictly above the minimum level.
	StateInStock StockState = "IN_STOCK"
	// StateLowStock means quantity is positive but at or below the minimum level.
	StateLowStock StockState = "LOW_STOCK"
	// StateOutOfStock means quantity is zero.
	StateOutOfStock StockState = "OUT_OF_STOCK"
)

// Classify maps a stock quantity and minimum level to a stock state.
// A zero quantity is always OUT_OF_STOCK regardless of the minimum level.
func Classify(quantity, minLevel int32) StockState {
	switch {
	case quantity <= 0:
		return StateOutOfStock
	case quantity <= minLevel:
		return StateLowStock
	default:
		return StateInStock
	}
}
