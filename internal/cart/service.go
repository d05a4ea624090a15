package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

// ErrNotFound indicates the requested cart or cart item could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Service encapsulates cart domain operations. Each billing user owns a
// single working cart that is converted into an order at checkout.
type Service struct {
	Q dbgen.Querier
}

// EnsureCart loads or creates the working cart for the given user.
func (s *Service) EnsureCart(ctx context.Context, userID string) (dbgen.Cart, error) {
	if s == nil || s.Q == nil {
		return dbgen.Cart{}, errors.New("cart service not configured")
	}
	uid, err := toUUID(userID)
	if err != nil {
		return dbgen.Cart{}, fmt.Errorf("parse user id: %w", err)
	}
	cart, err := s.Q.GetCartByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.Q.CreateCart(ctx, uid)
		}
		return dbgen.Cart{}, err
	}
	return cart, nil
}

// AssignCustomer attaches a customer to the user's cart and re-resolves each
// line's unit price against that customer's negotiated prices. An empty
// customerID detaches the customer and restores base product prices.
func (s *Service) AssignCustomer(ctx context.Context, userID string, customerID string) (dbgen.Cart, error) {
	if s == nil || s.Q == nil {
		return dbgen.Cart{}, errors.New("cart service not configured")
	}
	cart, err := s.EnsureCart(ctx, userID)
	if err != nil {
		return dbgen.Cart{}, err
	}

	var cID pgtype.UUID
	if customerID != "" {
		cID, err = toUUID(customerID)
		if err != nil {
			return dbgen.Cart{}, fmt.Errorf("parse customer id: %w", err)
		}
		customer, err := s.Q.GetCustomerByID(ctx, cID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return dbgen.Cart{}, fmt.Errorf("customer not found: %w", ErrInvalidInput)
			}
			return dbgen.Cart{}, err
		}
		if !uuidEqual(customer.UserID, cart.UserID) {
			return dbgen.Cart{}, fmt.Errorf("customer not found: %w", ErrInvalidInput)
		}
		if !customer.IsActive {
			return dbgen.Cart{}, fmt.Errorf("customer is inactive: %w", ErrInvalidInput)
		}
	}

	updated, err := s.Q.SetCartCustomer(ctx, dbgen.SetCartCustomerParams{ID: cart.ID, CustomerID: cID})
	if err != nil {
		return dbgen.Cart{}, err
	}
	if err := s.repriceItems(ctx, updated); err != nil {
		return dbgen.Cart{}, err
	}
	return updated, nil
}

func (s *Service) repriceItems(ctx context.Context, cart dbgen.Cart) error {
	items, err := s.Q.ListCartItems(ctx, cart.ID)
	if err != nil {
		return err
	}
	for _, it := range items {
		product, err := s.Q.GetProductByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		price, err := s.unitPriceFor(ctx, cart, product)
		if err != nil {
			return err
		}
		if price == it.UnitPrice {
			continue
		}
		if _, err := s.Q.UpdateCartItemPrice(ctx, dbgen.UpdateCartItemPriceParams{ID: it.ID, UnitPrice: price}); err != nil {
			return err
		}
	}
	return nil
}

// unitPriceFor resolves the snapshot price for a cart line. A negotiated
// customer price wins over the product's base price.
func (s *Service) unitPriceFor(ctx context.Context, cart dbgen.Cart, product dbgen.Product) (int64, error) {
	if cart.CustomerID.Valid {
		override, err := s.Q.GetCustomerPrice(ctx, dbgen.GetCustomerPriceParams{
			CustomerID: cart.CustomerID,
			ProductID:  product.ID,
		})
		if err == nil {
			return override.Price, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
	}
	return product.Price, nil
}

// AddItem inserts a cart line or increments an existing one for the product.
func (s *Service) AddItem(ctx context.Context, userID string, productID string, qty int) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	if qty <= 0 {
		return fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	cart, err := s.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	pID, err := toUUID(productID)
	if err != nil {
		return fmt.Errorf("parse product id: %w", err)
	}
	product, err := s.Q.GetProductByID(ctx, pID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product not found: %w", ErrInvalidInput)
		}
		return err
	}
	if !uuidEqual(product.UserID, cart.UserID) {
		return fmt.Errorf("product not found: %w", ErrInvalidInput)
	}
	if !product.IsActive {
		return fmt.Errorf("product is inactive: %w", ErrInvalidInput)
	}

	item, err := s.Q.FindCartItemByProduct(ctx, dbgen.FindCartItemByProductParams{
		CartID:    cart.ID,
		ProductID: pID,
	})
	if err == nil {
		_, err = s.Q.UpdateCartItemQty(ctx, dbgen.UpdateCartItemQtyParams{ID: item.ID, Qty: item.Qty + int32(qty)})
		return err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	price, err := s.unitPriceFor(ctx, cart, product)
	if err != nil {
		return err
	}
	_, err = s.Q.CreateCartItem(ctx, dbgen.CreateCartItemParams{
		CartID:    cart.ID,
		ProductID: pID,
		Qty:       int32(qty),
		UnitPrice: price,
	})
	return err
}

// UpdateQty sets the quantity for a cart line. A quantity of zero or less
// removes the line entirely.
func (s *Service) UpdateQty(ctx context.Context, userID string, itemID string, qty int) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return s.Q.DeleteCartItem(ctx, item.ID)
	}
	_, err = s.Q.UpdateCartItemQty(ctx, dbgen.UpdateCartItemQtyParams{ID: item.ID, Qty: int32(qty)})
	return err
}

// RemoveItem deletes a cart line.
func (s *Service) RemoveItem(ctx context.Context, userID string, itemID string) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.Q.DeleteCartItem(ctx, item.ID)
}

// Clear removes every line from the user's cart.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	cart, err := s.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.Q.ClearCart(ctx, cart.ID)
}

func (s *Service) ownedItem(ctx context.Context, userID string, itemID string) (dbgen.CartItem, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return dbgen.CartItem{}, fmt.Errorf("parse user id: %w", err)
	}
	iID, err := toUUID(itemID)
	if err != nil {
		return dbgen.CartItem{}, fmt.Errorf("parse item id: %w", err)
	}
	item, err := s.Q.GetCartItemByID(ctx, iID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.CartItem{}, ErrNotFound
		}
		return dbgen.CartItem{}, err
	}
	cart, err := s.Q.GetCart(ctx, item.CartID)
	if err != nil {
		return dbgen.CartItem{}, err
	}
	if !uuidEqual(cart.UserID, uid) {
		return dbgen.CartItem{}, ErrNotFound
	}
	return item, nil
}

// IntraState reports whether a supply from the user's business to the cart's
// customer is intra-state. When no customer is attached, or either party has
// no recorded state, the supply is treated as intra-state.
func (s *Service) IntraState(ctx context.Context, cart dbgen.Cart) (bool, error) {
	if s == nil || s.Q == nil {
		return true, errors.New("cart service not configured")
	}
	if !cart.CustomerID.Valid {
		return true, nil
	}
	user, err := s.Q.GetUserByID(ctx, cart.UserID)
	if err != nil {
		return true, err
	}
	customer, err := s.Q.GetCustomerByID(ctx, cart.CustomerID)
	if err != nil {
		return true, err
	}
	return SameState(user.BusinessState, customer.State), nil
}

// SameState compares two state values, treating missing values as a match so
// the tax split defaults to the intra-state CGST+SGST pair.
func SameState(a, b pgtype.Text) bool {
	if !a.Valid || !b.Valid || strings.TrimSpace(a.String) == "" || strings.TrimSpace(b.String) == "" {
		return true
	}
	return normalizeState(a.String) == normalizeState(b.String)
}

func normalizeState(v string) string {
	return strings.ToLower(strings.Join(strings.Fields(v), " "))
}

func toUUID(value string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// ToUUID converts a string representation of a UUID into pgtype.UUID.
func ToUUID(value string) (pgtype.UUID, error) {
	return toUUID(value)
}

// UUIDString converts a pgtype.UUID into a canonical string.
func UUIDString(id pgtype.UUID) string {
	return uuidString(id)
}

// UUIDEqual reports whether two UUID values are both valid and identical.
func UUIDEqual(a, b pgtype.UUID) bool {
	return uuidEqual(a, b)
}

func uuidEqual(a, b pgtype.UUID) bool {
	if !a.Valid || !b.Valid {
		return false
	}
	return a.Bytes == b.Bytes
}
