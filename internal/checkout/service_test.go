package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

// fakeQueries serves the pre-transaction cart checks. The tests wire a zero
// pool: a rejected cart must never reach the transactional phase.
type fakeQueries struct {
	dbgen.Querier

	hasCart bool
	cart    dbgen.Cart
	items   []dbgen.ListCartItemsRow
}

func (f *fakeQueries) GetCartByUser(_ context.Context, userID pgtype.UUID) (dbgen.Cart, error) {
	if !f.hasCart || !cart.UUIDEqual(f.cart.UserID, userID) {
		return dbgen.Cart{}, pgx.ErrNoRows
	}
	return f.cart, nil
}

func (f *fakeQueries) ListCartItems(_ context.Context, cartID pgtype.UUID) ([]dbgen.ListCartItemsRow, error) {
	if !cart.UUIDEqual(f.cart.ID, cartID) {
		return nil, nil
	}
	return f.items, nil
}

const (
	testUserID     = "11111111-2222-3333-4444-555555555555"
	testCartID     = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	testCustomerID = "66666666-7777-8888-9999-aaaaaaaaaaaa"
)

func newService(f *fakeQueries) *Service {
	return &Service{
		Q:           f,
		Pool:        &pgxpool.Pool{},
		CartSvc:     &cart.Service{Q: f},
		OrderPrefix: "ORD",
	}
}

func requireValidationError(t *testing.T, err error, message string) {
	t.Helper()
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", appErr.Code)
	}
	if appErr.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", appErr.HTTPStatus, http.StatusBadRequest)
	}
	if appErr.Message != message {
		t.Fatalf("message = %q, want %q", appErr.Message, message)
	}
}

func TestCreateRejectsMissingCart(t *testing.T) {
	svc := newService(&fakeQueries{})

	_, err := svc.Create(context.Background(), testUserID, Input{})
	requireValidationError(t, err, "cart is empty")
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	cID, _ := cart.ToUUID(testCartID)
	uID, _ := cart.ToUUID(testUserID)
	custID, _ := cart.ToUUID(testCustomerID)
	svc := newService(&fakeQueries{
		hasCart: true,
		cart:    dbgen.Cart{ID: cID, UserID: uID, CustomerID: custID},
	})

	_, err := svc.Create(context.Background(), testUserID, Input{})
	requireValidationError(t, err, "cart is empty")
}

func TestCreateRequiresCustomer(t *testing.T) {
	cID, _ := cart.ToUUID(testCartID)
	uID, _ := cart.ToUUID(testUserID)
	svc := newService(&fakeQueries{
		hasCart: true,
		cart:    dbgen.Cart{ID: cID, UserID: uID},
		items:   []dbgen.ListCartItemsRow{{Qty: 1, UnitPrice: 100}},
	})

	_, err := svc.Create(context.Background(), testUserID, Input{})
	requireValidationError(t, err, "a customer must be assigned before checkout")
}
