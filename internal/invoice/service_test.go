package invoice

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

type fakeParties struct {
	user     dbgen.User
	customer dbgen.Customer
}

func (f *fakeParties) GetCustomerByID(_ context.Context, id pgtype.UUID) (dbgen.Customer, error) {
	if !cart.UUIDEqual(f.customer.ID, id) {
		return dbgen.Customer{}, pgx.ErrNoRows
	}
	return f.customer, nil
}

func (f *fakeParties) GetUserByID(_ context.Context, id pgtype.UUID) (dbgen.User, error) {
	if !cart.UUIDEqual(f.user.ID, id) {
		return dbgen.User{}, pgx.ErrNoRows
	}
	return f.user, nil
}

func stateText(v string) pgtype.Text {
	return pgtype.Text{String: v, Valid: true}
}

// The split decision must come from the parties' states alone. Recomputing an
// invoice whose stored amounts carried no IGST still yields an inter-state
// split when the customer sits in another state.
func TestCustomerSplitDerivesJurisdictionFromStates(t *testing.T) {
	uID, _ := cart.ToUUID("11111111-2222-3333-4444-555555555555")
	cID, _ := cart.ToUUID("66666666-7777-8888-9999-aaaaaaaaaaaa")

	cases := []struct {
		name          string
		businessState string
		customerState string
		wantIntra     bool
	}{
		{"same state", "Maharashtra", "Maharashtra", true},
		{"different states", "Maharashtra", "Delhi", false},
		{"spacing and case ignored", "  tamil  nadu ", "Tamil Nadu", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeParties{
				user:     dbgen.User{ID: uID, BusinessState: stateText(tc.businessState)},
				customer: dbgen.Customer{ID: cID, UserID: uID, IsActive: true, State: stateText(tc.customerState)},
			}
			_, intra, err := (&Service{}).customerSplit(context.Background(), q, uID, cart.UUIDString(cID))
			if err != nil {
				t.Fatalf("customerSplit: %v", err)
			}
			if intra != tc.wantIntra {
				t.Fatalf("intra = %v, want %v", intra, tc.wantIntra)
			}
		})
	}
}

func TestCustomerSplitRejectsForeignOrInactiveCustomer(t *testing.T) {
	uID, _ := cart.ToUUID("11111111-2222-3333-4444-555555555555")
	otherUser, _ := cart.ToUUID("99999999-8888-7777-6666-555555555555")
	cID, _ := cart.ToUUID("66666666-7777-8888-9999-aaaaaaaaaaaa")

	cases := []struct {
		name     string
		customer dbgen.Customer
	}{
		{"another user's customer", dbgen.Customer{ID: cID, UserID: otherUser, IsActive: true}},
		{"inactive customer", dbgen.Customer{ID: cID, UserID: uID, IsActive: false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeParties{
				user:     dbgen.User{ID: uID, BusinessState: stateText("Maharashtra")},
				customer: tc.customer,
			}
			if _, _, err := (&Service{}).customerSplit(context.Background(), q, uID, cart.UUIDString(cID)); err == nil {
				t.Fatal("expected customer lookup to fail")
			}
		})
	}
}
