package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

type fakeOrderQueries struct {
	dbgen.Querier

	order      dbgen.Order
	updateArgs *dbgen.UpdateOrderStatusParams
	updateErr  error
}

func (f *fakeOrderQueries) GetOrderByID(_ context.Context, id pgtype.UUID) (dbgen.Order, error) {
	if !cart.UUIDEqual(f.order.ID, id) {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	return f.order, nil
}

func (f *fakeOrderQueries) UpdateOrderStatus(_ context.Context, arg dbgen.UpdateOrderStatusParams) (dbgen.Order, error) {
	f.updateArgs = &arg
	if f.updateErr != nil {
		return dbgen.Order{}, f.updateErr
	}
	out := f.order
	out.Status = arg.Status
	return out, nil
}

func patchStatus(t *testing.T, q dbgen.Querier, orderID, status string) *httptest.ResponseRecorder {
	t.Helper()
	h := &AdminHandler{Q: q}
	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/"+orderID+"/status", strings.NewReader(`{"status":"`+status+`"}`))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", orderID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.PatchStatus(rec, req)
	return rec
}

func TestPatchStatusWritesConditionallyOnCurrentStatus(t *testing.T) {
	const orderID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	oID, _ := cart.ToUUID(orderID)
	f := &fakeOrderQueries{order: dbgen.Order{ID: oID, Status: StatusPending}}

	rec := patchStatus(t, f, orderID, StatusConfirmed)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if f.updateArgs == nil {
		t.Fatal("expected an update")
	}
	if f.updateArgs.CurrentStatus != StatusPending {
		t.Fatalf("CurrentStatus = %q, want %q", f.updateArgs.CurrentStatus, StatusPending)
	}
	if f.updateArgs.Status != StatusConfirmed {
		t.Fatalf("Status = %q, want %q", f.updateArgs.Status, StatusConfirmed)
	}
}

func TestPatchStatusConflictsWhenStatusMovedUnderneath(t *testing.T) {
	const orderID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	oID, _ := cart.ToUUID(orderID)
	f := &fakeOrderQueries{
		order:     dbgen.Order{ID: oID, Status: StatusPending},
		updateErr: pgx.ErrNoRows,
	}

	rec := patchStatus(t, f, orderID, StatusConfirmed)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusConflict, rec.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Code != "INVALID_STATE" {
		t.Fatalf("code = %q, want INVALID_STATE", body.Error.Code)
	}
}

func TestPatchStatusRejectsDisallowedTransition(t *testing.T) {
	const orderID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	oID, _ := cart.ToUUID(orderID)
	f := &fakeOrderQueries{order: dbgen.Order{ID: oID, Status: StatusDelivered}}

	rec := patchStatus(t, f, orderID, StatusShipped)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if f.updateArgs != nil {
		t.Fatal("no update should be attempted for a disallowed transition")
	}
}
