package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

var errNotImplemented = errors.New("not implemented")

type fakeQueries struct {
	mu             sync.Mutex
	usersByEmail   map[string]dbgen.User
	usersByID      map[string]dbgen.User
	sessionsByHash map[string]dbgen.Session
	sessionsByID   map[string]dbgen.Session
	resetsByHash   map[string]dbgen.PasswordReset
	resetsByID     map[string]dbgen.PasswordReset
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{
		usersByEmail:   make(map[string]dbgen.User),
		usersByID:      make(map[string]dbgen.User),
		sessionsByHash: make(map[string]dbgen.Session),
		sessionsByID:   make(map[string]dbgen.Session),
		resetsByHash:   make(map[string]dbgen.PasswordReset),
		resetsByID:     make(map[string]dbgen.PasswordReset),
	}
}

func (f *fakeQueries) seedUser(user dbgen.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usersByEmail[strings.ToLower(user.Email)] = user
	f.usersByID[uuidString(user.ID)] = user
}

func (f *fakeQueries) activeSessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sessionsByHash {
		if !s.RevokedAt.Valid {
			n++
		}
	}
	return n
}

func (f *fakeQueries) CreateUser(ctx context.Context, arg dbgen.CreateUserParams) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.usersByEmail[strings.ToLower(arg.Email)]; exists {
		return dbgen.User{}, fmt.Errorf("duplicate email")
	}
	id := uuid.New()
	pgID, _ := pgUUIDFromString(id.String())
	now := time.Now()
	user := dbgen.User{
		ID:              pgID,
		Name:            arg.Name,
		Email:           arg.Email,
		PasswordHash:    arg.PasswordHash,
		Roles:           arg.Roles,
		BusinessName:    arg.BusinessName,
		GstNumber:       arg.GstNumber,
		BusinessState:   arg.BusinessState,
		BusinessPincode: arg.BusinessPincode,
		IsActive:        true,
		IsApproved:      false,
		CreatedAt:       pgTimestamp(now),
		UpdatedAt:       pgTimestamp(now),
	}
	f.usersByEmail[strings.ToLower(arg.Email)] = user
	f.usersByID[id.String()] = user
	return user, nil
}

func (f *fakeQueries) GetUserByEmail(ctx context.Context, email string) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return dbgen.User{}, fmt.Errorf("user not found")
	}
	return user, nil
}

func (f *fakeQueries) GetUserByID(ctx context.Context, id pgtype.UUID) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.usersByID[uuidString(id)]
	if !ok {
		return dbgen.User{}, fmt.Errorf("user not found")
	}
	return user, nil
}

func (f *fakeQueries) ListPendingUsers(ctx context.Context) ([]dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbgen.User
	for _, user := range f.usersByID {
		if !user.IsApproved {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeQueries) SetUserApproved(ctx context.Context, id pgtype.UUID) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(id)
	user, ok := f.usersByID[key]
	if !ok {
		return dbgen.User{}, fmt.Errorf("user not found")
	}
	user.IsApproved = true
	user.UpdatedAt = pgTimestamp(time.Now())
	f.usersByID[key] = user
	f.usersByEmail[strings.ToLower(user.Email)] = user
	return user, nil
}

func (f *fakeQueries) UpdateUserPassword(ctx context.Context, arg dbgen.UpdateUserPasswordParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(arg.ID)
	user, ok := f.usersByID[key]
	if !ok {
		return fmt.Errorf("user not found")
	}
	user.PasswordHash = arg.PasswordHash
	user.UpdatedAt = pgTimestamp(time.Now())
	f.usersByID[key] = user
	f.usersByEmail[strings.ToLower(user.Email)] = user
	return nil
}

func (f *fakeQueries) UpdateUserBusiness(ctx context.Context, arg dbgen.UpdateUserBusinessParams) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(arg.ID)
	user, ok := f.usersByID[key]
	if !ok {
		return dbgen.User{}, fmt.Errorf("user not found")
	}
	user.BusinessName = arg.BusinessName
	user.GstNumber = arg.GstNumber
	user.BusinessState = arg.BusinessState
	user.BusinessPincode = arg.BusinessPincode
	user.UpdatedAt = pgTimestamp(time.Now())
	f.usersByID[key] = user
	f.usersByEmail[strings.ToLower(user.Email)] = user
	return user, nil
}

func (f *fakeQueries) CreateSession(ctx context.Context, arg dbgen.CreateSessionParams) (dbgen.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	pgID, _ := pgUUIDFromString(id.String())
	session := dbgen.Session{
		ID:        pgID,
		UserID:    arg.UserID,
		TokenHash: arg.TokenHash,
		UserAgent: arg.UserAgent,
		Ip:        arg.Ip,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: pgTimestamp(time.Now()),
	}
	f.sessionsByHash[arg.TokenHash] = session
	f.sessionsByID[id.String()] = session
	return session, nil
}

func (f *fakeQueries) GetSessionByTokenHash(ctx context.Context, tokenHash string) (dbgen.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessionsByHash[tokenHash]
	if !ok {
		return dbgen.Session{}, fmt.Errorf("session not found")
	}
	return session, nil
}

func (f *fakeQueries) RevokeSession(ctx context.Context, id pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(id)
	session, ok := f.sessionsByID[key]
	if !ok {
		return nil
	}
	session.RevokedAt = pgTimestamp(time.Now())
	f.sessionsByID[key] = session
	f.sessionsByHash[session.TokenHash] = session
	return nil
}

func (f *fakeQueries) RevokeUserSessions(ctx context.Context, userID pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(userID)
	for hash, session := range f.sessionsByHash {
		if uuidString(session.UserID) == key && !session.RevokedAt.Valid {
			session.RevokedAt = pgTimestamp(time.Now())
			f.sessionsByHash[hash] = session
			f.sessionsByID[uuidString(session.ID)] = session
		}
	}
	return nil
}

func (f *fakeQueries) CreatePasswordReset(ctx context.Context, arg dbgen.CreatePasswordResetParams) (dbgen.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	pgID, _ := pgUUIDFromString(id.String())
	reset := dbgen.PasswordReset{
		ID:        pgID,
		UserID:    arg.UserID,
		TokenHash: arg.TokenHash,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: pgTimestamp(time.Now()),
	}
	f.resetsByHash[arg.TokenHash] = reset
	f.resetsByID[id.String()] = reset
	return reset, nil
}

func (f *fakeQueries) GetPasswordResetByTokenHash(ctx context.Context, tokenHash string) (dbgen.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reset, ok := f.resetsByHash[tokenHash]
	if !ok {
		return dbgen.PasswordReset{}, fmt.Errorf("reset not found")
	}
	return reset, nil
}

func (f *fakeQueries) MarkPasswordResetUsed(ctx context.Context, id pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(id)
	reset, ok := f.resetsByID[key]
	if !ok {
		return fmt.Errorf("reset not found")
	}
	reset.UsedAt = pgTimestamp(time.Now())
	f.resetsByID[key] = reset
	f.resetsByHash[reset.TokenHash] = reset
	return nil
}

// The remaining Querier methods are outside the auth surface.

func (f *fakeQueries) ClearCart(context.Context, pgtype.UUID) error { return errNotImplemented }

func (f *fakeQueries) CountCustomers(context.Context, pgtype.UUID) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) CountInvoices(context.Context, dbgen.CountInvoicesParams) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) CountOrders(context.Context, pgtype.UUID) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) CountOrdersByCustomer(context.Context, pgtype.UUID) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) CountProducts(context.Context, dbgen.CountProductsParams) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) CountUserProducts(context.Context, pgtype.UUID) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) CreateCart(context.Context, pgtype.UUID) (dbgen.Cart, error) {
	return dbgen.Cart{}, errNotImplemented
}

func (f *fakeQueries) CreateCartItem(context.Context, dbgen.CreateCartItemParams) (dbgen.CartItem, error) {
	return dbgen.CartItem{}, errNotImplemented
}

func (f *fakeQueries) CreateCustomer(context.Context, dbgen.CreateCustomerParams) (dbgen.Customer, error) {
	return dbgen.Customer{}, errNotImplemented
}

func (f *fakeQueries) CreateGSTReport(context.Context, dbgen.CreateGSTReportParams) (dbgen.GstReport, error) {
	return dbgen.GstReport{}, errNotImplemented
}

func (f *fakeQueries) CreateInvoice(context.Context, dbgen.CreateInvoiceParams) (dbgen.Invoice, error) {
	return dbgen.Invoice{}, errNotImplemented
}

func (f *fakeQueries) CreateInvoiceItem(context.Context, dbgen.CreateInvoiceItemParams) (dbgen.InvoiceItem, error) {
	return dbgen.InvoiceItem{}, errNotImplemented
}

func (f *fakeQueries) CreateOrder(context.Context, dbgen.CreateOrderParams) (dbgen.Order, error) {
	return dbgen.Order{}, errNotImplemented
}

func (f *fakeQueries) CreateOrderItem(context.Context, dbgen.CreateOrderItemParams) (dbgen.OrderItem, error) {
	return dbgen.OrderItem{}, errNotImplemented
}

func (f *fakeQueries) CreateProduct(context.Context, dbgen.CreateProductParams) (dbgen.Product, error) {
	return dbgen.Product{}, errNotImplemented
}

func (f *fakeQueries) CreateStockMovement(context.Context, dbgen.CreateStockMovementParams) (dbgen.StockMovement, error) {
	return dbgen.StockMovement{}, errNotImplemented
}

func (f *fakeQueries) DecrementProductStock(context.Context, dbgen.DecrementProductStockParams) (dbgen.Product, error) {
	return dbgen.Product{}, errNotImplemented
}

func (f *fakeQueries) DeleteCartItem(context.Context, pgtype.UUID) error { return errNotImplemented }

func (f *fakeQueries) DeleteCustomerPrice(context.Context, dbgen.DeleteCustomerPriceParams) error {
	return errNotImplemented
}

func (f *fakeQueries) DeleteInvoiceItems(context.Context, pgtype.UUID) error {
	return errNotImplemented
}

func (f *fakeQueries) FindCartItemByProduct(context.Context, dbgen.FindCartItemByProductParams) (dbgen.CartItem, error) {
	return dbgen.CartItem{}, errNotImplemented
}

func (f *fakeQueries) GetCart(context.Context, pgtype.UUID) (dbgen.Cart, error) {
	return dbgen.Cart{}, errNotImplemented
}

func (f *fakeQueries) GetCartByUser(context.Context, pgtype.UUID) (dbgen.Cart, error) {
	return dbgen.Cart{}, errNotImplemented
}

func (f *fakeQueries) GetCartItemByID(context.Context, pgtype.UUID) (dbgen.CartItem, error) {
	return dbgen.CartItem{}, errNotImplemented
}

func (f *fakeQueries) GetCustomerByID(context.Context, pgtype.UUID) (dbgen.Customer, error) {
	return dbgen.Customer{}, errNotImplemented
}

func (f *fakeQueries) GetCustomerPrice(context.Context, dbgen.GetCustomerPriceParams) (dbgen.CustomerProductPrice, error) {
	return dbgen.CustomerProductPrice{}, errNotImplemented
}

func (f *fakeQueries) GetGSTSummaryByRate(context.Context, dbgen.GetGSTSummaryByRateParams) ([]dbgen.GetGSTSummaryByRateRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) GetGSTTotalsForPeriod(context.Context, dbgen.GetGSTTotalsForPeriodParams) (dbgen.GetGSTTotalsForPeriodRow, error) {
	return dbgen.GetGSTTotalsForPeriodRow{}, errNotImplemented
}

func (f *fakeQueries) GetInventoryValuation(context.Context, pgtype.UUID) (dbgen.GetInventoryValuationRow, error) {
	return dbgen.GetInventoryValuationRow{}, errNotImplemented
}

func (f *fakeQueries) GetInvoiceByID(context.Context, pgtype.UUID) (dbgen.Invoice, error) {
	return dbgen.Invoice{}, errNotImplemented
}

func (f *fakeQueries) GetOrderByID(context.Context, pgtype.UUID) (dbgen.Order, error) {
	return dbgen.Order{}, errNotImplemented
}

func (f *fakeQueries) GetProductByID(context.Context, pgtype.UUID) (dbgen.Product, error) {
	return dbgen.Product{}, errNotImplemented
}

func (f *fakeQueries) GetProductBySKU(context.Context, string) (dbgen.Product, error) {
	return dbgen.Product{}, errNotImplemented
}

func (f *fakeQueries) GetSalesTotals(context.Context, dbgen.GetSalesTotalsParams) (dbgen.GetSalesTotalsRow, error) {
	return dbgen.GetSalesTotalsRow{}, errNotImplemented
}

func (f *fakeQueries) IncrementProductStock(context.Context, dbgen.IncrementProductStockParams) (dbgen.Product, error) {
	return dbgen.Product{}, errNotImplemented
}

func (f *fakeQueries) ListCartItems(context.Context, pgtype.UUID) ([]dbgen.ListCartItemsRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListCustomers(context.Context, dbgen.ListCustomersParams) ([]dbgen.Customer, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListGSTReports(context.Context, dbgen.ListGSTReportsParams) ([]dbgen.GstReport, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListInvoiceItems(context.Context, pgtype.UUID) ([]dbgen.InvoiceItem, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListInvoices(context.Context, dbgen.ListInvoicesParams) ([]dbgen.Invoice, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListLowStockAlerts(context.Context) ([]dbgen.ListLowStockAlertsRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListLowStockProducts(context.Context, pgtype.UUID) ([]dbgen.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListOrderItems(context.Context, pgtype.UUID) ([]dbgen.OrderItem, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListOrders(context.Context, dbgen.ListOrdersParams) ([]dbgen.Order, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListOrdersByCustomer(context.Context, dbgen.ListOrdersByCustomerParams) ([]dbgen.Order, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListPaidInvoicesForPeriod(context.Context, dbgen.ListPaidInvoicesForPeriodParams) ([]dbgen.ListPaidInvoicesForPeriodRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListProducts(context.Context, dbgen.ListProductsParams) ([]dbgen.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListRecentStockMovements(context.Context, dbgen.ListRecentStockMovementsParams) ([]dbgen.ListRecentStockMovementsRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListStockMovementsByProduct(context.Context, dbgen.ListStockMovementsByProductParams) ([]dbgen.StockMovement, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListTopCustomers(context.Context, dbgen.ListTopCustomersParams) ([]dbgen.ListTopCustomersRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListTopProducts(context.Context, dbgen.ListTopProductsParams) ([]dbgen.ListTopProductsRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) ListUserProducts(context.Context, dbgen.ListUserProductsParams) ([]dbgen.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) MarkInvoicesOverdue(context.Context, pgtype.Date) ([]dbgen.Invoice, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) NextDocumentNumber(context.Context, dbgen.NextDocumentNumberParams) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) SetCartCustomer(context.Context, dbgen.SetCartCustomerParams) (dbgen.Cart, error) {
	return dbgen.Cart{}, errNotImplemented
}

func (f *fakeQueries) SetCustomerActive(context.Context, dbgen.SetCustomerActiveParams) error {
	return errNotImplemented
}

func (f *fakeQueries) SetProductActive(context.Context, dbgen.SetProductActiveParams) error {
	return errNotImplemented
}

func (f *fakeQueries) SetProductStock(context.Context, dbgen.SetProductStockParams) (dbgen.Product, error) {
	return dbgen.Product{}, errNotImplemented
}

func (f *fakeQueries) SumStockMovementsSince(context.Context, dbgen.SumStockMovementsSinceParams) ([]dbgen.SumStockMovementsSinceRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) UpdateCartItemPrice(context.Context, dbgen.UpdateCartItemPriceParams) (dbgen.CartItem, error) {
	return dbgen.CartItem{}, errNotImplemented
}

func (f *fakeQueries) UpdateCartItemQty(context.Context, dbgen.UpdateCartItemQtyParams) (dbgen.CartItem, error) {
	return dbgen.CartItem{}, errNotImplemented
}

func (f *fakeQueries) UpdateCustomer(context.Context, dbgen.UpdateCustomerParams) (dbgen.Customer, error) {
	return dbgen.Customer{}, errNotImplemented
}

func (f *fakeQueries) UpdateInvoice(context.Context, dbgen.UpdateInvoiceParams) (dbgen.Invoice, error) {
	return dbgen.Invoice{}, errNotImplemented
}

func (f *fakeQueries) UpdateInvoiceStatus(context.Context, dbgen.UpdateInvoiceStatusParams) (dbgen.Invoice, error) {
	return dbgen.Invoice{}, errNotImplemented
}

func (f *fakeQueries) UpdateOrderStatus(context.Context, dbgen.UpdateOrderStatusParams) (dbgen.Order, error) {
	return dbgen.Order{}, errNotImplemented
}

func (f *fakeQueries) UpdateProduct(context.Context, dbgen.UpdateProductParams) (dbgen.Product, error) {
	return dbgen.Product{}, errNotImplemented
}

func (f *fakeQueries) UpsertCustomerPrice(context.Context, dbgen.UpsertCustomerPriceParams) (dbgen.CustomerProductPrice, error) {
	return dbgen.CustomerProductPrice{}, errNotImplemented
}

var _ dbgen.Querier = (*fakeQueries)(nil)
