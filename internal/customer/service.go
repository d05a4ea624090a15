package customer

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

// gstinPattern matches the 15-character GSTIN format: state code, PAN,
// entity number, the literal Z and a check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

type queryProvider interface {
	CreateCustomer(ctx context.Context, arg dbgen.CreateCustomerParams) (dbgen.Customer, error)
	UpdateCustomer(ctx context.Context, arg dbgen.UpdateCustomerParams) (dbgen.Customer, error)
	GetCustomerByID(ctx context.Context, id pgtype.UUID) (dbgen.Customer, error)
	ListCustomers(ctx context.Context, arg dbgen.ListCustomersParams) ([]dbgen.Customer, error)
	CountCustomers(ctx context.Context, userID pgtype.UUID) (int64, error)
	SetCustomerActive(ctx context.Context, arg dbgen.SetCustomerActiveParams) error
	UpsertCustomerPrice(ctx context.Context, arg dbgen.UpsertCustomerPriceParams) (dbgen.CustomerProductPrice, error)
	GetCustomerPrice(ctx context.Context, arg dbgen.GetCustomerPriceParams) (dbgen.CustomerProductPrice, error)
	DeleteCustomerPrice(ctx context.Context, arg dbgen.DeleteCustomerPriceParams) error
	GetProductByID(ctx context.Context, id pgtype.UUID) (dbgen.Product, error)
	ListOrdersByCustomer(ctx context.Context, arg dbgen.ListOrdersByCustomerParams) ([]dbgen.Order, error)
	CountOrdersByCustomer(ctx context.Context, customerID pgtype.UUID) (int64, error)
}

// Service manages a billing user's customer book and per-customer prices.
type Service struct {
	q queryProvider
}

// NewService constructs a Service backed by the given queries.
func NewService(q queryProvider) *Service {
	return &Service{q: q}
}

// Customer is the API representation of a customer record.
type Customer struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	GSTIN           string `json:"gstin,omitempty"`
	CompanyName     string `json:"companyName,omitempty"`
	BillingAddress  string `json:"billingAddress,omitempty"`
	ShippingAddress string `json:"shippingAddress,omitempty"`
	State           string `json:"state,omitempty"`
	Pincode         string `json:"pincode,omitempty"`
	IsActive        bool   `json:"isActive"`
}

// Input carries customer create and update payloads.
type Input struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	GSTIN           string `json:"gstin" validate:"omitempty,len=15"`
	CompanyName     string `json:"companyName" validate:"omitempty,max=200"`
	BillingAddress  string `json:"billingAddress" validate:"omitempty,max=500"`
	ShippingAddress string `json:"shippingAddress" validate:"omitempty,max=500"`
	State           string `json:"state" validate:"omitempty,max=50"`
	Pincode         string `json:"pincode" validate:"omitempty,max=10"`
}

// PriceInput sets a customer-specific unit price in paise.
type PriceInput struct {
	ProductID string `json:"productId" validate:"required"`
	Price     int64  `json:"price" validate:"gte=0"`
}

// ListResult pages through the customer book.
type ListResult struct {
	Items []Customer
	Total int64
	Page  int
	Limit int
}

// List returns the user's active customers.
func (s *Service) List(ctx context.Context, userID string, page, limit int) (ListResult, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return ListResult{}, badRequest("invalid user id")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.q.ListCustomers(ctx, dbgen.ListCustomersParams{
		UserID: uID,
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
	if err != nil {
		return ListResult{}, err
	}
	total, err := s.q.CountCustomers(ctx, uID)
	if err != nil {
		return ListResult{}, err
	}
	items := make([]Customer, 0, len(rows))
	for _, row := range rows {
		items = append(items, toCustomer(row))
	}
	return ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Get returns one customer owned by the user.
func (s *Service) Get(ctx context.Context, userID, customerID string) (Customer, error) {
	row, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return Customer{}, err
	}
	return toCustomer(row), nil
}

// Create adds a customer to the user's book.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Customer, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return Customer{}, badRequest("invalid user id")
	}
	normalized, err := normalizeInput(in)
	if err != nil {
		return Customer{}, err
	}
	row, err := s.q.CreateCustomer(ctx, dbgen.CreateCustomerParams{
		UserID:          uID,
		Name:            normalized.Name,
		Email:           optionalText(normalized.Email),
		Phone:           optionalText(normalized.Phone),
		Gstin:           optionalText(normalized.GSTIN),
		CompanyName:     optionalText(normalized.CompanyName),
		BillingAddress:  optionalText(normalized.BillingAddress),
		ShippingAddress: optionalText(normalized.ShippingAddress),
		State:           optionalText(normalized.State),
		Pincode:         optionalText(normalized.Pincode),
	})
	if err != nil {
		return Customer{}, err
	}
	return toCustomer(row), nil
}

// Update replaces the customer's mutable fields.
func (s *Service) Update(ctx context.Context, userID, customerID string, in Input) (Customer, error) {
	existing, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return Customer{}, err
	}
	normalized, err := normalizeInput(in)
	if err != nil {
		return Customer{}, err
	}
	row, err := s.q.UpdateCustomer(ctx, dbgen.UpdateCustomerParams{
		ID:              existing.ID,
		Name:            normalized.Name,
		Email:           optionalText(normalized.Email),
		Phone:           optionalText(normalized.Phone),
		Gstin:           optionalText(normalized.GSTIN),
		CompanyName:     optionalText(normalized.CompanyName),
		BillingAddress:  optionalText(normalized.BillingAddress),
		ShippingAddress: optionalText(normalized.ShippingAddress),
		State:           optionalText(normalized.State),
		Pincode:         optionalText(normalized.Pincode),
	})
	if err != nil {
		return Customer{}, err
	}
	return toCustomer(row), nil
}

// Deactivate soft-deletes a customer. Orders and invoices keep referencing
// the row.
func (s *Service) Deactivate(ctx context.Context, userID, customerID string) error {
	existing, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return err
	}
	return s.q.SetCustomerActive(ctx, dbgen.SetCustomerActiveParams{ID: existing.ID, IsActive: false})
}

// SetPrice stores a customer-specific unit price for a product. Both the
// customer and the product must belong to the user.
func (s *Service) SetPrice(ctx context.Context, userID, customerID string, in PriceInput) (int64, error) {
	cust, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return 0, err
	}
	if in.Price < 0 {
		return 0, badRequest("price must not be negative")
	}
	pID, err := cart.ToUUID(in.ProductID)
	if err != nil {
		return 0, badRequest("invalid product id")
	}
	product, err := s.q.GetProductByID(ctx, pID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, notFound("product not found")
		}
		return 0, err
	}
	uID, _ := cart.ToUUID(userID)
	if !cart.UUIDEqual(product.UserID, uID) {
		return 0, notFound("product not found")
	}
	row, err := s.q.UpsertCustomerPrice(ctx, dbgen.UpsertCustomerPriceParams{
		CustomerID: cust.ID,
		ProductID:  pID,
		Price:      in.Price,
	})
	if err != nil {
		return 0, err
	}
	return row.Price, nil
}

// Price returns the customer-specific unit price for a product, if one is
// set.
func (s *Service) Price(ctx context.Context, userID, customerID, productID string) (int64, bool, error) {
	cust, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return 0, false, err
	}
	pID, err := cart.ToUUID(productID)
	if err != nil {
		return 0, false, badRequest("invalid product id")
	}
	row, err := s.q.GetCustomerPrice(ctx, dbgen.GetCustomerPriceParams{CustomerID: cust.ID, ProductID: pID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.Price, true, nil
}

// RemovePrice deletes a customer-specific price, reverting the customer to
// the catalog price.
func (s *Service) RemovePrice(ctx context.Context, userID, customerID, productID string) error {
	cust, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return err
	}
	pID, err := cart.ToUUID(productID)
	if err != nil {
		return badRequest("invalid product id")
	}
	return s.q.DeleteCustomerPrice(ctx, dbgen.DeleteCustomerPriceParams{CustomerID: cust.ID, ProductID: pID})
}

// Orders lists the customer's orders, newest first.
func (s *Service) Orders(ctx context.Context, userID, customerID string, page, limit int) ([]dbgen.Order, int64, error) {
	cust, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.q.ListOrdersByCustomer(ctx, dbgen.ListOrdersByCustomerParams{
		CustomerID: cust.ID,
		Limit:      int32(limit),
		Offset:     int32((page - 1) * limit),
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.q.CountOrdersByCustomer(ctx, cust.ID)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) owned(ctx context.Context, userID, customerID string) (dbgen.Customer, error) {
	uID, err := cart.ToUUID(userID)
	if err != nil {
		return dbgen.Customer{}, badRequest("invalid user id")
	}
	cID, err := cart.ToUUID(customerID)
	if err != nil {
		return dbgen.Customer{}, notFound("customer not found")
	}
	row, err := s.q.GetCustomerByID(ctx, cID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Customer{}, notFound("customer not found")
		}
		return dbgen.Customer{}, err
	}
	if !cart.UUIDEqual(row.UserID, uID) || !row.IsActive {
		return dbgen.Customer{}, notFound("customer not found")
	}
	return row, nil
}

func normalizeInput(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Input{}, badRequest("name is required")
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if in.GSTIN != "" && !gstinPattern.MatchString(in.GSTIN) {
		return Input{}, &common.AppError{
			Code:       "VALIDATION_ERROR",
			Message:    "invalid GSTIN",
			HTTPStatus: http.StatusBadRequest,
			Details:    map[string]any{"gstin": in.GSTIN},
		}
	}
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.BillingAddress = strings.TrimSpace(in.BillingAddress)
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.State = strings.TrimSpace(in.State)
	in.Pincode = strings.TrimSpace(in.Pincode)
	return in, nil
}

func toCustomer(row dbgen.Customer) Customer {
	return Customer{
		ID:              cart.UUIDString(row.ID),
		Name:            row.Name,
		Email:           row.Email.String,
		Phone:           row.Phone.String,
		GSTIN:           row.Gstin.String,
		CompanyName:     row.CompanyName.String,
		BillingAddress:  row.BillingAddress.String,
		ShippingAddress: row.ShippingAddress.String,
		State:           row.State.String,
		Pincode:         row.Pincode.String,
		IsActive:        row.IsActive,
	}
}

func optionalText(v string) pgtype.Text {
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}

func badRequest(message string) *common.AppError {
	return &common.AppError{Code: "VALIDATION_ERROR", Message: message, HTTPStatus: http.StatusBadRequest}
}

func notFound(message string) *common.AppError {
	return &common.AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
}
