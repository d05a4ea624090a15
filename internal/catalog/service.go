package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-gstbill/internal/cache"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/inventory"
)

type queryProvider interface {
	ListProducts(ctx context.Context, arg dbgen.ListProductsParams) ([]dbgen.Product, error)
	CountProducts(ctx context.Context, arg dbgen.CountProductsParams) (int64, error)
	GetProductBySKU(ctx context.Context, sku string) (dbgen.Product, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (dbgen.Product, error)
	ListUserProducts(ctx context.Context, arg dbgen.ListUserProductsParams) ([]dbgen.Product, error)
	CountUserProducts(ctx context.Context, userID pgtype.UUID) (int64, error)
	CreateProduct(ctx context.Context, arg dbgen.CreateProductParams) (dbgen.Product, error)
	UpdateProduct(ctx context.Context, arg dbgen.UpdateProductParams) (dbgen.Product, error)
	SetProductActive(ctx context.Context, arg dbgen.SetProductActiveParams) error
}

// Service orchestrates product queries, DTO assembly, and caching.
type Service struct {
	queries           queryProvider
	cache             *cache.Cache
	defaultPage       int
	defaultLimit      int
	maxLimit          int
	defaultGSTRateBps int
	defaultMinStock   int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries           queryProvider
	Cache             *cache.Cache
	DefaultPage       int
	DefaultLimit      int
	MaxLimit          int
	DefaultGSTRateBps int
	DefaultMinStock   int
}

// ListParams captures filters for product listing.
type ListParams struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// Product is the catalog payload for a single product.
type Product struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	SKU           string               `json:"sku"`
	HSNCode       *string              `json:"hsnCode,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Category      *string              `json:"category,omitempty"`
	Brand         *string              `json:"brand,omitempty"`
	Price         int64                `json:"price"`
	PurchasePrice *int64               `json:"purchasePrice,omitempty"`
	GSTRateBps    int32                `json:"gstRateBps"`
	StockQuantity int32                `json:"stockQuantity"`
	MinStockLevel int32                `json:"minStockLevel"`
	StockState    inventory.StockState `json:"stockState"`
	Unit          string               `json:"unit"`
	ImageURL      *string              `json:"imageUrl,omitempty"`
	IsActive      bool                 `json:"isActive"`
}

// ProductListResult contains list data and pagination metadata.
type ProductListResult struct {
	Items []Product
	Total int64
	Page  int
	Limit int
}

// ProductInput carries the fields accepted on create and update.
type ProductInput struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	SKU           string `json:"sku" validate:"omitempty,min=1,max=64"`
	HSNCode       string `json:"hsnCode" validate:"omitempty,max=16"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	Category      string `json:"category" validate:"omitempty,max=100"`
	Brand         string `json:"brand" validate:"omitempty,max=100"`
	Price         int64  `json:"price" validate:"gte=0"`
	PurchasePrice *int64 `json:"purchasePrice" validate:"omitempty,gte=0"`
	GSTRateBps    *int   `json:"gstRateBps" validate:"omitempty,gte=0,lte=10000"`
	StockQuantity *int   `json:"stockQuantity" validate:"omitempty,gte=0"`
	MinStockLevel *int   `json:"minStockLevel" validate:"omitempty,gte=0"`
	Unit          string `json:"unit" validate:"omitempty,max=16"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,url"`
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries provider is required")
	}
	defaultPage := cfg.DefaultPage
	if defaultPage < 1 {
		defaultPage = 1
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 {
		maxLimit = 100
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	defaultRate := cfg.DefaultGSTRateBps
	if defaultRate < 0 {
		defaultRate = 0
	}
	defaultMinStock := cfg.DefaultMinStock
	if defaultMinStock < 0 {
		defaultMinStock = 0
	}
	return &Service{
		queries:           cfg.Queries,
		cache:             cfg.Cache,
		defaultPage:       defaultPage,
		defaultLimit:      defaultLimit,
		maxLimit:          maxLimit,
		defaultGSTRateBps: defaultRate,
		defaultMinStock:   defaultMinStock,
	}, nil
}

// ParseListParams normalises raw query values into strongly typed filters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{
		Page:  s.defaultPage,
		Limit: s.defaultLimit,
	}
	params.Search = strings.TrimSpace(values.Get("q"))
	params.Category = strings.TrimSpace(values.Get("category"))

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, badRequest("page", "page must be a positive integer", err)
		}
		params.Page = page
	}

	limit := s.defaultLimit
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return params, badRequest("limit", "limit must be a positive integer", err)
		}
		limit = l
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	params.Limit = limit
	return params, nil
}

// ListProducts returns the filtered product list with pagination metadata.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (ProductListResult, error) {
	key, shouldUseCache := s.listCacheKey(params)
	if shouldUseCache && s.cache != nil {
		var cached cachedList
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && ok {
			return ProductListResult{Items: cached.Items, Total: cached.Total, Page: params.Page, Limit: params.Limit}, nil
		}
	}

	countParams := dbgen.CountProductsParams{
		Category: optionalText(params.Category),
		Search:   optionalText(params.Search),
	}
	total, err := s.queries.CountProducts(ctx, countParams)
	if err != nil {
		return ProductListResult{}, fmt.Errorf("count products: %w", err)
	}
	offset := int32((params.Page - 1) * params.Limit)
	if offset < 0 {
		offset = 0
	}
	rows, err := s.queries.ListProducts(ctx, dbgen.ListProductsParams{
		Category: countParams.Category,
		Search:   countParams.Search,
		Limit:    int32(params.Limit),
		Offset:   offset,
	})
	if err != nil {
		return ProductListResult{}, fmt.Errorf("list products: %w", err)
	}
	items := make([]Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, toProduct(row, false))
	}
	result := ProductListResult{Items: items, Total: total, Page: params.Page, Limit: params.Limit}
	if shouldUseCache && s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, cachedList{Items: items, Total: total})
	}
	return result, nil
}

// GetProductBySKU returns a single active product by its SKU.
func (s *Service) GetProductBySKU(ctx context.Context, sku string) (Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Product{}, badRequest("sku", "sku is required", nil)
	}
	cacheKey := detailCacheKey(sku)
	if s.cache != nil {
		var cached Product
		ok, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && ok {
			return cached, nil
		}
	}
	row, err := s.queries.GetProductBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, &common.AppError{Code: "NOT_FOUND", Message: "product not found", HTTPStatus: http.StatusNotFound, Err: err}
		}
		return Product{}, fmt.Errorf("get product by sku: %w", err)
	}
	detail := toProduct(row, false)
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, detail)
	}
	return detail, nil
}

// ListOwned returns every product belonging to the user, active or not,
// including purchase prices.
func (s *Service) ListOwned(ctx context.Context, userID string, page, limit int) (ProductListResult, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return ProductListResult{}, badRequest("userId", "invalid user id", err)
	}
	if page < 1 {
		page = s.defaultPage
	}
	if limit < 1 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	total, err := s.queries.CountUserProducts(ctx, uid)
	if err != nil {
		return ProductListResult{}, fmt.Errorf("count user products: %w", err)
	}
	rows, err := s.queries.ListUserProducts(ctx, dbgen.ListUserProductsParams{
		UserID: uid,
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
	if err != nil {
		return ProductListResult{}, fmt.Errorf("list user products: %w", err)
	}
	items := make([]Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, toProduct(row, true))
	}
	return ProductListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Create registers a new product owned by userID. A missing SKU is generated
// from the product name.
func (s *Service) Create(ctx context.Context, userID string, in ProductInput) (Product, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return Product{}, badRequest("userId", "invalid user id", err)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Product{}, badRequest("name", "name is required", nil)
	}
	if in.Price < 0 {
		return Product{}, badRequest("price", "price cannot be negative", nil)
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = generateSKU(in.Name)
	}
	rate := int32(s.defaultGSTRateBps)
	if in.GSTRateBps != nil {
		rate = int32(*in.GSTRateBps)
	}
	minStock := int32(s.defaultMinStock)
	if in.MinStockLevel != nil {
		minStock = int32(*in.MinStockLevel)
	}
	var stock int32
	if in.StockQuantity != nil {
		stock = int32(*in.StockQuantity)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "PCS"
	}
	row, err := s.queries.CreateProduct(ctx, dbgen.CreateProductParams{
		UserID:        uid,
		Name:          in.Name,
		Sku:           sku,
		HsnCode:       optionalText(in.HSNCode),
		Description:   optionalText(in.Description),
		Category:      optionalText(in.Category),
		Brand:         optionalText(in.Brand),
		Price:         in.Price,
		PurchasePrice: optionalInt8(in.PurchasePrice),
		GstRateBps:    rate,
		StockQuantity: stock,
		MinStockLevel: minStock,
		Unit:          unit,
		ImageUrl:      optionalText(in.ImageURL),
	})
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx, row.Sku)
	return toProduct(row, true), nil
}

// Update modifies an existing product owned by userID. SKU and stock quantity
// are immutable here; stock changes go through inventory movements.
func (s *Service) Update(ctx context.Context, userID, productID string, in ProductInput) (Product, error) {
	existing, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return Product{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Product{}, badRequest("name", "name is required", nil)
	}
	if in.Price < 0 {
		return Product{}, badRequest("price", "price cannot be negative", nil)
	}
	rate := existing.GstRateBps
	if in.GSTRateBps != nil {
		rate = int32(*in.GSTRateBps)
	}
	minStock := existing.MinStockLevel
	if in.MinStockLevel != nil {
		minStock = int32(*in.MinStockLevel)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = existing.Unit
	}
	row, err := s.queries.UpdateProduct(ctx, dbgen.UpdateProductParams{
		ID:            existing.ID,
		Name:          in.Name,
		HsnCode:       optionalText(in.HSNCode),
		Description:   optionalText(in.Description),
		Category:      optionalText(in.Category),
		Brand:         optionalText(in.Brand),
		Price:         in.Price,
		PurchasePrice: optionalInt8(in.PurchasePrice),
		GstRateBps:    rate,
		MinStockLevel: minStock,
		Unit:          unit,
		ImageUrl:      optionalText(in.ImageURL),
	})
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	s.invalidate(ctx, row.Sku)
	return toProduct(row, true), nil
}

// Deactivate soft-deletes a product so it no longer appears in listings.
func (s *Service) Deactivate(ctx context.Context, userID, productID string) error {
	existing, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if err := s.queries.SetProductActive(ctx, dbgen.SetProductActiveParams{ID: existing.ID, IsActive: false}); err != nil {
		return err
	}
	s.invalidate(ctx, existing.Sku)
	return nil
}

// invalidate drops the cached default listing and the product's detail entry
// after a mutation.
func (s *Service) invalidate(ctx context.Context, sku string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "catalog:products:list:default", detailCacheKey(sku))
}

func (s *Service) ownedProduct(ctx context.Context, userID, productID string) (dbgen.Product, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return dbgen.Product{}, badRequest("userId", "invalid user id", err)
	}
	pID, err := parseUUID(productID)
	if err != nil {
		return dbgen.Product{}, badRequest("id", "invalid product id", err)
	}
	row, err := s.queries.GetProductByID(ctx, pID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Product{}, notFound(err)
		}
		return dbgen.Product{}, fmt.Errorf("get product: %w", err)
	}
	if !row.UserID.Valid || !uid.Valid || row.UserID.Bytes != uid.Bytes {
		return dbgen.Product{}, notFound(nil)
	}
	return row, nil
}

type cachedList struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
}

func (s *Service) listCacheKey(params ListParams) (string, bool) {
	if params.Page != s.defaultPage {
		return "", false
	}
	if params.Limit != s.defaultLimit {
		return "", false
	}
	if params.Search != "" || params.Category != "" {
		return "", false
	}
	return "catalog:products:list:default", true
}

func detailCacheKey(sku string) string {
	return "catalog:products:detail:" + sku
}

func toProduct(row dbgen.Product, includeCost bool) Product {
	p := Product{
		ID:            uuidString(row.ID),
		Name:          row.Name,
		SKU:           row.Sku,
		Price:         row.Price,
		GSTRateBps:    row.GstRateBps,
		StockQuantity: row.StockQuantity,
		MinStockLevel: row.MinStockLevel,
		StockState:    inventory.Classify(row.StockQuantity, row.MinStockLevel),
		Unit:          row.Unit,
		IsActive:      row.IsActive,
	}
	if row.HsnCode.Valid {
		v := row.HsnCode.String
		p.HSNCode = &v
	}
	if row.Description.Valid {
		v := row.Description.String
		p.Description = &v
	}
	if row.Category.Valid {
		v := row.Category.String
		p.Category = &v
	}
	if row.Brand.Valid {
		v := row.Brand.String
		p.Brand = &v
	}
	if includeCost && row.PurchasePrice.Valid {
		v := row.PurchasePrice.Int64
		p.PurchasePrice = &v
	}
	if row.ImageUrl.Valid {
		v := row.ImageUrl.String
		p.ImageURL = &v
	}
	return p
}

// generateSKU derives an uppercase SKU from the product name plus a short
// random suffix to keep the column unique.
func generateSKU(name string) string {
	cleaned := make([]rune, 0, 8)
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			cleaned = append(cleaned, r)
		}
		if len(cleaned) == 8 {
			break
		}
	}
	prefix := string(cleaned)
	if prefix == "" {
		prefix = "PRD"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return prefix + "-" + suffix
}

func optionalText(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}

func optionalInt8(ptr *int64) pgtype.Int8 {
	if ptr == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *ptr, Valid: true}
}

func parseUUID(value string) (pgtype.UUID, error) {
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
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}

func badRequest(field, message string, err error) *common.AppError {
	return &common.AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details: map[string]any{
			"field": field,
		},
	}
}

func notFound(err error) *common.AppError {
	return &common.AppError{
		Code:       "NOT_FOUND",
		Message:    "product not found",
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}
