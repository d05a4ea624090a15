package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-gstbill/internal/catalog"
	"github.com/noah-isme/backend-gstbill/internal/common"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
)

type productsResponse struct {
	Data       []catalog.Product `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		TotalItems int `json:"total_items"`
	} `json:"pagination"`
}

type productResponse struct {
	Data catalog.Product `json:"data"`
}

const testOwnerID = "11111111-1111-1111-1111-111111111111"

func TestCatalogHandlers(t *testing.T) {
	queries := newFakeCatalogQueries(t)
	svc, err := catalog.NewService(catalog.ServiceConfig{
		Queries:           queries,
		DefaultPage:       1,
		DefaultLimit:      20,
		MaxLimit:          100,
		DefaultGSTRateBps: 1800,
		DefaultMinStock:   10,
	})
	require.NoError(t, err)

	handler := catalog.NewHandler(catalog.HandlerConfig{Service: svc, Validate: validator.New()})

	t.Run("products list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=1", nil)
		rec := httptest.NewRecorder()
		handler.Products(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "2", rec.Header().Get("X-Total-Count"))

		var resp productsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		require.Equal(t, "Steel Bolt M8", resp.Data[0].Name)
		require.Equal(t, int64(1250), resp.Data[0].Price)
		require.Equal(t, 1, resp.Pagination.Page)
		require.Equal(t, 1, resp.Pagination.PerPage)
		require.Equal(t, 2, resp.Pagination.TotalItems)
	})

	t.Run("product by sku reports stock state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/BOLT-M8", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("sku", "BOLT-M8")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		handler.ProductBySKU(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp productResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "BOLT-M8", resp.Data.SKU)
		require.Equal(t, int32(1800), resp.Data.GSTRateBps)
		require.Equal(t, "LOW_STOCK", string(resp.Data.StockState))
		require.Nil(t, resp.Data.PurchasePrice)
	})

	t.Run("unknown sku is not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/MISSING", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("sku", "MISSING")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		handler.ProductBySKU(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("create product applies defaults", func(t *testing.T) {
		body := bytes.NewBufferString(`{"name":"Copper Wire 2mm","price":45000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", body)
		req = req.WithContext(common.WithUserID(req.Context(), testOwnerID))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp productResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Copper Wire 2mm", resp.Data.Name)
		require.NotEmpty(t, resp.Data.SKU)
		require.Equal(t, int32(1800), resp.Data.GSTRateBps)
		require.Equal(t, int32(10), resp.Data.MinStockLevel)
		require.Equal(t, "PCS", resp.Data.Unit)
		require.Equal(t, "OUT_OF_STOCK", string(resp.Data.StockState))
	})

	t.Run("create rejects invalid payload", func(t *testing.T) {
		body := bytes.NewBufferString(`{"name":"","price":-5}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", body)
		req = req.WithContext(common.WithUserID(req.Context(), testOwnerID))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.True(t, strings.Contains(rec.Body.String(), "VALIDATION_ERROR"))
	})

	t.Run("update rejects foreign product", func(t *testing.T) {
		body := bytes.NewBufferString(`{"name":"Renamed","price":100}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/"+queries.foreignProductID(), body)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", queries.foreignProductID())
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		req = req.WithContext(common.WithUserID(req.Context(), testOwnerID))
		rec := httptest.NewRecorder()
		handler.Update(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type fakeCatalogQueries struct {
	t        *testing.T
	products []dbgen.Product
	foreign  dbgen.Product
}

func newFakeCatalogQueries(t *testing.T) *fakeCatalogQueries {
	t.Helper()
	owner := mustUUID(t, testOwnerID)
	other := mustUUID(t, "99999999-9999-9999-9999-999999999999")

	bolt := dbgen.Product{
		ID:            mustUUID(t, "33333333-3333-3333-3333-333333333333"),
		UserID:        owner,
		Name:          "Steel Bolt M8",
		Sku:           "BOLT-M8",
		HsnCode:       pgtype.Text{String: "7318", Valid: true},
		Price:         1250,
		PurchasePrice: pgtype.Int8{Int64: 800, Valid: true},
		GstRateBps:    1800,
		StockQuantity: 5,
		MinStockLevel: 10,
		Unit:          "PCS",
		IsActive:      true,
	}
	paint := dbgen.Product{
		ID:            mustUUID(t, "44444444-4444-4444-4444-444444444444"),
		UserID:        owner,
		Name:          "Wall Paint 1L",
		Sku:           "PAINT-1L",
		Price:         38500,
		GstRateBps:    2800,
		StockQuantity: 40,
		MinStockLevel: 5,
		Unit:          "PCS",
		IsActive:      true,
	}
	foreign := dbgen.Product{
		ID:            mustUUID(t, "55555555-5555-5555-5555-555555555555"),
		UserID:        other,
		Name:          "Foreign Product",
		Sku:           "FOREIGN-1",
		Price:         100,
		GstRateBps:    1800,
		StockQuantity: 1,
		MinStockLevel: 1,
		Unit:          "PCS",
		IsActive:      true,
	}
	return &fakeCatalogQueries{t: t, products: []dbgen.Product{bolt, paint, foreign}, foreign: foreign}
}

func (f *fakeCatalogQueries) foreignProductID() string {
	return uuidStr(f.foreign.ID)
}

func (f *fakeCatalogQueries) ListProducts(ctx context.Context, arg dbgen.ListProductsParams) ([]dbgen.Product, error) {
	filtered := f.filter(arg.Category, arg.Search)
	start := int(arg.Offset)
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + int(arg.Limit)
	if end > len(filtered) {
		end = len(filtered)
	}
	return append([]dbgen.Product(nil), filtered[start:end]...), nil
}

func (f *fakeCatalogQueries) CountProducts(ctx context.Context, arg dbgen.CountProductsParams) (int64, error) {
	return int64(len(f.filter(arg.Category, arg.Search))), nil
}

func (f *fakeCatalogQueries) GetProductBySKU(ctx context.Context, sku string) (dbgen.Product, error) {
	for _, p := range f.products {
		if p.Sku == sku && p.IsActive {
			return p, nil
		}
	}
	return dbgen.Product{}, pgx.ErrNoRows
}

func (f *fakeCatalogQueries) GetProductByID(ctx context.Context, id pgtype.UUID) (dbgen.Product, error) {
	for _, p := range f.products {
		if p.ID.Bytes == id.Bytes {
			return p, nil
		}
	}
	return dbgen.Product{}, pgx.ErrNoRows
}

func (f *fakeCatalogQueries) ListUserProducts(ctx context.Context, arg dbgen.ListUserProductsParams) ([]dbgen.Product, error) {
	result := make([]dbgen.Product, 0, len(f.products))
	for _, p := range f.products {
		if p.UserID.Bytes == arg.UserID.Bytes {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeCatalogQueries) CountUserProducts(ctx context.Context, userID pgtype.UUID) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.UserID.Bytes == userID.Bytes {
			n++
		}
	}
	return n, nil
}

func (f *fakeCatalogQueries) CreateProduct(ctx context.Context, arg dbgen.CreateProductParams) (dbgen.Product, error) {
	p := dbgen.Product{
		ID:            mustUUID(f.t, uuid.NewString()),
		UserID:        arg.UserID,
		Name:          arg.Name,
		Sku:           arg.Sku,
		HsnCode:       arg.HsnCode,
		Description:   arg.Description,
		Category:      arg.Category,
		Brand:         arg.Brand,
		Price:         arg.Price,
		PurchasePrice: arg.PurchasePrice,
		GstRateBps:    arg.GstRateBps,
		StockQuantity: arg.StockQuantity,
		MinStockLevel: arg.MinStockLevel,
		Unit:          arg.Unit,
		ImageUrl:      arg.ImageUrl,
		IsActive:      true,
	}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeCatalogQueries) UpdateProduct(ctx context.Context, arg dbgen.UpdateProductParams) (dbgen.Product, error) {
	for i, p := range f.products {
		if p.ID.Bytes == arg.ID.Bytes {
			p.Name = arg.Name
			p.Price = arg.Price
			p.GstRateBps = arg.GstRateBps
			p.MinStockLevel = arg.MinStockLevel
			p.Unit = arg.Unit
			f.products[i] = p
			return p, nil
		}
	}
	return dbgen.Product{}, pgx.ErrNoRows
}

func (f *fakeCatalogQueries) SetProductActive(ctx context.Context, arg dbgen.SetProductActiveParams) error {
	for i, p := range f.products {
		if p.ID.Bytes == arg.ID.Bytes {
			f.products[i].IsActive = arg.IsActive
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCatalogQueries) filter(category, search pgtype.Text) []dbgen.Product {
	result := make([]dbgen.Product, 0, len(f.products))
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if category.Valid && (!p.Category.Valid || !strings.EqualFold(p.Category.String, category.String)) {
			continue
		}
		if search.Valid && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search.String)) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func mustUUID(t *testing.T, value string) pgtype.UUID {
	t.Helper()
	var id pgtype.UUID
	require.NoError(t, id.Scan(value))
	return id
}

func uuidStr(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}
