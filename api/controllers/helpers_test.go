package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	inventorysvc "github.com/angelmondragon/retailops-backend/internal/inventory"
	productsvc "github.com/angelmondragon/retailops-backend/internal/products"
	revenuesvc "github.com/angelmondragon/retailops-backend/internal/revenue"
	salessvc "github.com/angelmondragon/retailops-backend/internal/sales"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body.Error.Code
}

type stubProductService struct {
	productsvc.Service
	created  *productsvc.CreateProductInput
	category string
	status   enums.ProductStatus
	called   string
	err      error
}

func (s *stubProductService) Create(_ context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: 1, Name: input.Name, SKU: input.SKU}, nil
}

func (s *stubProductService) Get(_ context.Context, id uint) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: id}, nil
}

func (s *stubProductService) List(context.Context) ([]productsvc.ProductDTO, error) {
	s.called = "list"
	return nil, s.err
}

func (s *stubProductService) ListByCategory(_ context.Context, category string) ([]productsvc.ProductDTO, error) {
	s.called = "category"
	s.category = category
	return []productsvc.ProductDTO{{ID: 1}}, s.err
}

func (s *stubProductService) ListByStatus(_ context.Context, status enums.ProductStatus) ([]productsvc.ProductDTO, error) {
	s.called = "status"
	s.status = status
	return []productsvc.ProductDTO{{ID: 1}, {ID: 2}}, s.err
}

func (s *stubProductService) Delete(context.Context, uint) (bool, error) {
	return s.err == nil, s.err
}

type stubSalesService struct {
	salessvc.Service
	called     string
	productID  uint
	platform   enums.SalePlatform
	start, end time.Time
	recorded   *salessvc.RecordSaleInput
}

func (s *stubSalesService) List(context.Context) ([]salessvc.SaleDTO, error) {
	s.called = "list"
	return nil, nil
}

func (s *stubSalesService) ListByProduct(_ context.Context, productID uint) ([]salessvc.SaleDTO, error) {
	s.called = "product"
	s.productID = productID
	return nil, nil
}

func (s *stubSalesService) ListByPlatform(_ context.Context, platform enums.SalePlatform) ([]salessvc.SaleDTO, error) {
	s.called = "platform"
	s.platform = platform
	return nil, nil
}

func (s *stubSalesService) ListByDateRange(_ context.Context, start, end time.Time) ([]salessvc.SaleDTO, error) {
	s.called = "range"
	s.start, s.end = start, end
	return nil, nil
}

func (s *stubSalesService) Record(_ context.Context, input salessvc.RecordSaleInput) (*salessvc.SaleDTO, error) {
	s.recorded = &input
	return &salessvc.SaleDTO{ID: 9, OrderNumber: input.OrderNumber}, nil
}

type stubRevenueService struct {
	revenuesvc.Service
	date        time.Time
	year, month int
	err         error
}

func (s *stubRevenueService) Daily(_ context.Context, date time.Time) (decimal.Decimal, error) {
	s.date = date
	return decimal.RequireFromString("10.5"), s.err
}

func (s *stubRevenueService) Monthly(_ context.Context, year, month int) (decimal.Decimal, error) {
	s.year, s.month = year, month
	return decimal.Zero, s.err
}

func (s *stubRevenueService) Summary(_ context.Context, start, end time.Time) (*revenuesvc.SummaryDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &revenuesvc.SummaryDTO{Start: start, End: end, TotalRevenue: decimal.NewFromInt(3), SaleCount: 1, AverageOrderValue: decimal.NewFromInt(3)}, nil
}

type stubInventoryService struct {
	inventorysvc.Service
	delta    int
	reason   *string
	quantity int
	err      error
}

func (s *stubInventoryService) AdjustStock(_ context.Context, productID uint, delta int, reason *string) (*inventorysvc.InventoryDTO, error) {
	s.delta, s.reason = delta, reason
	if s.err != nil {
		return nil, s.err
	}
	return &inventorysvc.InventoryDTO{ProductID: productID, CurrentStock: delta}, nil
}

func (s *stubInventoryService) Restock(_ context.Context, productID uint, quantity int) (*inventorysvc.InventoryDTO, error) {
	s.quantity = quantity
	if s.err != nil {
		return nil, s.err
	}
	return &inventorysvc.InventoryDTO{ProductID: productID, CurrentStock: quantity}, nil
}
