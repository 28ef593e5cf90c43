package controllers

import (
	"net/http"
	"testing"

	"github.com/angelmondragon/retailops-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
)

func TestGetProductRejectsInvalidID(t *testing.T) {
	svc := &stubProductService{}
	for _, raw := range []string{"abc", "0", "-3"} {
		rec := serve(GetProduct(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/products/"+raw, "", map[string]string{"productId": raw}))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %d", raw, rec.Code)
		}
	}
}

func TestGetProductMapsNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	rec := serve(GetProduct(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/products/7", "", map[string]string{"productId": "7"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestListProductsFilters(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		svc := &stubProductService{}
		rec := serve(ListProducts(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/products", "", nil))
		if rec.Code != http.StatusOK || svc.called != "list" {
			t.Fatalf("expected list call, got %d %q", rec.Code, svc.called)
		}
	})

	t.Run("status ignores case", func(t *testing.T) {
		svc := &stubProductService{}
		rec := serve(ListProducts(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/products?status=Inactive", "", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.called != "status" || svc.status != enums.ProductStatusInactive {
			t.Fatalf("expected inactive status filter, got %q %q", svc.called, svc.status)
		}
	})

	t.Run("category", func(t *testing.T) {
		svc := &stubProductService{}
		serve(ListProducts(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/products?category=toys", "", nil))
		if svc.called != "category" || svc.category != "toys" {
			t.Fatalf("expected category filter, got %q %q", svc.called, svc.category)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := &stubProductService{}
		rec := serve(ListProducts(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/products?status=archived", "", nil))
		if rec.Code != http.StatusBadRequest || svc.called != "" {
			t.Fatalf("expected 400 without service call, got %d %q", rec.Code, svc.called)
		}
	})

	t.Run("both filters", func(t *testing.T) {
		svc := &stubProductService{}
		rec := serve(ListProducts(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/products?status=active&category=toys", "", nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubProductService{}
		body := `{"name":"Lamp","price":"30.00","category":"home","sku":"LMP-1","status":"INACTIVE"}`
		rec := serve(CreateProduct(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/products", body, nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.created == nil || svc.created.Status != enums.ProductStatusInactive || svc.created.SKU != "LMP-1" {
			t.Fatalf("unexpected input %+v", svc.created)
		}
	})

	t.Run("missing price", func(t *testing.T) {
		svc := &stubProductService{}
		body := `{"name":"Widget","category":"tools","sku":"W-1"}`
		rec := serve(CreateProduct(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/products", body, nil))
		if rec.Code != http.StatusBadRequest || svc.created != nil {
			t.Fatalf("expected 400 without service call, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != string(pkgerrors.CodeValidation) {
			t.Fatalf("unexpected code %s", code)
		}
	})

	t.Run("explicit zero price", func(t *testing.T) {
		svc := &stubProductService{}
		body := `{"name":"Sample","price":"0","category":"tools","sku":"S-1"}`
		rec := serve(CreateProduct(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/products", body, nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.created == nil || !svc.created.Price.IsZero() {
			t.Fatalf("unexpected input %+v", svc.created)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		svc := &stubProductService{}
		rec := serve(CreateProduct(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/products", `{"name":"Lamp","color":"red"}`, nil))
		if rec.Code != http.StatusBadRequest || svc.created != nil {
			t.Fatalf("expected 400 without service call, got %d", rec.Code)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := &stubProductService{}
		body := `{"name":"Lamp","price":"30.00","category":"home","sku":"LMP-1","status":"gone"}`
		rec := serve(CreateProduct(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/products", body, nil))
		if rec.Code != http.StatusBadRequest || svc.created != nil {
			t.Fatalf("expected 400 without service call, got %d", rec.Code)
		}
	})

	t.Run("duplicate sku", func(t *testing.T) {
		svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeValidation, "sku already exists")}
		body := `{"name":"Lamp","price":"30.00","category":"home","sku":"LMP-1"}`
		rec := serve(CreateProduct(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/products", body, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDeleteProductReportsDeleted(t *testing.T) {
	svc := &stubProductService{}
	rec := serve(DeleteProduct(svc, testLogger()), newRequest(http.MethodDelete, "/api/v1/products/3", "", map[string]string{"productId": "3"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"data\":{\"deleted\":true}}\n" {
		t.Fatalf("unexpected body %s", got)
	}
}
