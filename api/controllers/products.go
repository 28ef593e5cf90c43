package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/api/responses"
	"github.com/angelmondragon/retailops-backend/api/validators"
	productsvc "github.com/angelmondragon/retailops-backend/internal/products"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/types"
)

type createProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Brand       *string          `json:"brand"`
	SKU         string           `json:"sku" validate:"required"`
	Status      *string          `json:"status"`
}

func (r createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	input := productsvc.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Category:    r.Category,
		Brand:       r.Brand,
		SKU:         r.SKU,
	}
	if r.Status != nil {
		status, err := enums.ParseProductStatus(*r.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
				WithDetails(map[string]string{"status": "must be one of [active inactive discontinued]"})
		}
		input.Status = status
	}
	return input, nil
}

type updateProductRequest struct {
	Name        *string                `json:"name"`
	Description types.Nullable[string] `json:"description"`
	Price       *decimal.Decimal       `json:"price"`
	Category    *string                `json:"category"`
	Brand       types.Nullable[string] `json:"brand"`
	Status      *string                `json:"status"`
}

func (r updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Brand:       r.Brand,
	}
	if r.Status != nil {
		status, err := enums.ParseProductStatus(*r.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
				WithDetails(map[string]string{"status": "must be one of [active inactive discontinued]"})
		}
		input.Status = &status
	}
	return input, nil
}

// ListProducts serves the catalog, optionally filtered by category or status.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, hasStatus, err := validators.ParseEnum(r, "status", enums.ParseProductStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category := r.URL.Query().Get("category")

		var products []productsvc.ProductDTO
		switch {
		case category != "" && hasStatus:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "filter by category or status, not both"))
			return
		case category != "":
			products, err = svc.ListByCategory(r.Context(), category)
		case hasStatus:
			products, err = svc.ListByStatus(r.Context(), status)
		default:
			products, err = svc.List(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, products)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct discontinues or removes a product; both outcomes report deleted=true.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deleted, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.DeletedResponse{Deleted: deleted})
	}
}
