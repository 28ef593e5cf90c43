package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/retailops-backend/api/responses"
	"github.com/angelmondragon/retailops-backend/api/validators"
	inventorysvc "github.com/angelmondragon/retailops-backend/internal/inventory"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/types"
)

type updateInventoryRequest struct {
	CurrentStock      *int                   `json:"current_stock"`
	MinimumStock      *int                   `json:"minimum_stock"`
	MaximumStock      types.Nullable[int]    `json:"maximum_stock"`
	ReorderPoint      *int                   `json:"reorder_point"`
	ReorderQuantity   *int                   `json:"reorder_quantity"`
	WarehouseLocation types.Nullable[string] `json:"warehouse_location"`
	Notes             types.Nullable[string] `json:"notes"`
}

type adjustStockRequest struct {
	Delta  *int    `json:"delta" validate:"required"`
	Reason *string `json:"reason"`
}

// restockRequest leaves quantity checks to the service so non-positive values map to INVALID_QUANTITY.
type restockRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func inventoryList(list func(context.Context) ([]inventorysvc.InventoryDTO, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := list(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, rows)
	}
}

func ListInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryList(svc.List, logg)
}

func ListLowStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryList(svc.ListLowStock, logg)
}

func ListNeedingReorder(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryList(svc.ListNeedingReorder, logg)
}

func GetInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Get(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func UpdateInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.SetFields(r.Context(), productID, inventorysvc.UpdateInventoryInput{
			CurrentStock:      payload.CurrentStock,
			MinimumStock:      payload.MinimumStock,
			MaximumStock:      payload.MaximumStock,
			ReorderPoint:      payload.ReorderPoint,
			ReorderQuantity:   payload.ReorderQuantity,
			WarehouseLocation: payload.WarehouseLocation,
			Notes:             payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdjustStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.AdjustStock(r.Context(), productID, *payload.Delta, payload.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func Restock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload restockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Restock(r.Context(), productID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}
