package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/api/responses"
	"github.com/angelmondragon/retailops-backend/api/validators"
	salessvc "github.com/angelmondragon/retailops-backend/internal/sales"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
)

type recordSaleRequest struct {
	ProductID     uint             `json:"product_id" validate:"required"`
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price" validate:"required"`
	TotalAmount   *decimal.Decimal `json:"total_amount" validate:"required"`
	CustomerName  *string          `json:"customer_name"`
	CustomerEmail *string          `json:"customer_email"`
	OrderNumber   string           `json:"order_number" validate:"required"`
	SaleDate      *time.Time       `json:"sale_date"`
	Platform      *string          `json:"platform"`
	Status        *string          `json:"status"`
}

func (r recordSaleRequest) toInput() (salessvc.RecordSaleInput, error) {
	input := salessvc.RecordSaleInput{
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		UnitPrice:     *r.UnitPrice,
		TotalAmount:   *r.TotalAmount,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		OrderNumber:   r.OrderNumber,
		SaleDate:      r.SaleDate,
	}
	if r.Platform != nil {
		platform, err := enums.ParseSalePlatform(*r.Platform)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid platform").
				WithDetails(map[string]string{"platform": "must be one of [amazon walmart direct other]"})
		}
		input.Platform = platform
	}
	if r.Status != nil {
		status, err := enums.ParseSaleStatus(*r.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
				WithDetails(map[string]string{"status": "must be one of [pending completed cancelled refunded]"})
		}
		input.Status = status
	}
	return input, nil
}

// ListSales serves sales filtered by product, platform or date range (at most one filter).
func ListSales(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseOptionalUint(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		platform, hasPlatform, err := validators.ParseEnum(r, "platform", enums.ParseSalePlatform)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start, hasStart, err := validators.ParseDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, hasEnd, err := validators.ParseDate(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if hasStart != hasEnd {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "start_date and end_date must be provided together"))
			return
		}

		filters := 0
		for _, set := range []bool{productID != nil, hasPlatform, hasStart} {
			if set {
				filters++
			}
		}
		if filters > 1 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "only one sales filter may be applied"))
			return
		}

		var sales []salessvc.SaleDTO
		switch {
		case productID != nil:
			sales, err = svc.ListByProduct(r.Context(), *productID)
		case hasPlatform:
			sales, err = svc.ListByPlatform(r.Context(), platform)
		case hasStart:
			sales, err = svc.ListByDateRange(r.Context(), start, endOfDayIfDateOnly(r, "end_date", end))
		default:
			sales, err = svc.List(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, sales)
	}
}

func RecordSale(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recordSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sale, err := svc.Record(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

func GetSale(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sale, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

// endOfDayIfDateOnly widens a YYYY-MM-DD end bound to the last millisecond of that day.
func endOfDayIfDateOnly(r *http.Request, key string, end time.Time) time.Time {
	if len(strings.TrimSpace(r.URL.Query().Get(key))) == len("2006-01-02") {
		return end.Add(24*time.Hour - time.Millisecond)
	}
	return end
}
