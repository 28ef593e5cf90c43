package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/api/responses"
	"github.com/angelmondragon/retailops-backend/api/validators"
	revenuesvc "github.com/angelmondragon/retailops-backend/internal/revenue"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
)

type revenueResponse struct {
	Period  string          `json:"period"`
	Start   *string         `json:"start_date,omitempty"`
	Year    *int            `json:"year,omitempty"`
	Month   *int            `json:"month,omitempty"`
	Revenue decimal.Decimal `json:"revenue"`
}

func dateString(t time.Time) *string {
	s := t.Format("2006-01-02")
	return &s
}

func DailyRevenue(svc revenuesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := validators.RequireDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.Daily(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, revenueResponse{Period: "daily", Start: dateString(date), Revenue: total})
	}
}

func WeeklyRevenue(svc revenuesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := validators.RequireDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.Weekly(r.Context(), start)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, revenueResponse{Period: "weekly", Start: dateString(start), Revenue: total})
	}
}

// MonthlyRevenue leaves range checks on year and month to the service.
func MonthlyRevenue(svc revenuesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := validators.RequireQueryInt(r, "year", math.MinInt32, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		month, err := validators.RequireQueryInt(r, "month", math.MinInt32, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.Monthly(r.Context(), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, revenueResponse{Period: "monthly", Year: &year, Month: &month, Revenue: total})
	}
}

func AnnualRevenue(svc revenuesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := validators.RequireQueryInt(r, "year", math.MinInt32, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.Annual(r.Context(), year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, revenueResponse{Period: "annual", Year: &year, Revenue: total})
	}
}

func RevenueSummary(svc revenuesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := validators.RequireDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.RequireDate(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summary(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
