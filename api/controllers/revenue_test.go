package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
)

func TestDailyRevenue(t *testing.T) {
	svc := &stubRevenueService{}
	rec := serve(DailyRevenue(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/revenue/daily?date=2024-05-02", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), svc.date)

	var body struct {
		Data revenueResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "daily", body.Data.Period)
	assert.Equal(t, "10.5", body.Data.Revenue.String())
	require.NotNil(t, body.Data.Start)
	assert.Equal(t, "2024-05-02", *body.Data.Start)
}

func TestRevenueRequiresParameters(t *testing.T) {
	svc := &stubRevenueService{}
	cases := map[string]http.HandlerFunc{
		"/api/v1/revenue/daily":                         DailyRevenue(svc, testLogger()),
		"/api/v1/revenue/weekly":                        WeeklyRevenue(svc, testLogger()),
		"/api/v1/revenue/monthly?year=2024":             MonthlyRevenue(svc, testLogger()),
		"/api/v1/revenue/annual?year=twenty":            AnnualRevenue(svc, testLogger()),
		"/api/v1/revenue/summary?start_date=2024-01-01": RevenueSummary(svc, testLogger()),
	}
	for target, handler := range cases {
		rec := serve(handler, newRequest(http.MethodGet, target, "", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, string(pkgerrors.CodeValidation), errorCode(t, rec), target)
	}
}

func TestMonthlyRevenuePassesRangeErrorsThrough(t *testing.T) {
	svc := &stubRevenueService{err: pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")}
	rec := serve(MonthlyRevenue(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/revenue/monthly?year=2024&month=13", "", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2024, svc.year)
	assert.Equal(t, 13, svc.month)
	assert.Contains(t, rec.Body.String(), "month must be between 1 and 12")
}

func TestRevenueSummary(t *testing.T) {
	svc := &stubRevenueService{}
	rec := serve(RevenueSummary(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/revenue/summary?start_date=2024-01-01&end_date=2024-01-31", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sale_count":1`)
	assert.Contains(t, rec.Body.String(), `"average_order_value":"3"`)
}
