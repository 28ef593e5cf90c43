package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
)

func TestAdjustStock(t *testing.T) {
	params := map[string]string{"productId": "5"}

	t.Run("missing delta", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := serve(AdjustStock(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/inventory/5/adjust", `{"reason":"count"}`, params))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero delta is forwarded", func(t *testing.T) {
		svc := &stubInventoryService{delta: -1}
		rec := serve(AdjustStock(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/inventory/5/adjust", `{"delta":0}`, params))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 0, svc.delta)
		assert.Nil(t, svc.reason)
	})

	t.Run("below zero", func(t *testing.T) {
		svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeInvalidAdjustment, "cannot reduce stock below zero")}
		rec := serve(AdjustStock(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/inventory/5/adjust", `{"delta":-9,"reason":"damaged"}`, params))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, string(pkgerrors.CodeInvalidAdjustment), errorCode(t, rec))
		require.NotNil(t, svc.reason)
		assert.Equal(t, "damaged", *svc.reason)
	})
}

func TestRestock(t *testing.T) {
	params := map[string]string{"productId": "5"}

	t.Run("passes quantity", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := serve(Restock(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/inventory/5/restock", `{"quantity":25}`, params))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 25, svc.quantity)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeInvalidQuantity, "restock quantity must be greater than zero")}
		rec := serve(Restock(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/inventory/5/restock", `{"quantity":0}`, params))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, string(pkgerrors.CodeInvalidQuantity), errorCode(t, rec))
	})

	t.Run("bad product id", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := serve(Restock(svc, testLogger()), newRequest(http.MethodPost, "/api/v1/inventory/x/restock", `{"quantity":3}`, map[string]string{"productId": "x"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.quantity)
	})
}
