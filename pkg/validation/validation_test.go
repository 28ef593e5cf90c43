package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
)

type sample struct {
	Name          string          `validate:"required,max=10"`
	Price         decimal.Decimal `validate:"money"`
	CustomerEmail *string         `validate:"omitempty,email"`
	Platform      string          `json:"platform" validate:"omitempty,oneof=amazon direct"`
}

func TestStructReportsFieldDetails(t *testing.T) {
	bad := "not-an-email"
	err := Struct(sample{
		Name:          "",
		Price:         decimal.RequireFromString("1.234"),
		CustomerEmail: &bad,
		Platform:      "ebay",
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Contains(t, details, "price")
	assert.Equal(t, "must be a valid email", details["customer_email"])
	assert.Contains(t, details, "platform")
}

func TestStructAcceptsValidInput(t *testing.T) {
	email := "buyer@example.com"
	err := Struct(sample{
		Name:          "Widget",
		Price:         decimal.RequireFromString("19.99"),
		CustomerEmail: &email,
		Platform:      "amazon",
	})
	assert.NoError(t, err)
}

func TestIsMoney(t *testing.T) {
	assert.True(t, IsMoney(decimal.Zero))
	assert.True(t, IsMoney(decimal.RequireFromString("10.50")))
	assert.False(t, IsMoney(decimal.RequireFromString("-0.01")))
	assert.False(t, IsMoney(decimal.RequireFromString("0.001")))
}

func TestVar(t *testing.T) {
	err := Var("customer_email", "nope", "email")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.NoError(t, Var("customer_email", "a@b.co", "email"))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "customer_email", snakeCase("CustomerEmail"))
	assert.Equal(t, "sku", snakeCase("SKU"))
	assert.Equal(t, "product_id", snakeCase("ProductID"))
	assert.Equal(t, "unit_price", snakeCase("UnitPrice"))
}
