package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("CreatesProductWithValidFields", func(t *testing.T) {
		p, err := NewProduct("001", TypeHandmade, StatusSelling, "americano", 4000)
		require.NoError(t, err)
		require.Equal(t, "001", p.ProductNumber)
		require.Equal(t, TypeHandmade, p.Type)
		require.Equal(t, StatusSelling, p.SellingStatus)
		require.Equal(t, "americano", p.Name)
		require.Equal(t, int64(4000), p.Price)
	})

	t.Run("FailsOnBlankName", func(t *testing.T) {
		_, err := NewProduct("001", TypeHandmade, StatusSelling, "   ", 4000)
		require.ErrorIs(t, err, ErrProductNameRequired)

		_, err = NewProduct("001", TypeHandmade, StatusSelling, "", 4000)
		require.ErrorIs(t, err, ErrProductNameRequired)
	})

	t.Run("FailsOnNonPositivePrice", func(t *testing.T) {
		_, err := NewProduct("001", TypeHandmade, StatusSelling, "americano", 0)
		require.ErrorIs(t, err, ErrProductPriceInvalid)

		_, err = NewProduct("001", TypeHandmade, StatusSelling, "americano", -100)
		require.ErrorIs(t, err, ErrProductPriceInvalid)
	})

	t.Run("FailsOnUnknownType", func(t *testing.T) {
		_, err := NewProduct("001", ProductType("CANNED"), StatusSelling, "cola", 1500)
		require.ErrorIs(t, err, ErrProductTypeInvalid)
	})

	t.Run("FailsOnUnknownSellingStatus", func(t *testing.T) {
		_, err := NewProduct("001", TypeHandmade, SellingStatus("PAUSED"), "americano", 4000)
		require.ErrorIs(t, err, ErrSellingStatusInvalid)
	})
}

func TestStockPolicy(t *testing.T) {
	t.Run("DefaultPolicyTracksBottleAndBakery", func(t *testing.T) {
		policy := DefaultStockPolicy()
		require.False(t, policy.Bearing(TypeHandmade))
		require.True(t, policy.Bearing(TypeBottle))
		require.True(t, policy.Bearing(TypeBakery))
	})

	t.Run("CustomPolicyOverridesDefault", func(t *testing.T) {
		policy := NewStockPolicy(TypeHandmade)
		require.True(t, policy.Bearing(TypeHandmade))
		require.False(t, policy.Bearing(TypeBottle))
		require.False(t, policy.Bearing(TypeBakery))
	})
}

func TestForDisplay(t *testing.T) {
	statuses := ForDisplay()
	require.Contains(t, statuses, StatusSelling)
	require.Contains(t, statuses, StatusHold)
	require.NotContains(t, statuses, StatusStop)
}
