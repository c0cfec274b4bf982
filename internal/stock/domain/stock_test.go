package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStockDeduct(t *testing.T) {
	t.Run("DeductsQuantity", func(t *testing.T) {
		stock := NewStock("002", 5)

		err := stock.Deduct(3)
		require.NoError(t, err)
		require.Equal(t, 2, stock.Quantity)
	})

	t.Run("DeductsDownToZero", func(t *testing.T) {
		stock := NewStock("002", 3)

		err := stock.Deduct(3)
		require.NoError(t, err)
		require.Equal(t, 0, stock.Quantity)
	})

	t.Run("FailsWhenQuantityInsufficientAndLeavesStockUnchanged", func(t *testing.T) {
		stock := NewStock("002", 2)

		err := stock.Deduct(3)
		require.ErrorIs(t, err, ErrInsufficientStock)
		require.Equal(t, 2, stock.Quantity)
	})

	t.Run("FailsOnNonPositiveQuantity", func(t *testing.T) {
		stock := NewStock("002", 2)

		require.ErrorIs(t, stock.Deduct(0), ErrDeductQuantityInvalid)
		require.ErrorIs(t, stock.Deduct(-1), ErrDeductQuantityInvalid)
		require.Equal(t, 2, stock.Quantity)
	})
}
