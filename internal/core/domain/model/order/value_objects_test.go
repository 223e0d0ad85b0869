package order_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalesChannel(t *testing.T) {
	ch, err := order.ParseSalesChannel("")
	require.NoError(t, err)
	assert.Equal(t, order.Retail, ch)

	ch, err = order.ParseSalesChannel("Institutional")
	require.NoError(t, err)
	assert.True(t, ch.RequiresDueDate())
	assert.False(t, order.Wholesale.RequiresDueDate())

	_, err = order.ParseSalesChannel("marketplace")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTypeForQuantity(t *testing.T) {
	assert.Equal(t, order.TypeSale, order.TypeForQuantity(1))
	assert.Equal(t, order.TypeSale, order.TypeForQuantity(19))
	assert.Equal(t, order.TypeProduction, order.TypeForQuantity(20))

	tp, err := order.ParseType("production")
	require.NoError(t, err)
	assert.Equal(t, order.TypeProduction, tp)
}

func TestStatus(t *testing.T) {
	st, err := order.ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, order.Completed, st)

	require.NoError(t, order.Active.ValidateMutable())
	require.ErrorIs(t, order.Completed.ValidateMutable(), errs.ErrStateConflict)

	next, err := order.Active.Complete()
	require.NoError(t, err)
	assert.Equal(t, order.Completed, next)

	_, err = order.Completed.Complete()
	require.ErrorIs(t, err, errs.ErrStateConflict)
	require.Error(t, order.Unknown.Validate())
}

func TestNewLineItem(t *testing.T) {
	t.Run("trims and keeps the snapshot", func(t *testing.T) {
		li, err := order.NewLineItem(order.ProductSnapshot{
			ProductName: " Polo piqué ", SKU: " PL-01 ", Units: 12, LeadTimeDays: 4,
			ImageRef: "https://cdn.example.com/polo.png",
		})

		require.NoError(t, err)
		require.NoError(t, li.Validate())
		assert.Equal(t, "Polo piqué", li.Snapshot().ProductName)
		assert.Equal(t, "PL-01", li.ProductRef())
		assert.Equal(t, 12, li.Units())
	})

	t.Run("product ref falls back to the name", func(t *testing.T) {
		li, err := order.NewLineItem(order.ProductSnapshot{ProductName: "Cap", Units: 1})

		require.NoError(t, err)
		assert.Equal(t, "Cap", li.ProductRef())
	})

	t.Run("validates every field", func(t *testing.T) {
		_, err := order.NewLineItem(order.ProductSnapshot{
			ProductName: "", Units: 0, LeadTimeDays: -1, ImageRef: "ftp://files/x.png",
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("restore keeps the id", func(t *testing.T) {
		id := kernel.NewUUID()
		li, err := order.RestoreLineItem(id, order.ProductSnapshot{ProductName: "Vest", Units: 2})

		require.NoError(t, err)
		assert.True(t, li.ID().IsEqual(id))
	})
}
