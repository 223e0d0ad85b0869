package order_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

func mustItem(t *testing.T, name string, units, leadDays int) order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(order.ProductSnapshot{
		ProductID:    kernel.NewUUID(),
		ProductName:  name,
		ImageRef:     "https://cdn.example.com/" + name + ".png",
		Category:     "uniforms",
		Units:        units,
		LeadTimeDays: leadDays,
	})
	require.NoError(t, err)
	return li
}

func mustCode(t *testing.T, seq int) order.Code {
	t.Helper()
	c, err := order.FormatCode(2026, seq)
	require.NoError(t, err)
	return c
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		mustCode(t, 1),
		order.Details{ClientName: "Colegio San Martin", SalesChannel: order.Retail},
		[]order.LineItem{mustItem(t, "polo", 5, 3), mustItem(t, "jacket", 15, 10)},
		kernel.NewUUID(),
		testNow,
	)
	require.NoError(t, err)
	return o
}
