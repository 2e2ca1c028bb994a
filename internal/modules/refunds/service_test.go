package refunds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vivumarket.vn/app/internal/modules/orders"
)

func TestCapAmount(t *testing.T) {
	// subtotal 200000, store discount 15000 -> commission 9250,
	// payout ceiling 175750
	bd := orders.ComputeBreakdown(orders.OrderDocument{
		ProductPrice:        200000,
		ShippingFee:         25000,
		StoreDiscountAmount: 15000,
	})
	ceiling := bd.Subtotal - bd.StoreDiscount - bd.PlatformCommission
	assert.Equal(t, int64(175750), ceiling)

	t.Run("under ceiling passes through", func(t *testing.T) {
		got, capped := CapAmount(100000, bd)
		assert.Equal(t, int64(100000), got)
		assert.False(t, capped)
	})

	t.Run("exact ceiling passes through", func(t *testing.T) {
		got, capped := CapAmount(ceiling, bd)
		assert.Equal(t, ceiling, got)
		assert.False(t, capped)
	})

	t.Run("over ceiling is clamped", func(t *testing.T) {
		got, capped := CapAmount(500000, bd)
		assert.Equal(t, ceiling, got)
		assert.True(t, capped)
	})

	t.Run("shipping fee never refundable", func(t *testing.T) {
		got, _ := CapAmount(1<<40, bd)
		assert.Less(t, got, bd.StoreReceiveTotal)
		assert.Equal(t, bd.StoreReceiveTotal-bd.ShippingFee, got)
	})

	t.Run("negative breakdown caps to zero", func(t *testing.T) {
		broken := orders.ComputeBreakdown(orders.OrderDocument{
			ProductPrice:        10000,
			StoreDiscountAmount: 60000,
		})
		got, capped := CapAmount(5000, broken)
		assert.Equal(t, int64(0), got)
		assert.True(t, capped)
	})
}
