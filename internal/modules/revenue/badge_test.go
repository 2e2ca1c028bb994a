package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeBadgeKnownTypes(t *testing.T) {
	for _, typ := range []string{TypeServiceFee, TypePlatformCommission, TypeShippingFee} {
		b := TypeBadge(typ)
		assert.Equal(t, "green", b.Color, typ)
		assert.Equal(t, "+", Sign(typ))
		assert.False(t, IsLoss(typ))
	}

	loss := TypeBadge(TypePlatformDiscountLoss)
	assert.Equal(t, "red", loss.Color)
	assert.Equal(t, "Tiền lỗ giảm giá", loss.Text)
	// a loss renders as a plain magnitude, never with a minus sign
	assert.Equal(t, "", Sign(TypePlatformDiscountLoss))
	assert.True(t, IsLoss(TypePlatformDiscountLoss))
}

// New backend enum values must render with the gray fallback, not break
// the statistics table.
func TestTypeBadgeUnknownFallsBack(t *testing.T) {
	for _, typ := range []string{"AD_PLACEMENT_FEE", "", "???"} {
		b := TypeBadge(typ)
		assert.Equal(t, "gray", b.Color, typ)
		assert.Equal(t, "bg-gray-100", b.BgColor)
		assert.Equal(t, typ, b.Text)
	}
}
