package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBreakdownFromItems(t *testing.T) {
	doc := OrderDocument{
		Items: []ItemDocument{
			{Price: 100000, Quantity: 2},
		},
		ShippingFee:            20000,
		StoreDiscountAmount:    10000,
		PlatformDiscountAmount: 5000,
	}

	b := ComputeBreakdown(doc)

	assert.Equal(t, int64(200000), b.Subtotal)
	assert.Equal(t, int64(205000), b.BuyerPaidTotal) // 200000+20000-10000-5000
	assert.Equal(t, int64(9500), b.PlatformCommission)
	assert.Equal(t, int64(200500), b.StoreReceiveTotal)
	assert.Equal(t, int64(180500), b.StoreRevenue)
}

func TestSubtotalPriority(t *testing.T) {
	t.Run("items win over productPrice", func(t *testing.T) {
		doc := OrderDocument{
			Items:        []ItemDocument{{Price: 50000, Quantity: 3}},
			ProductPrice: 999999,
		}
		assert.Equal(t, int64(150000), ComputeBreakdown(doc).Subtotal)
	})

	t.Run("productPrice wins over inversion", func(t *testing.T) {
		doc := OrderDocument{
			ProductPrice: 120000,
			TotalPrice:   300000,
		}
		assert.Equal(t, int64(120000), ComputeBreakdown(doc).Subtotal)
	})

	t.Run("inverted from total when nothing else populated", func(t *testing.T) {
		doc := OrderDocument{
			TotalAmount:            205000,
			ShippingFee:            20000,
			StoreDiscountAmount:    10000,
			PlatformDiscountAmount: 5000,
		}
		// total + storeDiscount + platformDiscount - shipping
		assert.Equal(t, int64(200000), ComputeBreakdown(doc).Subtotal)
	})

	t.Run("unitPrice alias accepted for item price", func(t *testing.T) {
		doc := OrderDocument{
			Items: []ItemDocument{{UnitPrice: 40000, Quantity: 2}},
		}
		assert.Equal(t, int64(80000), ComputeBreakdown(doc).Subtotal)
	})
}

func TestTotalAliases(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  OrderDocument
	}{
		{"totalPrice", OrderDocument{TotalPrice: 205000}},
		{"totalAmount", OrderDocument{TotalAmount: 205000}},
		{"finalTotal", OrderDocument{FinalTotal: 205000}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, int64(205000), ComputeBreakdown(tc.doc).BuyerPaidTotal)
		})
	}
}

func TestShippingAliases(t *testing.T) {
	a := ComputeBreakdown(OrderDocument{ShippingFee: 25000, TotalPrice: 100000})
	b := ComputeBreakdown(OrderDocument{ShippingCost: 25000, TotalPrice: 100000})
	assert.Equal(t, int64(25000), a.ShippingFee)
	assert.Equal(t, int64(25000), b.ShippingFee)
}

func TestCommission(t *testing.T) {
	assert.Equal(t, int64(9500), Commission(200000, 10000))
	assert.Equal(t, int64(5000), Commission(100000, 0))

	t.Run("capped at ceiling", func(t *testing.T) {
		assert.Equal(t, CommissionCap, Commission(50000000, 0))
	})

	t.Run("clamped at zero when discount exceeds subtotal", func(t *testing.T) {
		assert.Equal(t, int64(0), Commission(10000, 50000))
		assert.Equal(t, int64(0), Commission(0, 0))
	})

	t.Run("rounded to nearest dong", func(t *testing.T) {
		// 5% of 10 = 0.5 -> rounds to 1
		assert.Equal(t, int64(1), Commission(10, 0))
	})
}

// The two payout totals must always differ by exactly the shipping
// pass-through the platform reimburses.
func TestReceiveTotalMinusRevenueIsShipping(t *testing.T) {
	docs := []OrderDocument{
		{Items: []ItemDocument{{Price: 100000, Quantity: 2}}, ShippingFee: 20000, StoreDiscountAmount: 10000},
		{ProductPrice: 75000, ShippingCost: 12000},
		{TotalPrice: 500000, ShippingFee: 30000, PlatformDiscountAmount: 40000},
		{Items: []ItemDocument{{Price: 9999, Quantity: 7}}},
	}
	for _, doc := range docs {
		b := ComputeBreakdown(doc)
		assert.Equal(t, b.ShippingFee, b.StoreReceiveTotal-b.StoreRevenue)
	}
}

func TestParseOrderDocumentCoercion(t *testing.T) {
	raw := []byte(`{
		"id": "ord-1",
		"totalPrice": "205000",
		"shippingFee": "20000",
		"storeDiscountAmount": "not-a-number",
		"platformDiscountAmount": null,
		"items": [{"price": "100000", "quantity": 2}]
	}`)

	doc, err := ParseOrderDocument(raw)
	require.NoError(t, err)

	b := ComputeBreakdown(doc)
	assert.Equal(t, int64(200000), b.Subtotal)
	assert.Equal(t, int64(205000), b.BuyerPaidTotal)
	assert.Equal(t, int64(20000), b.ShippingFee)
	assert.Equal(t, int64(0), b.StoreDiscount) // parse failure falls back to 0
}

func TestNegativeRevenueTolerated(t *testing.T) {
	// Discounts exceeding the subtotal are a data problem upstream; the
	// breakdown reports the negative figure rather than hiding it.
	b := ComputeBreakdown(OrderDocument{
		Items:               []ItemDocument{{Price: 10000, Quantity: 1}},
		StoreDiscountAmount: 50000,
	})
	assert.Equal(t, int64(-40000), b.StoreRevenue)
	assert.Equal(t, int64(0), b.PlatformCommission)
}

func TestCustomerRules(t *testing.T) {
	name := "Nguyễn Văn A"
	phone := "0905123456"

	src := CustomerSource{
		Order:    Order{RecipientName: &name, RecipientPhone: &phone},
		UserName: "fallback",
	}
	assert.Equal(t, "Nguyễn Văn A", CustomerName(src))
	assert.Equal(t, "0905123456", CustomerPhone(src))

	src = CustomerSource{UserName: "Trần B", UserPhone: "0911222333"}
	assert.Equal(t, "Trần B", CustomerName(src))
	assert.Equal(t, "0911222333", CustomerPhone(src))

	assert.Equal(t, "N/A", CustomerName(CustomerSource{}))
	assert.Equal(t, "N/A", CustomerAddress(CustomerSource{}))
}
