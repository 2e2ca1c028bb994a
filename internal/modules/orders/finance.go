package orders

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Platform commission: 5% of the merchandise subtotal net of the
// merchant-funded discount, capped per order. The platform-funded
// discount never reduces the commission base.
var commissionRate = decimal.RequireFromString("0.05")

const CommissionCap int64 = 500000

// Amount is a VND amount tolerant of legacy payloads: JSON numbers,
// numeric strings and null all decode; anything unparseable becomes 0.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount(coerceAmount(b))
	return nil
}

func coerceAmount(b []byte) int64 {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return 0
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int64(f + 0.5*sign(f))
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

// OrderDocument is an order as older backend versions emit it. The
// three total aliases (and the two shipping aliases) are schema drift:
// a record populates at most one of each set consistently.
type OrderDocument struct {
	ID                     string         `json:"id"`
	TotalPrice             Amount         `json:"totalPrice"`
	TotalAmount            Amount         `json:"totalAmount"`
	FinalTotal             Amount         `json:"finalTotal"`
	ProductPrice           Amount         `json:"productPrice"`
	ShippingFee            Amount         `json:"shippingFee"`
	ShippingCost           Amount         `json:"shippingCost"`
	StoreDiscountAmount    Amount         `json:"storeDiscountAmount"`
	PlatformDiscountAmount Amount         `json:"platformDiscountAmount"`
	Items                  []ItemDocument `json:"items"`
}

type ItemDocument struct {
	Price     Amount `json:"price"`
	UnitPrice Amount `json:"unitPrice"`
	Quantity  Amount `json:"quantity"`
}

// ParseOrderDocument decodes a raw order payload. It never fails on
// malformed monetary fields; those coerce to 0.
func ParseOrderDocument(raw []byte) (OrderDocument, error) {
	var doc OrderDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return OrderDocument{}, err
	}
	return doc, nil
}

// Breakdown is the financial view of a single order, as shown on the
// store order detail page. All values are non-negative VND except where
// a misconfigured order drives revenue negative (kept visible, not
// silently corrected).
type Breakdown struct {
	Subtotal           int64 `json:"subtotal"`
	ShippingFee        int64 `json:"shippingFee"`
	StoreDiscount      int64 `json:"storeDiscount"`
	PlatformDiscount   int64 `json:"platformDiscount"`
	BuyerPaidTotal     int64 `json:"buyerPaidTotal"`
	PlatformCommission int64 `json:"platformCommission"`
	StoreReceiveTotal  int64 `json:"storeReceiveTotal"`
	StoreRevenue       int64 `json:"storeRevenue"`
}

// ComputeBreakdown derives the store payout figures from an order
// document. Pure and deterministic.
func ComputeBreakdown(doc OrderDocument) Breakdown {
	shippingFee := firstAmount(doc.ShippingFee, doc.ShippingCost)
	storeDiscount := int64(doc.StoreDiscountAmount)
	platformDiscount := int64(doc.PlatformDiscountAmount)
	reportedTotal := firstAmount(doc.TotalPrice, doc.TotalAmount, doc.FinalTotal)

	var subtotal int64
	switch {
	case len(doc.Items) > 0:
		for _, it := range doc.Items {
			subtotal += firstAmount(it.Price, it.UnitPrice) * int64(it.Quantity)
		}
	case doc.ProductPrice > 0:
		subtotal = int64(doc.ProductPrice)
	default:
		// invert the buyer-paid total back to the merchandise value
		subtotal = reportedTotal + storeDiscount + platformDiscount - shippingFee
	}

	buyerPaid := reportedTotal
	if buyerPaid == 0 {
		buyerPaid = subtotal + shippingFee - storeDiscount - platformDiscount
	}

	commission := Commission(subtotal, storeDiscount)

	return Breakdown{
		Subtotal:           subtotal,
		ShippingFee:        shippingFee,
		StoreDiscount:      storeDiscount,
		PlatformDiscount:   platformDiscount,
		BuyerPaidTotal:     buyerPaid,
		PlatformCommission: commission,
		StoreReceiveTotal:  subtotal - storeDiscount - commission + shippingFee,
		StoreRevenue:       subtotal - storeDiscount - commission,
	}
}

// Commission computes the capped platform commission for a given
// merchandise subtotal and merchant-funded discount. A base at or below
// zero yields zero; a negative commission would inflate the payout.
func Commission(subtotal, storeDiscount int64) int64 {
	base := subtotal - storeDiscount
	if base <= 0 {
		return 0
	}
	c := decimal.NewFromInt(base).Mul(commissionRate).Round(0).IntPart()
	if c > CommissionCap {
		return CommissionCap
	}
	return c
}

// BreakdownOf adapts a canonical Order plus its items to the
// calculator input.
func BreakdownOf(o Order, items []OrderItem) Breakdown {
	doc := OrderDocument{
		ID:                     o.ID,
		TotalPrice:             Amount(o.TotalPrice),
		ProductPrice:           Amount(o.ProductPrice),
		ShippingFee:            Amount(o.ShippingFee),
		StoreDiscountAmount:    Amount(o.StoreDiscountAmount),
		PlatformDiscountAmount: Amount(o.PlatformDiscountAmount),
	}
	for _, it := range items {
		doc.Items = append(doc.Items, ItemDocument{
			Price:    Amount(it.UnitPrice),
			Quantity: Amount(it.Quantity),
		})
	}
	return ComputeBreakdown(doc)
}

func firstAmount(vals ...Amount) int64 {
	for _, v := range vals {
		if v != 0 {
			return int64(v)
		}
	}
	return 0
}
