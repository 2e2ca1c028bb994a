package view

import "time"

// OrderRow is one line of the store order table.
type OrderRow struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Status      string      `json:"status"`
	StatusBadge StatusBadge `json:"statusBadge"`
	Total       string      `json:"total"`
	ItemCount   int         `json:"itemCount"`
	CreatedAt   string      `json:"createdAt"`
}

type OrderItemRow struct {
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// BreakdownView mirrors the financial panel of the order detail page:
// raw VND values for arithmetic on the client, formatted strings for
// direct display.
type BreakdownView struct {
	Subtotal           int64 `json:"subtotal"`
	ShippingFee        int64 `json:"shippingFee"`
	StoreDiscount      int64 `json:"storeDiscount"`
	PlatformDiscount   int64 `json:"platformDiscount"`
	BuyerPaidTotal     int64 `json:"buyerPaidTotal"`
	PlatformCommission int64 `json:"platformCommission"`
	StoreReceiveTotal  int64 `json:"storeReceiveTotal"`
	StoreRevenue       int64 `json:"storeRevenue"`

	Display map[string]string `json:"display"`
}

// DisplayTime renders timestamps the way the dashboards show them.
func DisplayTime(t time.Time) string {
	return t.Format("15:04:05 02/01/2006")
}

func DisplayTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return DisplayTime(*t)
}
