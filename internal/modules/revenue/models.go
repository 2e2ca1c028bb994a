package revenue

import "time"

// Platform revenue record types. The first three are additive income;
// PLATFORM_DISCOUNT_LOSS is a cost the platform absorbs when it funds
// a discount.
const (
	TypeServiceFee           = "SERVICE_FEE"
	TypePlatformCommission   = "PLATFORM_COMMISSION"
	TypeShippingFee          = "SHIPPING_FEE"
	TypePlatformDiscountLoss = "PLATFORM_DISCOUNT_LOSS"
)

type Record struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	RevenueType string    `gorm:"type:varchar(32);not null;index:ix_revenue_type"`
	Amount      int64     `gorm:"not null"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_revenue_order_id"`
	StoreID     string    `gorm:"type:char(36);not null;index:ix_revenue_store_id"`
	Description *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null;index:ix_revenue_created_at"`
}

func (Record) TableName() string { return "revenue_records" }
