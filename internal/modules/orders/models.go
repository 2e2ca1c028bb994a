package orders

import (
	"time"

	"gorm.io/datatypes"
)

// Order workflow statuses. CANCELLED is reachable from PENDING/CONFIRMED,
// RETURNED from SHIPPING/DELIVERED; both are terminal.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusShipping  = "SHIPPING"
	StatusDelivered = "DELIVERED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusReturned  = "RETURNED"
)

// Order is the canonical order record. All amounts are VND (no subunit).
type Order struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	OrderNumber string  `gorm:"type:varchar(32);not null;uniqueIndex:ux_orders_number"`
	StoreID     string  `gorm:"type:char(36);not null;index:ix_orders_store_id"`
	UserID      *string `gorm:"type:char(36);index:ix_orders_user_id"`

	Status        string `gorm:"type:varchar(24);not null"`
	PaymentMethod string `gorm:"type:varchar(24);not null"`

	TotalPrice             int64 `gorm:"not null"` // buyer-paid total
	ProductPrice           int64 `gorm:"not null;default:0"`
	ShippingFee            int64 `gorm:"not null;default:0"`
	StoreDiscountAmount    int64 `gorm:"not null;default:0"`
	PlatformDiscountAmount int64 `gorm:"not null;default:0"`

	RecipientName   *string `gorm:"type:varchar(128)"`
	RecipientPhone  *string `gorm:"type:varchar(32)"`
	ShippingAddress *string `gorm:"type:varchar(512)"`

	CreatedAt   time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time  `gorm:"type:datetime(3);not null"`
	ConfirmedAt *time.Time `gorm:"type:datetime(3)"`
	DeliveredAt *time.Time `gorm:"type:datetime(3)"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	OrderID     string         `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	ProductID   string         `gorm:"type:char(36);not null"`
	VariantID   *string        `gorm:"type:char(36)"`
	ProductName string         `gorm:"type:varchar(255);not null"`
	SKU         string         `gorm:"type:varchar(64);not null"`
	OptionsJSON datatypes.JSON `gorm:"not null"`
	ImageURL    *string        `gorm:"type:varchar(512)"`
	UnitPrice   int64          `gorm:"not null"`
	Quantity    int            `gorm:"not null"`
	LineTotal   int64          `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderEvent is the audit row written on every status transition.
type OrderEvent struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_events_order_id"`
	ActorUserID string    `gorm:"type:char(36);not null"`
	Action      string    `gorm:"type:varchar(24);not null"`
	FromStatus  string    `gorm:"type:varchar(24);not null"`
	ToStatus    string    `gorm:"type:varchar(24);not null"`
	Note        *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderEvent) TableName() string { return "order_events" }
