package refunds

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Request is a customer's claim against a delivered order. Evidence
// holds the uploaded photo keys as a JSON array of storage paths.
type Request struct {
	ID         string `gorm:"type:char(36);primaryKey"`
	OrderID    string `gorm:"type:char(36);not null;index:ix_refunds_order_id"`
	StoreID    string `gorm:"type:char(36);not null;index:ix_refunds_store_id"`
	CustomerID string `gorm:"type:char(36);not null"`

	RequestedAmount int64 `gorm:"not null"`
	ApprovedAmount  *int64
	Reason          string         `gorm:"type:varchar(255);not null"`
	Evidence        datatypes.JSON `gorm:"type:json"`

	Status    string     `gorm:"type:varchar(16);not null;index:ix_refunds_status"`
	AdminNote *string    `gorm:"type:varchar(255)"`
	DecidedBy *string    `gorm:"type:char(36)"`
	DecidedAt *time.Time `gorm:"type:datetime(3)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Request) TableName() string { return "refund_requests" }
