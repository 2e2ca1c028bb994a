package shipping

import (
	"time"

	"gorm.io/datatypes"
)

// Carrier shipment statuses. DELIVERED_FAIL is the carrier's legacy
// spelling of FAILED; both occur in the wild.
const (
	StatusReadyToPick   = "READY_TO_PICK"
	StatusPickingUp     = "PICKING_UP"
	StatusPicked        = "PICKED"
	StatusShipping      = "SHIPPING"
	StatusDelivered     = "DELIVERED"
	StatusDeliveredFail = "DELIVERED_FAIL"
	StatusFailed        = "FAILED"
	StatusReturning     = "RETURNING"
	StatusReturned      = "RETURNED"
)

// Shipment mirrors the carrier's record for a confirmed order. History
// is stored exactly as received (either representation) and normalized
// on read.
type Shipment struct {
	ID         string  `gorm:"type:char(36);primaryKey"`
	OrderID    string  `gorm:"type:char(36);not null;uniqueIndex:ux_shipments_order_id"`
	StoreID    string  `gorm:"type:char(36);not null;index:ix_shipments_store_id"`
	CarrierRef *string `gorm:"type:varchar(64)"`

	Status  string         `gorm:"type:varchar(24);not null"`
	History datatypes.JSON `gorm:"not null"`

	ExpectedDeliveryAt *time.Time `gorm:"type:datetime(3)"`
	CreatedAt          time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt          time.Time  `gorm:"type:datetime(3);not null"`
}

func (Shipment) TableName() string { return "shipments" }

// CanonicalStatus collapses the carrier's legacy spellings onto the
// current vocabulary so downstream code matches on one form.
func CanonicalStatus(s string) string {
	switch s {
	case StatusDeliveredFail:
		return StatusFailed
	case StatusPicked:
		return StatusPickingUp
	default:
		return s
	}
}
