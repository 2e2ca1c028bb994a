package promotions

import (
	"time"

	"gorm.io/gorm"
)

const (
	DiscountPercent = "PERCENT"
	DiscountFixed   = "FIXED"
)

// Lifecycle states are derived from the row, never stored; a promotion
// drifts between them as the clock moves.
const (
	StateActive   = "ACTIVE"
	StateInactive = "INACTIVE"
	StateExpired  = "EXPIRED"
	StateDeleted  = "DELETED"
)

// Promotion is a platform-funded discount campaign. The platform
// absorbs the discount, which surfaces in the ledger as
// PLATFORM_DISCOUNT_LOSS on settled orders.
type Promotion struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	Code        string  `gorm:"type:varchar(32);not null;uniqueIndex:ux_promotions_code"`
	Name        string  `gorm:"type:varchar(128);not null"`
	Description *string `gorm:"type:varchar(512)"`

	DiscountType   string `gorm:"type:varchar(8);not null"`
	DiscountValue  int64  `gorm:"not null"`
	MaxDiscount    *int64
	MinOrderAmount int64 `gorm:"not null;default:0"`

	StartsAt time.Time `gorm:"type:datetime(3);not null"`
	EndsAt   time.Time `gorm:"type:datetime(3);not null"`

	Enabled    bool `gorm:"not null;default:1"`
	UsageLimit *int
	UsedCount  int `gorm:"not null;default:0"`

	CreatedBy string `gorm:"type:char(36);not null"`

	CreatedAt time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time      `gorm:"type:datetime(3);not null"`
	DeletedAt gorm.DeletedAt `gorm:"index:ix_promotions_deleted_at"`
}

func (Promotion) TableName() string { return "promotions" }

// StateOf classifies a promotion at a point in time. Deleted wins over
// everything, then the schedule; an exhausted usage limit parks the
// promotion as inactive, not expired, since raising the limit revives it.
func StateOf(p Promotion, now time.Time) string {
	switch {
	case p.DeletedAt.Valid:
		return StateDeleted
	case now.After(p.EndsAt):
		return StateExpired
	case !p.Enabled || now.Before(p.StartsAt):
		return StateInactive
	case p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit:
		return StateInactive
	default:
		return StateActive
	}
}
