package shippers

import (
	"time"

	"vivumarket.vn/app/internal/modules/users"
)

// Profile status is the operational on/off switch for a courier,
// separate from a platform ban on the underlying account.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Profile struct {
	ID     string `gorm:"type:char(36);primaryKey"`
	UserID string `gorm:"type:char(36);not null;uniqueIndex:ux_shipper_profiles_user_id"`

	VehiclePlate *string `gorm:"type:varchar(16)"`
	WorkArea     *string `gorm:"type:varchar(128)"`
	AvatarURL    *string `gorm:"type:varchar(512)"`

	Status string `gorm:"type:varchar(16);not null;default:'ACTIVE'"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Profile) TableName() string { return "shipper_profiles" }

// Shipper joins the courier's login account with its profile.
type Shipper struct {
	User    users.User
	Profile Profile
}
