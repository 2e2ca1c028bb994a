package stores

import "time"

const (
	StatusPending   = "PENDING"
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusRejected  = "REJECTED"
)

type Store struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	OwnerUserID string  `gorm:"type:char(36);not null;index:ix_stores_owner_user_id"`
	Name        string  `gorm:"type:varchar(128);not null"`
	Slug        string  `gorm:"type:varchar(140);not null;uniqueIndex:ux_stores_slug"`
	Description *string `gorm:"type:varchar(1024)"`
	LogoURL     *string `gorm:"type:varchar(512)"`

	Status       string  `gorm:"type:varchar(16);not null"`
	StatusReason *string `gorm:"type:varchar(255)"`

	CreatedAt  time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time  `gorm:"type:datetime(3);not null"`
	ApprovedAt *time.Time `gorm:"type:datetime(3)"`
}

func (Store) TableName() string { return "stores" }
