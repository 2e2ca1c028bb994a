package users

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin      = "ADMIN"
	RoleStoreOwner = "STORE_OWNER"
	RoleShipper    = "SHIPPER"
	RoleCustomer   = "CUSTOMER"
)

const (
	StatusActive = "ACTIVE"
	StatusBanned = "BANNED"
)

type User struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash []byte `gorm:"type:varbinary(72);not null"`

	FullName *string `gorm:"type:varchar(128)"`
	Phone    *string `gorm:"type:varchar(32)"`
	Address  *string `gorm:"type:varchar(512)"`

	Role   string `gorm:"type:varchar(16);not null;default:'CUSTOMER'"`
	Status string `gorm:"type:varchar(16);not null;default:'ACTIVE'"`

	BanReason *string        `gorm:"type:varchar(255)"`
	BanMeta   datatypes.JSON // actor, prior offenses; shape owned by the admin UI
	BannedAt  *time.Time     `gorm:"type:datetime(3)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (User) TableName() string { return "users" }

// rolePriority orders the admin user table: platform staff first, then
// merchants, shippers, customers. Unknown roles sink to the bottom.
var rolePriority = map[string]int{
	RoleAdmin:      0,
	RoleStoreOwner: 1,
	RoleShipper:    2,
	RoleCustomer:   3,
}

func RolePriority(role string) int {
	if p, ok := rolePriority[role]; ok {
		return p
	}
	return len(rolePriority)
}
