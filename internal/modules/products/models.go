package products

import (
	"time"

	"gorm.io/datatypes"
)

// Approval states shared by products and variants. A variant can be
// PENDING while its product is already ACTIVE (merchants add variants
// after approval).
const (
	StatusPending  = "PENDING"
	StatusActive   = "ACTIVE"
	StatusRejected = "REJECTED"
	StatusHidden   = "HIDDEN"
)

type Product struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	StoreID     string  `gorm:"type:char(36);not null;index:ix_products_store_id"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Slug        string  `gorm:"type:varchar(280);not null;uniqueIndex:ux_products_slug"`
	Description *string `gorm:"type:text"`
	Category    *string `gorm:"type:varchar(128)"`

	Status       string  `gorm:"type:varchar(16);not null;default:'PENDING'"`
	StatusReason *string `gorm:"type:varchar(255)"`

	Images   []ProductImage   `gorm:"foreignKey:ProductID"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }

type ProductImage struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	ProductID string    `gorm:"type:char(36);not null;index:ix_product_images_product_id"`
	URL       string    `gorm:"type:varchar(512);not null"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (ProductImage) TableName() string { return "product_images" }

type ProductVariant struct {
	ID        string         `gorm:"type:char(36);primaryKey"`
	ProductID string         `gorm:"type:char(36);not null;index:ix_product_variants_product_id"`
	SKU       string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_product_variants_sku"`
	Options   datatypes.JSON `gorm:"not null"` // color/size attribute map
	Price     int64          `gorm:"not null"` // VND
	Stock     int            `gorm:"not null;default:0"`

	Status       string  `gorm:"type:varchar(16);not null;default:'PENDING'"`
	StatusReason *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (ProductVariant) TableName() string { return "product_variants" }
