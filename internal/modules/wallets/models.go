package wallets

import "time"

const (
	WithdrawalPending   = "PENDING"
	WithdrawalInitiated = "INITIATED"
	WithdrawalPaid      = "PAID"
	WithdrawalRejected  = "REJECTED"
	WithdrawalFailed    = "FAILED"
)

// Wallet holds a store's accumulated receivable balance (VND).
type Wallet struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	StoreID   string    `gorm:"type:char(36);not null;uniqueIndex:ux_wallets_store_id"`
	Balance   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Wallet) TableName() string { return "wallets" }

// Withdrawal is a store's request to move wallet balance to its bank
// account. Admin approval triggers the bank transfer.
type Withdrawal struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	StoreID string `gorm:"type:char(36);not null;index:ix_withdrawals_store_id"`
	Amount  int64  `gorm:"not null"`

	BankName    string `gorm:"type:varchar(128);not null"`
	BankAccount string `gorm:"type:varchar(64);not null"`
	HolderName  string `gorm:"type:varchar(128);not null"`

	Status         string  `gorm:"type:varchar(16);not null"`
	IdempotencyKey string  `gorm:"type:varchar(64);not null;uniqueIndex:ux_withdrawals_idem_key"`
	ProviderRef    *string `gorm:"type:varchar(128)"`
	Reason         *string `gorm:"type:varchar(255)"`
	ErrorMessage   *string `gorm:"type:varchar(255)"`
	ProcessedBy    *string `gorm:"type:char(36)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Withdrawal) TableName() string { return "withdrawals" }
