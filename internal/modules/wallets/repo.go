package wallets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// GetOrCreate returns the store's wallet, creating an empty one on
// first touch.
func (r *Repo) GetOrCreate(ctx context.Context, storeID string) (Wallet, error) {
	var w Wallet
	err := r.db.WithContext(ctx).First(&w, "store_id = ?", storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		w = Wallet{
			ID:        uuid.NewString(),
			StoreID:   storeID,
			Balance:   0,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if cerr := r.db.WithContext(ctx).Create(&w).Error; cerr != nil {
			return Wallet{}, cerr
		}
		return w, nil
	}
	return w, err
}

type ListWithdrawalsParams struct {
	Status   string
	StoreID  string
	Page     int
	PageSize int
}

func (r *Repo) ListWithdrawals(ctx context.Context, in ListWithdrawalsParams) ([]Withdrawal, int64, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Withdrawal{})
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("status = ?", s)
	}
	if s := strings.TrimSpace(in.StoreID); s != "" {
		q = q.Where("store_id = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Withdrawal
	err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error
	return rows, total, err
}
