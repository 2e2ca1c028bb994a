package wallets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vivumarket.vn/app/internal/modules/orders"
	"vivumarket.vn/app/internal/modules/revenue"
)

// Settlement credits a store's wallet when an order completes and
// books the platform's side of the money into the revenue ledger.
type Settlement struct{ db *gorm.DB }

func NewSettlement(db *gorm.DB) *Settlement { return &Settlement{db: db} }

type SettleResult struct {
	Credited   int64
	Idempotent bool
}

// SettleOrder runs once per completed order. The store receives
// StoreReceiveTotal; the platform books the commission, and a
// discount-loss entry when it funded a discount. A second call for
// the same order is a no-op.
func (s *Settlement) SettleOrder(ctx context.Context, o orders.Order, items []orders.OrderItem) (SettleResult, error) {
	bd := orders.BreakdownOf(o, items)

	var out SettleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the commission record doubles as the settlement marker
		var n int64
		if err := tx.WithContext(ctx).
			Model(&revenue.Record{}).
			Where("order_id = ? AND revenue_type = ?", o.ID, revenue.TypePlatformCommission).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			out.Idempotent = true
			return nil
		}

		now := time.Now()

		var wallet Wallet
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&wallet, "store_id = ?", o.StoreID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			wallet = Wallet{
				ID:        uuid.NewString(),
				StoreID:   o.StoreID,
				Balance:   0,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if cerr := tx.WithContext(ctx).Create(&wallet).Error; cerr != nil {
				return cerr
			}
		case err != nil:
			return err
		}

		if err := tx.WithContext(ctx).
			Model(&Wallet{}).
			Where("id = ?", wallet.ID).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance + ?", bd.StoreReceiveTotal),
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		records := []revenue.Record{{
			ID:          uuid.NewString(),
			RevenueType: revenue.TypePlatformCommission,
			Amount:      bd.PlatformCommission,
			OrderID:     o.ID,
			StoreID:     o.StoreID,
			CreatedAt:   now,
		}}
		if bd.PlatformDiscount > 0 {
			records = append(records, revenue.Record{
				ID:          uuid.NewString(),
				RevenueType: revenue.TypePlatformDiscountLoss,
				Amount:      bd.PlatformDiscount,
				OrderID:     o.ID,
				StoreID:     o.StoreID,
				CreatedAt:   now,
			})
		}
		if err := tx.WithContext(ctx).Create(&records).Error; err != nil {
			return err
		}

		out.Credited = bd.StoreReceiveTotal
		return nil
	})
	return out, err
}
