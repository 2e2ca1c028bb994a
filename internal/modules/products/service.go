package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotReviewable = errors.New("product not awaiting review")

// Service applies admin approval decisions on products and variants.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type ReviewInput struct {
	ID          string
	ActorUserID string
	Approve     bool
	Reason      string
}

func (s *Service) ReviewProduct(ctx context.Context, in ReviewInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", in.ID).Error; err != nil {
			return err
		}
		if p.Status != StatusPending {
			return ErrNotReviewable
		}

		updates := reviewUpdates(in)
		if err := tx.WithContext(ctx).
			Model(&Product{}).
			Where("id = ? AND status = ?", p.ID, StatusPending).
			Updates(updates).Error; err != nil {
			return err
		}

		// approving a product activates its pending variants with it
		if in.Approve {
			return tx.WithContext(ctx).
				Model(&ProductVariant{}).
				Where("product_id = ? AND status = ?", p.ID, StatusPending).
				Updates(map[string]any{"status": StatusActive, "updated_at": time.Now()}).Error
		}
		return nil
	})
}

func (s *Service) ReviewVariant(ctx context.Context, in ReviewInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v ProductVariant
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&v, "id = ?", in.ID).Error; err != nil {
			return err
		}
		if v.Status != StatusPending {
			return ErrNotReviewable
		}

		return tx.WithContext(ctx).
			Model(&ProductVariant{}).
			Where("id = ? AND status = ?", v.ID, StatusPending).
			Updates(reviewUpdates(in)).Error
	})
}

func reviewUpdates(in ReviewInput) map[string]any {
	status := StatusRejected
	if in.Approve {
		status = StatusActive
	}
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if reason := strings.TrimSpace(in.Reason); reason != "" {
		updates["status_reason"] = reason
	} else {
		updates["status_reason"] = nil
	}
	return updates
}
