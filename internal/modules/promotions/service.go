package promotions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCodeTaken       = errors.New("promotion code already exists")
	ErrInvalidDiscount = errors.New("invalid discount terms")
	ErrInvalidSchedule = errors.New("promotion schedule is invalid")
	ErrAlreadyEnabled  = errors.New("promotion already enabled")
	ErrAlreadyDisabled = errors.New("promotion already disabled")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type Terms struct {
	Name           string
	Description    string
	DiscountType   string
	DiscountValue  int64
	MaxDiscount    *int64
	MinOrderAmount int64
	StartsAt       time.Time
	EndsAt         time.Time
	UsageLimit     *int
}

// ValidateTerms rejects discount terms no campaign should carry. A
// percent discount is capped at 100 and may carry an absolute ceiling;
// a fixed discount carries its amount directly.
func ValidateTerms(t Terms) error {
	switch t.DiscountType {
	case DiscountPercent:
		if t.DiscountValue < 1 || t.DiscountValue > 100 {
			return ErrInvalidDiscount
		}
		if t.MaxDiscount != nil && *t.MaxDiscount <= 0 {
			return ErrInvalidDiscount
		}
	case DiscountFixed:
		if t.DiscountValue <= 0 {
			return ErrInvalidDiscount
		}
		if t.MaxDiscount != nil {
			return ErrInvalidDiscount
		}
	default:
		return ErrInvalidDiscount
	}

	if t.MinOrderAmount < 0 {
		return ErrInvalidDiscount
	}
	if t.UsageLimit != nil && *t.UsageLimit <= 0 {
		return ErrInvalidDiscount
	}
	if !t.EndsAt.After(t.StartsAt) {
		return ErrInvalidSchedule
	}
	return nil
}

type CreateInput struct {
	Code        string
	Terms       Terms
	ActorUserID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Promotion, error) {
	if err := ValidateTerms(in.Terms); err != nil {
		return Promotion{}, err
	}

	now := time.Now()
	p := Promotion{
		ID:             uuid.NewString(),
		Code:           strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:           strings.TrimSpace(in.Terms.Name),
		DiscountType:   in.Terms.DiscountType,
		DiscountValue:  in.Terms.DiscountValue,
		MaxDiscount:    in.Terms.MaxDiscount,
		MinOrderAmount: in.Terms.MinOrderAmount,
		StartsAt:       in.Terms.StartsAt,
		EndsAt:         in.Terms.EndsAt,
		Enabled:        true,
		UsageLimit:     in.Terms.UsageLimit,
		CreatedBy:      in.ActorUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if d := strings.TrimSpace(in.Terms.Description); d != "" {
		p.Description = &d
	}

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isDup(err) {
			return Promotion{}, ErrCodeTaken
		}
		return Promotion{}, err
	}
	return p, nil
}

type UpdateInput struct {
	PromotionID string
	Terms       Terms
}

// Update rewrites a campaign's terms. The code is immutable; stores
// already printed it on banners.
func (s *Service) Update(ctx context.Context, in UpdateInput) (Promotion, error) {
	if err := ValidateTerms(in.Terms); err != nil {
		return Promotion{}, err
	}

	var p Promotion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", in.PromotionID).Error; err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"name":             strings.TrimSpace(in.Terms.Name),
			"discount_type":    in.Terms.DiscountType,
			"discount_value":   in.Terms.DiscountValue,
			"max_discount":     in.Terms.MaxDiscount,
			"min_order_amount": in.Terms.MinOrderAmount,
			"starts_at":        in.Terms.StartsAt,
			"ends_at":          in.Terms.EndsAt,
			"usage_limit":      in.Terms.UsageLimit,
			"updated_at":       now,
		}
		if d := strings.TrimSpace(in.Terms.Description); d != "" {
			updates["description"] = d
		} else {
			updates["description"] = nil
		}

		if err := tx.WithContext(ctx).
			Model(&Promotion{}).
			Where("id = ?", p.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).First(&p, "id = ?", p.ID).Error
	})
	return p, err
}

// SetEnabled flips a campaign on or off without touching its schedule.
func (s *Service) SetEnabled(ctx context.Context, promotionID string, enabled bool) (Promotion, error) {
	var p Promotion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", promotionID).Error; err != nil {
			return err
		}

		if p.Enabled == enabled {
			if enabled {
				return ErrAlreadyEnabled
			}
			return ErrAlreadyDisabled
		}

		now := time.Now()
		if err := tx.WithContext(ctx).
			Model(&Promotion{}).
			Where("id = ? AND enabled = ?", p.ID, p.Enabled).
			Updates(map[string]any{"enabled": enabled, "updated_at": now}).Error; err != nil {
			return err
		}
		p.Enabled = enabled
		p.UpdatedAt = now
		return nil
	})
	return p, err
}

// Delete soft-deletes a campaign; it stays visible in the deleted
// report for audit.
func (s *Service) Delete(ctx context.Context, promotionID string) error {
	res := s.db.WithContext(ctx).Delete(&Promotion{}, "id = ?", promotionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
