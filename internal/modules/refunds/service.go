package refunds

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vivumarket.vn/app/internal/modules/orders"
)

var (
	ErrNotDecidable     = errors.New("refund request not decidable")
	ErrOrderNotEligible = errors.New("order not eligible for refund")
	ErrInvalidAmount    = errors.New("refund amount must be positive")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type SubmitInput struct {
	OrderID    string
	CustomerID string
	Amount     int64
	Reason     string
	Evidence   []string // storage keys of uploaded photos
}

// Submit files a refund request against a delivered or completed
// order. The claimed amount is recorded as-is; capping happens at
// approval time.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Request, error) {
	if in.Amount <= 0 {
		return Request{}, ErrInvalidAmount
	}

	var req Request
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o orders.Order
		if err := tx.WithContext(ctx).First(&o, "id = ?", in.OrderID).Error; err != nil {
			return err
		}
		if o.Status != orders.StatusDelivered && o.Status != orders.StatusCompleted {
			return ErrOrderNotEligible
		}

		evidence, err := json.Marshal(in.Evidence)
		if err != nil {
			return err
		}

		now := time.Now()
		req = Request{
			ID:              uuid.NewString(),
			OrderID:         o.ID,
			StoreID:         o.StoreID,
			CustomerID:      in.CustomerID,
			RequestedAmount: in.Amount,
			Reason:          strings.TrimSpace(in.Reason),
			Evidence:        evidence,
			Status:          StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return tx.WithContext(ctx).Create(&req).Error
	})
	return req, err
}

type DecideInput struct {
	RequestID   string
	ActorUserID string
	Approve     bool
	Note        string
}

type DecideResult struct {
	Status         string
	ApprovedAmount int64 // zero on rejection
	Capped         bool  // approved amount was reduced to the payout ceiling
}

// Decide applies the admin decision. An approved amount never exceeds
// what the store actually earned on the order: the merchandise value
// minus its own discount minus the platform commission. Shipping is
// paid to the carrier and is not refundable through this flow.
func (s *Service) Decide(ctx context.Context, in DecideInput) (DecideResult, error) {
	if in.RequestID == "" || in.ActorUserID == "" {
		return DecideResult{}, ErrNotDecidable
	}

	var out DecideResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req Request
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", in.RequestID).Error; err != nil {
			return err
		}
		if req.Status != StatusPending {
			return ErrNotDecidable
		}

		now := time.Now()
		updates := map[string]any{
			"decided_by": in.ActorUserID,
			"decided_at": now,
			"updated_at": now,
		}
		if note := strings.TrimSpace(in.Note); note != "" {
			updates["admin_note"] = note
		}

		if !in.Approve {
			updates["status"] = StatusRejected
			out.Status = StatusRejected
			return tx.WithContext(ctx).
				Model(&Request{}).
				Where("id = ? AND status = ?", req.ID, StatusPending).
				Updates(updates).Error
		}

		var o orders.Order
		if err := tx.WithContext(ctx).First(&o, "id = ?", req.OrderID).Error; err != nil {
			return err
		}
		var items []orders.OrderItem
		if err := tx.WithContext(ctx).
			Order("created_at ASC").
			Find(&items, "order_id = ?", req.OrderID).Error; err != nil {
			return err
		}

		amount, capped := CapAmount(req.RequestedAmount, orders.BreakdownOf(o, items))

		updates["status"] = StatusApproved
		updates["approved_amount"] = amount
		if err := tx.WithContext(ctx).
			Model(&Request{}).
			Where("id = ? AND status = ?", req.ID, StatusPending).
			Updates(updates).Error; err != nil {
			return err
		}

		out = DecideResult{Status: StatusApproved, ApprovedAmount: amount, Capped: capped}
		return nil
	})
	if err != nil {
		return DecideResult{}, err
	}
	return out, nil
}

// CapAmount clamps a claimed refund to the store's net earning on the
// order. A breakdown driven negative by bad data caps to zero.
func CapAmount(requested int64, bd orders.Breakdown) (int64, bool) {
	max := bd.Subtotal - bd.StoreDiscount - bd.PlatformCommission
	if max < 0 {
		max = 0
	}
	if requested > max {
		return max, true
	}
	return requested, false
}
