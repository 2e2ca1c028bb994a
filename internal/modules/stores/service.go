package stores

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidTransition = errors.New("invalid store status transition")

// Service applies admin decisions on store applications.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type DecisionInput struct {
	StoreID     string
	ActorUserID string
	Action      string // approve|reject|suspend|reactivate
	Reason      string
}

func (s *Service) Decide(ctx context.Context, in DecisionInput) (Store, error) {
	var store Store
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&store, "id = ?", in.StoreID).Error; err != nil {
			return err
		}

		to, err := nextStatus(store.Status, in.Action)
		if err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"status":     to,
			"updated_at": now,
		}
		if to == StatusActive && store.ApprovedAt == nil {
			updates["approved_at"] = now
		}
		if reason := strings.TrimSpace(in.Reason); reason != "" {
			updates["status_reason"] = reason
		} else {
			updates["status_reason"] = nil
		}

		if err := tx.WithContext(ctx).
			Model(&Store{}).
			Where("id = ? AND status = ?", store.ID, store.Status).
			Updates(updates).Error; err != nil {
			return err
		}

		store.Status = to
		store.UpdatedAt = now
		return nil
	})
	return store, err
}

func nextStatus(from, action string) (string, error) {
	switch action {
	case "approve":
		if from == StatusPending {
			return StatusActive, nil
		}
		return "", ErrInvalidTransition
	case "reject":
		if from == StatusPending {
			return StatusRejected, nil
		}
		return "", ErrInvalidTransition
	case "suspend":
		if from == StatusActive {
			return StatusSuspended, nil
		}
		return "", ErrInvalidTransition
	case "reactivate":
		if from == StatusSuspended {
			return StatusActive, nil
		}
		return "", ErrInvalidTransition
	default:
		return "", ErrInvalidTransition
	}
}
