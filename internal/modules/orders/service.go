package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotActionable     = errors.New("order not actionable")
	ErrWrongStore        = errors.New("order belongs to another store")
)

// Service applies store-side order actions through the status machine.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type TransitionInput struct {
	OrderID     string
	StoreID     string // "" for platform-admin actions
	ActorUserID string
	Action      string // confirm|ship|deliver|complete|cancel|return
	Note        string
}

type TransitionResult struct {
	From string
	To   string
}

func (s *Service) Transition(ctx context.Context, in TransitionInput) (TransitionResult, error) {
	if in.OrderID == "" || in.ActorUserID == "" || in.Action == "" {
		return TransitionResult{}, ErrNotActionable
	}

	var res TransitionResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order

		// row lock
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			return err
		}

		if in.StoreID != "" && o.StoreID != in.StoreID {
			return ErrWrongStore
		}

		from := o.Status
		to, err := nextStatus(from, in.Action)
		if err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"status":     to,
			"updated_at": now,
		}
		if to == StatusConfirmed && o.ConfirmedAt == nil {
			updates["confirmed_at"] = now
		}
		if to == StatusDelivered && o.DeliveredAt == nil {
			updates["delivered_at"] = now
		}

		if err := tx.WithContext(ctx).
			Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, from). // optimistic guard
			Updates(updates).Error; err != nil {
			return err
		}

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}

		ev := OrderEvent{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ActorUserID: in.ActorUserID,
			Action:      in.Action,
			FromStatus:  from,
			ToStatus:    to,
			Note:        notePtr,
			CreatedAt:   now,
		}
		if err := tx.WithContext(ctx).Create(&ev).Error; err != nil {
			return err
		}

		res = TransitionResult{From: from, To: to}
		return nil
	})
	return res, err
}

func nextStatus(from, action string) (string, error) {
	switch action {
	case "confirm":
		if from == StatusPending {
			return StatusConfirmed, nil
		}
		return "", ErrInvalidTransition
	case "ship":
		if from == StatusConfirmed {
			return StatusShipping, nil
		}
		return "", ErrInvalidTransition
	case "deliver":
		if from == StatusShipping {
			return StatusDelivered, nil
		}
		return "", ErrInvalidTransition
	case "complete":
		if from == StatusDelivered {
			return StatusCompleted, nil
		}
		return "", ErrInvalidTransition
	case "cancel":
		if from == StatusPending || from == StatusConfirmed {
			return StatusCancelled, nil
		}
		return "", ErrInvalidTransition
	case "return":
		if from == StatusShipping || from == StatusDelivered {
			return StatusReturned, nil
		}
		return "", ErrInvalidTransition
	default:
		return "", ErrInvalidTransition
	}
}
