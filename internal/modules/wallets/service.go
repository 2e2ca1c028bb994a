package wallets

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
	ErrNotProcessable    = errors.New("withdrawal not processable")
	ErrInsufficientFunds = errors.New("wallet balance insufficient")
	ErrInvalidAmount     = errors.New("withdrawal amount must be positive")
)

type Service struct {
	db       *gorm.DB
	provider TransferProvider
}

func NewService(db *gorm.DB, p TransferProvider) *Service {
	return &Service{db: db, provider: p}
}

type RequestInput struct {
	StoreID     string
	Amount      int64
	BankName    string
	BankAccount string
	HolderName  string
}

// Request records a store's withdrawal request. The balance is only
// reserved at approval time; a pending request holds nothing.
func (s *Service) Request(ctx context.Context, in RequestInput) (Withdrawal, error) {
	if in.Amount <= 0 {
		return Withdrawal{}, ErrInvalidAmount
	}

	var w Withdrawal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wallet Wallet
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&wallet, "store_id = ?", in.StoreID).Error; err != nil {
			return err
		}
		if wallet.Balance < in.Amount {
			return ErrInsufficientFunds
		}

		now := time.Now()
		w = Withdrawal{
			ID:             uuid.NewString(),
			StoreID:        in.StoreID,
			Amount:         in.Amount,
			BankName:       strings.TrimSpace(in.BankName),
			BankAccount:    strings.TrimSpace(in.BankAccount),
			HolderName:     strings.TrimSpace(in.HolderName),
			Status:         WithdrawalPending,
			IdempotencyKey: uuid.NewString(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.WithContext(ctx).Create(&w).Error
	})
	return w, err
}

type ProcessInput struct {
	WithdrawalID string
	ActorUserID  string
	Approve      bool
	Reason       string
}

type ProcessResult struct {
	Status     string
	Idempotent bool
}

// Process executes an admin decision. Approval runs in three phases:
// lock + validate + debit inside a transaction, the provider transfer
// outside it, then finalization. A withdrawal already past PENDING is
// reported idempotently rather than re-executed.
func (s *Service) Process(ctx context.Context, in ProcessInput) (ProcessResult, error) {
	if in.WithdrawalID == "" || in.ActorUserID == "" {
		return ProcessResult{}, ErrNotProcessable
	}

	var w Withdrawal
	var initiated bool      // this call moved PENDING -> INITIATED
	var decidedEarlier bool // a previous call already settled it

	// Phase-1: lock withdrawal + wallet, settle the decision state
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&w, "id = ?", in.WithdrawalID).Error; err != nil {
			return err
		}

		// already decided: report idempotently
		if w.Status != WithdrawalPending {
			decidedEarlier = true
			return nil
		}

		now := time.Now()
		actor := in.ActorUserID

		if !in.Approve {
			updates := map[string]any{
				"status":       WithdrawalRejected,
				"processed_by": actor,
				"updated_at":   now,
			}
			if reason := strings.TrimSpace(in.Reason); reason != "" {
				updates["reason"] = reason
			}
			if err := tx.WithContext(ctx).
				Model(&Withdrawal{}).
				Where("id = ? AND status = ?", w.ID, WithdrawalPending).
				Updates(updates).Error; err != nil {
				return err
			}
			w.Status = WithdrawalRejected
			return nil
		}

		var wallet Wallet
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&wallet, "store_id = ?", w.StoreID).Error; err != nil {
			return err
		}
		if wallet.Balance < w.Amount {
			return ErrInsufficientFunds
		}

		// debit up front; a failed transfer refunds in phase-3
		if err := tx.WithContext(ctx).
			Model(&Wallet{}).
			Where("id = ?", wallet.ID).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance - ?", w.Amount),
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		if err := tx.WithContext(ctx).
			Model(&Withdrawal{}).
			Where("id = ? AND status = ?", w.ID, WithdrawalPending).
			Updates(map[string]any{
				"status":       WithdrawalInitiated,
				"processed_by": actor,
				"updated_at":   now,
			}).Error; err != nil {
			return err
		}
		w.Status = WithdrawalInitiated
		initiated = true
		return nil
	})
	if err != nil {
		return ProcessResult{}, err
	}

	if !initiated {
		// rejected just now, or decided by an earlier call
		return ProcessResult{Status: w.Status, Idempotent: decidedEarlier}, nil
	}

	// Phase-2: provider transfer (outside the transaction)
	resp, perr := s.provider.Transfer(ctx, TransferRequest{
		WithdrawalID:   w.ID,
		Amount:         w.Amount,
		BankName:       w.BankName,
		BankAccount:    w.BankAccount,
		HolderName:     w.HolderName,
		IdempotencyKey: w.IdempotencyKey,
	})

	// Phase-3: finalize
	finalStatus := resp.Status
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]any{"updated_at": now}
		if resp.ProviderRef != "" {
			updates["provider_ref"] = resp.ProviderRef
		}

		if perr != nil || resp.Status == WithdrawalFailed {
			msg := "transfer failed"
			if perr != nil {
				msg = perr.Error()
			}
			finalStatus = WithdrawalFailed
			updates["status"] = WithdrawalFailed
			updates["error_message"] = msg

			if err := tx.WithContext(ctx).
				Model(&Withdrawal{}).
				Where("id = ?", w.ID).
				Updates(updates).Error; err != nil {
				return err
			}

			// return the reserved funds
			return tx.WithContext(ctx).
				Model(&Wallet{}).
				Where("store_id = ?", w.StoreID).
				Updates(map[string]any{
					"balance":    gorm.Expr("balance + ?", w.Amount),
					"updated_at": now,
				}).Error
		}

		if resp.Status == WithdrawalInitiated {
			// async provider; its callback finalizes later
			updates["status"] = WithdrawalInitiated
			return tx.WithContext(ctx).
				Model(&Withdrawal{}).
				Where("id = ?", w.ID).
				Updates(updates).Error
		}

		finalStatus = WithdrawalPaid
		updates["status"] = WithdrawalPaid
		return tx.WithContext(ctx).
			Model(&Withdrawal{}).
			Where("id = ?", w.ID).
			Updates(updates).Error
	})
	if err != nil {
		return ProcessResult{}, err
	}

	return ProcessResult{Status: finalStatus}, nil
}
