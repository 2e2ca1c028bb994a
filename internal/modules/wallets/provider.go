package wallets

import "context"

type TransferRequest struct {
	WithdrawalID   string
	Amount         int64
	BankName       string
	BankAccount    string
	HolderName     string
	IdempotencyKey string
}

type TransferResponse struct {
	ProviderRef string
	Status      string // INITIATED|PAID|FAILED
}

// TransferProvider executes the actual bank transfer for an approved
// withdrawal.
type TransferProvider interface {
	Name() string
	Transfer(ctx context.Context, req TransferRequest) (TransferResponse, error)
}

// ManualProvider marks transfers as paid immediately; used when
// payouts are executed by the finance team outside the system.
type ManualProvider struct{}

func (ManualProvider) Name() string { return "manual" }

func (ManualProvider) Transfer(ctx context.Context, req TransferRequest) (TransferResponse, error) {
	_ = ctx
	return TransferResponse{
		ProviderRef: "manual-" + req.IdempotencyKey,
		Status:      WithdrawalPaid,
	}, nil
}
