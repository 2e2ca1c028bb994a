package admin

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/wallets"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

type WithdrawalsHandler struct {
	DB  *gorm.DB
	Svc *wallets.Service
}

func NewWithdrawalsHandler(db *gorm.DB, svc *wallets.Service) *WithdrawalsHandler {
	return &WithdrawalsHandler{DB: db, Svc: svc}
}

func (h *WithdrawalsHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	rows, total, err := wallets.NewRepo(h.DB).ListWithdrawals(c.Request.Context(), wallets.ListWithdrawalsParams{
		Status:   c.Query("status"),
		StoreID:  c.Query("storeId"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, w := range rows {
		out = append(out, gin.H{
			"id":          w.ID,
			"storeId":     w.StoreID,
			"amount":      w.Amount,
			"display":     view.FormatVND(w.Amount),
			"bankName":    w.BankName,
			"bankAccount": w.BankAccount,
			"holderName":  w.HolderName,
			"status":      w.Status,
			"statusBadge": view.WithdrawalBadge(w.Status),
			"createdAt":   view.DisplayTime(w.CreatedAt),
		})
	}
	respond.OK(c, respond.Page{Items: out, Total: total, Page: page, PageSize: size})
}

type processRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// Process approves or rejects a pending withdrawal. Approval debits
// the wallet and runs the bank transfer; a repeat call reports the
// earlier outcome instead of paying twice.
func (h *WithdrawalsHandler) Process(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.process(c, approve)
	}
}

func (h *WithdrawalsHandler) process(c *gin.Context, approve bool) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	res, err := h.Svc.Process(c.Request.Context(), wallets.ProcessInput{
		WithdrawalID: c.Param("id"),
		ActorUserID:  u.ID,
		Approve:      approve,
		Reason:       req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy yêu cầu rút tiền."))
		case errors.Is(err, wallets.ErrInsufficientFunds):
			middleware.Fail(c, apperr.ConflictErr("Số dư ví không đủ để chi trả."))
		case errors.Is(err, wallets.ErrNotProcessable):
			middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", nil))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.OK(c, gin.H{
		"status":      res.Status,
		"statusBadge": view.WithdrawalBadge(res.Status),
		"idempotent":  res.Idempotent,
	})
}
