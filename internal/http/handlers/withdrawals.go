package handlers

import (
	"errors"

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

type withdrawalRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	BankName    string `json:"bankName" binding:"required,max=128"`
	BankAccount string `json:"bankAccount" binding:"required,max=64"`
	HolderName  string `json:"holderName" binding:"required,max=128"`
}

func (h *WithdrawalsHandler) Request(c *gin.Context) {
	oh := OrdersHandler{DB: h.DB}
	st, ok := oh.requireStore(c)
	if !ok {
		return
	}

	var req withdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu rút tiền không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	w, err := h.Svc.Request(c.Request.Context(), wallets.RequestInput{
		StoreID:     st.ID,
		Amount:      req.Amount,
		BankName:    req.BankName,
		BankAccount: req.BankAccount,
		HolderName:  req.HolderName,
	})
	if err != nil {
		switch {
		case errors.Is(err, wallets.ErrInsufficientFunds):
			middleware.Fail(c, apperr.ConflictErr("Số dư ví không đủ."))
		case errors.Is(err, wallets.ErrInvalidAmount):
			middleware.Fail(c, apperr.InvalidErr("Số tiền rút phải lớn hơn 0.", nil))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.Created(c, withdrawalRow(w))
}

func (h *WithdrawalsHandler) List(c *gin.Context) {
	oh := OrdersHandler{DB: h.DB}
	st, ok := oh.requireStore(c)
	if !ok {
		return
	}

	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)
	rows, total, err := wallets.NewRepo(h.DB).ListWithdrawals(c.Request.Context(), wallets.ListWithdrawalsParams{
		StoreID:  st.ID,
		Status:   c.Query("status"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, w := range rows {
		out = append(out, withdrawalRow(w))
	}
	respond.OK(c, respond.Page{Items: out, Total: total, Page: page, PageSize: size})
}

func withdrawalRow(w wallets.Withdrawal) gin.H {
	return gin.H{
		"id":          w.ID,
		"storeId":     w.StoreID,
		"amount":      w.Amount,
		"display":     view.FormatVND(w.Amount),
		"bankName":    w.BankName,
		"bankAccount": w.BankAccount,
		"holderName":  w.HolderName,
		"status":      w.Status,
		"statusBadge": view.WithdrawalBadge(w.Status),
		"reason":      ptrStr(w.Reason),
		"createdAt":   view.DisplayTime(w.CreatedAt),
	}
}
