package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/refunds"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

type RefundsHandler struct {
	DB  *gorm.DB
	Svc *refunds.Service
}

func NewRefundsHandler(db *gorm.DB, svc *refunds.Service) *RefundsHandler {
	return &RefundsHandler{DB: db, Svc: svc}
}

type refundSubmitRequest struct {
	OrderID  string   `json:"orderId" binding:"required"`
	Amount   int64    `json:"amount" binding:"required,gt=0"`
	Reason   string   `json:"reason" binding:"required,max=255"`
	Evidence []string `json:"evidence" binding:"max=5"`
}

// Submit lets a signed-in buyer open a refund claim on their order.
func (h *RefundsHandler) Submit(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var req refundSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu hoàn tiền không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	r, err := h.Svc.Submit(c.Request.Context(), refunds.SubmitInput{
		OrderID:    req.OrderID,
		CustomerID: u.ID,
		Amount:     req.Amount,
		Reason:     req.Reason,
		Evidence:   req.Evidence,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy đơn hàng."))
		case errors.Is(err, refunds.ErrOrderNotEligible):
			middleware.Fail(c, apperr.ConflictErr("Đơn hàng chưa đủ điều kiện hoàn tiền."))
		case errors.Is(err, refunds.ErrInvalidAmount):
			middleware.Fail(c, apperr.InvalidErr("Số tiền hoàn phải lớn hơn 0.", nil))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.Created(c, refundRow(r))
}

func refundRow(r refunds.Request) gin.H {
	out := gin.H{
		"id":              r.ID,
		"orderId":         r.OrderID,
		"storeId":         r.StoreID,
		"requestedAmount": r.RequestedAmount,
		"reason":          r.Reason,
		"status":          r.Status,
		"statusBadge":     view.RefundBadge(r.Status),
		"createdAt":       view.DisplayTime(r.CreatedAt),
	}
	if r.ApprovedAmount != nil {
		out["approvedAmount"] = *r.ApprovedAmount
		out["approvedDisplay"] = view.FormatVND(*r.ApprovedAmount)
	}
	return out
}
