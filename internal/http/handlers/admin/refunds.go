package admin

import (
	"errors"
	"io"

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

func (h *RefundsHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	rows, total, err := refunds.NewRepo(h.DB).List(c.Request.Context(), refunds.ListParams{
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
	for _, r := range rows {
		out = append(out, refundRow(r))
	}
	respond.OK(c, respond.Page{Items: out, Total: total, Page: page, PageSize: size})
}

type decideRequest struct {
	Note string `json:"note" binding:"max=255"`
}

// Decide settles a pending refund claim. Approved amounts are capped
// at what the store earned on the order, never at the buyer's claim.
func (h *RefundsHandler) Decide(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.decide(c, approve)
	}
}

func (h *RefundsHandler) decide(c *gin.Context, approve bool) {
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	res, err := h.Svc.Decide(c.Request.Context(), refunds.DecideInput{
		RequestID:   c.Param("id"),
		ActorUserID: u.ID,
		Approve:     approve,
		Note:        req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy yêu cầu hoàn tiền."))
		case errors.Is(err, refunds.ErrNotDecidable):
			middleware.Fail(c, apperr.ConflictErr("Yêu cầu đã được xử lý trước đó."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.OK(c, gin.H{
		"status":         res.Status,
		"statusBadge":    view.RefundBadge(res.Status),
		"approvedAmount": res.ApprovedAmount,
		"capped":         res.Capped,
	})
}

func refundRow(r refunds.Request) gin.H {
	out := gin.H{
		"id":              r.ID,
		"orderId":         r.OrderID,
		"storeId":         r.StoreID,
		"customerId":      r.CustomerID,
		"requestedAmount": r.RequestedAmount,
		"display":         view.FormatVND(r.RequestedAmount),
		"reason":          r.Reason,
		"status":          r.Status,
		"statusBadge":     view.RefundBadge(r.Status),
		"createdAt":       view.DisplayTime(r.CreatedAt),
	}
	if r.ApprovedAmount != nil {
		out["approvedAmount"] = *r.ApprovedAmount
	}
	return out
}
