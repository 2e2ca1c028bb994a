package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/orders"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

type OrdersHandler struct {
	DB *gorm.DB
}

func NewOrdersHandler(db *gorm.DB) *OrdersHandler {
	return &OrdersHandler{DB: db}
}

func (h *OrdersHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 30)

	res, err := orders.NewRepo(h.DB).AdminList(c.Request.Context(), orders.AdminListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		StoreID:  c.Query("storeId"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]gin.H, 0, len(res.Items))
	for _, o := range res.Items {
		rows = append(rows, gin.H{
			"id":          o.ID,
			"orderNumber": o.OrderNumber,
			"storeId":     o.StoreID,
			"status":      o.Status,
			"statusBadge": view.OrderBadge(o.Status),
			"total":       view.FormatVND(o.TotalPrice),
			"createdAt":   view.DisplayTime(o.CreatedAt),
		})
	}
	respond.OK(c, respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size})
}

// Detail returns the full financial and audit view of one order.
func (h *OrdersHandler) Detail(c *gin.Context) {
	o, items, events, err := orders.NewRepo(h.DB).AdminGetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy đơn hàng."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	bd := orders.BreakdownOf(o, items)

	itemRows := make([]gin.H, 0, len(items))
	for _, it := range items {
		itemRows = append(itemRows, gin.H{
			"productName": it.ProductName,
			"sku":         it.SKU,
			"quantity":    it.Quantity,
			"unitPrice":   view.FormatVND(it.UnitPrice),
			"lineTotal":   view.FormatVND(it.LineTotal),
		})
	}
	eventRows := make([]gin.H, 0, len(events))
	for _, ev := range events {
		eventRows = append(eventRows, gin.H{
			"action":     ev.Action,
			"fromStatus": ev.FromStatus,
			"toStatus":   ev.ToStatus,
			"actor":      ev.ActorUserID,
			"note":       ptrStr(ev.Note),
			"createdAt":  view.DisplayTime(ev.CreatedAt),
		})
	}

	respond.OK(c, gin.H{
		"id":          o.ID,
		"orderNumber": o.OrderNumber,
		"storeId":     o.StoreID,
		"status":      o.Status,
		"statusBadge": view.OrderBadge(o.Status),
		"createdAt":   view.DisplayTime(o.CreatedAt),
		"items":       itemRows,
		"events":      eventRows,
		"breakdown":   bd,
	})
}
