package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/cache"
	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/orders"
	"vivumarket.vn/app/internal/modules/shipping"
	"vivumarket.vn/app/internal/modules/stores"
	"vivumarket.vn/app/internal/modules/users"
	"vivumarket.vn/app/internal/modules/wallets"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

const orderListTTL = 30 * time.Second

type OrdersHandler struct {
	DB       *gorm.DB
	Cache    cache.Store
	OrderSvc *orders.Service
	Settle   *wallets.Settlement
}

func NewOrdersHandler(db *gorm.DB, c cache.Store) *OrdersHandler {
	return &OrdersHandler{
		DB:       db,
		Cache:    c,
		OrderSvc: orders.NewService(db),
		Settle:   wallets.NewSettlement(db),
	}
}

// requireStore resolves the :storeID param and checks the caller may
// act for that store. Admins pass; a merchant must own it.
func (h *OrdersHandler) requireStore(c *gin.Context) (stores.Store, bool) {
	storeID := c.Param("storeID")
	u, _ := middleware.CurrentUser(c)

	st, err := stores.NewRepo(h.DB).Get(c.Request.Context(), storeID)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy cửa hàng."))
		return stores.Store{}, false
	}
	if u.Role != users.RoleAdmin && st.OwnerUserID != u.ID {
		middleware.Fail(c, apperr.ForbiddenErr("Bạn không có quyền truy cập cửa hàng này."))
		return stores.Store{}, false
	}
	return st, true
}

func (h *OrdersHandler) List(c *gin.Context) {
	st, ok := h.requireStore(c)
	if !ok {
		return
	}

	status := c.Query("status")
	q := c.Query("q")
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	key := cache.Key("store-orders", st.ID, status, q, c.Query("page"), c.Query("pageSize"))
	var cached respond.Page
	if cache.GetJSON(c.Request.Context(), h.Cache, key, &cached) {
		respond.OK(c, cached)
		return
	}

	res, err := orders.NewRepo(h.DB).ListByStore(c.Request.Context(), orders.ListByStoreParams{
		StoreID: st.ID, Status: status, Q: q, Page: page, PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]view.OrderRow, 0, len(res.Items))
	for _, it := range res.Items {
		rows = append(rows, view.OrderRow{
			ID:          it.Order.ID,
			OrderNumber: it.Order.OrderNumber,
			Status:      it.Order.Status,
			StatusBadge: view.OrderBadge(it.Order.Status),
			Total:       view.FormatVND(it.Order.TotalPrice),
			ItemCount:   it.ItemCount,
			CreatedAt:   view.DisplayTime(it.Order.CreatedAt),
		})
	}

	out := respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size}
	cache.SetJSON(c.Request.Context(), h.Cache, key, out, orderListTTL)
	respond.OK(c, out)
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	st, ok := h.requireStore(c)
	if !ok {
		return
	}

	repo := orders.NewRepo(h.DB)
	o, items, err := repo.GetForStore(c.Request.Context(), c.Param("id"), st.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy đơn hàng."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	events, err := repo.ListEvents(c.Request.Context(), o.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	bd := orders.BreakdownOf(o, items)

	var buyer users.User
	if o.UserID != nil {
		_ = h.DB.WithContext(c.Request.Context()).First(&buyer, "id = ?", *o.UserID).Error
	}
	src := orders.CustomerSource{
		Order:     o,
		UserName:  ptrStr(buyer.FullName),
		UserPhone: ptrStr(buyer.Phone),
	}

	itemRows := make([]view.OrderItemRow, 0, len(items))
	for _, it := range items {
		itemRows = append(itemRows, view.OrderItemRow{
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			UnitPrice:   view.FormatVND(it.UnitPrice),
			LineTotal:   view.FormatVND(it.LineTotal),
			ImageURL:    ptrStr(it.ImageURL),
		})
	}

	eventRows := make([]gin.H, 0, len(events))
	for _, ev := range events {
		eventRows = append(eventRows, gin.H{
			"action":     ev.Action,
			"fromStatus": ev.FromStatus,
			"toStatus":   ev.ToStatus,
			"note":       ptrStr(ev.Note),
			"createdAt":  view.DisplayTime(ev.CreatedAt),
		})
	}

	respond.OK(c, gin.H{
		"id":          o.ID,
		"orderNumber": o.OrderNumber,
		"status":      o.Status,
		"statusBadge": view.OrderBadge(o.Status),
		"createdAt":   view.DisplayTime(o.CreatedAt),
		"confirmedAt": view.DisplayTimePtr(o.ConfirmedAt),
		"deliveredAt": view.DisplayTimePtr(o.DeliveredAt),
		"customer": gin.H{
			"name":    orders.CustomerName(src),
			"phone":   orders.CustomerPhone(src),
			"address": orders.CustomerAddress(src),
		},
		"items":     itemRows,
		"events":    eventRows,
		"breakdown": breakdownView(bd),
	})
}

type orderActionRequest struct {
	Note string `json:"note" binding:"max=255"`
}

// OrderActions are the store-side transitions exposed as routes.
var OrderActions = []string{"confirm", "ship", "deliver", "complete", "cancel", "return"}

// Action returns the handler for one named transition. The body is an
// optional {note}.
func (h *OrdersHandler) Action(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.action(c, action)
	}
}

func (h *OrdersHandler) action(c *gin.Context, action string) {
	st, ok := h.requireStore(c)
	if !ok {
		return
	}

	var req orderActionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	res, err := h.OrderSvc.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:     c.Param("id"),
		StoreID:     st.ID,
		ActorUserID: u.ID,
		Action:      action,
		Note:        req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy đơn hàng."))
		case errors.Is(err, orders.ErrWrongStore):
			middleware.Fail(c, apperr.ForbiddenErr("Đơn hàng thuộc cửa hàng khác."))
		case errors.Is(err, orders.ErrInvalidTransition), errors.Is(err, orders.ErrNotActionable):
			middleware.Fail(c, apperr.ConflictErr("Trạng thái đơn hàng không cho phép thao tác này."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	// confirmation hands the order to the carrier
	if res.To == orders.StatusConfirmed {
		if serr := shipping.NewRepo(h.DB).CreateForOrder(c.Request.Context(), c.Param("id"), st.ID); serr != nil {
			middleware.Fail(c, apperr.Wrap(serr))
			return
		}
	}

	// completion releases the payout into the store wallet
	if res.To == orders.StatusCompleted {
		o, items, gerr := orders.NewRepo(h.DB).GetWithItems(c.Request.Context(), c.Param("id"))
		if gerr == nil {
			if _, serr := h.Settle.SettleOrder(c.Request.Context(), o, items); serr != nil {
				middleware.Fail(c, apperr.Wrap(serr))
				return
			}
			h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("admin-revenue"))
		}
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("store-orders", st.ID))
	h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("store-dashboard", st.ID))

	respond.OK(c, gin.H{
		"from":        res.From,
		"to":          res.To,
		"statusBadge": view.OrderBadge(res.To),
	})
}

func breakdownView(bd orders.Breakdown) view.BreakdownView {
	return view.BreakdownView{
		Subtotal:           bd.Subtotal,
		ShippingFee:        bd.ShippingFee,
		StoreDiscount:      bd.StoreDiscount,
		PlatformDiscount:   bd.PlatformDiscount,
		BuyerPaidTotal:     bd.BuyerPaidTotal,
		PlatformCommission: bd.PlatformCommission,
		StoreReceiveTotal:  bd.StoreReceiveTotal,
		StoreRevenue:       bd.StoreRevenue,
		Display: map[string]string{
			"subtotal":           view.FormatVND(bd.Subtotal),
			"shippingFee":        view.FormatVND(bd.ShippingFee),
			"storeDiscount":      view.FormatVND(bd.StoreDiscount),
			"platformDiscount":   view.FormatVND(bd.PlatformDiscount),
			"buyerPaidTotal":     view.FormatVND(bd.BuyerPaidTotal),
			"platformCommission": view.FormatVND(bd.PlatformCommission),
			"storeReceiveTotal":  view.FormatVND(bd.StoreReceiveTotal),
			"storeRevenue":       view.FormatVND(bd.StoreRevenue),
		},
	}
}
