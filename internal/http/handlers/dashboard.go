package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/cache"
	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/orders"
	"vivumarket.vn/app/internal/modules/wallets"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

const dashboardTTL = 60 * time.Second

type DashboardHandler struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewDashboardHandler(db *gorm.DB, c cache.Store) *DashboardHandler {
	return &DashboardHandler{DB: db, Cache: c}
}

type dashboardSummary struct {
	OrderCounts   map[string]int64 `json:"orderCounts"`
	WalletBalance int64            `json:"walletBalance"`
	WalletDisplay string           `json:"walletDisplay"`
	RevenueMonth  int64            `json:"revenueMonth"`
	RevenueTotal  int64            `json:"revenueTotal"`
}

// Summary feeds the store dashboard header cards. Heavily read,
// slightly stale by design.
func (h *DashboardHandler) Summary(c *gin.Context) {
	oh := OrdersHandler{DB: h.DB}
	st, ok := oh.requireStore(c)
	if !ok {
		return
	}

	key := cache.Key("store-dashboard", st.ID)
	var cached dashboardSummary
	if cache.GetJSON(c.Request.Context(), h.Cache, key, &cached) {
		respond.OK(c, cached)
		return
	}

	ctx := c.Request.Context()
	var out dashboardSummary
	out.OrderCounts = map[string]int64{}

	type countRow struct {
		Status string
		N      int64
	}
	var rows []countRow
	if err := h.DB.WithContext(ctx).
		Model(&orders.Order{}).
		Select("status, COUNT(*) AS n").
		Where("store_id = ?", st.ID).
		Group("status").
		Scan(&rows).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	for _, r := range rows {
		out.OrderCounts[r.Status] = r.N
	}

	wallet, err := wallets.NewRepo(h.DB).GetOrCreate(ctx, st.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out.WalletBalance = wallet.Balance
	out.WalletDisplay = view.FormatVND(wallet.Balance)

	// store revenue comes from completed orders
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var completed []orders.Order
	if err := h.DB.WithContext(ctx).
		Where("store_id = ? AND status = ?", st.ID, orders.StatusCompleted).
		Find(&completed).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	for _, o := range completed {
		bd := orders.BreakdownOf(o, nil)
		out.RevenueTotal += bd.StoreRevenue
		if !o.UpdatedAt.Before(monthStart) {
			out.RevenueMonth += bd.StoreRevenue
		}
	}

	cache.SetJSON(ctx, h.Cache, key, out, dashboardTTL)
	respond.OK(c, out)
}
