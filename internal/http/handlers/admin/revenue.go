package admin

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/cache"
	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/revenue"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

const revenueTTL = 2 * time.Minute

type RevenueHandler struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewRevenueHandler(db *gorm.DB, c cache.Store) *RevenueHandler {
	return &RevenueHandler{DB: db, Cache: c}
}

// List returns the revenue ledger with display badges attached.
func (h *RevenueHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 30)
	typ := c.Query("type")
	from, to := dateRange(c)

	key := cache.Key("admin-revenue", "list", typ, c.Query("from"), c.Query("to"), c.Query("storeId"), c.Query("page"), c.Query("pageSize"))
	var cached respond.Page
	if cache.GetJSON(c.Request.Context(), h.Cache, key, &cached) {
		respond.OK(c, cached)
		return
	}

	res, err := revenue.NewRepo(h.DB).List(c.Request.Context(), revenue.ListParams{
		Type:     typ,
		From:     from,
		To:       to,
		StoreID:  c.Query("storeId"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]gin.H, 0, len(res.Items))
	for _, rec := range res.Items {
		rows = append(rows, gin.H{
			"id":          rec.ID,
			"type":        rec.RevenueType,
			"typeBadge":   revenue.TypeBadge(rec.RevenueType),
			"amount":      rec.Amount,
			"display":     revenue.Sign(rec.RevenueType) + view.FormatVND(rec.Amount),
			"orderId":     rec.OrderID,
			"storeId":     rec.StoreID,
			"description": ptrStr(rec.Description),
			"createdAt":   view.DisplayTime(rec.CreatedAt),
		})
	}

	out := respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size}
	cache.SetJSON(c.Request.Context(), h.Cache, key, out, revenueTTL)
	respond.OK(c, out)
}

// Summary feeds the statistics cards.
func (h *RevenueHandler) Summary(c *gin.Context) {
	from, to := dateRange(c)

	key := cache.Key("admin-revenue", "summary", c.Query("from"), c.Query("to"))
	var cached gin.H
	if cache.GetJSON(c.Request.Context(), h.Cache, key, &cached) {
		respond.OK(c, cached)
		return
	}

	sum, err := revenue.NewRepo(h.DB).Summary(c.Request.Context(), from, to)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	cards := make([]gin.H, 0, len(sum.Rows))
	for _, row := range sum.Rows {
		cards = append(cards, gin.H{
			"type":      row.RevenueType,
			"typeBadge": revenue.TypeBadge(row.RevenueType),
			"total":     row.Total,
			"display":   revenue.Sign(row.RevenueType) + view.FormatVND(row.Total),
			"count":     row.Count,
		})
	}

	out := gin.H{
		"cards":            cards,
		"netIncome":        sum.NetIncome,
		"netIncomeDisplay": view.FormatVND(sum.NetIncome),
	}
	cache.SetJSON(c.Request.Context(), h.Cache, key, out, revenueTTL)
	respond.OK(c, out)
}

// Chart returns the per-month income series for one year.
func (h *RevenueHandler) Chart(c *gin.Context) {
	year := parseInt(c.Query("year"), time.Now().Year())

	key := cache.Key("admin-revenue", "chart", c.Query("year"))
	var cached gin.H
	if cache.GetJSON(c.Request.Context(), h.Cache, key, &cached) {
		respond.OK(c, cached)
		return
	}

	chart, err := revenue.NewRepo(h.DB).MonthlyChart(c.Request.Context(), year)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := gin.H{"year": year, "months": chart}
	cache.SetJSON(c.Request.Context(), h.Cache, key, out, revenueTTL)
	respond.OK(c, out)
}

// dateRange parses optional from/to query params (YYYY-MM-DD). The
// upper bound is exclusive at the following midnight.
func dateRange(c *gin.Context) (*time.Time, *time.Time) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = &t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			t = t.AddDate(0, 0, 1)
			to = &t
		}
	}
	return from, to
}
