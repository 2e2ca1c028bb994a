package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/cache"
	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/promotions"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

const promotionListTTL = time.Minute

type PromotionsHandler struct {
	DB    *gorm.DB
	Cache cache.Store
	Svc   *promotions.Service
}

func NewPromotionsHandler(db *gorm.DB, c cache.Store) *PromotionsHandler {
	return &PromotionsHandler{DB: db, Cache: c, Svc: promotions.NewService(db)}
}

// List covers the oversight table and the per-state reports through
// the state query param (ACTIVE, INACTIVE, EXPIRED, DELETED).
func (h *PromotionsHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	key := cache.Key("admin-promotions", "list", c.Query("state"), c.Query("type"), c.Query("page"), c.Query("pageSize"))
	var cached respond.Page
	if cache.GetJSON(c.Request.Context(), h.Cache, key, &cached) {
		respond.OK(c, cached)
		return
	}

	res, err := promotions.NewRepo(h.DB).List(c.Request.Context(), promotions.ListParams{
		State:    c.Query("state"),
		Type:     c.Query("type"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	now := time.Now()
	rows := make([]gin.H, 0, len(res.Items))
	for _, p := range res.Items {
		rows = append(rows, promotionRow(p, now))
	}

	out := respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size}
	cache.SetJSON(c.Request.Context(), h.Cache, key, out, promotionListTTL)
	respond.OK(c, out)
}

func (h *PromotionsHandler) Detail(c *gin.Context) {
	p, err := promotions.NewRepo(h.DB).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy khuyến mãi."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	respond.OK(c, promotionRow(p, time.Now()))
}

type promotionRequest struct {
	Code           string    `json:"code" binding:"required,min=3,max=32"`
	Name           string    `json:"name" binding:"required,max=128"`
	Description    string    `json:"description" binding:"max=512"`
	DiscountType   string    `json:"discountType" binding:"required,oneof=PERCENT FIXED"`
	DiscountValue  int64     `json:"discountValue" binding:"required,gt=0"`
	MaxDiscount    *int64    `json:"maxDiscount" binding:"omitempty,gt=0"`
	MinOrderAmount int64     `json:"minOrderAmount" binding:"gte=0"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	EndsAt         time.Time `json:"endsAt" binding:"required"`
	UsageLimit     *int      `json:"usageLimit" binding:"omitempty,gt=0"`
}

func (r promotionRequest) terms() promotions.Terms {
	return promotions.Terms{
		Name:           r.Name,
		Description:    r.Description,
		DiscountType:   r.DiscountType,
		DiscountValue:  r.DiscountValue,
		MaxDiscount:    r.MaxDiscount,
		MinOrderAmount: r.MinOrderAmount,
		StartsAt:       r.StartsAt,
		EndsAt:         r.EndsAt,
		UsageLimit:     r.UsageLimit,
	}
}

func (h *PromotionsHandler) Create(c *gin.Context) {
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	p, err := h.Svc.Create(c.Request.Context(), promotions.CreateInput{
		Code:        req.Code,
		Terms:       req.terms(),
		ActorUserID: u.ID,
	})
	if err != nil {
		h.failPromotion(c, err)
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("admin-promotions"))
	respond.Created(c, promotionRow(p, time.Now()))
}

func (h *PromotionsHandler) Update(c *gin.Context) {
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	p, err := h.Svc.Update(c.Request.Context(), promotions.UpdateInput{
		PromotionID: c.Param("id"),
		Terms:       req.terms(),
	})
	if err != nil {
		h.failPromotion(c, err)
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("admin-promotions"))
	respond.OK(c, promotionRow(p, time.Now()))
}

// SetEnabled backs the activate and deactivate routes.
func (h *PromotionsHandler) SetEnabled(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.Svc.SetEnabled(c.Request.Context(), c.Param("id"), enabled)
		if err != nil {
			h.failPromotion(c, err)
			return
		}

		h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("admin-promotions"))
		respond.OK(c, promotionRow(p, time.Now()))
	}
}

func (h *PromotionsHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.failPromotion(c, err)
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("admin-promotions"))
	respond.Msg(c, "Đã xóa khuyến mãi.")
}

func (h *PromotionsHandler) failPromotion(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy khuyến mãi."))
	case errors.Is(err, promotions.ErrCodeTaken):
		middleware.Fail(c, apperr.ConflictErr("Mã khuyến mãi đã tồn tại."))
	case errors.Is(err, promotions.ErrInvalidDiscount):
		middleware.Fail(c, apperr.InvalidErr("Giá trị giảm giá không hợp lệ.", nil))
	case errors.Is(err, promotions.ErrInvalidSchedule):
		middleware.Fail(c, apperr.InvalidErr("Thời gian khuyến mãi không hợp lệ.", nil))
	case errors.Is(err, promotions.ErrAlreadyEnabled), errors.Is(err, promotions.ErrAlreadyDisabled):
		middleware.Fail(c, apperr.ConflictErr("Khuyến mãi đã ở trạng thái này."))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}

func promotionRow(p promotions.Promotion, now time.Time) gin.H {
	state := promotions.StateOf(p, now)

	discount := view.FormatVND(p.DiscountValue)
	if p.DiscountType == promotions.DiscountPercent {
		discount = strconv.FormatInt(p.DiscountValue, 10) + "%"
	}

	return gin.H{
		"id":              p.ID,
		"code":            p.Code,
		"name":            p.Name,
		"description":     ptrStr(p.Description),
		"discountType":    p.DiscountType,
		"discountValue":   p.DiscountValue,
		"discountDisplay": discount,
		"maxDiscount":     p.MaxDiscount,
		"minOrderAmount":  p.MinOrderAmount,
		"startsAt":        view.DisplayTime(p.StartsAt),
		"endsAt":          view.DisplayTime(p.EndsAt),
		"state":           state,
		"stateBadge":      view.PromotionBadge(state),
		"usageLimit":      p.UsageLimit,
		"usedCount":       p.UsedCount,
		"createdAt":       view.DisplayTime(p.CreatedAt),
	}
}
