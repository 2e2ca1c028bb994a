package admin

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
	"vivumarket.vn/app/internal/modules/stores"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

const storeListTTL = time.Minute

type StoresHandler struct {
	DB    *gorm.DB
	Cache cache.Store
	Svc   *stores.Service
}

func NewStoresHandler(db *gorm.DB, c cache.Store) *StoresHandler {
	return &StoresHandler{DB: db, Cache: c, Svc: stores.NewService(db)}
}

func (h *StoresHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	key := cache.Key("admin-stores", "list", c.Query("status"), c.Query("q"), c.Query("page"), c.Query("pageSize"))
	var cached respond.Page
	if cache.GetJSON(c.Request.Context(), h.Cache, key, &cached) {
		respond.OK(c, cached)
		return
	}

	res, err := stores.NewRepo(h.DB).List(c.Request.Context(), stores.ListParams{
		Status:   c.Query("status"),
		Q:        c.Query("q"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]gin.H, 0, len(res.Items))
	for _, st := range res.Items {
		rows = append(rows, storeRow(st))
	}
	out := respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size}
	cache.SetJSON(c.Request.Context(), h.Cache, key, out, storeListTTL)
	respond.OK(c, out)
}

func (h *StoresHandler) Detail(c *gin.Context) {
	st, err := stores.NewRepo(h.DB).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy cửa hàng."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	row := storeRow(st)
	row["description"] = ptrStr(st.Description)
	row["statusReason"] = ptrStr(st.StatusReason)
	row["approvedAt"] = view.DisplayTimePtr(st.ApprovedAt)
	respond.OK(c, row)
}

type storeDecisionRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// StoreActions are the admin decisions exposed as routes.
var StoreActions = []string{"approve", "reject", "suspend", "reactivate"}

func (h *StoresHandler) Decide(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.decide(c, action)
	}
}

func (h *StoresHandler) decide(c *gin.Context, action string) {
	var req storeDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	st, err := h.Svc.Decide(c.Request.Context(), stores.DecisionInput{
		StoreID:     c.Param("id"),
		ActorUserID: u.ID,
		Action:      action,
		Reason:      req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy cửa hàng."))
		case errors.Is(err, stores.ErrInvalidTransition):
			middleware.Fail(c, apperr.ConflictErr("Trạng thái cửa hàng không cho phép thao tác này."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("admin-stores"))
	respond.OK(c, storeRow(st))
}

func storeRow(st stores.Store) gin.H {
	return gin.H{
		"id":          st.ID,
		"name":        st.Name,
		"slug":        st.Slug,
		"ownerUserId": st.OwnerUserID,
		"status":      st.Status,
		"statusBadge": view.StoreBadge(st.Status),
		"createdAt":   view.DisplayTime(st.CreatedAt),
	}
}
