package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/users"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

type UsersHandler struct {
	DB  *gorm.DB
	Svc *users.Service
}

func NewUsersHandler(db *gorm.DB) *UsersHandler {
	return &UsersHandler{DB: db, Svc: users.NewService(db)}
}

// List returns the admin user table, staff roles first.
func (h *UsersHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	res, err := users.NewRepo(h.DB).List(c.Request.Context(), users.ListParams{
		Role:     c.Query("role"),
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
	for _, u := range res.Items {
		rows = append(rows, userRow(u))
	}
	respond.OK(c, respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size})
}

type banRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

func (h *UsersHandler) Ban(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	actor, _ := middleware.CurrentUser(c)
	err := h.Svc.Ban(c.Request.Context(), users.BanInput{
		UserID:      c.Param("id"),
		ActorUserID: actor.ID,
		Reason:      req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy người dùng."))
		case errors.Is(err, users.ErrCannotBanAdmin):
			middleware.Fail(c, apperr.ForbiddenErr("Không thể cấm tài khoản quản trị."))
		case errors.Is(err, users.ErrAlreadyBanned):
			middleware.Fail(c, apperr.ConflictErr("Người dùng đã bị cấm trước đó."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.Msg(c, "Đã cấm người dùng.")
}

func (h *UsersHandler) Unban(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	err := h.Svc.Unban(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy người dùng."))
		case errors.Is(err, users.ErrNotBanned):
			middleware.Fail(c, apperr.ConflictErr("Người dùng không bị cấm."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.Msg(c, "Đã gỡ cấm người dùng.")
}

func userRow(u users.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"fullName":    ptrStr(u.FullName),
		"role":        u.Role,
		"status":      u.Status,
		"statusBadge": view.UserBadge(u.Status),
		"banReason":   ptrStr(u.BanReason),
		"bannedAt":    view.DisplayTimePtr(u.BannedAt),
		"createdAt":   view.DisplayTime(u.CreatedAt),
	}
}
