package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/stores"
	"vivumarket.vn/app/internal/modules/users"
	"vivumarket.vn/app/internal/shared/apperr"
)

type AuthHandler struct {
	DB         *gorm.DB
	SessionCfg middleware.SessionCfg
}

func NewAuthHandler(db *gorm.DB, sessCfg middleware.SessionCfg) *AuthHandler {
	return &AuthHandler{DB: db, SessionCfg: sessCfg}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Thông tin đăng nhập không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	svc := users.NewService(h.DB)
	u, err := svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrBanned):
			middleware.Fail(c, apperr.ForbiddenErr("Tài khoản của bạn đã bị khóa."))
		case errors.Is(err, users.ErrInvalidCredentials):
			middleware.Fail(c, apperr.UnauthorizedErr("Email hoặc mật khẩu không đúng."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	sess, err := middleware.CreateSession(h.SessionCfg, u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.SetCookie(h.SessionCfg.CookieName, sess.ID, int(h.SessionCfg.TTL.Seconds()), "/", "", h.SessionCfg.Secure, true)

	respond.OK(c, h.profile(c, u))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(h.SessionCfg.CookieName); err == nil && sid != "" {
		_ = middleware.DeleteSession(h.SessionCfg, sid)
	}
	c.SetCookie(h.SessionCfg.CookieName, "", -1, "/", "", h.SessionCfg.Secure, true)
	respond.Msg(c, "Đã đăng xuất.")
}

func (h *AuthHandler) Me(c *gin.Context) {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Vui lòng đăng nhập để tiếp tục."))
		return
	}

	repo := users.NewRepo(h.DB)
	u, err := repo.Get(c.Request.Context(), cu.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	respond.OK(c, h.profile(c, u))
}

func (h *AuthHandler) profile(c *gin.Context, u users.User) gin.H {
	out := gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"fullName": ptrStr(u.FullName),
		"role":     u.Role,
	}

	// a merchant's dashboard needs its store id up front
	if u.Role == users.RoleStoreOwner {
		if st, err := stores.NewRepo(h.DB).GetByOwner(c.Request.Context(), u.ID); err == nil {
			out["storeId"] = st.ID
			out["storeStatus"] = st.Status
		}
	}
	return out
}
