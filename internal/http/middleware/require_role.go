package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/users"
)

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, respond.Envelope{
			Success:   false,
			Error:     "Vui lòng đăng nhập để tiếp tục.",
			RequestID: GetRequestID(c),
		})
	}
}

// RequireAdmin allows only platform administrators.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(users.RoleAdmin)
}

// RequireStoreOwner allows merchants and administrators. Ownership of
// the specific store in the URL is checked per handler.
func RequireStoreOwner() gin.HandlerFunc {
	return requireRole(users.RoleStoreOwner, users.RoleAdmin)
}

func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, respond.Envelope{
				Success:   false,
				Error:     "Vui lòng đăng nhập để tiếp tục.",
				RequestID: GetRequestID(c),
			})
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, respond.Envelope{
			Success:   false,
			Error:     "Bạn không có quyền truy cập chức năng này.",
			RequestID: GetRequestID(c),
		})
	}
}
