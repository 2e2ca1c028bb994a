package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/shared/apperr"
)

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler converts the last collected error into the standard
// error envelope. Handlers push errors via Fail and return.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		rid := GetRequestID(c)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		body := respond.Envelope{
			Success:   false,
			Error:     apperr.PublicMessage(err),
			RequestID: rid,
		}
		if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
			body.Fields = ae.Fields
		}
		c.AbortWithStatusJSON(status, body)
	}
}
