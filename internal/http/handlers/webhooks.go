package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/cache"
	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/orders"
	"vivumarket.vn/app/internal/modules/shipping"
	"vivumarket.vn/app/internal/shared/apperr"
)

// carrier pushes shipment state here; auth is a shared token header
const webhookTokenHeader = "X-Webhook-Token"

type WebhooksHandler struct {
	DB       *gorm.DB
	Cache    cache.Store
	Log      *slog.Logger
	Token    string
	OrderSvc *orders.Service
}

func NewWebhooksHandler(db *gorm.DB, c cache.Store, l *slog.Logger, token string) *WebhooksHandler {
	return &WebhooksHandler{DB: db, Cache: c, Log: l, Token: token, OrderSvc: orders.NewService(db)}
}

func (h *WebhooksHandler) CarrierUpdate(c *gin.Context) {
	if h.Token == "" || subtle.ConstantTimeCompare([]byte(c.GetHeader(webhookTokenHeader)), []byte(h.Token)) != 1 {
		middleware.Fail(c, apperr.UnauthorizedErr("Webhook không được xác thực."))
		return
	}

	var doc shipping.ShipmentDocument
	if err := json.NewDecoder(c.Request.Body).Decode(&doc); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Payload không hợp lệ.", nil))
		return
	}
	if doc.Order.ID == "" {
		middleware.Fail(c, apperr.InvalidErr("Thiếu mã đơn hàng.", nil))
		return
	}

	var o orders.Order
	if err := h.DB.WithContext(c.Request.Context()).First(&o, "id = ?", doc.Order.ID).Error; err != nil {
		// unknown orders are acknowledged so the carrier stops retrying
		h.Log.Warn("carrier_webhook_unknown_order", "order_id", doc.Order.ID)
		respond.Msg(c, "Đã ghi nhận.")
		return
	}

	sh, err := shipping.NewRepo(h.DB).Upsert(c.Request.Context(), doc, o.StoreID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// a delivered shipment moves the order forward on its own
	if sh.Status == shipping.StatusDelivered && o.Status == orders.StatusShipping {
		if _, terr := h.OrderSvc.Transition(c.Request.Context(), orders.TransitionInput{
			OrderID:     o.ID,
			ActorUserID: "carrier-webhook",
			Action:      "deliver",
			Note:        "carrier confirmed delivery",
		}); terr != nil {
			h.Log.Warn("carrier_webhook_transition_failed", "order_id", o.ID, "err", terr)
		}
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), cache.Key("store-orders", o.StoreID))

	respond.Msg(c, "Đã ghi nhận.")
}
