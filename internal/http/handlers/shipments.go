package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/shipping"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

type ShipmentsHandler struct {
	DB      *gorm.DB
	Carrier *shipping.CarrierClient
	Log     *slog.Logger
}

func NewShipmentsHandler(db *gorm.DB, carrier *shipping.CarrierClient, l *slog.Logger) *ShipmentsHandler {
	return &ShipmentsHandler{DB: db, Carrier: carrier, Log: l}
}

// ListByStore returns the store's shipments, newest first.
func (h *ShipmentsHandler) ListByStore(c *gin.Context) {
	oh := OrdersHandler{DB: h.DB}
	st, ok := oh.requireStore(c)
	if !ok {
		return
	}

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("pageSize"), 20)

	rows, total, err := shipping.NewRepo(h.DB).ListByStore(c.Request.Context(), shipping.ListByStoreParams{
		StoreID:  st.ID,
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, s := range rows {
		out = append(out, gin.H{
			"orderId":            s.OrderID,
			"status":             s.Status,
			"carrierRef":         ptrStr(s.CarrierRef),
			"expectedDeliveryAt": view.DisplayTimePtr(s.ExpectedDeliveryAt),
			"updatedAt":          view.DisplayTime(s.UpdatedAt),
		})
	}
	respond.OK(c, respond.Page{Items: out, Total: total, Page: page, PageSize: pageSize})
}

// GetByOrder returns the delivery timeline and normalized history for
// an order. The local shipment record is authoritative; when absent we
// ask the carrier directly. Either source may legitimately have
// nothing, which is a success with empty data, not an error.
func (h *ShipmentsHandler) GetByOrder(c *gin.Context) {
	orderID := c.Param("orderID")

	repo := shipping.NewRepo(h.DB)
	sh, err := repo.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if sh == nil && h.Carrier != nil {
		doc, cerr := h.Carrier.GetByOrder(c.Request.Context(), orderID)
		if cerr != nil {
			middleware.Fail(c, apperr.Wrap(cerr))
			return
		}
		if doc != nil {
			up, uerr := repo.Upsert(c.Request.Context(), *doc, "")
			if uerr != nil {
				// serve the carrier data even if persisting it failed
				h.Log.Warn("shipment_upsert_failed", "order_id", orderID, "err", uerr)
				up = shipping.Shipment{
					OrderID: doc.Order.ID,
					Status:  doc.Status,
					History: datatypes.JSON(doc.History),
				}
			}
			sh = &up
		}
	}

	if sh == nil {
		respond.OK(c, gin.H{
			"shipment": nil,
			"timeline": []shipping.TimelineStep{},
			"history":  []shipping.HistoryEntry{},
		})
		return
	}

	respond.OK(c, gin.H{
		"shipment": gin.H{
			"orderId":            sh.OrderID,
			"status":             sh.Status,
			"carrierRef":         ptrStr(sh.CarrierRef),
			"expectedDeliveryAt": view.DisplayTimePtr(sh.ExpectedDeliveryAt),
		},
		"timeline": shipping.Timeline(sh),
		"history":  shipping.NormalizeHistory(sh.History),
	})
}
