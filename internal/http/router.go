package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/cache"
	"vivumarket.vn/app/internal/http/handlers"
	"vivumarket.vn/app/internal/http/handlers/admin"
	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/refunds"
	"vivumarket.vn/app/internal/modules/shippers"
	"vivumarket.vn/app/internal/modules/shipping"
	"vivumarket.vn/app/internal/modules/wallets"
	"vivumarket.vn/app/internal/storage"
)

// Config carries everything the router needs beyond the database.
type Config struct {
	SessionCookieName string
	SessionSecure     bool
	SessionTTL        time.Duration
	CarrierBaseURL    string
	WebhookToken      string
}

func NewRouter(l *slog.Logger, db *gorm.DB, cacheStore cache.Store, files storage.Storage, cfg Config) *gin.Engine {
	r := gin.New()

	sessCfg := middleware.SessionCfg{
		DB:         db,
		CookieName: cfg.SessionCookieName,
		Secure:     cfg.SessionSecure,
		TTL:        cfg.SessionTTL,
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l))
	r.Use(middleware.Recovery(l))
	r.Use(middleware.ErrorHandler(l))
	r.Use(middleware.SessionMiddleware(sessCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, respond.Envelope{Success: true, Message: "ok"})
	})

	var carrier *shipping.CarrierClient
	if cfg.CarrierBaseURL != "" {
		carrier = shipping.NewCarrierClient(cfg.CarrierBaseURL)
	}
	walletSvc := wallets.NewService(db, wallets.ManualProvider{})
	refundSvc := refunds.NewService(db)

	authH := handlers.NewAuthHandler(db, sessCfg)
	ordersH := handlers.NewOrdersHandler(db, cacheStore)
	shipmentsH := handlers.NewShipmentsHandler(db, carrier, l)
	dashboardH := handlers.NewDashboardHandler(db, cacheStore)
	productsH := handlers.NewProductsHandler(db, files)
	withdrawalsH := handlers.NewWithdrawalsHandler(db, walletSvc)
	refundsH := handlers.NewRefundsHandler(db, refundSvc)
	webhooksH := handlers.NewWebhooksHandler(db, cacheStore, l, cfg.WebhookToken)

	api := r.Group("/api/v1")

	// auth
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.GET("/auth/me", middleware.RequireAuth(), authH.Me)

	// buyer-facing
	api.GET("/shipments/order/:orderID", middleware.RequireAuth(), shipmentsH.GetByOrder)
	api.POST("/refunds", middleware.RequireAuth(), refundsH.Submit)

	// carrier push
	api.POST("/webhooks/carrier", webhooksH.CarrierUpdate)

	// store dashboard
	store := api.Group("/store/:storeID", middleware.RequireStoreOwner())
	{
		store.GET("/dashboard", dashboardH.Summary)
		store.GET("/orders", ordersH.List)
		store.GET("/orders/:id", ordersH.Detail)
		for _, act := range handlers.OrderActions {
			store.POST("/orders/:id/"+act, ordersH.Action(act))
		}
		store.GET("/shipments", shipmentsH.ListByStore)
		store.GET("/products", productsH.List)
		store.GET("/products/:id", productsH.Detail)
		store.POST("/products/:id/images", productsH.UploadImage)
		store.GET("/withdrawals", withdrawalsH.List)
		store.POST("/withdrawals", withdrawalsH.Request)
	}

	// admin dashboard
	adm := api.Group("/admin", middleware.RequireAdmin())
	{
		storesH := admin.NewStoresHandler(db, cacheStore)
		usersH := admin.NewUsersHandler(db)
		adminProductsH := admin.NewProductsHandler(db)
		adminOrdersH := admin.NewOrdersHandler(db)
		revenueH := admin.NewRevenueHandler(db, cacheStore)
		adminWithdrawalsH := admin.NewWithdrawalsHandler(db, walletSvc)
		adminRefundsH := admin.NewRefundsHandler(db, refundSvc)
		promotionsH := admin.NewPromotionsHandler(db, cacheStore)
		shippersH := admin.NewShippersHandler(db, files)

		adm.GET("/stores", storesH.List)
		adm.GET("/stores/:id", storesH.Detail)
		for _, act := range admin.StoreActions {
			adm.POST("/stores/:id/"+act, storesH.Decide(act))
		}

		adm.GET("/users", usersH.List)
		adm.POST("/users/:id/ban", usersH.Ban)
		adm.POST("/users/:id/unban", usersH.Unban)

		adm.GET("/products", adminProductsH.List)
		adm.POST("/products/:id/approve", adminProductsH.Review(true))
		adm.POST("/products/:id/reject", adminProductsH.Review(false))
		adm.POST("/variants/:variantID/approve", adminProductsH.ReviewVariant(true))
		adm.POST("/variants/:variantID/reject", adminProductsH.ReviewVariant(false))

		adm.GET("/orders", adminOrdersH.List)
		adm.GET("/orders/:id", adminOrdersH.Detail)

		adm.GET("/revenue", revenueH.List)
		adm.GET("/revenue/summary", revenueH.Summary)
		adm.GET("/revenue/chart", revenueH.Chart)

		adm.GET("/promotions", promotionsH.List)
		adm.GET("/promotions/:id", promotionsH.Detail)
		adm.POST("/promotions", promotionsH.Create)
		adm.PUT("/promotions/:id", promotionsH.Update)
		adm.DELETE("/promotions/:id", promotionsH.Delete)
		adm.PUT("/promotions/:id/activate", promotionsH.SetEnabled(true))
		adm.PUT("/promotions/:id/deactivate", promotionsH.SetEnabled(false))

		adm.GET("/shippers", shippersH.List)
		adm.GET("/shippers/:id", shippersH.Detail)
		adm.POST("/shippers", shippersH.Create)
		adm.PUT("/shippers/:id", shippersH.Update)
		adm.PUT("/shippers/:id/activate", shippersH.SetStatus(shippers.StatusActive))
		adm.PUT("/shippers/:id/deactivate", shippersH.SetStatus(shippers.StatusInactive))
		adm.POST("/shippers/:id/reset-password", shippersH.ResetPassword)
		adm.GET("/reports/shippers", shippersH.Statistics)

		adm.GET("/withdrawals", adminWithdrawalsH.List)
		adm.POST("/withdrawals/:id/approve", adminWithdrawalsH.Process(true))
		adm.POST("/withdrawals/:id/reject", adminWithdrawalsH.Process(false))

		adm.GET("/refunds", adminRefundsH.List)
		adm.POST("/refunds/:id/approve", adminRefundsH.Decide(true))
		adm.POST("/refunds/:id/reject", adminRefundsH.Decide(false))
	}

	return r
}
