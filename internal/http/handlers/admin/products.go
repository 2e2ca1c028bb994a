package admin

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/products"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/pkg/view"
)

type ProductsHandler struct {
	DB  *gorm.DB
	Svc *products.Service
}

func NewProductsHandler(db *gorm.DB) *ProductsHandler {
	return &ProductsHandler{DB: db, Svc: products.NewService(db)}
}

func (h *ProductsHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	res, err := products.NewRepo(h.DB).List(c.Request.Context(), products.ListParams{
		Status:   c.Query("status"),
		StoreID:  c.Query("storeId"),
		Q:        c.Query("q"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]gin.H, 0, len(res.Items))
	for _, p := range res.Items {
		rows = append(rows, gin.H{
			"id":           p.ID,
			"storeId":      p.StoreID,
			"name":         p.Name,
			"status":       p.Status,
			"statusReason": ptrStr(p.StatusReason),
			"variantCount": len(p.Variants),
			"createdAt":    view.DisplayTime(p.CreatedAt),
		})
	}
	respond.OK(c, respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size})
}

type reviewRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// Review decides a pending product. Approval also activates its
// pending variants.
func (h *ProductsHandler) Review(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindReview(c)
		if !ok {
			return
		}

		u, _ := middleware.CurrentUser(c)
		err := h.Svc.ReviewProduct(c.Request.Context(), products.ReviewInput{
			ID:          c.Param("id"),
			ActorUserID: u.ID,
			Approve:     approve,
			Reason:      req.Reason,
		})
		if err != nil {
			h.failReview(c, err, "Không tìm thấy sản phẩm.")
			return
		}
		respond.Msg(c, "Đã cập nhật trạng thái sản phẩm.")
	}
}

func (h *ProductsHandler) ReviewVariant(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindReview(c)
		if !ok {
			return
		}

		u, _ := middleware.CurrentUser(c)
		err := h.Svc.ReviewVariant(c.Request.Context(), products.ReviewInput{
			ID:          c.Param("variantID"),
			ActorUserID: u.ID,
			Approve:     approve,
			Reason:      req.Reason,
		})
		if err != nil {
			h.failReview(c, err, "Không tìm thấy phân loại sản phẩm.")
			return
		}
		respond.Msg(c, "Đã cập nhật trạng thái phân loại.")
	}
}

func bindReview(c *gin.Context) (reviewRequest, bool) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return req, false
	}
	return req, true
}

func (h *ProductsHandler) failReview(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		middleware.Fail(c, apperr.NotFoundErr(notFoundMsg))
	case errors.Is(err, products.ErrNotReviewable):
		middleware.Fail(c, apperr.ConflictErr("Mục này không ở trạng thái chờ duyệt."))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
