package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/modules/products"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/internal/storage"
	"vivumarket.vn/app/pkg/view"
)

const maxImageSize = 5 << 20 // 5 MiB

type ProductsHandler struct {
	DB      *gorm.DB
	Storage storage.Storage
}

func NewProductsHandler(db *gorm.DB, st storage.Storage) *ProductsHandler {
	return &ProductsHandler{DB: db, Storage: st}
}

func (h *ProductsHandler) List(c *gin.Context) {
	oh := OrdersHandler{DB: h.DB}
	st, ok := oh.requireStore(c)
	if !ok {
		return
	}

	res, err := products.NewRepo(h.DB).List(c.Request.Context(), products.ListParams{
		StoreID:  st.ID,
		Status:   c.Query("status"),
		Q:        c.Query("q"),
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("pageSize"), 20),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]gin.H, 0, len(res.Items))
	for _, p := range res.Items {
		rows = append(rows, productRow(p))
	}
	respond.OK(c, respond.Page{
		Items:    rows,
		Total:    res.Total,
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("pageSize"), 20),
	})
}

func (h *ProductsHandler) Detail(c *gin.Context) {
	oh := OrdersHandler{DB: h.DB}
	st, ok := oh.requireStore(c)
	if !ok {
		return
	}

	p, err := products.NewRepo(h.DB).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy sản phẩm."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if p.StoreID != st.ID {
		middleware.Fail(c, apperr.ForbiddenErr("Sản phẩm thuộc cửa hàng khác."))
		return
	}

	images := make([]gin.H, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, gin.H{"id": img.ID, "url": img.URL, "position": img.Position})
	}
	variants := make([]gin.H, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, gin.H{
			"id":      v.ID,
			"sku":     v.SKU,
			"price":   v.Price,
			"display": view.FormatVND(v.Price),
			"stock":   v.Stock,
			"status":  v.Status,
		})
	}

	row := productRow(p)
	row["images"] = images
	row["variants"] = variants
	respond.OK(c, row)
}

// UploadImage stores a product photo and attaches it to the product.
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	oh := OrdersHandler{DB: h.DB}
	st, ok := oh.requireStore(c)
	if !ok {
		return
	}

	repo := products.NewRepo(h.DB)
	p, err := repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy sản phẩm."))
		return
	}
	if p.StoreID != st.ID {
		middleware.Fail(c, apperr.ForbiddenErr("Sản phẩm thuộc cửa hàng khác."))
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Thiếu tệp ảnh.", nil))
		return
	}
	if fh.Size > maxImageSize {
		middleware.Fail(c, apperr.InvalidErr("Ảnh vượt quá dung lượng cho phép (5MB).", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	put, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
		Folder:      "products",
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	img := products.ProductImage{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		URL:       put.URL,
		Position:  len(p.Images),
		CreatedAt: time.Now(),
	}
	if err := repo.AddImage(c.Request.Context(), &img); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	respond.Created(c, gin.H{"id": img.ID, "url": img.URL})
}

func productRow(p products.Product) gin.H {
	return gin.H{
		"id":        p.ID,
		"name":      p.Name,
		"status":    p.Status,
		"createdAt": view.DisplayTime(p.CreatedAt),
	}
}
