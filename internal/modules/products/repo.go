package products

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Status   string
	StoreID  string
	Q        string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Product
	Total int64
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 24
	}

	q := r.db.WithContext(ctx).Model(&Product{})
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("status = ?", s)
	}
	if s := strings.TrimSpace(in.StoreID); s != "" {
		q = q.Where("store_id = ?", s)
	}
	if s := strings.TrimSpace(in.Q); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var rows []Product
	if err := q.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: rows, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		First(&p, "id = ?", id).Error
	return p, err
}

func (r *Repo) GetVariant(ctx context.Context, id string) (ProductVariant, error) {
	var v ProductVariant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return v, err
}

func (r *Repo) AddImage(ctx context.Context, img *ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}
