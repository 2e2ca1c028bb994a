package stores

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Status   string
	Q        string // name search
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Store
	Total int64
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Store{})
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("status = ?", s)
	}
	if s := strings.TrimSpace(in.Q); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var rows []Store
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: rows, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Store, error) {
	var s Store
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return s, err
}

// GetByOwner returns the store owned by a user; store owners have at
// most one.
func (r *Repo) GetByOwner(ctx context.Context, userID string) (Store, error) {
	var s Store
	err := r.db.WithContext(ctx).First(&s, "owner_user_id = ?", userID).Error
	return s, err
}
