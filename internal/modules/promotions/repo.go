package promotions

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	State    string // ACTIVE|INACTIVE|EXPIRED|DELETED, empty for all live rows
	Type     string // PERCENT|FIXED
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Promotion
	Total int64
}

// List filters by derived state in SQL so the reports page through the
// database, not through memory. The deleted report is the only one
// that lifts the soft-delete scope.
func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	now := time.Now()
	q := r.db.WithContext(ctx).Model(&Promotion{})
	switch strings.ToUpper(strings.TrimSpace(in.State)) {
	case StateActive:
		q = q.Where("enabled = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
			Where("usage_limit IS NULL OR used_count < usage_limit")
	case StateInactive:
		q = q.Where("ends_at >= ?", now).
			Where("enabled = ? OR starts_at > ? OR (usage_limit IS NOT NULL AND used_count >= usage_limit)", false, now)
	case StateExpired:
		q = q.Where("ends_at < ?", now)
	case StateDeleted:
		q = q.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if t := strings.TrimSpace(in.Type); t != "" {
		q = q.Where("discount_type = ?", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var rows []Promotion
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: rows, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Promotion, error) {
	var p Promotion
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}
