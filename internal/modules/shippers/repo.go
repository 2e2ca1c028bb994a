package shippers

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"vivumarket.vn/app/internal/modules/users"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Q        string // matches name, email or phone
	Status   string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Shipper
	Total int64
}

// List pages over profiles, then loads the matching accounts in one
// extra query; couriers are few enough that two round trips beat a
// join gorm cannot scan cleanly.
func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).
		Model(&Profile{}).
		Joins("JOIN users ON users.id = shipper_profiles.user_id")
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("shipper_profiles.status = ?", s)
	}
	if s := strings.TrimSpace(in.Q); s != "" {
		like := "%" + s + "%"
		q = q.Where("users.full_name LIKE ? OR users.email LIKE ? OR users.phone LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var profiles []Profile
	if err := q.
		Select("shipper_profiles.*").
		Order("shipper_profiles.created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&profiles).Error; err != nil {
		return ListResult{}, err
	}
	if len(profiles) == 0 {
		return ListResult{Total: total}, nil
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	var accounts []users.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return ListResult{}, err
	}
	byID := make(map[string]users.User, len(accounts))
	for _, u := range accounts {
		byID[u.ID] = u
	}

	items := make([]Shipper, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, Shipper{User: byID[p.UserID], Profile: p})
	}
	return ListResult{Items: items, Total: total}, nil
}

// Get returns (nil, nil) when no courier exists for the id.
func (r *Repo) Get(ctx context.Context, userID string) (*Shipper, error) {
	var prof Profile
	err := r.db.WithContext(ctx).First(&prof, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var u users.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &Shipper{User: u, Profile: prof}, nil
}
