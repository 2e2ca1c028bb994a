package users

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Q        string // email or name search
	Role     string
	Status   string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []User
	Total int64
}

// List returns users for the admin table, sorted by role priority then
// recency. Sorting happens on the page in hand; role priority is a
// display rule, not a schema column.
func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&User{})
	if s := strings.TrimSpace(in.Q); s != "" {
		q = q.Where("email LIKE ? OR full_name LIKE ?", "%"+s+"%", "%"+s+"%")
	}
	if s := strings.TrimSpace(in.Role); s != "" {
		q = q.Where("role = ?", s)
	}
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var rows []User
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return ListResult{}, err
	}

	SortByRolePriority(rows)
	return ListResult{Items: rows, Total: total}, nil
}

// SortByRolePriority is a stable sort, so equal-priority users keep
// their recency order.
func SortByRolePriority(rows []User) {
	sort.SliceStable(rows, func(i, j int) bool {
		return RolePriority(rows[i].Role) < RolePriority(rows[j].Role)
	})
}

func (r *Repo) Get(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, err
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	return u, err
}
