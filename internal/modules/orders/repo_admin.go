package orders

import (
	"context"
	"strings"
)

type AdminListParams struct {
	Q        string // order number or store id
	Status   string
	StoreID  string
	Page     int
	PageSize int
}

type AdminListResult struct {
	Items []Order
	Total int64
}

func (r *Repo) AdminList(ctx context.Context, in AdminListParams) (AdminListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 30
	}

	q := r.db.WithContext(ctx).Model(&Order{})
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("status = ?", s)
	}
	if s := strings.TrimSpace(in.Q); s != "" {
		q = q.Where("order_number LIKE ? OR store_id = ?", "%"+s+"%", s)
	}
	if s := strings.TrimSpace(in.StoreID); s != "" {
		q = q.Where("store_id = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return AdminListResult{}, err
	}

	var rows []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return AdminListResult{}, err
	}

	return AdminListResult{Items: rows, Total: total}, nil
}

func (r *Repo) AdminGetDetail(ctx context.Context, id string) (Order, []OrderItem, []OrderEvent, error) {
	o, items, err := r.GetWithItems(ctx, id)
	if err != nil {
		return Order{}, nil, nil, err
	}
	ev, err := r.ListEvents(ctx, id)
	if err != nil {
		return Order{}, nil, nil, err
	}
	return o, items, ev, nil
}
