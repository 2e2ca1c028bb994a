package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB returns the underlying database connection for direct queries.
func (r *Repo) DB() *gorm.DB { return r.db }

type ListByStoreParams struct {
	StoreID  string
	Page     int
	PageSize int
	Status   string // optional filter
	Q        string // order number search
}

type ListByStoreResult struct {
	Items []ListByStoreItem
	Total int64
}

type ListByStoreItem struct {
	Order     Order
	ItemCount int
}

func (r *Repo) ListByStore(ctx context.Context, in ListByStoreParams) (ListByStoreResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	status := strings.TrimSpace(in.Status)

	q := r.db.WithContext(ctx).Model(&Order{}).Where("store_id = ?", in.StoreID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if s := strings.TrimSpace(in.Q); s != "" {
		q = q.Where("order_number LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByStoreResult{}, err
	}

	var rows []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return ListByStoreResult{}, err
	}

	items := make([]ListByStoreItem, len(rows))
	for i, o := range rows {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderItem{}).Where("order_id = ?", o.ID).Count(&count).Error; err != nil {
			count = 0
		}
		items[i] = ListByStoreItem{Order: o, ItemCount: int(count)}
	}

	return ListByStoreResult{Items: items, Total: total}, nil
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

// GetForStore loads an order only when it belongs to the given store.
func (r *Repo) GetForStore(ctx context.Context, id, storeID string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (r *Repo) ListEvents(ctx context.Context, orderID string) ([]OrderEvent, error) {
	var ev []OrderEvent
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&ev, "order_id = ?", orderID).Error
	return ev, err
}
