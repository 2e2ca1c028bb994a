package revenue

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Type     string // optional
	From     *time.Time
	To       *time.Time
	StoreID  string // optional
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Record
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

	q := r.baseQuery(ctx, in.Type, in.From, in.To, in.StoreID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var rows []Record
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: rows, Total: total}, nil
}

// SummaryRow is the per-type aggregate for the statistics header cards.
type SummaryRow struct {
	RevenueType string `json:"revenueType"`
	Total       int64  `json:"total"`
	Count       int64  `json:"count"`
}

// Summary aggregates per revenue type. NetIncome subtracts the
// discount-loss totals from the income totals.
type Summary struct {
	Rows      []SummaryRow `json:"rows"`
	NetIncome int64        `json:"netIncome"`
}

func (r *Repo) Summary(ctx context.Context, from, to *time.Time) (Summary, error) {
	var rows []SummaryRow
	err := r.baseQuery(ctx, "", from, to, "").
		Select("revenue_type, SUM(amount) AS total, COUNT(*) AS count").
		Group("revenue_type").
		Order("revenue_type ASC").
		Scan(&rows).Error
	if err != nil {
		return Summary{}, err
	}

	var net int64
	for _, row := range rows {
		if IsLoss(row.RevenueType) {
			net -= row.Total
		} else {
			net += row.Total
		}
	}
	return Summary{Rows: rows, NetIncome: net}, nil
}

// ChartBucket is one month of the revenue chart.
type ChartBucket struct {
	Month  string `json:"month"` // "2025-01"
	Income int64  `json:"income"`
	Loss   int64  `json:"loss"`
}

func (r *Repo) MonthlyChart(ctx context.Context, year int) ([]ChartBucket, error) {
	type row struct {
		Month       string
		RevenueType string
		Total       int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, revenue_type, SUM(amount) AS total").
		Where("YEAR(created_at) = ?", year).
		Group("month, revenue_type").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*ChartBucket, 12)
	var order []string
	for _, rw := range rows {
		b, ok := byMonth[rw.Month]
		if !ok {
			b = &ChartBucket{Month: rw.Month}
			byMonth[rw.Month] = b
			order = append(order, rw.Month)
		}
		if IsLoss(rw.RevenueType) {
			b.Loss += rw.Total
		} else {
			b.Income += rw.Total
		}
	}

	out := make([]ChartBucket, 0, len(order))
	for _, m := range order {
		out = append(out, *byMonth[m])
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Repo) baseQuery(ctx context.Context, typ string, from, to *time.Time, storeID string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Record{})
	if t := strings.TrimSpace(typ); t != "" {
		q = q.Where("revenue_type = ?", t)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	if s := strings.TrimSpace(storeID); s != "" {
		q = q.Where("store_id = ?", s)
	}
	return q
}
