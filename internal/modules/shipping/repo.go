package shipping

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// GetByOrder returns (nil, nil) when the order has no shipment yet;
// only PENDING orders legitimately lack one.
func (r *Repo) GetByOrder(ctx context.Context, orderID string) (*Shipment, error) {
	orderID = strings.ToLower(strings.TrimSpace(orderID))

	var s Shipment
	err := r.db.WithContext(ctx).First(&s, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// newForOrder is the shipment a confirmed order starts with, before the
// carrier has reported anything.
func newForOrder(orderID, storeID string) Shipment {
	now := time.Now()
	return Shipment{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		StoreID:   storeID,
		Status:    StatusReadyToPick,
		History:   datatypes.JSON([]byte("[]")),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateForOrder registers the shipment when the store confirms an
// order. If the carrier already pushed one for this order, that row
// stands and this is a no-op.
func (r *Repo) CreateForOrder(ctx context.Context, orderID, storeID string) error {
	orderID = strings.ToLower(strings.TrimSpace(orderID))
	s := newForOrder(orderID, storeID)
	err := r.db.WithContext(ctx).Create(&s).Error
	if err != nil && isDup(err) {
		return nil
	}
	return err
}

type ListByStoreParams struct {
	StoreID  string
	Status   string
	Page     int
	PageSize int
}

func (r *Repo) ListByStore(ctx context.Context, in ListByStoreParams) ([]Shipment, int64, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Shipment{}).Where("store_id = ?", in.StoreID)
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Shipment
	err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error
	return rows, total, err
}

// Upsert stores a carrier document for an order, replacing status and
// history wholesale; the carrier is the source of truth for both.
func (r *Repo) Upsert(ctx context.Context, doc ShipmentDocument, storeID string) (Shipment, error) {
	orderID := strings.ToLower(strings.TrimSpace(doc.Order.ID))
	if orderID == "" {
		return Shipment{}, errors.New("shipping: document has no order reference")
	}

	history := datatypes.JSON(doc.History)
	if len(history) == 0 {
		history = datatypes.JSON([]byte("[]"))
	}

	var expected *time.Time
	if doc.ExpectedDeliveryDate != "" {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, doc.ExpectedDeliveryDate); err == nil {
				expected = &t
				break
			}
		}
	}

	status := CanonicalStatus(doc.Status)
	now := time.Now()
	var s Shipment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).First(&s, "order_id = ?", orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s = Shipment{
				ID:                 uuid.NewString(),
				OrderID:            orderID,
				StoreID:            storeID,
				Status:             status,
				History:            history,
				ExpectedDeliveryAt: expected,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if doc.ID != "" {
				ref := doc.ID
				s.CarrierRef = &ref
			}
			cerr := tx.WithContext(ctx).Create(&s).Error
			if cerr == nil || !isDup(cerr) {
				return cerr
			}
			// a concurrent webhook won the insert on ux_shipments_order_id;
			// fall through and update its row instead
			if err := tx.WithContext(ctx).First(&s, "order_id = ?", orderID).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updates := map[string]any{
			"status":     status,
			"history":    history,
			"updated_at": now,
		}
		if expected != nil {
			updates["expected_delivery_at"] = expected
		}
		if err := tx.WithContext(ctx).Model(&Shipment{}).Where("id = ?", s.ID).Updates(updates).Error; err != nil {
			return err
		}
		s.Status = status
		s.History = history
		s.UpdatedAt = now
		return nil
	})
	return s, err
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
