package shippers

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vivumarket.vn/app/internal/modules/users"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrAlreadyActive   = errors.New("shipper already active")
	ErrAlreadyInactive = errors.New("shipper already inactive")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type CreateInput struct {
	Email        string
	Password     string
	FullName     string
	Phone        string
	VehiclePlate string
	WorkArea     string
	AvatarURL    *string
}

// Create opens a courier account: a SHIPPER-role user plus its profile,
// in one transaction so a half-created courier never exists.
func (s *Service) Create(ctx context.Context, in CreateInput) (Shipper, error) {
	hash, err := users.HashPassword(in.Password)
	if err != nil {
		return Shipper{}, err
	}

	now := time.Now()
	fullName := strings.TrimSpace(in.FullName)
	u := users.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FullName:     &fullName,
		Role:         users.RoleShipper,
		Status:       users.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p := strings.TrimSpace(in.Phone); p != "" {
		u.Phone = &p
	}

	prof := Profile{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		AvatarURL: in.AvatarURL,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if v := strings.TrimSpace(in.VehiclePlate); v != "" {
		prof.VehiclePlate = &v
	}
	if a := strings.TrimSpace(in.WorkArea); a != "" {
		prof.WorkArea = &a
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(&u).Error; err != nil {
			if isDup(err) {
				return ErrEmailTaken
			}
			return err
		}
		return tx.WithContext(ctx).Create(&prof).Error
	})
	if err != nil {
		return Shipper{}, err
	}
	return Shipper{User: u, Profile: prof}, nil
}

type UpdateInput struct {
	UserID       string
	FullName     string
	Phone        string
	VehiclePlate string
	WorkArea     string
}

func (s *Service) UpdateInfo(ctx context.Context, in UpdateInput) (Shipper, error) {
	var out Shipper
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prof Profile
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&prof, "user_id = ?", in.UserID).Error; err != nil {
			return err
		}
		var u users.User
		if err := tx.WithContext(ctx).First(&u, "id = ?", in.UserID).Error; err != nil {
			return err
		}

		now := time.Now()
		userUpdates := map[string]any{"updated_at": now}
		if v := strings.TrimSpace(in.FullName); v != "" {
			userUpdates["full_name"] = v
		}
		if v := strings.TrimSpace(in.Phone); v != "" {
			userUpdates["phone"] = v
		}
		if err := tx.WithContext(ctx).
			Model(&users.User{}).
			Where("id = ?", u.ID).
			Updates(userUpdates).Error; err != nil {
			return err
		}

		profUpdates := map[string]any{"updated_at": now}
		if v := strings.TrimSpace(in.VehiclePlate); v != "" {
			profUpdates["vehicle_plate"] = v
		}
		if v := strings.TrimSpace(in.WorkArea); v != "" {
			profUpdates["work_area"] = v
		}
		if err := tx.WithContext(ctx).
			Model(&Profile{}).
			Where("id = ?", prof.ID).
			Updates(profUpdates).Error; err != nil {
			return err
		}

		return loadShipper(tx, ctx, in.UserID, &out)
	})
	return out, err
}

// SetStatus flips a courier on or off duty.
func (s *Service) SetStatus(ctx context.Context, userID, status string) (Shipper, error) {
	var out Shipper
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prof Profile
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&prof, "user_id = ?", userID).Error; err != nil {
			return err
		}

		if prof.Status == status {
			if status == StatusActive {
				return ErrAlreadyActive
			}
			return ErrAlreadyInactive
		}

		now := time.Now()
		if err := tx.WithContext(ctx).
			Model(&Profile{}).
			Where("id = ? AND status = ?", prof.ID, prof.Status).
			Updates(map[string]any{"status": status, "updated_at": now}).Error; err != nil {
			return err
		}

		return loadShipper(tx, ctx, userID, &out)
	})
	return out, err
}

const tempPasswordChars = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"
const tempPasswordLen = 12

// ResetPassword replaces the courier's password with a generated one
// and returns it in clear exactly once, for the admin to hand over.
func (s *Service) ResetPassword(ctx context.Context, userID string) (string, error) {
	plain, err := genTempPassword()
	if err != nil {
		return "", err
	}
	hash, err := users.HashPassword(plain)
	if err != nil {
		return "", err
	}

	res := s.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ? AND role = ?", userID, users.RoleShipper).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now()})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return plain, nil
}

// genTempPassword draws from an unambiguous charset (no 0/O, 1/l/I) so
// the password survives being read out over the phone.
func genTempPassword() (string, error) {
	b := make([]byte, tempPasswordLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = tempPasswordChars[int(b[i])%len(tempPasswordChars)]
	}
	return string(b), nil
}

type Statistics struct {
	Total    int64
	Active   int64
	Inactive int64
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	var st Statistics
	rows := []struct {
		Status string
		N      int64
	}{}
	err := s.db.WithContext(ctx).
		Model(&Profile{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return Statistics{}, err
	}
	for _, r := range rows {
		st.Total += r.N
		switch r.Status {
		case StatusActive:
			st.Active = r.N
		case StatusInactive:
			st.Inactive = r.N
		}
	}
	return st, nil
}

func loadShipper(tx *gorm.DB, ctx context.Context, userID string, out *Shipper) error {
	if err := tx.WithContext(ctx).First(&out.User, "id = ?", userID).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).First(&out.Profile, "user_id = ?", userID).Error
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
