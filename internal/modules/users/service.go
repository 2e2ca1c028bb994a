package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyBanned      = errors.New("user already banned")
	ErrNotBanned          = errors.New("user is not banned")
	ErrCannotBanAdmin     = errors.New("admin accounts cannot be banned")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBanned             = errors.New("account is banned")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type BanInput struct {
	UserID      string
	ActorUserID string
	Reason      string
}

func (s *Service) Ban(ctx context.Context, in BanInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", in.UserID).Error; err != nil {
			return err
		}

		if u.Role == RoleAdmin {
			return ErrCannotBanAdmin
		}
		if u.Status == StatusBanned {
			return ErrAlreadyBanned
		}

		now := time.Now()
		meta, _ := json.Marshal(map[string]string{
			"actor":  in.ActorUserID,
			"source": "admin_dashboard",
		})

		updates := map[string]any{
			"status":     StatusBanned,
			"banned_at":  now,
			"ban_meta":   datatypes.JSON(meta),
			"updated_at": now,
		}
		if reason := strings.TrimSpace(in.Reason); reason != "" {
			updates["ban_reason"] = reason
		}

		return tx.WithContext(ctx).
			Model(&User{}).
			Where("id = ? AND status = ?", u.ID, StatusActive).
			Updates(updates).Error
	})
}

func (s *Service) Unban(ctx context.Context, userID, actorUserID string) error {
	_ = actorUserID // recorded in order events only; kept for symmetry

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", userID).Error; err != nil {
			return err
		}

		if u.Status != StatusBanned {
			return ErrNotBanned
		}

		return tx.WithContext(ctx).
			Model(&User{}).
			Where("id = ? AND status = ?", u.ID, StatusBanned).
			Updates(map[string]any{
				"status":     StatusActive,
				"ban_reason": nil,
				"banned_at":  nil,
				"updated_at": time.Now(),
			}).Error
	})
}

// Authenticate checks credentials for dashboard login. Banned accounts
// fail with ErrBanned so the login form can say why.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	if u.Status == StatusBanned {
		return User{}, ErrBanned
	}
	return u, nil
}

func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}
