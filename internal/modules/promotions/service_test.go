package promotions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func ptrInt64(v int64) *int64 { return &v }
func ptrInt(v int) *int       { return &v }

func TestValidateTerms(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	valid := Terms{
		Name:          "Sale tháng 9",
		DiscountType:  DiscountPercent,
		DiscountValue: 10,
		MaxDiscount:   ptrInt64(50000),
		StartsAt:      start,
		EndsAt:        end,
	}
	assert.NoError(t, ValidateTerms(valid))

	cases := map[string]struct {
		mutate func(*Terms)
		want   error
	}{
		"percent over 100": {
			mutate: func(tm *Terms) { tm.DiscountValue = 101 },
			want:   ErrInvalidDiscount,
		},
		"percent zero": {
			mutate: func(tm *Terms) { tm.DiscountValue = 0 },
			want:   ErrInvalidDiscount,
		},
		"fixed with ceiling": {
			mutate: func(tm *Terms) { tm.DiscountType = DiscountFixed; tm.DiscountValue = 20000 },
			want:   ErrInvalidDiscount,
		},
		"unknown type": {
			mutate: func(tm *Terms) { tm.DiscountType = "BOGO" },
			want:   ErrInvalidDiscount,
		},
		"negative min order": {
			mutate: func(tm *Terms) { tm.MinOrderAmount = -1 },
			want:   ErrInvalidDiscount,
		},
		"zero usage limit": {
			mutate: func(tm *Terms) { tm.UsageLimit = ptrInt(0) },
			want:   ErrInvalidDiscount,
		},
		"ends before start": {
			mutate: func(tm *Terms) { tm.EndsAt = tm.StartsAt.Add(-time.Hour) },
			want:   ErrInvalidSchedule,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tm := valid
			tc.mutate(&tm)
			assert.ErrorIs(t, ValidateTerms(tm), tc.want)
		})
	}

	fixed := valid
	fixed.DiscountType = DiscountFixed
	fixed.DiscountValue = 20000
	fixed.MaxDiscount = nil
	assert.NoError(t, ValidateTerms(fixed))
}

func TestStateOf(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	base := Promotion{
		Enabled:  true,
		StartsAt: now.AddDate(0, 0, -7),
		EndsAt:   now.AddDate(0, 0, 7),
	}

	assert.Equal(t, StateActive, StateOf(base, now))

	disabled := base
	disabled.Enabled = false
	assert.Equal(t, StateInactive, StateOf(disabled, now))

	upcoming := base
	upcoming.StartsAt = now.AddDate(0, 0, 1)
	assert.Equal(t, StateInactive, StateOf(upcoming, now))

	exhausted := base
	exhausted.UsageLimit = ptrInt(100)
	exhausted.UsedCount = 100
	assert.Equal(t, StateInactive, StateOf(exhausted, now))

	expired := base
	expired.EndsAt = now.Add(-time.Hour)
	assert.Equal(t, StateExpired, StateOf(expired, now))

	deleted := expired
	deleted.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
	assert.Equal(t, StateDeleted, StateOf(deleted, now))
}
