package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from, action string
		want         string
		wantErr      bool
	}{
		{StatusPending, "approve", StatusActive, false},
		{StatusPending, "reject", StatusRejected, false},
		{StatusActive, "suspend", StatusSuspended, false},
		{StatusSuspended, "reactivate", StatusActive, false},
		{StatusActive, "approve", "", true},
		{StatusRejected, "reactivate", "", true},
		{StatusSuspended, "suspend", "", true},
		{StatusPending, "nonsense", "", true},
	}

	for _, tc := range cases {
		got, err := nextStatus(tc.from, tc.action)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s/%s", tc.from, tc.action)
			continue
		}
		assert.NoError(t, err, "%s/%s", tc.from, tc.action)
		assert.Equal(t, tc.want, got)
	}
}
