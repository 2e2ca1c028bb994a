package orders

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
		{StatusPending, "confirm", StatusConfirmed, false},
		{StatusConfirmed, "ship", StatusShipping, false},
		{StatusShipping, "deliver", StatusDelivered, false},
		{StatusDelivered, "complete", StatusCompleted, false},
		{StatusPending, "cancel", StatusCancelled, false},
		{StatusConfirmed, "cancel", StatusCancelled, false},
		{StatusShipping, "return", StatusReturned, false},
		{StatusDelivered, "return", StatusReturned, false},

		{StatusShipping, "cancel", "", true},
		{StatusPending, "ship", "", true},
		{StatusCompleted, "return", "", true},
		{StatusCancelled, "confirm", "", true},
		{StatusPending, "unknown", "", true},
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
