package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineNilShipment(t *testing.T) {
	assert.Empty(t, Timeline(nil))
}

func TestTimelineProgress(t *testing.T) {
	steps := Timeline(&Shipment{Status: StatusShipping})
	require.Len(t, steps, 3)

	assert.True(t, steps[0].Completed)
	assert.False(t, steps[0].Active)

	assert.True(t, steps[1].Completed)
	assert.True(t, steps[1].Active)

	assert.False(t, steps[2].Completed)
	assert.False(t, steps[2].Active)
}

func TestTimelineDelivered(t *testing.T) {
	steps := Timeline(&Shipment{Status: StatusDelivered})
	require.Len(t, steps, 3)
	for _, s := range steps {
		assert.True(t, s.Completed)
	}
	assert.True(t, steps[2].Active)
}

func TestTimelineFailedReplacesFinalStep(t *testing.T) {
	steps := Timeline(&Shipment{Status: StatusFailed})
	require.Len(t, steps, 3)

	assert.Equal(t, StatusFailed, steps[2].Status)
	assert.Equal(t, "Giao thất bại", steps[2].Label)
	assert.True(t, steps[2].Active)
	assert.True(t, steps[2].Completed)
}

// The carrier's legacy spellings collapse onto the current vocabulary
// before matching, so a DELIVERED_FAIL shipment renders the failed
// step instead of all-pending.
func TestTimelineLegacyStatuses(t *testing.T) {
	steps := Timeline(&Shipment{Status: StatusDeliveredFail})
	require.Len(t, steps, 3)
	assert.Equal(t, StatusFailed, steps[2].Status)
	assert.True(t, steps[2].Active)

	steps = Timeline(&Shipment{Status: StatusPicked})
	require.Len(t, steps, 3)
	assert.True(t, steps[0].Active)
	assert.False(t, steps[1].Completed)
}

func TestCanonicalStatus(t *testing.T) {
	assert.Equal(t, StatusFailed, CanonicalStatus(StatusDeliveredFail))
	assert.Equal(t, StatusPickingUp, CanonicalStatus(StatusPicked))
	assert.Equal(t, StatusShipping, CanonicalStatus(StatusShipping))
}

// Statuses outside the milestone sequence match no step: everything
// renders pending.
func TestTimelineUnknownStatusAllPending(t *testing.T) {
	for _, status := range []string{StatusReadyToPick, StatusReturning, StatusReturned, "SOMETHING_NEW"} {
		steps := Timeline(&Shipment{Status: status})
		require.Len(t, steps, 3)
		for _, s := range steps {
			assert.False(t, s.Completed, status)
			assert.False(t, s.Active, status)
		}
	}
}
