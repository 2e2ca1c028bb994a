package shipping

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHistoryStringLog(t *testing.T) {
	raw := []byte(`["2025-12-16T21:24:01.15Z: Tạo đơn vận chuyển (READY_TO_PICK)"]`)

	entries := NormalizeHistory(raw)
	require.Len(t, entries, 1)

	assert.Equal(t, "Tạo đơn vận chuyển", entries[0].Message)
	assert.Equal(t, "21:24:01 16/12/2025", entries[0].Timestamp)
}

func TestNormalizeHistoryNanosecondTimestampNoZone(t *testing.T) {
	raw := []byte(`["2025-12-16T21:24:01.151920443: Shipper đã lấy hàng (PICKED)"]`)

	entries := NormalizeHistory(raw)
	require.Len(t, entries, 1)
	assert.Equal(t, "Shipper đã lấy hàng", entries[0].Message)
	assert.Equal(t, "21:24:01 16/12/2025", entries[0].Timestamp)
}

func TestNormalizeHistoryUnparseablePrefixKeptRaw(t *testing.T) {
	raw := []byte(`["hôm qua: Đang giao hàng (SHIPPING)"]`)

	entries := NormalizeHistory(raw)
	require.Len(t, entries, 1)
	// prefix is not a timestamp, shown as-is; suffix stripped regardless
	assert.Equal(t, "hôm qua", entries[0].Timestamp)
	assert.Equal(t, "Đang giao hàng", entries[0].Message)
}

func TestNormalizeHistoryLineWithoutSeparator(t *testing.T) {
	entries := NormalizeHistory([]byte(`["Đơn hàng đã được tạo"]`))
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Timestamp)
	assert.Equal(t, "Đơn hàng đã được tạo", entries[0].Message)
}

func TestNormalizeHistoryStructured(t *testing.T) {
	raw := []byte(`[
		{"timestamp": "2025-12-16T21:24:01Z", "status": "READY_TO_PICK", "message": "Tạo đơn vận chuyển"},
		{"timestamp": "2025-12-17T08:00:00Z", "status": "PICKING_UP", "note": "Shipper đang đến"},
		{"status": "SHIPPING"}
	]`)

	entries := NormalizeHistory(raw)
	require.Len(t, entries, 3)

	assert.Equal(t, "Tạo đơn vận chuyển", entries[0].Message)
	assert.Equal(t, "21:24:01 16/12/2025", entries[0].Timestamp)

	// note is the fallback when message is absent
	assert.Equal(t, "Shipper đang đến", entries[1].Message)

	// status is the last resort, and no timestamp stays empty
	assert.Equal(t, "SHIPPING", entries[2].Message)
	assert.Empty(t, entries[2].Timestamp)
}

// Equivalent histories must normalize identically whichever
// representation the carrier happened to send.
func TestNormalizeHistoryFormatAgnostic(t *testing.T) {
	asStrings := []byte(`[
		"2025-12-16T21:24:01Z: Tạo đơn vận chuyển (READY_TO_PICK)",
		"2025-12-16T22:00:00Z: Shipper đang đến lấy hàng (PICKING_UP)"
	]`)
	asObjects := []byte(`[
		{"timestamp": "2025-12-16T21:24:01Z", "message": "Tạo đơn vận chuyển"},
		{"timestamp": "2025-12-16T22:00:00Z", "message": "Shipper đang đến lấy hàng"}
	]`)

	assert.Equal(t, NormalizeHistory(asStrings), NormalizeHistory(asObjects))
}

func TestNormalizeHistoryEmpty(t *testing.T) {
	assert.Empty(t, NormalizeHistory(nil))
	assert.Empty(t, NormalizeHistory([]byte(`[]`)))
	assert.Empty(t, NormalizeHistory([]byte(`not json`)))
}

func TestNormalizeHistoryPreservesOrder(t *testing.T) {
	raw := []byte(`["b: hai", "a: một", "c: ba"]`)
	entries := NormalizeHistory(raw)
	require.Len(t, entries, 3)
	assert.Equal(t, "hai", entries[0].Message)
	assert.Equal(t, "một", entries[1].Message)
	assert.Equal(t, "ba", entries[2].Message)
}

// Formatting then re-parsing a history timestamp must land on the same
// instant, within the precision the display format keeps.
func TestTimestampFormatRoundTrip(t *testing.T) {
	formatted, ok := formatTimestamp("2025-12-16T21:24:01.15Z")
	require.True(t, ok)

	back, err := time.Parse(displayTimeLayout, formatted)
	require.NoError(t, err)

	orig, _ := time.Parse(time.RFC3339Nano, "2025-12-16T21:24:01.15Z")
	assert.Equal(t, orig.Truncate(time.Second).Format("15:04:05 02/01"), back.Format("15:04:05 02/01"))
}

func TestOrderRefShapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"raw id", `"ord-123"`, "ord-123"},
		{"dbref", `{"$id": "ord-456"}`, "ord-456"},
		{"populated object", `{"id": "ord-789", "status": "CONFIRMED"}`, "ord-789"},
		{"mongo underscore id", `{"_id": "ord-abc"}`, "ord-abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ref OrderRef
			require.NoError(t, json.Unmarshal([]byte(tc.in), &ref))
			assert.Equal(t, tc.want, ref.ID)
		})
	}
}
