package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Writers invalidate by endpoint-name prefix; every key a reader
// builds for that endpoint must fall under it.
func TestInvalidatePrefixCoversEndpointKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	keys := []string{
		Key("admin-revenue", "list", "SERVICE_FEE", "", "", "", "1", "30"),
		Key("admin-revenue", "summary", "2026-01-01", "2026-02-01"),
		Key("admin-revenue", "chart", "2026"),
		Key("admin-stores", "list", "PENDING", "", "1", "20"),
	}
	for _, k := range keys {
		m.Set(ctx, k, []byte("x"), time.Minute)
	}

	m.InvalidatePrefix(ctx, Key("admin-revenue"))

	for _, k := range keys[:3] {
		_, ok := m.Get(ctx, k)
		assert.False(t, ok, "key %q should be invalidated", k)
	}
	_, ok := m.Get(ctx, keys[3])
	assert.True(t, ok, "unrelated prefix must survive")

	m.InvalidatePrefix(ctx, Key("admin-stores"))
	_, ok = m.Get(ctx, keys[3])
	assert.False(t, ok)
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	type row struct {
		ID string `json:"id"`
	}

	SetJSON(ctx, m, Key("store-orders", "s1", "", "", "1", "20"), []row{{ID: "o1"}}, time.Minute)

	var got []row
	assert.True(t, GetJSON(ctx, m, Key("store-orders", "s1", "", "", "1", "20"), &got))
	assert.Equal(t, []row{{ID: "o1"}}, got)

	var miss []row
	assert.False(t, GetJSON(ctx, m, Key("store-orders", "s2", "", "", "1", "20"), &miss))
}
