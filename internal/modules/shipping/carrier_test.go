package shipping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarrierGetByOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shipments/order/ord-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"success": true,
				"data": {
					"id": "shp-1",
					"order": {"$id": "ord-1"},
					"status": "SHIPPING",
					"history": ["2025-12-16T21:24:01Z: Tạo đơn vận chuyển (READY_TO_PICK)"]
				}
			}`))
		case "/shipments/order/ord-soft-missing":
			// 200 with success:false is a "not found", not an error
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": false, "message": "shipment not found"}`))
		case "/shipments/order/ord-404":
			w.WriteHeader(http.StatusNotFound)
		case "/shipments/order/ord-400":
			w.WriteHeader(http.StatusBadRequest)
		case "/shipments/order/ord-bare":
			// older carrier builds respond without the envelope
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "shp-2", "order": "ord-bare", "status": "PICKING_UP"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewCarrierClient(srv.URL)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		doc, err := client.GetByOrder(ctx, "ord-1")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "shp-1", doc.ID)
		assert.Equal(t, "ord-1", doc.Order.ID)
		assert.Equal(t, StatusShipping, doc.Status)
		assert.Len(t, NormalizeHistory(doc.History), 1)
	})

	t.Run("success false treated as absent", func(t *testing.T) {
		doc, err := client.GetByOrder(ctx, "ord-soft-missing")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("http 404 treated as absent", func(t *testing.T) {
		doc, err := client.GetByOrder(ctx, "ord-404")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("http 400 treated as absent", func(t *testing.T) {
		doc, err := client.GetByOrder(ctx, "ord-400")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("bare body without envelope", func(t *testing.T) {
		doc, err := client.GetByOrder(ctx, "ord-bare")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "ord-bare", doc.Order.ID)
	})

	t.Run("server error is a real error", func(t *testing.T) {
		_, err := client.GetByOrder(ctx, "ord-boom")
		assert.Error(t, err)
	})
}
