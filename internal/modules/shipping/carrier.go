package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ShipmentDocument is a shipment as the carrier API returns it, before
// normalization.
type ShipmentDocument struct {
	ID                   string          `json:"id"`
	Order                OrderRef        `json:"order"`
	Status               string          `json:"status"`
	History              json.RawMessage `json:"history"`
	ExpectedDeliveryDate string          `json:"expectedDeliveryDate"`
}

// CarrierClient fetches shipment state from the carrier's REST API.
type CarrierClient struct {
	baseURL string
	http    *http.Client
}

func NewCarrierClient(baseURL string) *CarrierClient {
	return &CarrierClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type carrierEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// GetByOrder looks up the shipment for an order. The carrier signals
// "no shipment yet" inconsistently: HTTP 400, HTTP 404, or HTTP 200
// with a success:false body. All three return (nil, nil); callers must
// not surface them as errors.
func (c *CarrierClient) GetByOrder(ctx context.Context, orderID string) (*ShipmentDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/shipments/order/"+orderID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to body inspection
	case http.StatusBadRequest, http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("carrier: unexpected status %d for order %s", resp.StatusCode, orderID)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var env carrierEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("carrier: malformed body: %w", err)
	}
	if env.Success != nil && !*env.Success {
		return nil, nil
	}

	payload := env.Data
	if payload == nil {
		// some carrier builds return the shipment bare, without envelope
		payload = body
	}

	var doc ShipmentDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("carrier: malformed shipment: %w", err)
	}
	return &doc, nil
}
