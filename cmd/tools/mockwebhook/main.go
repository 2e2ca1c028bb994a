package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Simulates the carrier pushing a shipment update, for local testing
// of the webhook endpoint.

type historyEntry struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type shipmentPayload struct {
	ID                   string         `json:"id"`
	Order                orderRef       `json:"order"`
	Status               string         `json:"status"`
	History              []historyEntry `json:"history"`
	ExpectedDeliveryDate string         `json:"expectedDeliveryDate"`
}

type orderRef struct {
	ID string `json:"$id"`
}

func main() {
	url := flag.String("url", "http://localhost:8080/api/v1/webhooks/carrier", "Webhook URL")
	token := flag.String("token", os.Getenv("CARRIER_WEBHOOK_TOKEN"), "Shared webhook token")
	orderID := flag.String("order", "", "Order ID (required)")
	carrierRef := flag.String("ref", "GHN123456", "Carrier tracking ref")
	status := flag.String("status", "SHIPPING", "Shipment status (PICKING_UP, SHIPPING, DELIVERED, FAILED, ...)")
	message := flag.String("message", "Đơn hàng đang được vận chuyển", "History message")

	flag.Parse()

	if *orderID == "" {
		fmt.Fprintln(os.Stderr, "Error: -order is required")
		os.Exit(1)
	}
	if *token == "" {
		fmt.Fprintln(os.Stderr, "Error: token not provided and CARRIER_WEBHOOK_TOKEN not set")
		os.Exit(1)
	}

	now := time.Now()
	payload := shipmentPayload{
		ID:     *carrierRef,
		Order:  orderRef{ID: *orderID},
		Status: *status,
		History: []historyEntry{{
			Timestamp: now.Format(time.RFC3339Nano),
			Status:    *status,
			Message:   *message,
		}},
		ExpectedDeliveryDate: now.AddDate(0, 0, 3).Format(time.RFC3339Nano),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Token", *token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending webhook: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("%s\n%s\n", resp.Status, out)
}
