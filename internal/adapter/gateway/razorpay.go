package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/example/checkout-service/internal/domain"
)

const ordersEndpoint = "/v1/orders"

// RazorpayClient creates payment orders through the Razorpay REST API
// using basic auth with the merchant key pair.
type RazorpayClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Client    *http.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		BaseURL:   "https://api.razorpay.com",
		KeyID:     keyID,
		KeySecret: keySecret,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder converts the amount to the smallest currency unit, attaches a
// timestamp-based receipt id and returns the gateway response body verbatim.
// Gateway failures carry the provider message; there is no retry.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount float64, currency string) (json.RawMessage, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: currency,
		Receipt:  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+ordersEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay status %d: %s", resp.StatusCode, raw)
	}
	return raw, nil
}

var _ domain.PaymentGateway = (*RazorpayClient)(nil)
