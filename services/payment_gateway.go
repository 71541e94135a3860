package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type RefundReceipt struct {
	RefundRef string `json:"refundRef"`
}

// PaymentGateway is the refund primitive of the campus payment provider.
// Tests swap in a fake.
type PaymentGateway interface {
	Refund(ctx context.Context, gatewayRef string, amount int64) (*RefundReceipt, error)
}

// HTTPPaymentGateway talks to the provider's REST API.
type HTTPPaymentGateway struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPPaymentGateway(baseURL, apiKey string) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *HTTPPaymentGateway) Refund(ctx context.Context, gatewayRef string, amount int64) (*RefundReceipt, error) {
	body, _ := json.Marshal(map[string]any{
		"reference": gatewayRef,
		"amount":    amount,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/refunds", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	res, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("gateway returned %d: %s", res.StatusCode, snippet)
	}

	var receipt RefundReceipt
	if err := json.NewDecoder(res.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("decode refund receipt: %w", err)
	}
	return &receipt, nil
}
