package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CheckoutClient talks to the hosted checkout provider's internal API.
type CheckoutClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewCheckoutClient(baseURL string, log *zap.Logger) *CheckoutClient {
	return &CheckoutClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

type createSessionRequest struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type createSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateSession asks the provider for a hosted checkout page. Reference is
// our checkout session id so webhook callbacks can be matched back.
func (c *CheckoutClient) CreateSession(ctx context.Context, reference string, amount float64, currencyCode string) (providerRef, checkoutURL string, err error) {
	body, err := json.Marshal(createSessionRequest{
		Reference: reference,
		Amount:    amount,
		Currency:  currencyCode,
	})
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("%s/v1/checkout/sessions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("checkout provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var out createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", err
	}
	return out.SessionID, out.CheckoutURL, nil
}
