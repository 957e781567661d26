// Package billing integrates with the payment provider's REST API for
// tier upgrade orders, using OAuth client-credentials tokens that are
// refreshed on a fixed schedule.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/config"
)

// ProviderError indicates the payment provider rejected a request.
type ProviderError struct {
	Op      string
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("billing %s failed with status %d: %s", e.Op, e.Status, e.Message)
}

// Order is a created upgrade order awaiting buyer approval. Tier and
// Amount come from the provider's purchase unit, so a captured order
// carries the tier it was priced for.
type Order struct {
	ID         string
	Status     string
	ApproveURL string
	Tier       string
	Amount     string
}

// Client talks to the payment provider.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *zap.Logger

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a provider client from billing configuration.
func NewClient(cfg *config.BillingConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}
}

// RefreshToken fetches a new access token and swaps it in. Requests in
// flight keep the old token until the swap.
func (c *Client) RefreshToken(ctx context.Context) error {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{Op: "token refresh", Status: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return &ProviderError{Op: "token refresh", Status: resp.StatusCode, Message: "empty access token"}
	}

	c.mu.Lock()
	c.accessToken = payload.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	c.mu.Unlock()

	c.logger.Debug("billing token refreshed", zap.Int("expires_in", payload.ExpiresIn))
	return nil
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// CreateOrder creates an upgrade order for a purchasable tier and returns
// the order with its buyer approval link.
func (c *Client) CreateOrder(ctx context.Context, tier catalog.Tier) (*Order, error) {
	price, ok := catalog.TierPrice(tier)
	if !ok {
		return nil, fmt.Errorf("tier %q is not purchasable", tier)
	}

	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"reference_id": string(tier),
				"description":  fmt.Sprintf("%s plan, monthly", tier),
				"amount":       map[string]string{"currency_code": "USD", "value": price},
			},
		},
	}

	resp, err := c.doAuthorized(ctx, "create order", http.MethodPost, "/v2/checkout/orders", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Op: "create order", Status: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}
	return decodeOrder(resp.Body)
}

// CaptureOrder captures an approved order and returns its final state.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Order, error) {
	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	resp, err := c.doAuthorized(ctx, "capture order", http.MethodPost, path, struct{}{})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Op: "capture order", Status: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}
	return decodeOrder(resp.Body)
}

// doAuthorized issues a bearer-authenticated request. A 401 triggers one
// token refresh and a single retry before the error is surfaced.
func (c *Client) doAuthorized(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	send := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to build %s request: %w", op, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token())
		return c.httpClient.Do(req)
	}

	resp, err := send()
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	c.logger.Debug("billing token rejected, refreshing", zap.String("op", op))
	if err := c.RefreshToken(ctx); err != nil {
		return nil, err
	}
	resp, err = send()
	if err != nil {
		return nil, fmt.Errorf("%s request failed after token refresh: %w", op, err)
	}
	return resp, nil
}

func decodeOrder(body io.Reader) (*Order, error) {
	var payload struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PurchaseUnits []struct {
			ReferenceID string `json:"reference_id"`
			Amount      struct {
				Value string `json:"value"`
			} `json:"amount"`
		} `json:"purchase_units"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	order := &Order{ID: payload.ID, Status: payload.Status}
	if len(payload.PurchaseUnits) > 0 {
		order.Tier = payload.PurchaseUnits[0].ReferenceID
		order.Amount = payload.PurchaseUnits[0].Amount.Value
	}
	for _, link := range payload.Links {
		if link.Rel == "approve" || link.Rel == "payer-action" {
			order.ApproveURL = link.Href
			break
		}
	}
	return order, nil
}

func readErrorBody(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no error detail"
	}
	return string(raw)
}
