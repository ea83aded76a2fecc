// Package payments talks to the Paddle billing API and verifies its
// webhooks. Only the two operations the product needs are implemented:
// creating a customer at signup and unmarshalling signed webhook events.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a minimal Paddle API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a Paddle API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CustomerCreator creates a billing customer for a new user.
type CustomerCreator interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
}

// CreateCustomer registers the email with the gateway and returns the
// customer id that later webhook events reference.
func (c *Client) CreateCustomer(ctx context.Context, email string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/customers", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create customer: status %d", resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode customer: %w", err)
	}
	if parsed.Data.ID == "" {
		return "", fmt.Errorf("create customer: empty customer id")
	}
	return parsed.Data.ID, nil
}
