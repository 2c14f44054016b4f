package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emberandwick/candle-shop/internal/payment"
	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer from the shop API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return e.Message
}

// Client calls the checkout endpoints of a running shop server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy that sends a bearer token, for signed-in shoppers.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

type createOrderBody struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
	Receipt  string      `json:"receipt"`
}

func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (payment.GatewayOrder, error) {
	var out payment.GatewayOrder
	body := createOrderBody{Amount: json.Number(amount.String()), Currency: currency, Receipt: receipt}
	status, raw, err := c.post(ctx, "/api/create-order", body)
	if err != nil {
		return out, err
	}
	if status < 200 || status >= 300 {
		return out, errorFrom(status, raw)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode gateway order: %w", err)
	}
	return out, nil
}

func (c *Client) CreateGuestAccount(ctx context.Context, req profile.GuestRequest) error {
	status, raw, err := c.post(ctx, "/api/create-guest-account", req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return errorFrom(status, raw)
	}
	return nil
}

// VerifyPayment returns the service's verdict. A rejected proof is reported
// through VerifyResult, not as an error.
func (c *Client) VerifyPayment(ctx context.Context, req payment.VerifyRequest) (VerifyResult, error) {
	var out VerifyResult
	status, raw, err := c.post(ctx, "/api/verify-payment", req)
	if err != nil {
		return out, err
	}
	if decodeErr := json.Unmarshal(raw, &out); decodeErr != nil {
		if status < 200 || status >= 300 {
			return out, errorFrom(status, raw)
		}
		return out, fmt.Errorf("decode verification result: %w", decodeErr)
	}
	if status >= 500 && out.Error == "" {
		return out, errorFrom(status, raw)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}

func errorFrom(status int, raw []byte) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	apiErr := &APIError{StatusCode: status, Message: strings.TrimSpace(string(raw))}
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

// IsAPIError reports whether err came back from the server with status.
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
