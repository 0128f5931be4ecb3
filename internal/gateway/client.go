package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jazzypay/internal/config"
)

const (
	initializePath = "/api/payment/initialize"

	// StatusSuccess is the status tag JazzyPay returns when an initiation
	// was accepted and a redirect URL is available.
	StatusSuccess = "Success"

	// StatusFailed is the status tag JazzyPay reports on a failed payment.
	StatusFailed = "Failed"
)

// DefaultTimeout bounds the synchronous initiation call. A timeout is
// treated by callers the same as any other connection failure.
const DefaultTimeout = 30 * time.Second

// InitiationRequest is the payload sent to the processor to start a
// payment. Field names follow the JazzyPay API.
type InitiationRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneCode   string  `json:"phoneCode"`
	PhoneNumber string  `json:"phoneNumber"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	TraceNo     string  `json:"traceNo"`
	Origin      string  `json:"origin"`
	SuccessURL  string  `json:"successUrl"`
	CancelURL   string  `json:"cancelUrl"`
}

// InitiationResponse is the processor's synchronous answer.
type InitiationResponse struct {
	Status      string `json:"status"`
	RedirectURL string `json:"redirectUrl"`
}

// Succeeded reports whether the processor accepted the initiation.
func (r *InitiationResponse) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Client is an HTTP client for the JazzyPay payment API. TLS certificate
// verification is standard; credentials are fixed at construction.
type Client struct {
	creds      config.Credentials
	httpClient *http.Client
}

// NewClient creates a JazzyPay client with the given credentials. A
// non-positive timeout falls back to DefaultTimeout.
func NewClient(creds config.Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Initiate posts the initiation request to the processor and decodes its
// synchronous response. Exactly one attempt is made; any transport error,
// timeout, or undecodable body is returned as an error and the caller
// must treat them all as a connection failure.
func (c *Client) Initiate(ctx context.Context, req InitiationRequest) (*InitiationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode initiation request: %w", err)
	}

	url := c.creds.BasePath + initializePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build initiation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("client-id", c.creds.ClientID)
	httpReq.Header.Set("client-secret", c.creds.ClientSecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment processor: %w", err)
	}
	defer resp.Body.Close()

	// The processor signals rejection through the status field, not the
	// HTTP status code, so the body is decoded regardless.
	var initResp InitiationResponse
	if err := json.NewDecoder(resp.Body).Decode(&initResp); err != nil {
		return nil, fmt.Errorf("failed to decode processor response: %w", err)
	}

	return &initResp, nil
}
