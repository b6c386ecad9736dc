//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// TestContext holds state between steps of one scenario.
type TestContext struct {
	BaseURL          string
	Secret           string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte

	OrderID     string
	PaymentID   string
	Submission  map[string]any
	LastRequest map[string]any
}

// NewTestContext reads BASE_URL and E2E_RAZORPAY_KEY_SECRET, which must match
// the server's RAZORPAY_KEY_SECRET.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	secret := os.Getenv("E2E_RAZORPAY_KEY_SECRET")
	if secret == "" {
		secret = "s3cr3t"
	}
	return &TestContext{
		BaseURL:    baseURL,
		Secret:     secret,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Submission: map[string]any{},
	}
}

func (tc *TestContext) POST(path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(data))
}

func (tc *TestContext) POSTRaw(path, body string) error {
	return tc.do(http.MethodPost, path, bytes.NewReader([]byte(body)))
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func (tc *TestContext) responseField(field string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	v, ok := data[field]
	if !ok {
		return "", fmt.Errorf("field %s not found in response", field)
	}
	return fmt.Sprint(v), nil
}
