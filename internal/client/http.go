package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zanclinic/pulse/internal/metrics"
	"github.com/zanclinic/pulse/internal/model"
)

// HTTPClient implements PulseClient using the pulse HTTP/JSON REST API.
type HTTPClient struct {
	baseURL       string
	token         string
	webhookSecret string
	httpClient    *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on dashboard requests. When webhookSecret is non-empty,
// ingested payloads are signed with HMAC-SHA256.
func NewHTTPClient(baseURL, token, webhookSecret string) *HTTPClient {
	return &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		token:         token,
		webhookSecret: webhookSecret,
		httpClient:    &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Webhook ingestion ---

func (c *HTTPClient) IngestEvent(ctx context.Context, clientID string, payload *model.EventPayload) (*IngestResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	path := "/api/webhook/ai-performance/" + url.PathEscape(clientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.webhookSecret != "" {
		mac := hmac.New(sha256.New, []byte(c.webhookSecret))
		mac.Write(data)
		req.Header.Set("X-Webhook-Signature", hex.EncodeToString(mac.Sum(nil)))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var ack IngestResponse
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: ack.Message}
	}
	return &ack, nil
}

func (c *HTTPClient) GetWebhookConfig(ctx context.Context, clientID string) (*WebhookConfig, error) {
	var cfg WebhookConfig
	if err := c.doJSON(ctx, http.MethodGet, "/api/webhook/config/"+url.PathEscape(clientID), nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --- Dashboard API ---

func (c *HTTPClient) GetMetrics(ctx context.Context, clientID string, req *MetricsRequest) (*metrics.Summary, error) {
	q := url.Values{}
	if req != nil {
		if req.Start != nil {
			q.Set("start", req.Start.Format(time.RFC3339))
		}
		if req.End != nil {
			q.Set("end", req.End.Format(time.RFC3339))
		}
		if req.TZ != "" {
			q.Set("tz", req.TZ)
		}
		if req.ScoredOnly {
			q.Set("scored_only", "true")
		}
	}

	path := "/v1/clients/" + url.PathEscape(clientID) + "/metrics"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var summary metrics.Summary
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *HTTPClient) ListEvents(ctx context.Context, clientID string, req *ListEventsRequest) (*ListEventsResponse, error) {
	q := url.Values{}
	if req != nil {
		if req.Start != nil {
			q.Set("start", req.Start.Format(time.RFC3339))
		}
		if req.End != nil {
			q.Set("end", req.End.Format(time.RFC3339))
		}
		if req.Limit > 0 {
			q.Set("limit", fmt.Sprintf("%d", req.Limit))
		}
	}

	path := "/v1/clients/" + url.PathEscape(clientID) + "/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListEventsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	// A degraded server answers 503 but still reports its status.
	var status struct {
		Status string `json:"status"`
	}
	if json.Unmarshal(respBody, &status) == nil && status.Status != "" {
		return status.Status, nil
	}
	return "", &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		// Dashboard errors use {"error": ...}; webhook errors use {"message": ...}.
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			if errResp.Error != "" {
				return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
			}
			if errResp.Message != "" {
				return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
