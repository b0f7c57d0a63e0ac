package imagen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/basel-ax/imagegate/internal/domain"
)

const (
	// sampleCount is fixed: the proxy relays a single image per request
	sampleCount = 1

	maxErrorBodyBytes = 64 << 10
)

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type prediction struct {
	MimeType           string `json:"mimeType,omitempty"`
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

// Client represents the Imagen predict API client
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Imagen client for the given predict endpoint.
// A zero timeout leaves requests bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint: endpoint,
	}
}

// Predict sends one prompt to the upstream and returns the base64 payload of
// the first prediction. All failures are *domain.GenerationError.
func (c *Client) Predict(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", domain.ConfigFault()
	}

	endpoint, err := c.endpointWithKey(apiKey)
	if err != nil {
		return "", domain.TransportFault(err)
	}

	payload, err := json.Marshal(predictRequest{
		Instances:  []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{SampleCount: sampleCount},
	})
	if err != nil {
		return "", domain.TransportFault(fmt.Errorf("failed to marshal payload: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", domain.TransportFault(fmt.Errorf("failed to create request: %w", redact(err)))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", domain.TransportFault(fmt.Errorf("failed to send request: %w", redact(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", domain.UpstreamFailure(resp.StatusCode, fmt.Errorf("body: %s", string(body)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.TransportFault(fmt.Errorf("failed to read response: %w", err))
	}

	if err := validatePredictResponse(raw); err != nil {
		return "", domain.InvalidShape(resp.StatusCode, err)
	}

	var result predictResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", domain.InvalidShape(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	return result.Predictions[0].BytesBase64Encoded, nil
}

// Endpoint returns the configured predict URL, which never carries the key
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) endpointWithKey(apiKey string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid upstream URL: %w", err)
	}
	q := u.Query()
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redact drops the request URL from net/http errors, since it carries the key
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
