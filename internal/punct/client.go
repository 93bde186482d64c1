package punct

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"speechalign/internal/transcript"

	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

type labelCountError struct {
	want, got int
}

func (e *labelCountError) Error() string {
	return fmt.Sprintf("got %d labels for %d tokens", e.got, e.want)
}

type predictRequest struct {
	Tokens []string `json:"tokens"`
}

type predictResponse struct {
	Labels []Label `json:"labels"`
}

// Client is a Predictor backed by a remote punctuation service.
type Client struct {
	Endpoint   string
	HTTP       *http.Client
	Limiter    *rate.Limiter
	MaxRetries int
	Backoff    time.Duration // first retry delay, doubled each attempt
}

// NewClient creates a client allowing ratePerMin requests per minute.
func NewClient(endpoint string, timeout time.Duration, maxRetries, ratePerMin int) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	limit := rate.Inf
	if ratePerMin > 0 {
		limit = rate.Limit(float64(ratePerMin) / 60.0)
	}
	return &Client{
		Endpoint:   endpoint,
		HTTP:       &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(limit, 1),
		MaxRetries: maxRetries,
		Backoff:    time.Second,
	}
}

// Predict implements Predictor.
func (c *Client) Predict(ctx context.Context, tokens []string) ([]Label, error) {
	body, err := json.Marshal(predictRequest{Tokens: tokens})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.Backoff << uint(attempt-1)
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		labels, err := c.do(ctx, body)
		if err == nil {
			if len(labels) != len(tokens) {
				return nil, &transcript.ExternalToolError{Tool: "punct", Err: &labelCountError{want: len(tokens), got: len(labels)}}
			}
			return labels, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &transcript.ExternalToolError{Tool: "punct", Err: lastErr}
}

func (c *Client) do(ctx context.Context, body []byte) ([]Label, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Labels, nil
}
