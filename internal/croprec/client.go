// Package croprec forwards soil readings to the crop prediction model
// service and relays its recommendation.
package croprec

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

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"farmhub-backend/internal/shared/telemetry"
)

// UpstreamPath is the model service's prediction route.
const UpstreamPath = "/api/farmer/croprecommendation/cropdata"

const (
	defaultMaxRetries   = 2
	breakerFailures     = 5
	breakerOpenTimeout  = 30 * time.Second
	breakerResetWindow  = time.Minute
	maxUpstreamBodySize = 1 << 20
)

type Client struct {
	baseURL    string
	http       *http.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

// NewClient returns a client for the model service at baseURL. An empty
// baseURL yields a client whose calls fail with ErrNotConfigured.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:       &http.Client{Timeout: timeout},
		breaker:    newBreaker("crop-ml"),
		maxRetries: defaultMaxRetries,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 200 * time.Millisecond
			bo.MaxElapsedTime = 5 * time.Second
			return bo
		},
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: breakerResetWindow,
		Timeout:  breakerOpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= breakerFailures
		},
		// A model-level rejection or a 4xx means the service is up.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var rej *RejectedError
			if errors.As(err, &rej) {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && !se.temporary()
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Warn("croprec.breaker_state", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
}

// Configured reports whether a model service URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Recommend asks the model service for a crop and returns its title-cased name.
func (c *Client) Recommend(ctx context.Context, f Features) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	op := func() (string, error) {
		out, err := c.breaker.Execute(func() (interface{}, error) {
			return c.call(ctx, f)
		})
		if err != nil {
			if ctx.Err() != nil || !retryable(err) {
				return "", backoff.Permanent(err)
			}
			return "", err
		}
		return out.(string), nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	crop, err := backoff.RetryWithData(op, bo)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", err
	}
	return TitleCase(crop), nil
}

func (c *Client) call(ctx context.Context, f Features) (string, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode features: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+UpstreamPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxUpstreamBodySize))
		return "", &StatusError{Status: resp.StatusCode}
	}
	var out upstreamResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBodySize)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if !out.Success {
		return "", &RejectedError{Message: out.Message}
	}
	if out.Data == nil || strings.TrimSpace(out.Data.Recommendation) == "" {
		return "", &RejectedError{Message: "empty recommendation"}
	}
	return out.Data.Recommendation, nil
}

func retryable(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var rej *RejectedError
	if errors.As(err, &rej) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.temporary()
	}
	return true
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
