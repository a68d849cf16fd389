package binance

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// RetryPolicy controls how throttle responses are retried. Wait is the
// fixed delay between attempts; MaxAttempts of 0 retries without a ceiling.
type RetryPolicy struct {
	Wait        time.Duration
	MaxAttempts int
}

// SleepFunc blocks for d or until ctx is done. Injected in tests so retry
// and pacing behavior runs against a fake clock.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Client provides access to the Binance REST API.
type Client struct {
	baseURL    string
	apiKey     string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger

	retry        RetryPolicy
	recvWindow   time.Duration
	rateGap      time.Duration
	fiatPageSize int

	sleep SleepFunc
	now   func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. apiKey and secretKey may be
// empty for unsigned use.
func NewClient(baseURL, apiKey, secretKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		retry:        RetryPolicy{Wait: time.Minute},
		recvWindow:   time.Minute,
		rateGap:      time.Second,
		fiatPageSize: 500,
		sleep:        sleepContext,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetryPolicy sets the throttle retry policy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = p
	}
}

// WithRecvWindow sets the tolerance window attached to signed requests.
func WithRecvWindow(d time.Duration) ClientOption {
	return func(c *Client) {
		c.recvWindow = d
	}
}

// WithRateGap sets the courtesy gap before rate-limited endpoints.
func WithRateGap(d time.Duration) ClientOption {
	return func(c *Client) {
		c.rateGap = d
	}
}

// WithFiatPageSize sets the page size for paged fiat endpoints.
func WithFiatPageSize(n int) ClientOption {
	return func(c *Client) {
		c.fiatPageSize = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSleep replaces the sleep function used for retries and pacing.
func WithSleep(fn SleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = fn
	}
}

// WithClock replaces the time source used for signed-request timestamps.
func WithClock(fn func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = fn
	}
}
