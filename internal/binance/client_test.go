package binance

import (
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com", "test-key", "test-secret")

		if c.baseURL != "https://api.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.example.com")
		}
		if c.apiKey != "test-key" {
			t.Errorf("apiKey = %q, want %q", c.apiKey, "test-key")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.retry.Wait != time.Minute {
			t.Errorf("retry.Wait = %v, want %v", c.retry.Wait, time.Minute)
		}
		if c.retry.MaxAttempts != 0 {
			t.Errorf("retry.MaxAttempts = %d, want 0 (unbounded)", c.retry.MaxAttempts)
		}
		if c.recvWindow != time.Minute {
			t.Errorf("recvWindow = %v, want %v", c.recvWindow, time.Minute)
		}
		if c.rateGap != time.Second {
			t.Errorf("rateGap = %v, want %v", c.rateGap, time.Second)
		}
		if c.fiatPageSize != 500 {
			t.Errorf("fiatPageSize = %d, want 500", c.fiatPageSize)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with options", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		customClient := &http.Client{Timeout: 10 * time.Second}

		c := NewClient("https://api.example.com", "key", "secret",
			WithTimeout(15*time.Second),
			WithRetryPolicy(RetryPolicy{Wait: 5 * time.Second, MaxAttempts: 4}),
			WithRecvWindow(30*time.Second),
			WithRateGap(2*time.Second),
			WithFiatPageSize(100),
			WithLogger(logger),
		)

		if c.httpClient.Timeout != 15*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 15*time.Second)
		}
		if c.retry.Wait != 5*time.Second || c.retry.MaxAttempts != 4 {
			t.Errorf("retry = %+v, want {5s 4}", c.retry)
		}
		if c.recvWindow != 30*time.Second {
			t.Errorf("recvWindow = %v, want %v", c.recvWindow, 30*time.Second)
		}
		if c.rateGap != 2*time.Second {
			t.Errorf("rateGap = %v, want %v", c.rateGap, 2*time.Second)
		}
		if c.fiatPageSize != 100 {
			t.Errorf("fiatPageSize = %d, want 100", c.fiatPageSize)
		}
		if c.logger != logger {
			t.Error("logger not set correctly")
		}

		c = NewClient("https://api.example.com", "", "", WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})
}
