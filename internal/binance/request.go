package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// APIError represents an error response from the Binance API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error %d: %s", e.StatusCode, e.Message)
}

// IsThrottle reports whether the status signals rate limiting (429) or an
// IP ban for continuing after 429s (418).
func (e *APIError) IsThrottle() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusTeapot
}

// doRequest performs a single HTTP request. If signed, the query string is
// re-signed with a fresh timestamp.
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, signed bool) ([]byte, error) {
	var query string
	if signed {
		query = c.signedQuery(cloneValues(params))
	} else {
		query = encodeParams(params)
	}

	fullURL := c.baseURL + path
	if query != "" {
		fullURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	if c.apiKey != "" {
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// send performs a request, waiting out throttle responses with the fixed
// retry delay. Any other failure propagates immediately.
func (c *Client) send(ctx context.Context, method, path string, params url.Values, signed bool) ([]byte, error) {
	for attempt := 1; ; attempt++ {
		body, err := c.doRequest(ctx, method, path, params, signed)
		if err == nil {
			return body, nil
		}

		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsThrottle() {
			return nil, err
		}

		if c.retry.MaxAttempts > 0 && attempt >= c.retry.MaxAttempts {
			return nil, fmt.Errorf("throttled after %d attempts: %w", attempt, err)
		}

		c.logger.Warn("throttled by exchange, waiting",
			"path", path,
			"status", apiErr.StatusCode,
			"wait", c.retry.Wait,
			"attempt", attempt,
		)

		if err := c.sleep(ctx, c.retry.Wait); err != nil {
			return nil, err
		}
	}
}

// get performs a GET request and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, signed bool, result any) error {
	body, err := c.send(ctx, http.MethodGet, path, params, signed)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// pace enforces the courtesy gap before heavily rate-limited endpoints.
func (c *Client) pace(ctx context.Context) error {
	return c.sleep(ctx, c.rateGap)
}

func cloneValues(params url.Values) url.Values {
	out := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	return out
}
