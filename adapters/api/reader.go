package api

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gofarma/domain/report"
	"gofarma/internal/errors"
)

// Client fetches report data from the pharmacy REST API
type Client struct {
	config      ClientConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new API client
func NewClient(config ClientConfig) *Client {
	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
	if config.RateLimit > 0 {
		c.rateLimiter = NewRateLimiter(config.RateLimit)
	}
	return c
}

// Close releases the rate limiter.
func (c *Client) Close() {
	if c.rateLimiter != nil {
		c.rateLimiter.Stop()
	}
}

// FetchRows retrieves a report collection. The returned slice may be empty.
func (c *Client) FetchRows(ctx context.Context, endpoint string, params url.Values) ([]report.Row, error) {
	env, err := c.fetchEnvelope(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	rows, err := env.Rows()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", endpoint)
	}
	return rows, nil
}

// FetchRecord retrieves a single domain object.
func (c *Client) FetchRecord(ctx context.Context, endpoint string, params url.Values) (report.Row, error) {
	env, err := c.fetchEnvelope(ctx, endpoint, params)
	if err != nil {
		return report.Row{}, err
	}
	record, err := env.Record()
	if err != nil {
		return report.Row{}, errors.Wrapf(err, "reading %s", endpoint)
	}
	return record, nil
}

func (c *Client) fetchEnvelope(ctx context.Context, endpoint string, params url.Values) (*Envelope, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.Transport("rate limit wait cancelled", err)
		}
	}

	reqURL := c.buildURL(endpoint, params)
	req, err := c.buildRequest(ctx, reqURL)
	if err != nil {
		return nil, errors.Transport("failed to build request", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Transport("API request failed", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errors.Transport("failed to read response", err)
	}

	meta := ResponseMetadata{
		URL:          reqURL,
		StatusCode:   resp.StatusCode,
		ResponseTime: time.Since(start),
		FetchedAt:    start,
		ContentType:  resp.Header.Get("Content-Type"),
	}
	log.Printf("[APIClient] GET %s -> %d (%s)", meta.URL, meta.StatusCode, meta.ResponseTime.Round(time.Millisecond))

	env, err := DecodeEnvelope(body)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	switch {
	case err != nil && !ok:
		return nil, errors.Transport(fmt.Sprintf("API returned status %d", resp.StatusCode), nil)
	case err != nil:
		return nil, err
	case !ok && env.Success():
		return nil, errors.Transport(fmt.Sprintf("API returned status %d", resp.StatusCode), nil)
	}
	return env, nil
}

// buildURL joins the base URL, the endpoint and the query parameters
func (c *Client) buildURL(endpoint string, params url.Values) string {
	u := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// buildRequest creates an HTTP request with authentication
func (c *Client) buildRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	switch c.config.AuthMethod {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	case "api_key":
		req.Header.Set("X-API-Key", c.config.AuthToken)
	case "basic":
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	return req, nil
}
