// Package collector implements the HTTP client that delivers lineage events
// to the collector service.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alfredjeanlab/runline/internal/lineage"
)

// LineagePath is the fixed relative path events are posted to.
const LineagePath = "/api/v1/lineage"

// DefaultTimeout bounds each collector request.
const DefaultTimeout = 10 * time.Second

// Param is a single query parameter. Parameters are carried as a slice, not a
// map, so that encounter order survives into the request URL.
type Param struct {
	Key   string
	Value string
}

// Client posts lineage events to a collector base URL. The base URL may carry
// its own query parameters; they are preserved on every request.
type Client struct {
	base       *url.URL
	apiKey     string
	httpClient *http.Client
}

// New creates a collector client for the given base URL (e.g.
// "http://localhost:5000" or "http://host:5000?api_key=abc"). When apiKey is
// non-empty, an Authorization header is set on every request.
func New(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse collector url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse collector url %q: missing scheme or host", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base:       u,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// URL builds the final request URL: path is appended to the base path, and
// the given parameters are appended after any base-configured ones. Base
// parameters keep their configured order; no deduplication is applied, the
// two sets are assumed disjoint.
func (c *Client) URL(path string, params ...Param) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path

	q := u.RawQuery
	for _, p := range params {
		pair := url.QueryEscape(p.Key) + "=" + url.QueryEscape(p.Value)
		if q == "" {
			q = pair
		} else {
			q += "&" + pair
		}
	}
	u.RawQuery = q
	return &u
}

// Emit posts a single serialized event to the lineage endpoint.
func (c *Client) Emit(ctx context.Context, event lineage.RunEvent) error {
	return c.post(ctx, LineagePath, event)
}

// APIError represents an error response from the collector.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// post performs a JSON POST to the given path and checks the response status.
func (c *Client) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path).String(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}
	return nil
}
