// Package client is a typed Go client for the storefront and admin API.
// GET responses are cached per path; admin mutations invalidate the
// affected paths once the server confirms them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Rakhulsr/asili-market/app/middlewares"
	"github.com/rs/zerolog"
)

const (
	pathCategories = "/api/categories"
	pathProducts   = "/api/products"
	pathOrders     = "/api/orders"
	pathPromotions = "/api/promotions"
	pathStats      = "/api/admin/stats"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	fields := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		fields = append(fields, field+": "+msg)
	}
	sort.Strings(fields)
	return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(fields, "; "))
}

func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   *QueryCache
	log     zerolog.Logger

	mu        sync.Mutex
	csrfToken string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithCache(cache *QueryCache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a client with its own cookie jar, so a successful Login keeps
// the admin session for later calls.
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   NewQueryCache(time.Minute),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}
	return c, nil
}

func (c *Client) Cache() *QueryCache {
	return c.cache
}

// get fetches path into dst, serving from the cache when possible.
func (c *Client) get(ctx context.Context, path string, dst interface{}) error {
	if body, ok := c.cache.Get(path); ok {
		return json.Unmarshal(body, dst)
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	c.cache.Set(path, body)
	return json.Unmarshal(body, dst)
}

// send performs a write and, only once it has succeeded, drops the cached
// paths it affects.
func (c *Client) send(ctx context.Context, method, path string, payload, dst interface{}, invalidates ...string) error {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	c.cache.Invalidate(invalidates...)

	if dst == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		c.mu.Lock()
		if c.csrfToken != "" {
			req.Header.Set(middlewares.CSRFHeader, c.csrfToken)
		}
		c.mu.Unlock()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, fmt.Errorf("failed to perform request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if token := resp.Header.Get(middlewares.CSRFHeader); token != "" {
		c.mu.Lock()
		c.csrfToken = token
		c.mu.Unlock()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Fields = errBody.Fields
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg(apiErr.Message)
		return nil, apiErr
	}
	return body, nil
}
