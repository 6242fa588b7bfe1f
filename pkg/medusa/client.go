// Package medusa is a thin client for the commerce backend's store API.
package medusa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/metrics"
)

const (
	metricsService       = "commerce"
	publishableKeyHeader = "x-publishable-api-key"
	errorBodyReadLimit   = 4096
	defaultTimeout       = 10 * time.Second
)

var errBaseURLRequired = errors.New("commerce base url is required")

// Client talks to the commerce store API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	publishableKey string
	metrics        *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPublishableKey sets the publishable API key sent on every request.
func WithPublishableKey(key string) Option {
	return func(c *Client) {
		c.publishableKey = strings.TrimSpace(key)
	}
}

func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the commerce client for baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return client, nil
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	token  string
}

func (c *Client) do(ctx context.Context, req request, out any) (err error) {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "commerce client not configured")
	}
	start := time.Now()
	defer func() { c.metrics.Observe(metricsService, req.op, start, err) }()

	var body io.Reader
	if req.body != nil {
		payload, mErr := json.Marshal(req.body)
		if mErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, mErr, "marshal "+req.op+" request")
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+req.op+" request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.publishableKey != "" {
		httpReq.Header.Set(publishableKeyHeader, c.publishableKey)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+req.op+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		apiErr := parseAPIError(resp.StatusCode, msg)
		return pkgerrors.Wrap(codeForStatus(resp.StatusCode), apiErr, req.op+" failed")
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+req.op+" response")
	}
	return nil
}

func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(strings.TrimSpace(id))
	}
	return fmt.Sprintf(format, args...)
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s is required", name)
	}
	return nil
}
