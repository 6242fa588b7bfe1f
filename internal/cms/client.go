package cms

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

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/metrics"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const (
	metricsService     = "cms"
	responseReadLimit  = 8 << 20
	defaultTimeout     = 10 * time.Second
	errorBodyReadLimit = 1024
)

var errBaseURLRequired = errors.New("cms base url is required")

// Client fetches content from the CMS GraphQL endpoint. Every call is a
// single round trip; nothing is cached or retried.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	metrics    *metrics.UpstreamMetrics
	logg       *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) { c.logg = logg }
}

// NewClient targets <baseURL>/graphql with a bearer token.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	c := &Client{
		endpoint:   trimmed + "/graphql",
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphQLError             `json:"errors"`
}

func joinMessages(errs []graphQLError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) == 0 {
		return "unknown error"
	}
	return strings.Join(msgs, "; ")
}

func (c *Client) execute(ctx context.Context, op string, doc Document) (data map[string]json.RawMessage, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Observe(metricsService, op, start, err)
		if c.logg != nil {
			logCtx := c.logg.WithFields(ctx, map[string]any{"operation": doc.OperationName, "duration_ms": time.Since(start).Milliseconds()})
			if err != nil {
				c.logg.Warn(logCtx, "cms.query.failed")
			} else {
				c.logg.Debug(logCtx, "cms.query")
			}
		}
	}()

	vars := doc.Variables
	if vars == nil {
		vars = map[string]any{}
	}
	payload, err := json.Marshal(graphQLRequest{Query: doc.Query, OperationName: doc.OperationName, Variables: vars})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal cms request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, queryFailure(op, 0, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, queryFailure(op, 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseReadLimit))
	if err != nil {
		return nil, queryFailure(op, resp.StatusCode, err.Error())
	}

	var out graphQLResponse
	decodeErr := json.Unmarshal(body, &out)
	if len(out.Errors) > 0 {
		return nil, queryFailure(op, resp.StatusCode, joinMessages(out.Errors))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := body
		if len(snippet) > errorBodyReadLimit {
			snippet = snippet[:errorBodyReadLimit]
		}
		return nil, queryFailure(op, resp.StatusCode, fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
	}
	if decodeErr != nil {
		return nil, queryFailure(op, resp.StatusCode, "decode response: "+decodeErr.Error())
	}
	return out.Data, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Find returns the entries of a collection type. An empty result has empty
// Data and zero Meta.
func (c *Client) Find(ctx context.Context, contentType string, p Params) (*Collection, error) {
	doc := BuildFind(contentType, p)
	data, err := c.execute(ctx, "find", doc)
	if err != nil {
		return nil, err
	}

	result := &Collection{Data: []Entry{}}
	raw, ok := data[doc.Root]
	if !ok || isNull(raw) {
		return result, nil
	}
	var payload struct {
		Data []Entry `json:"data"`
		Meta Meta    `json:"meta"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, queryFailure("find", 0, "decode "+doc.Root+": "+err.Error())
	}
	if payload.Data != nil {
		result.Data = payload.Data
	}
	result.Meta = payload.Meta
	return result, nil
}

// FindOne returns the entry with documentID or a NotFoundError.
func (c *Client) FindOne(ctx context.Context, contentType, documentID string, p Params) (Entry, error) {
	doc := BuildFindOne(contentType, documentID, p)
	data, err := c.execute(ctx, "find_one", doc)
	if err != nil {
		return nil, err
	}
	raw, ok := data[doc.Root]
	if !ok || isNull(raw) {
		return nil, notFound(contentType, documentID)
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, queryFailure("find_one", 0, "decode "+doc.Root+": "+err.Error())
	}
	if entry.ID() == "" && entry.DocumentID() == "" {
		return nil, notFound(contentType, documentID)
	}
	return entry, nil
}

// FindByField returns the first entry whose field equals value, or nil.
func (c *Client) FindByField(ctx context.Context, contentType, field string, value any, p Params) (Entry, error) {
	filters := make(map[string]any, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[field] = map[string]any{"eq": value}
	p.Filters = filters
	p.Pagination = &Pagination{Limit: 1}

	res, err := c.Find(ctx, contentType, p)
	if err != nil {
		return nil, err
	}
	if len(res.Data) == 0 {
		return nil, nil
	}
	return res.Data[0], nil
}

// FindSingle returns a single-type entry, or nil when the CMS has none.
func (c *Client) FindSingle(ctx context.Context, contentType string, p Params) (Entry, error) {
	doc := BuildFindSingle(contentType, p)
	data, err := c.execute(ctx, "find_single", doc)
	if err != nil {
		return nil, err
	}
	raw, ok := data[doc.Root]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, queryFailure("find_single", 0, "decode "+doc.Root+": "+err.Error())
	}
	if entry.DocumentID() == "" {
		return nil, nil
	}
	return entry, nil
}

// Query runs a hand-written document and decodes the data object into dst.
// The document is parsed locally first so syntax errors never reach the CMS.
func (c *Client) Query(ctx context.Context, document string, variables map[string]any, dst any) error {
	parsed, parseErr := parser.ParseQuery(&ast.Source{Name: "query", Input: document})
	if parseErr != nil {
		return queryFailure("query", 0, parseErr.Error())
	}
	var name string
	if len(parsed.Operations) > 0 {
		name = parsed.Operations[0].Name
	}

	data, err := c.execute(ctx, "query", Document{OperationName: name, Query: document, Variables: variables})
	if err != nil {
		return err
	}
	if dst == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "re-encode cms data")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return queryFailure("query", 0, "decode data: "+err.Error())
	}
	return nil
}
