package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	MethodGet = http.MethodGet

	HeaderAccept    = "Accept"
	HeaderUserAgent = "User-Agent"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// RequestOptions holds HTTP request parameters.
type RequestOptions struct {
	Method      string
	URL         string
	Headers     map[string]string
	QueryParams map[string][]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Client is an HTTP client that stamps fixed headers on every request.
// Deadlines come from the caller's context.
type Client struct {
	headers   map[string]string
	transport http.RoundTripper
	maxBody   int64
	client    *http.Client
}

// NewClient creates a new HTTP client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		headers: map[string]string{HeaderAccept: "application/json"},
		maxBody: 32 << 20,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Transport: c.transport}
	return c
}

// Do sends the request and reads the whole body. The body is always closed.
func (c *Client) Do(ctx context.Context, opts *RequestOptions) (*Response, error) {
	req, err := c.buildRequest(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}, nil
}

// Get is a shorthand for a GET without extra headers.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, &RequestOptions{Method: MethodGet, URL: url})
}

func (c *Client) buildRequest(ctx context.Context, opts *RequestOptions) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	c.addQueryParams(req, opts.QueryParams)
	c.addHeaders(req, opts.Headers)

	return req, nil
}

func (c *Client) addQueryParams(req *http.Request, params map[string][]string) {
	if len(params) > 0 {
		q := req.URL.Query()
		for key, values := range params {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
}

func (c *Client) addHeaders(req *http.Request, headers map[string]string) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithUserAgent sets the client identifier header.
func WithUserAgent(ua string) ClientOption {
	return WithHeader(HeaderUserAgent, ua)
}

// WithTransport overrides the round tripper.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithMaxBodySize caps how many response bytes are read.
func WithMaxBodySize(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithIdleConnTimeout installs a transport that drops idle connections after d.
func WithIdleConnTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.IdleConnTimeout = d
		c.transport = t
	}
}
