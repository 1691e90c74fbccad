package verusd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

var (
	// ErrUnauthorized indicates the daemon rejected the RPC credentials.
	ErrUnauthorized = errors.New("rpc credentials rejected")
	// ErrMalformedResponse indicates a response that does not match the expected shape.
	ErrMalformedResponse = errors.New("malformed rpc response")
)

// RPCError is an error object returned by the daemon.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Client is a JSON-RPC client for a Verus daemon with retry on 429 and 503.
type Client struct {
	url        string
	user       string
	password   string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	requestID  atomic.Uint64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It is applied to a copy of the
// http.Client, so a shared client passed to WithHTTPClient is left untouched.
// Zero keeps the timeout of the http.Client in use.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets how often a throttled request is retried and the initial backoff.
// A negative maxRetries means no retries.
func WithRetries(maxRetries int, baseDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max(maxRetries, 0)
		c.baseDelay = baseDelay
	}
}

// NewClient creates a new daemon RPC client.
func NewClient(url, user, password string, opts ...ClientOption) *Client {
	c := &Client{
		url:        url,
		user:       user,
		password:   password,
		httpClient: &http.Client{},
		timeout:    30 * time.Second,
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.maxRetries = max(c.maxRetries, 0)
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// call performs a JSON-RPC request with retry on 429/503 and decodes the result into dest.
func (c *Client) call(ctx context.Context, method string, params []any, dest any) error {
	if params == nil {
		params = []any{}
	}
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "1.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		status, body, err := c.post(ctx, payload)
		if err != nil {
			return fmt.Errorf("calling %s: %w", method, err)
		}

		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("calling %s: %w (HTTP %d)", method, ErrUnauthorized, status)
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			lastErr = fmt.Errorf("HTTP %d from %s (attempt %d/%d)", status, method, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return lastErr
		}

		// The daemon answers RPC-level failures with HTTP 500 and a JSON error body.
		var resp rpcResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("HTTP %d from %s: %s", status, method, truncate(body, 256))
		}
		if resp.Error != nil {
			return resp.Error
		}
		if status != http.StatusOK {
			return fmt.Errorf("HTTP %d from %s: %s", status, method, truncate(body, 256))
		}
		if dest == nil {
			return nil
		}
		if len(resp.Result) == 0 || string(resp.Result) == "null" {
			return fmt.Errorf("%w: %s returned no result", ErrMalformedResponse, method)
		}
		if err := json.Unmarshal(resp.Result, dest); err != nil {
			return fmt.Errorf("%w: decoding %s result: %v", ErrMalformedResponse, method, err)
		}
		return nil
	}

	if lastErr == nil {
		return fmt.Errorf("calling %s: no request attempted", method)
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
