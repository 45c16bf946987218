package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Default request settings.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultBackoffBase = 500 * time.Millisecond
	DefaultMaxRetries  = 3

	// DefaultUserAgent is a realistic browser identity; many news sites
	// reject obvious bot user agents outright.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Kind classifies a fetch failure.
type Kind int

const (
	// KindTimeout means the request exceeded its deadline.
	KindTimeout Kind = iota
	// KindConnection covers DNS, reset, refused and exhausted 5xx retries.
	KindConnection
	// KindStatus means the server answered with a non-retryable non-2xx code.
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindStatus:
		return "status"
	}
	return "unknown"
}

// Error is a classified fetch failure.
type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client issues browser-like GET requests with a per-request timeout and a
// bounded retry for retry-eligible 5xx responses. The orchestrator owns the
// outer attempt loop; one Get call is one logical attempt.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// MaxStatusRetries is the number of extra tries on 500/502/503/504.
	// Zero means DefaultMaxRetries.
	MaxStatusRetries int
	// BackoffBase is the first inter-retry delay; it doubles each retry.
	BackoffBase time.Duration
	Logger      zerolog.Logger

	// sleep is replaceable in tests to keep backoff deterministic.
	sleep func(time.Duration)
}

// Get fetches the page body or returns a classified *Error.
func (c *Client) Get(ctx context.Context, pageURL string) ([]byte, error) {
	retries := c.MaxStatusRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}
	backoff := c.BackoffBase
	if backoff <= 0 {
		backoff = DefaultBackoffBase
	}

	var lastStatus int
	for i := 0; i <= retries; i++ {
		body, status, err := c.tryOnce(ctx, pageURL)
		if err != nil {
			return nil, classify(err)
		}
		if status >= 200 && status <= 299 {
			return body, nil
		}
		if !retryableStatus(status) {
			return nil, &Error{Kind: KindStatus, Status: status, Err: fmt.Errorf("unexpected status %d", status)}
		}
		lastStatus = status
		if i < retries {
			c.Logger.Warn().Int("status", status).Str("url", pageURL).Msg("server error, backing off")
			c.doSleep(backoff << i)
		}
	}
	return nil, &Error{Kind: KindConnection, Status: lastStatus, Err: fmt.Errorf("server error %d after %d retries", lastStatus, retries)}
}

func (c *Client) tryOnce(ctx context.Context, pageURL string) ([]byte, int, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("new request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so keep-alive connections can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return b, resp.StatusCode, nil
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// classify maps a transport error to Timeout or Connection.
func classify(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindConnection, Err: err}
}

func (c *Client) doSleep(d time.Duration) {
	if c.sleep != nil {
		c.sleep(d)
		return
	}
	time.Sleep(d)
}
