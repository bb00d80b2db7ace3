package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/honeybarrel/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// maxResponseBytes caps a listings page body
	maxResponseBytes = 64 << 20
	// maxErrorBodyBytes caps how much of an error body is logged
	maxErrorBodyBytes = 512
	// baseBackoff is the delay before the first retry
	baseBackoff = 500 * time.Millisecond
)

// ClientConfig holds configuration for the catalog client
type ClientConfig struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxAttempts       int
}

// Client handles communication with the listings search API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	maxAttempts int
	debug       bool
}

// NewClient creates a new listings API client
func NewClient(baseURL string, config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	burst := config.Burst
	if burst <= 0 {
		burst = 10
	}

	attempts := config.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		maxAttempts: attempts,
	}
}

// SetDebug toggles request-level logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...any) {
	if c.debug {
		log.Printf("[CATALOG] "+format, args...)
	}
}

// exponentialBackoff returns the delay before retry number attempt (1-based)
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseBackoff * time.Duration(1<<(attempt-1))
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// pageURL builds the listed-only page request URL
func (c *Client) pageURL(offset, pageSize int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	params := u.Query()
	params.Set("from", strconv.Itoa(offset))
	params.Set("size", strconv.Itoa(pageSize))
	params.Set("listed", "true")
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// doRequest executes an HTTP GET request with the headers the listings API expects
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", "HoneyBarrel/1.0")

	return c.httpClient.Do(req)
}

// FetchPage requests one page of listed catalog entries. Every failure is
// returned as *domain.FetchError. Network faults and transient statuses
// are retried up to the configured attempts; client errors and
// unparseable bodies never are.
func (c *Client) FetchPage(ctx context.Context, offset, pageSize int) ([]domain.CatalogEntry, error) {
	if offset < 0 || pageSize <= 0 {
		return nil, &domain.FetchError{
			Offset: offset,
			Kind:   domain.FaultClient,
			Err:    fmt.Errorf("%w: offset %d, size %d", domain.ErrInvalidRequest, offset, pageSize),
		}
	}

	reqURL, err := c.pageURL(offset, pageSize)
	if err != nil {
		return nil, &domain.FetchError{Offset: offset, Kind: domain.FaultClient, Err: err}
	}

	var lastErr *domain.FetchError
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := exponentialBackoff(attempt - 1)
			c.debugLog("Retrying offset %d in %s (attempt %d/%d)", offset, delay, attempt, c.maxAttempts)
			select {
			case <-ctx.Done():
				return nil, &domain.FetchError{Offset: offset, Kind: domain.FaultNetwork, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, &domain.FetchError{Offset: offset, Kind: domain.FaultNetwork, Err: fmt.Errorf("rate limiter error: %w", err)}
		}

		c.debugLog("GET %s", reqURL)
		entries, fault := c.fetchOnce(ctx, reqURL, offset)
		if fault == nil {
			c.debugLog("Received %d listings at offset %d", len(entries), offset)
			return entries, nil
		}

		lastErr = fault
		if !retryable(fault) || ctx.Err() != nil {
			return nil, fault
		}
		log.Printf("[CATALOG] Attempt %d/%d failed at offset %d: %v", attempt, c.maxAttempts, offset, fault)
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, reqURL string, offset int) ([]domain.CatalogEntry, *domain.FetchError) {
	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		var urlErr *url.Error
		if !errors.As(err, &urlErr) {
			// Request construction failed; retrying cannot help
			return nil, &domain.FetchError{Offset: offset, Kind: domain.FaultClient, Err: err}
		}
		return nil, &domain.FetchError{Offset: offset, Kind: domain.FaultNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
		kind := domain.FaultServer
		if resp.StatusCode < 500 {
			kind = domain.FaultClient
		}
		return nil, &domain.FetchError{
			Offset:     offset,
			StatusCode: resp.StatusCode,
			Kind:       kind,
			Err:        fmt.Errorf("unexpected status: %s", string(body)),
		}
	}

	body, err := readLimitedBody(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, &domain.FetchError{Offset: offset, StatusCode: resp.StatusCode, Kind: domain.FaultNetwork, Err: err}
	}

	entries, err := decodeListings(body)
	if err != nil {
		return nil, &domain.FetchError{
			Offset:     offset,
			StatusCode: resp.StatusCode,
			Kind:       domain.FaultParse,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return entries, nil
}

// retryable reports whether another attempt at the same page may succeed
func retryable(fault *domain.FetchError) bool {
	switch fault.Kind {
	case domain.FaultNetwork, domain.FaultServer:
		return true
	case domain.FaultClient:
		return fault.StatusCode == http.StatusTooManyRequests || fault.StatusCode == http.StatusRequestTimeout
	default:
		return false
	}
}
