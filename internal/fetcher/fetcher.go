package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/lakshitcodes/DocuMed/internal/contextutil"
)

const (
	// BrowserUserAgent is sent with every request; several sources reject non-browser clients.
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultMaxBytes caps the size of a fetched document.
	DefaultMaxBytes = 5 << 20
)

// ErrTooLarge is returned when a document exceeds the configured byte cap.
var ErrTooLarge = errors.New("document too large")

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d fetching %s", e.StatusCode, e.URL)
}

// Config holds fetcher settings.
type Config struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxBytes          int64
}

// Fetcher downloads source documents with a browser User-Agent and a shared rate limit.
type Fetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// New creates a Fetcher. Zero values fall back to defaults; a non-positive
// RequestsPerSecond disables rate limiting.
func New(cfg Config) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, burst),
		maxBytes: maxBytes,
	}
}

// Fetch GETs url and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", BrowserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: content length %d exceeds %d bytes", ErrTooLarge, resp.ContentLength, f.maxBytes)
	}

	// Read one byte past the cap so an oversized body is detected rather than truncated.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, f.maxBytes)
	}

	logger.DebugContext(ctx, "fetched document", "url", url, "bytes", len(body), "duration_ms", time.Since(start).Milliseconds())
	return body, nil
}
