package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/orders/backend/internal/domain/shared"
)

// ErrInvalidURL is returned for feed addresses that are not http(s) URLs.
var ErrInvalidURL = shared.NewDomainError("INVALID_URL", "Неправильно указан url")

// Fetcher retrieves feed bodies by URL
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

// HTTPFetcher implements Fetcher over net/http with a request timeout and
// a response size cap.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher creates a fetcher with the given timeout and body limit
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

var _ Fetcher = (*HTTPFetcher)(nil)

// ValidateURL checks that the address is an absolute http(s) URL
func ValidateURL(feedURL string) error {
	u, err := url.Parse(feedURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Fetch downloads the feed body
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if err := ValidateURL(feedURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("feed exceeds %d bytes", f.maxBytes)
	}
	return body, nil
}
