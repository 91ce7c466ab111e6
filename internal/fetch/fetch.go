// Package fetch retrieves contacts feeds over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcncl/rolodex/internal/errors"
)

// Options configure a Fetcher.
type Options struct {
	// MaxBodyBytes caps how much of a response body is read. Responses
	// larger than this fail rather than truncate.
	MaxBodyBytes int64
	// UserAgent is sent on every request.
	UserAgent string
}

// Fetcher downloads a feed document. Timeouts and cancellation are the
// caller's business via the context; the zero-timeout default client is
// used so a context deadline is the only clock in play.
type Fetcher struct {
	client *http.Client
	opts   Options
	logger *zap.Logger
}

// NewFetcher creates a Fetcher. A nil logger disables logging.
func NewFetcher(opts Options, logger *zap.Logger) *Fetcher {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 8 << 20
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "rolodex"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client: &http.Client{},
		opts:   opts,
		logger: logger,
	}
}

// Fetch downloads the document at rawURL and returns its raw bytes. Only
// http and https URLs are accepted, and only a 200 response is treated
// as success.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("cannot parse URL '%s'", rawURL), errors.ErrInvalidURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.NewFetchError(fmt.Sprintf("unsupported URL scheme '%s'", u.Scheme), errors.ErrInvalidURL)
	}

	// Correlation ID for matching request/response log lines.
	requestID := uuid.NewString()
	log := f.logger.With(zap.String("request_id", requestID), zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewFetchError("failed to build request", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log.Debug("fetching contacts feed")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("request to '%s' failed", rawURL), err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn("failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFetchError(
			fmt.Sprintf("'%s' returned status %d", rawURL, resp.StatusCode),
			fmt.Errorf("unexpected status: %s", resp.Status),
		)
	}

	// Read one byte past the cap so an oversized body is distinguishable
	// from one that is exactly at the cap.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes+1))
	if err != nil {
		return nil, errors.NewFetchError("failed to read response body", err)
	}
	if int64(len(body)) > f.opts.MaxBodyBytes {
		return nil, errors.NewFetchError(
			fmt.Sprintf("response body exceeds %d bytes", f.opts.MaxBodyBytes),
			nil,
		)
	}

	log.Debug("fetched contacts feed",
		zap.Int("bytes", len(body)),
		zap.String("content_type", resp.Header.Get("Content-Type")),
	)

	return body, nil
}
