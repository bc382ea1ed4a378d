// Package fetch performs HTTP GETs for the scraping paths, retrying
// transient failures with exponential backoff and jitter.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const userAgent = "leadgen/1.0"

const (
	defaultAttempts   = 3
	defaultBackoff    = 200 * time.Millisecond
	defaultMaxBackoff = 2 * time.Second
)

// StatusError reports a non-200 response. 429 and 5xx are retried.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// Client is a retrying HTTP fetcher.
type Client struct {
	http     *http.Client
	attempts int
	backoff  time.Duration
}

// New builds a Client with the given request timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
}

// Document fetches url and parses the body as HTML.
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := c.do(ctx, url, func(resp *http.Response) error {
		d, parseErr := goquery.NewDocumentFromReader(resp.Body)
		if parseErr != nil {
			return eris.Wrapf(parseErr, "fetch: parse %s", url)
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) do(ctx context.Context, url string, handle func(*http.Response) error) error {
	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			if delay > defaultMaxBackoff {
				delay = defaultMaxBackoff
			}
			// Jitter up to 25% to avoid thundering retries.
			delay += time.Duration(rand.Int64N(int64(delay)/4 + 1))

			zap.L().Debug("fetch: retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return lastErr
			case <-timer.C:
			}
		}

		lastErr = c.once(ctx, url, handle)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) once(ctx context.Context, url string, handle func(*http.Response) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "fetch: build request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "fetch: get %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, Code: resp.StatusCode}
	}
	return handle(resp)
}

// retryable reports whether the error is worth another attempt: retryable
// HTTP statuses, network timeouts, and connection-level failures.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
