// Package liveness probes URLs for HTTP reachability.
package liveness

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// StatusUnreachable is returned for any failure that produced no HTTP
// response: timeout, DNS failure, connection refused, malformed URL.
const StatusUnreachable = -1

// BrokenStatuses are the status codes that mark a webpage as needing
// replacement.
var BrokenStatuses = map[int]bool{
	http.StatusNotFound: true,
	http.StatusLocked:   true,
}

// Checker probes a URL and reports its HTTP status.
type Checker interface {
	// CheckStatus returns the HTTP status code for url, or StatusUnreachable
	// if no response could be obtained. It never returns an error.
	CheckStatus(ctx context.Context, url string) int
}

// Option configures the checker.
type Option func(*httpChecker)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpChecker) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with probes.
func WithUserAgent(ua string) Option {
	return func(c *httpChecker) {
		c.userAgent = ua
	}
}

// WithRateLimit caps probes at n per second. Zero or negative disables
// limiting.
func WithRateLimit(n float64) Option {
	return func(c *httpChecker) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

type httpChecker struct {
	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
	client    *http.Client
}

// NewChecker creates a single-attempt HEAD-first status checker.
func NewChecker(opts ...Option) Checker {
	c := &httpChecker{
		timeout:   10 * time.Second,
		userAgent: "Mozilla/5.0 (compatible; WebpageChecker/1.0)",
	}
	for _, o := range opts {
		o(c)
	}
	c.client = &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: c.timeout,
			}).DialContext,
			TLSHandshakeTimeout: c.timeout,
		},
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	return c
}

func (c *httpChecker) CheckStatus(ctx context.Context, url string) int {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return StatusUnreachable
		}
	}

	status := c.probe(ctx, http.MethodHead, url)

	// Some servers reject HEAD outright; retry those once with GET so a
	// working site is not reported as broken.
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status = c.probe(ctx, http.MethodGet, url)
	}

	zap.L().Debug("liveness probe", zap.String("url", url), zap.Int("status", status))
	return status
}

func (c *httpChecker) probe(ctx context.Context, method, url string) int {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return StatusUnreachable
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return StatusUnreachable
	}
	defer resp.Body.Close() //nolint:errcheck

	return resp.StatusCode
}
