package fpros

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tyler180/injury-windows/internal/config"
)

// ErrFetch wraps every retrieval failure; callers treat it as "no data".
var ErrFetch = errors.New("fetch failed")

// Fetcher returns the body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

// HTTPFetcher is a polite client: browser UA, retries on 429/5xx with jittered
// backoff, Retry-After respected.
type HTTPFetcher struct {
	client *http.Client
	cfg    config.Fetch
	log    *slog.Logger
}

func NewHTTPFetcher(cfg config.Fetch, logger *slog.Logger) *HTTPFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:    cfg,
		log:    logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < f.cfg.MaxAttempts; attempt++ {
		body, status, retryAfter, err := f.get(ctx, url)
		if err == nil && status == http.StatusOK {
			return body, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		var wait time.Duration
		switch {
		case err != nil:
			lastErr = err
			wait = backoff(attempt, f.cfg.RetryBase, f.cfg.RetryMax)
		case status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("status %d for %s", status, url)
			wait = retryAfter
			if wait == 0 {
				wait = f.cfg.Cooldown
			}
		case status >= 500 && status <= 599:
			lastErr = fmt.Errorf("status %d for %s", status, url)
			wait = backoff(attempt, f.cfg.RetryBase, f.cfg.RetryMax)
		default:
			return "", fmt.Errorf("%w: status %d for %s", ErrFetch, status, url)
		}

		f.log.Debug("fetch retry", "url", url, "attempt", attempt+1, "wait", wait, "err", lastErr)
		if attempt == f.cfg.MaxAttempts-1 {
			break
		}
		if err := sleepCtx(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: exhausted retries: %v", ErrFetch, lastErr)
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (string, int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, 0, err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", resp.StatusCode, parseRetryAfter(resp.Header.Get("Retry-After")), nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, 0, err
	}
	f.log.Debug("fetched", "url", url, "bytes", len(b))
	return string(b), resp.StatusCode, 0, nil
}

func parseRetryAfter(h string) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(h); err == nil {
		return time.Duration(secs) * time.Second
	}
	// HTTP date
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// exponential + jitter, capped
func backoff(attempt int, base, max time.Duration) time.Duration {
	d := base * time.Duration(1<<attempt)
	j := time.Duration(rand.Intn(250)) * time.Millisecond
	if d+j > max {
		return max
	}
	return d + j
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
