package sgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"BCBSeries/internal/domain/errs"
	drepo "BCBSeries/internal/domain/repository"
	apphttp "BCBSeries/pkg/http"
	"BCBSeries/pkg/logger"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultUserAgent   = "bcb-series/1.1.0"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// FetcherOption configures Fetcher.
type FetcherOption func(*Fetcher)

// Fetcher executes one logical GET with a per-attempt timeout and bounded
// exponential backoff. It keeps no state between calls.
type Fetcher struct {
	http        *apphttp.Client
	timeout     time.Duration
	maxAttempts int
	baseDelay   time.Duration
	log         *logger.Logger
	metrics     drepo.Metrics
	sleep       SleepFunc
	now         func() time.Time
}

// NewFetcher creates a fetcher over client with the default retry policy.
func NewFetcher(client *apphttp.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		http:        client,
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		log:         logger.Nop(),
		metrics:     nopMetrics{},
		sleep:       sleepCtx,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithMaxAttempts(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

func WithBaseDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d >= 0 {
			f.baseDelay = d
		}
	}
}

func WithFetcherLogger(l *logger.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}

func WithMetrics(m drepo.Metrics) FetcherOption {
	return func(f *Fetcher) {
		if m != nil {
			f.metrics = m
		}
	}
}

// WithSleep replaces the backoff wait, mainly for tests.
func WithSleep(s SleepFunc) FetcherOption {
	return func(f *Fetcher) {
		if s != nil {
			f.sleep = s
		}
	}
}

// WithClock replaces the latency clock.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// Fetch GETs url and returns the JSON body. endpoint labels logs and metrics.
//
// 404 fails at once with ErrNotFound. Timeouts, network failures and other
// non-2xx statuses are retried after base*2^(attempt-1); when every attempt
// fails the result is a *errs.RetryError. Cancellation of ctx is returned as
// is and never retried.
func (f *Fetcher) Fetch(ctx context.Context, endpoint, url string) (json.RawMessage, error) {
	start := f.now()
	defer func() {
		f.metrics.RecordLatency(endpoint, f.now().Sub(start).Seconds())
	}()

	var last error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		body, err := f.attempt(ctx, url)
		f.metrics.RecordAttempt(endpoint, outcome(err))
		if err == nil {
			f.log.Debug("sgs fetch ok",
				logger.String("endpoint", endpoint),
				logger.String("url", url),
				logger.Int("attempt", attempt),
			)
			return body, nil
		}

		if ctx.Err() != nil || !errs.Retryable(err) {
			return nil, err
		}

		last = err
		if attempt == f.maxAttempts {
			break
		}

		delay := f.baseDelay * time.Duration(1<<(attempt-1))
		f.log.Warn("sgs fetch failed, retrying",
			logger.String("endpoint", endpoint),
			logger.String("url", url),
			logger.Int("attempt", attempt),
			logger.Duration("delay_ms", delay),
			logger.Error(err),
		)
		f.metrics.RecordRetry(endpoint)

		if err := f.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	f.log.Error("sgs fetch exhausted retries",
		logger.String("endpoint", endpoint),
		logger.String("url", url),
		logger.Int("attempts", f.maxAttempts),
		logger.Error(last),
	)
	return nil, &errs.RetryError{Attempts: f.maxAttempts, Last: last}
}

func (f *Fetcher) attempt(ctx context.Context, url string) (json.RawMessage, error) {
	actx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.http.Get(actx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(actx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", errs.ErrTimeout, f.timeout)
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.ErrNotFound
	case !resp.OK():
		return nil, fmt.Errorf("%w: HTTP %d", errs.ErrUpstream, resp.StatusCode)
	}

	if !json.Valid(resp.Body) {
		return nil, errs.Integrityf("response body is not valid JSON")
	}
	return json.RawMessage(resp.Body), nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrTimeout):
		return "timeout"
	case errors.Is(err, errs.ErrIntegrity):
		return "integrity"
	case errors.Is(err, errs.ErrUpstream):
		return "upstream"
	default:
		return "canceled"
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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

type nopMetrics struct{}

func (nopMetrics) RecordAttempt(string, string)  {}
func (nopMetrics) RecordRetry(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) RecordCache(string)            {}
