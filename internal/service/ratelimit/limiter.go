// Package ratelimit throttles inbound REST requests per client. It does not
// apply to upstream calls.
package ratelimit

import (
	"sync"

	apphttp "BCBSeries/pkg/http"

	lru "github.com/hashicorp/golang-lru"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// maxClients bounds how many per-client buckets are remembered.
const maxClients = 4096

type Limiter struct {
	mu      sync.Mutex
	buckets *lru.Cache
	rps     rate.Limit
	burst   int
}

func New(rps float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	buckets, _ := lru.New(maxClients)
	return &Limiter{buckets: buckets, rps: rate.Limit(rps), burst: burst}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *Limiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.buckets.Get(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.buckets.Add(key, lim)
	return lim
}

// Middleware rejects requests over the per-IP budget with 429.
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return apphttp.AppErrorResponse(c, apphttp.TooManyRequestsError("rate limit exceeded"))
			}
			return next(c)
		}
	}
}
