package di

import (
	"context"
	"fmt"
	"time"

	"BCBSeries/internal/domain/repository"
	"BCBSeries/internal/handler/api"
	icache "BCBSeries/internal/service/cache"
	"BCBSeries/internal/service/catalog"
	"BCBSeries/internal/service/ratelimit"
	"BCBSeries/internal/service/sgs"
	"BCBSeries/pkg/config"
	xhttp "BCBSeries/pkg/http"
	applogger "BCBSeries/pkg/logger"
	"BCBSeries/pkg/metrics"
	"BCBSeries/pkg/server"
)

// ProvideLogger creates the application logger with an attached error digest.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AttachDigest(applogger.NewErrorDigest(100))
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideCatalog loads the embedded series catalog.
func ProvideCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// ProvideHTTPClient creates the upstream HTTP client with the fixed headers.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithUserAgent(cfg.BCB.UserAgent),
		xhttp.WithIdleConnTimeout(90*time.Second),
	)
}

// ProvideFetcher creates the retrying fetcher from the bcb config block.
func ProvideFetcher(client *xhttp.Client, cfg *config.Config, l *applogger.Logger, m repository.Metrics) *sgs.Fetcher {
	return sgs.NewFetcher(client,
		sgs.WithTimeout(cfg.BCB.Timeout),
		sgs.WithMaxAttempts(cfg.BCB.MaxAttempts),
		sgs.WithBaseDelay(cfg.BCB.RetryDelay),
		sgs.WithFetcherLogger(l.With(applogger.String("component", "sgs.fetcher"))),
		sgs.WithMetrics(m),
	)
}

// ProvideCache creates the optional response cache. It returns a nil cache
// when caching is disabled.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (repository.BytesCache, func(), error) {
	noop := func() {}
	if !cfg.Cache.Enabled {
		return nil, noop, nil
	}

	c, err := icache.New(icache.Config{
		Backend: cfg.Cache.Backend,
		TTL:     cfg.Cache.TTL,
		Size:    cfg.Cache.Size,
		Redis: icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		},
	})
	if err != nil {
		return nil, noop, fmt.Errorf("cache: %w", err)
	}

	rc, ok := c.(*icache.RedisCache)
	if !ok {
		l.Info("response cache enabled", applogger.String("backend", cfg.Cache.Backend))
		return c, noop, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, noop, fmt.Errorf("redis ping: %w", err)
	}
	l.Info("response cache enabled",
		applogger.String("backend", cfg.Cache.Backend),
		applogger.String("addr", cfg.Cache.Redis.Addr),
	)
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideSeriesClient creates the SGS client used by every use case.
func ProvideSeriesClient(
	fetcher *sgs.Fetcher,
	cat *catalog.Catalog,
	cache repository.BytesCache,
	cfg *config.Config,
	l *applogger.Logger,
	m repository.Metrics,
) *sgs.Client {
	opts := []sgs.ClientOption{
		sgs.WithBaseURL(cfg.BCB.BaseURL),
		sgs.WithClientLogger(l.With(applogger.String("component", "sgs.client"))),
		sgs.WithClientMetrics(m),
	}
	if cache != nil {
		opts = append(opts, sgs.WithCache(cache, cfg.Cache.TTL))
	}
	return sgs.NewClient(fetcher, cat, opts...)
}

// ProvideRateLimiter creates the inbound limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.Server.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.SeriesEchoHandler,
	limiter *ratelimit.Limiter,
) *server.App {
	app := server.New(cfg, l, handler)
	if limiter != nil {
		app.Use(limiter.Middleware())
	}
	return app
}
