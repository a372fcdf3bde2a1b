package repository

import (
	"context"
	"time"

	"BCBSeries/internal/domain/models"
)

// SeriesSource retrieves series observations and metadata from the provider.
type SeriesSource interface {
	FetchRange(ctx context.Context, code int, from, to string) ([]models.SeriesPoint, error)
	FetchLast(ctx context.Context, code int, count int) ([]models.SeriesPoint, error)
	FetchMetadata(ctx context.Context, code int) (*models.SeriesMetadata, error)
}

// Catalog is the read-only index of curated series.
type Catalog interface {
	Lookup(code int) (models.SeriesDescriptor, bool)
	Search(term string) []models.SeriesDescriptor
	FilterByCategory(category string) []models.SeriesDescriptor
	All() []models.SeriesDescriptor
	Categories() []string
}

// Metrics records upstream fetch behavior.
type Metrics interface {
	RecordAttempt(endpoint, outcome string)
	RecordRetry(endpoint string)
	RecordLatency(endpoint string, seconds float64)
	RecordCache(result string)
}

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
