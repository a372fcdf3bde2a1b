package usecase

import (
	"context"
	"sync"
	"time"

	"BCBSeries/internal/domain/models"
)

// fakeSource answers from per-code tables and counts calls.
type fakeSource struct {
	mu       sync.Mutex
	ranges   map[int][]models.SeriesPoint
	lasts    map[int][]models.SeriesPoint
	errs     map[int]error
	metadata *models.SeriesMetadata
	calls    int
	lastN    int
}

func (f *fakeSource) record(n int) {
	f.mu.Lock()
	f.calls++
	f.lastN = n
	f.mu.Unlock()
}

func (f *fakeSource) FetchRange(_ context.Context, code int, _, _ string) ([]models.SeriesPoint, error) {
	f.record(0)
	if err := f.errs[code]; err != nil {
		return nil, err
	}
	return f.ranges[code], nil
}

func (f *fakeSource) FetchLast(_ context.Context, code int, count int) ([]models.SeriesPoint, error) {
	f.record(count)
	if err := f.errs[code]; err != nil {
		return nil, err
	}
	return f.lasts[code], nil
}

func (f *fakeSource) FetchMetadata(_ context.Context, code int) (*models.SeriesMetadata, error) {
	f.record(0)
	if err := f.errs[code]; err != nil {
		return nil, err
	}
	return f.metadata, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func series(values ...float64) []models.SeriesPoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.SeriesPoint, len(values))
	for i, v := range values {
		out[i] = models.SeriesPoint{Date: base.AddDate(0, i, 0), Value: v}
	}
	return out
}
