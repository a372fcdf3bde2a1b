package usecase

import (
	"context"
	"errors"
	"fmt"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	domrepo "BCBSeries/internal/domain/repository"
)

// DefaultLastCount is used when no count is given for last-N queries.
const DefaultLastCount = 10

// SeriesUseCase serves raw values and metadata for a single series.
type SeriesUseCase struct {
	source  domrepo.SeriesSource
	catalog domrepo.Catalog
}

func NewSeriesUseCase(source domrepo.SeriesSource, catalog domrepo.Catalog) *SeriesUseCase {
	return &SeriesUseCase{source: source, catalog: catalog}
}

type GetValuesParams struct {
	Code int
	From string
	To   string
}

// Values returns the observations in [From, To]. An empty window is a
// normal result with a message, not an error.
func (uc *SeriesUseCase) Values(ctx context.Context, p GetValuesParams) (*models.SeriesValues, error) {
	if p.Code <= 0 {
		return nil, errs.Invalidf("series code must be positive, got %d", p.Code)
	}

	res := &models.SeriesValues{Series: describe(uc.catalog, p.Code)}

	points, err := uc.source.FetchRange(ctx, p.Code, p.From, p.To)
	if errors.Is(err, errs.ErrNoData) {
		res.Message = fmt.Sprintf("no data found for series %d in the requested period", p.Code)
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	res.Total = len(points)
	res.Period = periodOf(points)
	res.Points = points
	return res, nil
}

// Last returns the n most recent observations; n <= 0 means DefaultLastCount.
func (uc *SeriesUseCase) Last(ctx context.Context, code, n int) (*models.SeriesValues, error) {
	if code <= 0 {
		return nil, errs.Invalidf("series code must be positive, got %d", code)
	}
	if n <= 0 {
		n = DefaultLastCount
	}

	res := &models.SeriesValues{Series: describe(uc.catalog, code)}

	points, err := uc.source.FetchLast(ctx, code, n)
	if errors.Is(err, errs.ErrNoData) {
		res.Message = fmt.Sprintf("no data found for series %d", code)
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	res.Total = len(points)
	res.Period = periodOf(points)
	res.Points = points
	return res, nil
}

// Metadata resolves series metadata through the source's fallback chain.
func (uc *SeriesUseCase) Metadata(ctx context.Context, code int) (*models.SeriesMetadata, error) {
	if code <= 0 {
		return nil, errs.Invalidf("series code must be positive, got %d", code)
	}
	return uc.source.FetchMetadata(ctx, code)
}
