package usecase

import (
	"context"
	"errors"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	domrepo "BCBSeries/internal/domain/repository"
	"BCBSeries/internal/services/analytics"
)

// VariationUseCase computes the variation of one series over a window.
type VariationUseCase struct {
	source  domrepo.SeriesSource
	catalog domrepo.Catalog
}

func NewVariationUseCase(source domrepo.SeriesSource, catalog domrepo.Catalog) *VariationUseCase {
	return &VariationUseCase{source: source, catalog: catalog}
}

type GetVariationParams struct {
	Code int
	From string
	To   string
	// Periods > 1 selects the last N observations and ignores From/To.
	Periods int
}

// Variation summarizes the window. Fewer than two observations is reported
// in the result message, not as an error.
func (uc *VariationUseCase) Variation(ctx context.Context, p GetVariationParams) (*models.VariationReport, error) {
	if p.Code <= 0 {
		return nil, errs.Invalidf("series code must be positive, got %d", p.Code)
	}
	if p.Periods < 0 {
		return nil, errs.Invalidf("periods cannot be negative, got %d", p.Periods)
	}

	var (
		points []models.SeriesPoint
		err    error
	)
	if p.Periods > 1 {
		points, err = uc.source.FetchLast(ctx, p.Code, p.Periods)
	} else {
		points, err = uc.source.FetchRange(ctx, p.Code, p.From, p.To)
	}
	if err != nil && !errors.Is(err, errs.ErrNoData) {
		return nil, err
	}

	report := &models.VariationReport{Series: describe(uc.catalog, p.Code)}
	if len(points) > 0 {
		report.Period = periodOf(points)
	}

	result, err := analytics.Summarize(points)
	if errors.Is(err, errs.ErrInsufficientData) {
		report.Message = errs.ErrInsufficientData.Error()
		return report, nil
	}
	if err != nil {
		return nil, err
	}
	report.Analysis = &result
	return report, nil
}
