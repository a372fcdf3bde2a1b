package usecase

import (
	"context"
	"errors"
	"strings"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	domrepo "BCBSeries/internal/domain/repository"
	"BCBSeries/internal/services/analytics"
	"BCBSeries/pkg/util"
)

const (
	MinCompareSeries = 2
	MaxCompareSeries = 5
)

// CompareUseCase ranks several series by variation over the same window.
type CompareUseCase struct {
	source  domrepo.SeriesSource
	catalog domrepo.Catalog
}

func NewCompareUseCase(source domrepo.SeriesSource, catalog domrepo.Catalog) *CompareUseCase {
	return &CompareUseCase{source: source, catalog: catalog}
}

type CompareParams struct {
	Codes []int
	From  string
	To    string
}

// Compare validates the request before any fetch, then fetches every series
// concurrently. Members that fail or lack data are listed after the ranking.
func (uc *CompareUseCase) Compare(ctx context.Context, p CompareParams) (*models.Comparison, error) {
	if n := len(p.Codes); n < MinCompareSeries || n > MaxCompareSeries {
		return nil, errs.Invalidf("compare needs between %d and %d series, got %d", MinCompareSeries, MaxCompareSeries, n)
	}
	for _, code := range p.Codes {
		if code <= 0 {
			return nil, errs.Invalidf("series code must be positive, got %d", code)
		}
	}
	if strings.TrimSpace(p.From) == "" || strings.TrimSpace(p.To) == "" {
		return nil, errs.Invalidf("from and to are required")
	}

	outcomes := make([]models.SeriesOutcome, len(p.Codes))
	fanOut(len(p.Codes), func(i int) {
		outcomes[i] = uc.measure(ctx, p.Codes[i], p.From, p.To)
	})

	ranking := analytics.Rank(outcomes)
	return &models.Comparison{
		Period: models.Period{
			Start: util.FormatDateForAPI(p.From),
			End:   util.FormatDateForAPI(p.To),
		},
		TotalSeries: len(p.Codes),
		WithData:    len(ranking.Ranked),
		WithErrors:  len(ranking.Failed),
		Ranking:     ranking,
	}, nil
}

func (uc *CompareUseCase) measure(ctx context.Context, code int, from, to string) models.SeriesOutcome {
	o := models.SeriesOutcome{Series: describe(uc.catalog, code)}

	points, err := uc.source.FetchRange(ctx, code, from, to)
	switch {
	case errors.Is(err, errs.ErrNoData):
		o.Err = errors.New("no data in period")
		return o
	case err != nil:
		o.Err = err
		return o
	}

	o.Count = len(points)
	o.Result, o.Err = analytics.Summarize(points)
	return o
}
