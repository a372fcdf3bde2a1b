package usecase

import (
	"context"
	"errors"
	"time"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	domrepo "BCBSeries/internal/domain/repository"
	"BCBSeries/pkg/util"
)

// Headline is one series of the current-indicators snapshot.
type Headline struct {
	Code  int
	Label string
}

// DefaultHeadlines are the series reported by the indicators snapshot.
var DefaultHeadlines = []Headline{
	{Code: 432, Label: "Selic (a.a.)"},
	{Code: 433, Label: "IPCA mensal (%)"},
	{Code: 13522, Label: "IPCA 12 meses (%)"},
	{Code: 3698, Label: "Dólar PTAX (venda)"},
	{Code: 24364, Label: "IBC-Br"},
}

// IndicatorsUseCase fetches the latest value of each headline series.
type IndicatorsUseCase struct {
	source    domrepo.SeriesSource
	headlines []Headline
	now       func() time.Time
}

func NewIndicatorsUseCase(source domrepo.SeriesSource) *IndicatorsUseCase {
	return &IndicatorsUseCase{source: source, headlines: DefaultHeadlines, now: time.Now}
}

// Current fetches every headline concurrently. A failing member carries its
// error message and does not affect the others.
func (uc *IndicatorsUseCase) Current(ctx context.Context) *models.IndicatorSnapshot {
	out := make([]models.Indicator, len(uc.headlines))

	fanOut(len(uc.headlines), func(i int) {
		h := uc.headlines[i]
		ind := models.Indicator{Label: h.Label, Code: h.Code}

		points, err := uc.source.FetchLast(ctx, h.Code, 1)
		switch {
		case errors.Is(err, errs.ErrNoData):
			ind.Error = "no data available"
		case err != nil:
			ind.Error = err.Error()
		default:
			last := points[len(points)-1]
			v := last.Value
			ind.Date = util.FormatBCBDate(last.Date)
			ind.Value = &v
		}
		out[i] = ind
	})

	return &models.IndicatorSnapshot{QueriedAt: uc.now().UTC(), Indicators: out}
}
