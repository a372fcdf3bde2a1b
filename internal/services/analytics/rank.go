package analytics

import (
	"sort"

	"BCBSeries/internal/domain/models"
)

// Rank orders successful outcomes by PercentVariation descending, keeping
// input order on ties, and numbers them from 1. Outcomes with Err set are
// appended as failures in input order whatever their numeric fields hold.
func Rank(outcomes []models.SeriesOutcome) models.Ranking {
	ok := make([]models.SeriesOutcome, 0, len(outcomes))
	failed := make([]models.FailedSeries, 0)

	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, models.FailedSeries{
				Code:  o.Series.Code,
				Name:  o.Series.Name,
				Error: o.Err.Error(),
			})
			continue
		}
		ok = append(ok, o)
	}

	sort.SliceStable(ok, func(i, j int) bool {
		return ok[i].Result.PercentVariation > ok[j].Result.PercentVariation
	})

	ranked := make([]models.RankedSeries, len(ok))
	for i, o := range ok {
		ranked[i] = models.RankedSeries{
			Position:           i + 1,
			Code:               o.Series.Code,
			Name:               o.Series.Name,
			Category:           o.Series.Category,
			Frequency:          o.Series.Frequency,
			Count:              o.Count,
			InitialValue:       o.Result.InitialValue,
			FinalValue:         o.Result.FinalValue,
			PercentVariation:   o.Result.PercentVariation,
			FormattedVariation: o.Result.FormattedVariation,
			Max:                o.Result.Max,
			Min:                o.Result.Min,
			Mean:               o.Result.Mean,
		}
	}

	return models.Ranking{Ranked: ranked, Failed: failed}
}
