package analytics

import (
	"errors"
	"testing"

	"BCBSeries/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(code int, pct float64, err error) models.SeriesOutcome {
	return models.SeriesOutcome{
		Series: models.SeriesInfo{Code: code, Name: "s"},
		Count:  2,
		Result: models.AnalyticsResult{PercentVariation: pct, FormattedVariation: FormatVariation(pct)},
		Err:    err,
	}
}

func TestRankOrdersDescending(t *testing.T) {
	r := Rank([]models.SeriesOutcome{
		outcome(1, 5, nil),
		outcome(2, -3, nil),
		outcome(3, 12, nil),
	})

	require.Len(t, r.Ranked, 3)
	assert.Equal(t, []int{3, 1, 2}, codes(r.Ranked))
	for i, e := range r.Ranked {
		assert.Equal(t, i+1, e.Position)
	}
	assert.Empty(t, r.Failed)
}

func TestRankAppendsFailuresAfterSuccesses(t *testing.T) {
	r := Rank([]models.SeriesOutcome{
		outcome(1, 999, errors.New("upstream timeout")),
		outcome(2, 1, nil),
		outcome(3, -1, errors.New("no data")),
		outcome(4, 2, nil),
	})

	assert.Equal(t, []int{4, 2}, codes(r.Ranked))
	require.Len(t, r.Failed, 2)
	assert.Equal(t, 1, r.Failed[0].Code)
	assert.Equal(t, "upstream timeout", r.Failed[0].Error)
	assert.Equal(t, 3, r.Failed[1].Code)
}

func TestRankIsStableOnTies(t *testing.T) {
	r := Rank([]models.SeriesOutcome{
		outcome(7, 1, nil),
		outcome(5, 1, nil),
		outcome(9, 1, nil),
	})
	assert.Equal(t, []int{7, 5, 9}, codes(r.Ranked))
}

func TestRankEmpty(t *testing.T) {
	r := Rank(nil)
	assert.Empty(t, r.Ranked)
	assert.Empty(t, r.Failed)
}

func codes(rs []models.RankedSeries) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Code
	}
	return out
}
