// Package analytics derives variation and summary statistics from series
// points. Everything here is pure and recomputed per request.
package analytics

import (
	"math"
	"strings"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the rounding applied to every reported value.
const DisplayPlaces = 4

// Variation returns (final-initial)/|initial|*100.
//
// When initial is 0 the ratio is undefined and Variation returns exactly 0.
// This is a policy, not an identity: ranking needs a number for every
// successful series.
func Variation(initial, final float64) float64 {
	if initial == 0 {
		return 0
	}
	return (final - initial) / math.Abs(initial) * 100
}

// FormatVariation renders pct with two decimals and an explicit sign,
// e.g. "+12.34%" or "-3.00%". Non-finite input renders as "n/d".
func FormatVariation(pct float64) string {
	if !finite(pct) {
		return "n/d"
	}
	s := decimal.NewFromFloat(pct).StringFixed(2)
	if pct >= 0 {
		return "+" + s + "%"
	}
	if !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s + "%"
}

// Round rounds v half away from zero to DisplayPlaces digits. Non-finite
// input is returned unchanged.
func Round(v float64) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(DisplayPlaces).InexactFloat64()
}

// Summarize reduces points to an AnalyticsResult. Initial and final are the
// first and last points in sequence order, not the extremes by value.
// Fewer than two points yields errs.ErrInsufficientData; a non-finite value
// or a variation that overflows float64 yields errs.ErrIntegrity.
func Summarize(points []models.SeriesPoint) (models.AnalyticsResult, error) {
	if len(points) < 2 {
		return models.AnalyticsResult{}, errs.ErrInsufficientData
	}
	for i, p := range points {
		if !finite(p.Value) {
			return models.AnalyticsResult{}, errs.Integrityf("point %d: non-finite value", i)
		}
	}

	initial := points[0].Value
	final := points[len(points)-1].Value

	sum := decimal.Zero
	max, min := initial, initial
	for _, p := range points {
		sum = sum.Add(decimal.NewFromFloat(p.Value))
		if p.Value > max {
			max = p.Value
		}
		if p.Value < min {
			min = p.Value
		}
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(points))))
	pct := Variation(initial, final)
	if !finite(pct) {
		return models.AnalyticsResult{}, errs.Integrityf("variation from %g to %g out of range", initial, final)
	}

	absDiff := decimal.NewFromFloat(final).Sub(decimal.NewFromFloat(initial))
	spread := decimal.NewFromFloat(max).Sub(decimal.NewFromFloat(min))
	for _, d := range []decimal.Decimal{absDiff, spread, mean} {
		if !finite(roundDecimal(d)) {
			return models.AnalyticsResult{}, errs.Integrityf("derived value %s out of range", d.String())
		}
	}

	return models.AnalyticsResult{
		InitialValue:       Round(initial),
		FinalValue:         Round(final),
		AbsoluteDifference: roundDecimal(absDiff),
		PercentVariation:   Round(pct),
		FormattedVariation: FormatVariation(pct),
		Max:                Round(max),
		Min:                Round(min),
		Mean:               roundDecimal(mean),
		Range:              roundDecimal(spread),
	}, nil
}

func roundDecimal(d decimal.Decimal) float64 {
	return d.Round(DisplayPlaces).InexactFloat64()
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
