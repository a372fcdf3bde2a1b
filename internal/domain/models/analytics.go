package models

// AnalyticsResult is recomputed on every request. Values are rounded to 4
// fractional digits.
type AnalyticsResult struct {
	InitialValue       float64 `json:"initialValue"`
	FinalValue         float64 `json:"finalValue"`
	AbsoluteDifference float64 `json:"absoluteDifference"`
	PercentVariation   float64 `json:"percentVariation"`
	FormattedVariation string  `json:"formattedVariation"`
	Max                float64 `json:"max"`
	Min                float64 `json:"min"`
	Mean               float64 `json:"mean"`
	Range              float64 `json:"range"`
}

// VariationReport is the variation operation result. When fewer than two
// points were available Analysis is nil and Message explains why.
type VariationReport struct {
	Series   SeriesInfo       `json:"series"`
	Period   *Period          `json:"period,omitempty"`
	Analysis *AnalyticsResult `json:"analysis,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// SeriesOutcome is one member of a comparison before ranking. Err marks a
// failed member regardless of the numeric fields.
type SeriesOutcome struct {
	Series SeriesInfo
	Count  int
	Result AnalyticsResult
	Err    error
}

// RankedSeries is a successful comparison entry with its 1-based position.
type RankedSeries struct {
	Position           int     `json:"position"`
	Code               int     `json:"code"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Frequency          string  `json:"frequency"`
	Count              int     `json:"count"`
	InitialValue       float64 `json:"initialValue"`
	FinalValue         float64 `json:"finalValue"`
	PercentVariation   float64 `json:"percentVariation"`
	FormattedVariation string  `json:"formattedVariation"`
	Max                float64 `json:"max"`
	Min                float64 `json:"min"`
	Mean               float64 `json:"mean"`
}

// FailedSeries is a comparison member that could not be computed.
type FailedSeries struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// Ranking is the ordered comparison output.
type Ranking struct {
	Ranked []RankedSeries `json:"ranking"`
	Failed []FailedSeries `json:"errors,omitempty"`
}

// Comparison is the compare operation result.
type Comparison struct {
	Period      Period `json:"period"`
	TotalSeries int    `json:"totalSeries"`
	WithData    int    `json:"withData"`
	WithErrors  int    `json:"withErrors"`
	Ranking
}
