package models

import (
	"encoding/json"
	"time"
)

// BCBDateLayout is the provider's day-precision date format.
const BCBDateLayout = "02/01/2006"

// SeriesPoint is a single (date, value) observation.
type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// MarshalJSON renders the date in provider order so it round-trips to queries.
func (p SeriesPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}{Date: p.Date.Format(BCBDateLayout), Value: p.Value})
}

// SeriesDescriptor is an immutable catalog entry.
type SeriesDescriptor struct {
	Code      int    `json:"code" yaml:"code"`
	Name      string `json:"name" yaml:"name"`
	Category  string `json:"category" yaml:"category"`
	Frequency string `json:"frequency" yaml:"frequency"`
}

// MetadataOrigin tells which step of the fallback chain produced metadata.
type MetadataOrigin string

const (
	OriginAPI     MetadataOrigin = "api"
	OriginCatalog MetadataOrigin = "catalog"
	OriginProbe   MetadataOrigin = "probe"
)

// SeriesMetadata describes a series as reported by the provider or inferred locally.
type SeriesMetadata struct {
	Code      int            `json:"code"`
	Name      string         `json:"name"`
	Unit      string         `json:"unit,omitempty"`
	Frequency string         `json:"frequency,omitempty"`
	Source    string         `json:"source"`
	Category  string         `json:"category,omitempty"`
	Special   bool           `json:"special"`
	QueryURL  string         `json:"queryUrl"`
	LastURL   string         `json:"lastUrl,omitempty"`
	LastValue *SeriesPoint   `json:"lastValue,omitempty"`
	Note      string         `json:"note,omitempty"`
	Origin    MetadataOrigin `json:"origin"`
}

// SeriesInfo is the descriptor attached to every result, with defaults for unknown codes.
type SeriesInfo struct {
	Code      int    `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Frequency string `json:"frequency,omitempty"`
}

// Period is the date span covered by a fetched sequence.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Count int    `json:"count,omitempty"`
}

// SeriesValues is the result of a range or last-N query. Empty results carry
// a Message instead of points.
type SeriesValues struct {
	Series  SeriesInfo    `json:"series"`
	Total   int           `json:"total"`
	Period  *Period       `json:"period,omitempty"`
	Points  []SeriesPoint `json:"points,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Indicator is one member of the current-indicators snapshot.
type Indicator struct {
	Label string   `json:"label"`
	Code  int      `json:"code"`
	Date  string   `json:"date,omitempty"`
	Value *float64 `json:"value,omitempty"`
	Error string   `json:"error,omitempty"`
}

// IndicatorSnapshot holds the latest value of each headline indicator.
type IndicatorSnapshot struct {
	QueriedAt  time.Time   `json:"queriedAt"`
	Indicators []Indicator `json:"indicators"`
}

// CatalogListing is the catalog view, grouped when no category filter is set.
type CatalogListing struct {
	Total      int                `json:"total"`
	Categories int                `json:"categories"`
	Series     []SeriesDescriptor `json:"series,omitempty"`
	Grouped    []CategoryGroup    `json:"grouped,omitempty"`
	Note       string             `json:"note"`
}

// CategoryGroup is one category of the grouped listing.
type CategoryGroup struct {
	Category string             `json:"category"`
	Total    int                `json:"total"`
	Series   []SeriesDescriptor `json:"series"`
}

// CatalogSearch is the result of a catalog search.
type CatalogSearch struct {
	Term       string             `json:"term"`
	Total      int                `json:"total"`
	Series     []SeriesDescriptor `json:"series"`
	Message    string             `json:"message,omitempty"`
	Suggestion string             `json:"suggestion,omitempty"`
}
