package models

// Requests for the REST surface. Defined in domain for consistency and reuse.

type SeriesValuesRequest struct {
	Code int    `param:"code" validate:"required,gt=0"`
	From string `query:"from"`
	To   string `query:"to"`
}

type SeriesLastRequest struct {
	Code int `param:"code" validate:"required,gt=0"`
	N    int `query:"n" default:"10" validate:"gte=1,lte=1000"`
}

type SeriesCodeRequest struct {
	Code int `param:"code" validate:"required,gt=0"`
}

type VariationRequest struct {
	Code    int    `param:"code" validate:"required,gt=0"`
	From    string `query:"from"`
	To      string `query:"to"`
	Periods int    `query:"periods" validate:"gte=0,lte=1000"`
}

type CatalogRequest struct {
	Category string `query:"category"`
}

type SearchRequest struct {
	Term string `query:"term" validate:"required,min=2"`
}

type CompareRequest struct {
	Codes string `query:"codes" validate:"required"`
	From  string `query:"from" validate:"required"`
	To    string `query:"to" validate:"required"`
}
