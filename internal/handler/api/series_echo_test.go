package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	"BCBSeries/internal/service/catalog"
	"BCBSeries/internal/usecase"
	xhttp "BCBSeries/pkg/http"
	xlogger "BCBSeries/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	err   error
	calls int32
	lastN int32
}

func (s *stubSource) points() []models.SeriesPoint {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.SeriesPoint{{Date: d, Value: 10}, {Date: d.AddDate(0, 1, 0), Value: 12}}
}

func (s *stubSource) FetchRange(context.Context, int, string, string) ([]models.SeriesPoint, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.points(), s.err
}

func (s *stubSource) FetchLast(_ context.Context, _ int, n int) ([]models.SeriesPoint, error) {
	atomic.AddInt32(&s.calls, 1)
	atomic.StoreInt32(&s.lastN, int32(n))
	return s.points(), s.err
}

func (s *stubSource) FetchMetadata(_ context.Context, code int) (*models.SeriesMetadata, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return &models.SeriesMetadata{Code: code, Name: "x", Origin: models.OriginAPI}, nil
}

func newTestEcho(t *testing.T, src *stubSource) *echo.Echo {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	h := NewSeriesEchoHandler(
		xlogger.Nop(),
		usecase.NewSeriesUseCase(src, cat),
		usecase.NewCatalogUseCase(cat),
		usecase.NewIndicatorsUseCase(src),
		usecase.NewVariationUseCase(src, cat),
		usecase.NewCompareUseCase(src, cat),
	)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func get(t *testing.T, e *echo.Echo, target string) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func firstError(t *testing.T, env envelope) xhttp.AppError {
	t.Helper()
	var list []xhttp.AppError
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.NotEmpty(t, list)
	return list[0]
}

func TestValuesOK(t *testing.T) {
	e := newTestEcho(t, &stubSource{})

	code, env := get(t, e, "/api/series/433/values?from=2024-01-01&to=2024-02-01")

	assert.Equal(t, http.StatusOK, code)
	var res models.SeriesValues
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "Inflação", res.Series.Category)
}

func TestLastDefaultsAndBounds(t *testing.T) {
	src := &stubSource{}
	e := newTestEcho(t, src)

	code, _ := get(t, e, "/api/series/432/last")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 10, atomic.LoadInt32(&src.lastN))

	calls := atomic.LoadInt32(&src.calls)
	code, _ = get(t, e, "/api/series/432/last?n=1001")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, calls, atomic.LoadInt32(&src.calls))
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.ErrNotFound, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"exhausted", &errs.RetryError{Attempts: 3, Last: errs.ErrTimeout}, http.StatusBadGateway, "ERR_EXHAUSTED_RETRIES"},
		{"integrity", errs.Integrityf("bad"), http.StatusBadGateway, "ERR_INTEGRITY"},
		{"timeout", errs.ErrTimeout, http.StatusGatewayTimeout, "ERR_TIMEOUT"},
		{"upstream", errs.ErrUpstream, http.StatusBadGateway, "ERR_UPSTREAM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho(t, &stubSource{err: tc.err})

			status, env := get(t, e, "/api/series/1/metadata")

			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, firstError(t, env).Code)
		})
	}
}

func TestExhaustedCarriesAttempts(t *testing.T) {
	appErr := toAppError(&errs.RetryError{Attempts: 3, Last: errs.ErrUpstream})
	assert.Equal(t, 3, appErr.Params["attempts"])
}

func TestCompareRejectsBadCountBeforeFetch(t *testing.T) {
	src := &stubSource{}
	e := newTestEcho(t, src)

	for _, q := range []string{"codes=433", "codes=1,2,3,4,5,6", "codes=1,x"} {
		status, env := get(t, e, "/api/compare?"+q+"&from=2024-01-01&to=2024-06-01")
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.Equal(t, "ERR_INVALID_INPUT", firstError(t, env).Code, q)
	}
	assert.Zero(t, atomic.LoadInt32(&src.calls))
}

func TestCompareOK(t *testing.T) {
	e := newTestEcho(t, &stubSource{})

	status, env := get(t, e, "/api/compare?codes=432,433&from=2024-01-01&to=2024-06-01")

	require.Equal(t, http.StatusOK, status)
	var res models.Comparison
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 2, res.WithData)
	assert.Len(t, res.Ranked, 2)
}

func TestSearchValidation(t *testing.T) {
	e := newTestEcho(t, &stubSource{})

	status, _ := get(t, e, "/api/catalog/search?term=a")
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := get(t, e, "/api/catalog/search?term=inflacao")
	assert.Equal(t, http.StatusOK, status)
	var res models.CatalogSearch
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.NotZero(t, res.Total)
}

func TestIndicators(t *testing.T) {
	src := &stubSource{}
	e := newTestEcho(t, src)

	status, env := get(t, e, "/api/indicators")

	assert.Equal(t, http.StatusOK, status)
	var snap models.IndicatorSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Len(t, snap.Indicators, len(usecase.DefaultHeadlines))
}
