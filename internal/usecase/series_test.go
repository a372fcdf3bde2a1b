package usecase

import (
	"context"
	"testing"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	"BCBSeries/internal/service/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestValuesEnrichesFromCatalog(t *testing.T) {
	src := &fakeSource{ranges: map[int][]models.SeriesPoint{433: series(0.42, 0.83, 0.16)}}
	uc := NewSeriesUseCase(src, testCatalog(t))

	res, err := uc.Values(context.Background(), GetValuesParams{Code: 433, From: "2024-01-01"})

	require.NoError(t, err)
	assert.Equal(t, "IPCA - Variação mensal", res.Series.Name)
	assert.Equal(t, "Inflação", res.Series.Category)
	assert.Equal(t, 3, res.Total)
	require.NotNil(t, res.Period)
	assert.Equal(t, "01/01/2024", res.Period.Start)
	assert.Equal(t, "01/03/2024", res.Period.End)
	assert.Empty(t, res.Message)
}

func TestValuesUnknownCodeGetsPlaceholders(t *testing.T) {
	src := &fakeSource{ranges: map[int][]models.SeriesPoint{987654: series(1)}}
	uc := NewSeriesUseCase(src, testCatalog(t))

	res, err := uc.Values(context.Background(), GetValuesParams{Code: 987654})

	require.NoError(t, err)
	assert.Equal(t, "Série 987654", res.Series.Name)
	assert.Equal(t, "Desconhecida", res.Series.Category)
	assert.Equal(t, "Desconhecida", res.Series.Frequency)
}

func TestValuesNoDataIsNotAnError(t *testing.T) {
	src := &fakeSource{errs: map[int]error{11: errs.ErrNoData}}
	uc := NewSeriesUseCase(src, testCatalog(t))

	res, err := uc.Values(context.Background(), GetValuesParams{Code: 11})

	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Nil(t, res.Period)
	assert.Contains(t, res.Message, "no data")
}

func TestValuesPropagatesFailures(t *testing.T) {
	src := &fakeSource{errs: map[int]error{11: &errs.RetryError{Attempts: 3, Last: errs.ErrTimeout}}}
	uc := NewSeriesUseCase(src, testCatalog(t))

	_, err := uc.Values(context.Background(), GetValuesParams{Code: 11})

	assert.ErrorIs(t, err, errs.ErrExhausted)
	assert.ErrorIs(t, err, errs.ErrTimeout)
}

func TestLastDefaultsCount(t *testing.T) {
	src := &fakeSource{lasts: map[int][]models.SeriesPoint{432: series(11.75, 11.65)}}
	uc := NewSeriesUseCase(src, testCatalog(t))

	res, err := uc.Last(context.Background(), 432, 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultLastCount, src.lastN)
	assert.Equal(t, 2, res.Total)
}

func TestInvalidCodeRejectedBeforeFetch(t *testing.T) {
	src := &fakeSource{}
	uc := NewSeriesUseCase(src, testCatalog(t))

	_, err := uc.Values(context.Background(), GetValuesParams{Code: 0})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = uc.Last(context.Background(), -1, 5)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = uc.Metadata(context.Background(), 0)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	assert.Zero(t, src.callCount())
}

func TestMetadataDelegates(t *testing.T) {
	md := &models.SeriesMetadata{Code: 1, Name: "x", Origin: models.OriginCatalog}
	uc := NewSeriesUseCase(&fakeSource{metadata: md}, testCatalog(t))

	got, err := uc.Metadata(context.Background(), 1)

	require.NoError(t, err)
	assert.Same(t, md, got)
}
