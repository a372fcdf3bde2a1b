package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentIndicatorsCapturesFailuresPerMember(t *testing.T) {
	src := &fakeSource{
		lasts: map[int][]models.SeriesPoint{
			432:   series(10.5),
			433:   series(0.44),
			13522: series(4.5),
		},
		errs: map[int]error{
			3698:  errors.New("boom"),
			24364: errs.ErrNoData,
		},
	}
	uc := NewIndicatorsUseCase(src)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	snap := uc.Current(context.Background())

	require.Len(t, snap.Indicators, len(DefaultHeadlines))
	assert.Equal(t, 5, src.callCount())
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), snap.QueriedAt)

	byCode := map[int]models.Indicator{}
	for i, ind := range snap.Indicators {
		assert.Equal(t, DefaultHeadlines[i].Code, ind.Code, "order preserved")
		byCode[ind.Code] = ind
	}

	require.NotNil(t, byCode[432].Value)
	assert.Equal(t, 10.5, *byCode[432].Value)
	assert.Equal(t, "01/01/2024", byCode[432].Date)
	assert.Empty(t, byCode[432].Error)

	assert.Nil(t, byCode[3698].Value)
	assert.Equal(t, "boom", byCode[3698].Error)
	assert.Equal(t, "no data available", byCode[24364].Error)
}
