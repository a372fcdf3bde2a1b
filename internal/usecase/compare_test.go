package usecase

import (
	"context"
	"errors"
	"testing"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareRejectsCountBeforeFetch(t *testing.T) {
	for _, codes := range [][]int{{433}, {1, 2, 3, 4, 5, 6}, nil} {
		src := &fakeSource{}
		_, err := NewCompareUseCase(src, testCatalog(t)).Compare(context.Background(), CompareParams{
			Codes: codes, From: "2024-01-01", To: "2024-12-31",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidInput, "codes %v", codes)
		assert.Zero(t, src.callCount())
	}
}

func TestCompareRequiresDates(t *testing.T) {
	src := &fakeSource{}
	_, err := NewCompareUseCase(src, testCatalog(t)).Compare(context.Background(), CompareParams{Codes: []int{1, 2}})

	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Zero(t, src.callCount())
}

func TestCompareRanksAndCollectsFailures(t *testing.T) {
	src := &fakeSource{
		ranges: map[int][]models.SeriesPoint{
			432:  series(100, 105),
			433:  series(100, 97),
			3698: series(100, 112),
			11:   series(7),
		},
		errs: map[int]error{189: errors.New("upstream down")},
	}
	uc := NewCompareUseCase(src, testCatalog(t))

	res, err := uc.Compare(context.Background(), CompareParams{
		Codes: []int{432, 189, 433, 3698, 11},
		From:  "2024-01-01",
		To:    "31/12/2024",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, src.callCount())
	assert.Equal(t, "01/01/2024", res.Period.Start)
	assert.Equal(t, "31/12/2024", res.Period.End)
	assert.Equal(t, 5, res.TotalSeries)
	assert.Equal(t, 3, res.WithData)
	assert.Equal(t, 2, res.WithErrors)

	require.Len(t, res.Ranked, 3)
	assert.Equal(t, 3698, res.Ranked[0].Code)
	assert.Equal(t, 432, res.Ranked[1].Code)
	assert.Equal(t, 433, res.Ranked[2].Code)
	assert.Equal(t, []int{1, 2, 3}, []int{res.Ranked[0].Position, res.Ranked[1].Position, res.Ranked[2].Position})
	assert.Equal(t, "+12.00%", res.Ranked[0].FormattedVariation)

	require.Len(t, res.Failed, 2)
	assert.Equal(t, 189, res.Failed[0].Code)
	assert.Equal(t, "upstream down", res.Failed[0].Error)
	assert.Equal(t, 11, res.Failed[1].Code)
	assert.Equal(t, errs.ErrInsufficientData.Error(), res.Failed[1].Error)
}
