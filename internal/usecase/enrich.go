package usecase

import (
	"fmt"
	"sync"

	"BCBSeries/internal/domain/models"
	domrepo "BCBSeries/internal/domain/repository"
	"BCBSeries/pkg/util"
)

const unknownLabel = "Desconhecida"

// describe returns catalog details for code, or placeholders when the code
// is not catalogued.
func describe(catalog domrepo.Catalog, code int) models.SeriesInfo {
	if catalog != nil {
		if d, ok := catalog.Lookup(code); ok {
			return models.SeriesInfo{Code: code, Name: d.Name, Category: d.Category, Frequency: d.Frequency}
		}
	}
	return models.SeriesInfo{
		Code:      code,
		Name:      fmt.Sprintf("Série %d", code),
		Category:  unknownLabel,
		Frequency: unknownLabel,
	}
}

// periodOf spans the first and last point. points must not be empty.
func periodOf(points []models.SeriesPoint) *models.Period {
	return &models.Period{
		Start: util.FormatBCBDate(points[0].Date),
		End:   util.FormatBCBDate(points[len(points)-1].Date),
		Count: len(points),
	}
}

// fanOut runs fn for every index concurrently and waits for all of them.
// Each fn writes only to its own slot, so one failure never cancels another.
func fanOut(n int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}
