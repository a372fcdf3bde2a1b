package usecase

import (
	"strings"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	domrepo "BCBSeries/internal/domain/repository"
)

const (
	MinSearchTermLength = 2

	catalogNote      = "Curated subset of SGS series. Any valid SGS code can be queried directly."
	searchEmptyHint  = "No series found in the internal catalog. Use the BCB SGS portal to find other series: https://www3.bcb.gov.br/sgspub/"
	searchSuggestion = "Try terms such as: selic, ipca, dolar, cambio, pib, inflacao, credito, emprego"
)

// CatalogUseCase lists and searches the curated catalog. It never touches
// the network.
type CatalogUseCase struct {
	catalog domrepo.Catalog
}

func NewCatalogUseCase(catalog domrepo.Catalog) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog}
}

// List groups the whole catalog by category, or returns the entries whose
// category matches the filter.
func (uc *CatalogUseCase) List(category string) *models.CatalogListing {
	if strings.TrimSpace(category) != "" {
		series := uc.catalog.FilterByCategory(category)
		seen := map[string]bool{}
		for _, s := range series {
			seen[s.Category] = true
		}
		return &models.CatalogListing{
			Total:      len(series),
			Categories: len(seen),
			Series:     series,
			Note:       catalogNote,
		}
	}

	all := uc.catalog.All()
	byCategory := make(map[string][]models.SeriesDescriptor)
	for _, s := range all {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}
	// groups follow the catalog's first-seen category order
	categories := uc.catalog.Categories()
	grouped := make([]models.CategoryGroup, 0, len(categories))
	for _, name := range categories {
		grouped = append(grouped, models.CategoryGroup{
			Category: name,
			Total:    len(byCategory[name]),
			Series:   byCategory[name],
		})
	}
	return &models.CatalogListing{
		Total:      len(all),
		Categories: len(categories),
		Grouped:    grouped,
		Note:       catalogNote,
	}
}

// Search matches term against names and categories, ignoring accents.
func (uc *CatalogUseCase) Search(term string) (*models.CatalogSearch, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < MinSearchTermLength {
		return nil, errs.Invalidf("search term must have at least %d characters", MinSearchTermLength)
	}

	series := uc.catalog.Search(term)
	res := &models.CatalogSearch{
		Term:   term,
		Total:  len(series),
		Series: series,
	}
	if len(series) == 0 {
		res.Message = searchEmptyHint
		res.Suggestion = searchSuggestion
	}
	return res, nil
}
