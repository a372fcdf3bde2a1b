//go:build wireinject
// +build wireinject

package di

import (
	"BCBSeries/internal/domain/repository"
	"BCBSeries/internal/handler/api"
	"BCBSeries/internal/service/catalog"
	"BCBSeries/internal/service/sgs"
	"BCBSeries/internal/usecase"
	"BCBSeries/pkg/config"
	"BCBSeries/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Data access
		ProvideCatalog,
		wire.Bind(new(repository.Catalog), new(*catalog.Catalog)),
		ProvideHTTPClient,
		ProvideFetcher,
		ProvideCache,
		ProvideSeriesClient,
		wire.Bind(new(repository.SeriesSource), new(*sgs.Client)),

		// Use cases
		usecase.NewSeriesUseCase,
		usecase.NewCatalogUseCase,
		usecase.NewIndicatorsUseCase,
		usecase.NewVariationUseCase,
		usecase.NewCompareUseCase,

		// Transport
		api.NewSeriesEchoHandler,
		ProvideRateLimiter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil, nil
}
