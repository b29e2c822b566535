//go:build wireinject
// +build wireinject

package di

import (
	"informant/internal"
	"informant/internal/controllers"
	"informant/internal/providers"
	"informant/internal/services"
	"informant/internal/storage"
	"informant/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		services.NewHistoryService,
		storage.NewZstdCompressor,
		storage.NewFileManager,
		storage.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
