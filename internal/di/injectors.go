//go:build wireinject
// +build wireinject

package di

import (
	"chronos/internal"
	"chronos/internal/auth"
	"chronos/internal/clock"
	"chronos/internal/controllers"
	"chronos/internal/persistence"
	"chronos/internal/providers"
	"chronos/internal/services"
	"chronos/internal/session"
	"chronos/internal/storage"
	"chronos/internal/structures"
	"chronos/internal/ui"
	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		services.NewDocumentService,
		storage.NewZstdCompressor,
		storage.NewFileManager,
		storage.NewScheduler,
		controllers.NewDocumentController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitClient(cfg *structures.CliFlags) (*internal.Client, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,

		clock.NewSystem,
		persistence.NewBoltStore,
		persistence.NewHTTPRemoteStore,
		persistence.NewManager,
		ui.NewBridge,
		wire.Bind(new(session.Renderer), new(*ui.Bridge)),
		wire.Bind(new(session.Confirmer), new(*ui.Bridge)),
		session.New,
		auth.NewProvider,
		internal.NewClient,
	)

	return nil, nil
}
