//go:build wireinject
// +build wireinject

package di

import (
	"FinDash/internal/handler/api"
	"FinDash/internal/usecase"
	"FinDash/pkg/config"
	"FinDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideCache,
		ProvidePriceArchive,
		ProvideEventPublisher,
		ProvideNotifier,

		// Data sources and stores
		ProvidePriceSource,
		ProvideListingSource,
		ProvideRankStore,
		ProvideHistoryStore,
		ProvideAnalyzeStore,
		ProvideScoreStore,

		// Use cases
		ProvideBarLoader,
		ProvideForecaster,
		ProvideRanks,
		ProvideDigest,
		usecase.NewMarketData,
		usecase.NewDocuments,
		usecase.NewScores,
		usecase.NewMessenger,

		// Transport and lifecycle
		ProvideRateLimiter,
		api.NewDashboardHandler,
		ProvideHTTPServer,
		ProvideScheduler,
		ProvideApp,
	)
	return &server.App{}, nil
}
