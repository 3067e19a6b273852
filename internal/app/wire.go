//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/govrelay/internal/adapters"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/logging"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(ctx context.Context, v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRelayRequest,
		usecase.NewScanProposals,
		usecase.NewScanDaemon,
		usecase.NewListProposals,
		usecase.NewShowProposal,
		usecase.NewGetUserVote,
		usecase.NewGetNonce,
		usecase.NewExecuteProposal,
		usecase.NewPrepareVote,
		usecase.NewCastVote,

		// App
		NewApp,
	)
	return nil, nil, nil
}
