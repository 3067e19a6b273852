package app

import (
	"log/slog"

	"github.com/trebuchet-org/govrelay/internal/adapters/httpapi"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector usecase.Selector

	// Use cases
	RelayRequest    *usecase.RelayRequest
	ScanProposals   *usecase.ScanProposals
	ScanDaemon      *usecase.ScanDaemon
	ListProposals   *usecase.ListProposals
	ShowProposal    *usecase.ShowProposal
	GetUserVote     *usecase.GetUserVote
	GetNonce        *usecase.GetNonce
	ExecuteProposal *usecase.ExecuteProposal
	PrepareVote     *usecase.PrepareVote
	CastVote        *usecase.CastVote

	// Adapters
	Server *httpapi.Server
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.Selector,
	relayRequest *usecase.RelayRequest,
	scanProposals *usecase.ScanProposals,
	scanDaemon *usecase.ScanDaemon,
	listProposals *usecase.ListProposals,
	showProposal *usecase.ShowProposal,
	getUserVote *usecase.GetUserVote,
	getNonce *usecase.GetNonce,
	executeProposal *usecase.ExecuteProposal,
	prepareVote *usecase.PrepareVote,
	castVote *usecase.CastVote,
	server *httpapi.Server,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Selector:        selector,
		RelayRequest:    relayRequest,
		ScanProposals:   scanProposals,
		ScanDaemon:      scanDaemon,
		ListProposals:   listProposals,
		ShowProposal:    showProposal,
		GetUserVote:     getUserVote,
		GetNonce:        getNonce,
		ExecuteProposal: executeProposal,
		PrepareVote:     prepareVote,
		CastVote:        castVote,
		Server:          server,
	}, nil
}
