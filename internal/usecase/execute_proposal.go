package usecase

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
)

// ExecuteProposal executes a single proposal after checking it is APPROVED
type ExecuteProposal struct {
	config *config.RuntimeConfig
	ledger Ledger
	clock  Clock
	log    *slog.Logger
}

// NewExecuteProposal creates a new ExecuteProposal use case
func NewExecuteProposal(cfg *config.RuntimeConfig, ledger Ledger, clock Clock, log *slog.Logger) *ExecuteProposal {
	return &ExecuteProposal{
		config: cfg,
		ledger: ledger,
		clock:  clock,
		log:    log.With("component", "execute"),
	}
}

// Run returns a StateError without touching the ledger unless the proposal is APPROVED
func (uc *ExecuteProposal) Run(ctx context.Context, id uint64) (*domain.Receipt, error) {
	state, err := proposalState(ctx, uc.config, uc.ledger, uc.clock, id)
	if err != nil {
		return nil, domain.InfraError{Op: "read proposal", Err: err}
	}
	if err := domain.CheckExecute(id, state); err != nil {
		return nil, err
	}

	receipt, err := uc.ledger.ExecuteProposal(ctx, id)
	if err != nil {
		return nil, domain.ExecutionError{Op: "execute proposal", Err: err}
	}

	uc.log.Info("executed proposal", "proposal_id", id, "tx_hash", receipt.TxHash.Hex())
	return receipt, nil
}
