package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
)

// ProposalView is a proposal snapshot with its derived state
type ProposalView struct {
	Proposal *domain.Proposal
	State    domain.ProposalState
	// UserVote is set when the query named an account
	UserVote *domain.UserVote
}

// ListProposalsParams contains parameters for listing proposals
type ListProposalsParams struct {
	Max     uint64
	Account *common.Address
}

// ProposalListResult contains the result of listing proposals
type ProposalListResult struct {
	Bound     uint64
	Proposals []*ProposalView
	Failures  []ScanFailure
}

// ListProposals reads every existing proposal up to the scan bound
type ListProposals struct {
	config *config.RuntimeConfig
	reader ProposalReader
	clock  Clock
	sink   ProgressSink
	log    *slog.Logger
}

// NewListProposals creates a new ListProposals use case
func NewListProposals(cfg *config.RuntimeConfig, reader ProposalReader, clock Clock, sink ProgressSink, log *slog.Logger) *ListProposals {
	return &ListProposals{
		config: cfg,
		reader: reader,
		clock:  clock,
		sink:   sink,
		log:    log.With("component", "proposals"),
	}
}

// Run lists proposals 1..bound, skipping ids that were never used
func (uc *ListProposals) Run(ctx context.Context, params ListProposalsParams) (*ProposalListResult, error) {
	_, bound, err := resolveBound(ctx, uc.config, uc.reader, params.Max, uc.log)
	if err != nil {
		return nil, err
	}
	bound = min(bound, MaxScanBound)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Total:   int(bound),
		Message: "Loading proposals",
		Spinner: true,
	})

	result := &ProposalListResult{Bound: bound, Proposals: []*ProposalView{}}
	for id := uint64(1); id <= bound; id++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view, err := loadProposal(ctx, uc.config, uc.reader, uc.clock, id, params.Account)
		if errors.Is(err, domain.ErrProposalNotFound) {
			continue
		}
		if err != nil {
			uc.log.Warn("failed to load proposal", "proposal_id", id, "error", err)
			result.Failures = append(result.Failures, ScanFailure{ID: id, Stage: ScanStageRead, Err: err})
			continue
		}
		result.Proposals = append(result.Proposals, view)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(result.Proposals),
		Total:   len(result.Proposals),
		Message: "Proposals loaded",
	})

	return result, nil
}

// ShowProposalParams identifies one proposal
type ShowProposalParams struct {
	ID      uint64
	Account *common.Address
}

// ShowProposal reads a single proposal
type ShowProposal struct {
	config *config.RuntimeConfig
	reader ProposalReader
	clock  Clock
}

// NewShowProposal creates a new ShowProposal use case
func NewShowProposal(cfg *config.RuntimeConfig, reader ProposalReader, clock Clock) *ShowProposal {
	return &ShowProposal{config: cfg, reader: reader, clock: clock}
}

// Run returns the proposal or domain.ErrProposalNotFound
func (uc *ShowProposal) Run(ctx context.Context, params ShowProposalParams) (*ProposalView, error) {
	if params.ID == 0 {
		return nil, domain.ValidationError{Field: "id", Reason: "proposal ids start at 1"}
	}
	return loadProposal(ctx, uc.config, uc.reader, uc.clock, params.ID, params.Account)
}

// GetUserVote reads the vote an account cast on a proposal
type GetUserVote struct {
	config *config.RuntimeConfig
	reader ProposalReader
}

// NewGetUserVote creates a new GetUserVote use case
func NewGetUserVote(cfg *config.RuntimeConfig, reader ProposalReader) *GetUserVote {
	return &GetUserVote{config: cfg, reader: reader}
}

// Run returns the account's vote on proposal id
func (uc *GetUserVote) Run(ctx context.Context, id uint64, account common.Address) (*domain.UserVote, error) {
	vote, err := readWithRetry(ctx, uc.config, func(ctx context.Context) (*domain.UserVote, error) {
		return uc.reader.GetUserVote(ctx, id, account)
	})
	if err != nil {
		return nil, domain.InfraError{Op: "read user vote", Err: err}
	}
	return vote, nil
}

// GetNonce reads the forwarder nonce a client must sign its next request with
type GetNonce struct {
	config    *config.RuntimeConfig
	forwarder Forwarder
}

// NewGetNonce creates a new GetNonce use case
func NewGetNonce(cfg *config.RuntimeConfig, forwarder Forwarder) *GetNonce {
	return &GetNonce{config: cfg, forwarder: forwarder}
}

// Run returns the account's current forwarder nonce
func (uc *GetNonce) Run(ctx context.Context, account common.Address) (*big.Int, error) {
	nonce, err := readWithRetry(ctx, uc.config, func(ctx context.Context) (*big.Int, error) {
		return uc.forwarder.GetNonce(ctx, account)
	})
	if err != nil {
		return nil, domain.InfraError{Op: "read nonce", Err: err}
	}
	return nonce, nil
}

// loadProposal reads one snapshot, derives its state and optionally the account's vote.
// It returns domain.ErrProposalNotFound for ids that were never used.
func loadProposal(ctx context.Context, cfg *config.RuntimeConfig, reader ProposalReader, clock Clock, id uint64, account *common.Address) (*ProposalView, error) {
	proposal, err := readWithRetry(ctx, cfg, func(ctx context.Context) (*domain.Proposal, error) {
		return reader.GetProposal(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProposalNotFound) {
			return nil, err
		}
		return nil, domain.InfraError{Op: "read proposal", Err: err}
	}
	if !proposal.Exists() {
		return nil, domain.ErrProposalNotFound
	}

	view := &ProposalView{Proposal: proposal, State: domain.StateOf(proposal, nowUnix(clock))}
	if cfg.StateSource == config.StateSourceLedger {
		state, err := readWithRetry(ctx, cfg, func(ctx context.Context) (domain.ProposalState, error) {
			return reader.GetProposalState(ctx, id)
		})
		if err != nil {
			return nil, domain.InfraError{Op: "read proposal state", Err: err}
		}
		view.State = state
	}

	if account != nil {
		vote, err := readWithRetry(ctx, cfg, func(ctx context.Context) (*domain.UserVote, error) {
			return reader.GetUserVote(ctx, id, *account)
		})
		if err != nil {
			return nil, domain.InfraError{Op: "read user vote", Err: err}
		}
		view.UserVote = vote
	}

	return view, nil
}
