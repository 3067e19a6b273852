package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"golang.org/x/sync/errgroup"
)

const defaultOpTimeout = 60 * time.Second

// MaxScanBound caps the ids a single tick examines
const MaxScanBound = config.MaxScanBound

// Scan stages recorded on failures
const (
	ScanStageRead    = "read"
	ScanStageExecute = "execute"
)

// ScanProposalsParams contains parameters for one scan tick
type ScanProposalsParams struct {
	// Max overrides the configured maximum proposal id when non-zero
	Max uint64
}

// ExecutedProposal is a proposal the scanner executed
type ExecutedProposal struct {
	ID     uint64      `json:"id"`
	TxHash common.Hash `json:"txHash"`
}

// ScanFailure is an isolated per-proposal failure
type ScanFailure struct {
	ID    uint64
	Stage string
	Err   error
}

// ScanResult summarizes one tick
type ScanResult struct {
	Mode      config.ScanMode
	Bound     uint64
	Examined  int
	Processed []ExecutedProposal
	Failures  []ScanFailure
}

type scanOutcome struct {
	exists   bool
	executed *ExecutedProposal
	failure  *ScanFailure
}

// ScanProposals examines proposals 1..bound and executes every approved one.
// Ticks never overlap; a failure on one id never aborts the tick.
type ScanProposals struct {
	config   *config.RuntimeConfig
	ledger   Ledger
	clock    Clock
	sink     ProgressSink
	observer ScanObserver
	log      *slog.Logger
	running  chan struct{}
}

// NewScanProposals creates a new ScanProposals use case
func NewScanProposals(
	cfg *config.RuntimeConfig,
	ledger Ledger,
	clock Clock,
	sink ProgressSink,
	observer ScanObserver,
	log *slog.Logger,
) *ScanProposals {
	return &ScanProposals{
		config:   cfg,
		ledger:   ledger,
		clock:    clock,
		sink:     sink,
		observer: observer,
		log:      log.With("component", "scanner"),
		running:  make(chan struct{}, 1),
	}
}

// Run executes one tick. It waits for a tick already in progress to finish.
// If ctx ends mid-tick the partial result is returned alongside ctx.Err().
func (uc *ScanProposals) Run(ctx context.Context, params ScanProposalsParams) (*ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case uc.running <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-uc.running }()

	start := time.Now()
	mode, bound, err := resolveBound(ctx, uc.config, uc.ledger, params.Max, uc.log)
	if err != nil {
		return nil, err
	}
	if bound > MaxScanBound {
		uc.log.Warn("scan bound clamped", "bound", bound, "limit", MaxScanBound)
		bound = MaxScanBound
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "scanning",
		Total:   int(bound),
		Message: fmt.Sprintf("Scanning proposals 1..%d", bound),
		Spinner: true,
	})

	outcomes := make([]scanOutcome, bound)
	if workers := uc.config.ScanWorkers; workers > 1 {
		var g errgroup.Group
		g.SetLimit(workers)
		for i := range outcomes {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				outcomes[i] = uc.scanOne(ctx, uint64(i)+1)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range outcomes {
			if ctx.Err() != nil {
				break
			}
			outcomes[i] = uc.scanOne(ctx, uint64(i)+1)
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   "scanning",
				Current: i + 1,
				Total:   int(bound),
				Message: fmt.Sprintf("Proposal %d", i+1),
				Spinner: true,
			})
		}
	}

	result := &ScanResult{
		Mode:      mode,
		Bound:     bound,
		Processed: []ExecutedProposal{},
	}
	for _, outcome := range outcomes {
		if outcome.exists {
			result.Examined++
		}
		if outcome.executed != nil {
			result.Processed = append(result.Processed, *outcome.executed)
		}
		if outcome.failure != nil {
			result.Failures = append(result.Failures, *outcome.failure)
		}
	}

	if len(result.Processed) == 0 {
		uc.log.Info("no executable proposals", "bound", bound, "examined", result.Examined, "failures", len(result.Failures))
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: int(bound),
		Total:   int(bound),
		Message: fmt.Sprintf("Executed %d proposal(s)", len(result.Processed)),
	})
	uc.observer.ObserveScan(result, time.Since(start))

	return result, ctx.Err()
}

// resolveBound returns the highest id to examine. Count mode is capped by the
// ceiling when one is set; a ledger without a count falls back to the ceiling.
func resolveBound(ctx context.Context, cfg *config.RuntimeConfig, reader ProposalReader, override uint64, log *slog.Logger) (config.ScanMode, uint64, error) {
	ceiling := cfg.MaxProposals
	if override > 0 {
		ceiling = override
	}

	if cfg.ScanMode == config.ScanModeCeiling {
		return config.ScanModeCeiling, ceiling, nil
	}

	count, err := readWithRetry(ctx, cfg, reader.ProposalCount)
	switch {
	case errors.Is(err, domain.ErrProposalCountUnavailable):
		log.Warn("proposal count unavailable, scanning up to ceiling", "ceiling", ceiling)
		return config.ScanModeCeiling, ceiling, nil
	case err != nil:
		return "", 0, domain.InfraError{Op: "read proposal count", Err: err}
	}

	if ceiling > 0 && ceiling < count {
		return config.ScanModeCount, ceiling, nil
	}
	return config.ScanModeCount, count, nil
}

func (uc *ScanProposals) scanOne(ctx context.Context, id uint64) scanOutcome {
	opCtx, cancel := context.WithTimeout(ctx, uc.opTimeout())
	defer cancel()

	state, err := uc.stateOf(opCtx, id)
	if err != nil {
		uc.log.Warn("failed to read proposal", "proposal_id", id, "error", err)
		return scanOutcome{failure: &ScanFailure{ID: id, Stage: ScanStageRead, Err: domain.InfraError{Op: "read proposal", Err: err}}}
	}
	if state == domain.StateNonexistent {
		return scanOutcome{}
	}
	if state != domain.StateApproved {
		uc.log.Debug("proposal not executable", "proposal_id", id, "state", state)
		return scanOutcome{exists: true}
	}

	receipt, err := uc.ledger.ExecuteProposal(opCtx, id)
	if err != nil {
		uc.log.Warn("failed to execute proposal", "proposal_id", id, "error", err)
		return scanOutcome{exists: true, failure: &ScanFailure{ID: id, Stage: ScanStageExecute, Err: domain.ExecutionError{Op: "execute proposal", Err: err}}}
	}

	uc.log.Info("executed proposal", "proposal_id", id, "tx_hash", receipt.TxHash.Hex())
	return scanOutcome{exists: true, executed: &ExecutedProposal{ID: id, TxHash: receipt.TxHash}}
}

// stateOf derives the proposal state from the configured source
func (uc *ScanProposals) stateOf(ctx context.Context, id uint64) (domain.ProposalState, error) {
	return proposalState(ctx, uc.config, uc.ledger, uc.clock, id)
}

func (uc *ScanProposals) opTimeout() time.Duration {
	if uc.config.OpTimeout > 0 {
		return uc.config.OpTimeout
	}
	return defaultOpTimeout
}

// proposalState is the single state derivation shared by every use case.
// Local mode computes it from the snapshot; ledger mode asks the ledger.
func proposalState(ctx context.Context, cfg *config.RuntimeConfig, reader ProposalReader, clock Clock, id uint64) (domain.ProposalState, error) {
	if cfg.StateSource == config.StateSourceLedger {
		return readWithRetry(ctx, cfg, func(ctx context.Context) (domain.ProposalState, error) {
			return reader.GetProposalState(ctx, id)
		})
	}

	proposal, err := readWithRetry(ctx, cfg, func(ctx context.Context) (*domain.Proposal, error) {
		return reader.GetProposal(ctx, id)
	})
	switch {
	case errors.Is(err, domain.ErrProposalNotFound):
		return domain.StateNonexistent, nil
	case err != nil:
		return domain.StateNonexistent, err
	}
	return domain.StateOf(proposal, nowUnix(clock)), nil
}

func nowUnix(clock Clock) uint64 {
	now := clock.Now().Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}
