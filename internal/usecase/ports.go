package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/domain"
)

// ProposalReader reads proposal snapshots from the ledger
type ProposalReader interface {
	// ProposalCount returns the number of proposals ever created.
	// Ledgers without a count return domain.ErrProposalCountUnavailable.
	ProposalCount(ctx context.Context) (uint64, error)
	GetProposal(ctx context.Context, id uint64) (*domain.Proposal, error)
	GetProposalState(ctx context.Context, id uint64) (domain.ProposalState, error)
	GetUserVote(ctx context.Context, id uint64, account common.Address) (*domain.UserVote, error)
}

// ProposalExecutor triggers execution of an approved proposal
type ProposalExecutor interface {
	ExecuteProposal(ctx context.Context, id uint64) (*domain.Receipt, error)
}

// Forwarder is the meta-transaction forwarding contract
type Forwarder interface {
	ChainID() *big.Int
	Address() common.Address
	GetNonce(ctx context.Context, account common.Address) (*big.Int, error)
	// Verify runs the forwarder's own signature and nonce check without submitting
	Verify(ctx context.Context, req *domain.ForwardRequest, signature []byte) (bool, error)
	// Execute submits the request and blocks until it is confirmed
	Execute(ctx context.Context, req *domain.ForwardRequest, signature []byte, gasLimit uint64) (*domain.Receipt, error)
}

// Ledger is the full set of ledger operations the relay consumes
type Ledger interface {
	ProposalReader
	ProposalExecutor
	Forwarder
}

// RequestHasher builds the typed-data hash a forward request signature must cover
type RequestHasher interface {
	HashForwardRequest(req *domain.ForwardRequest) (common.Hash, error)
}

// SignatureVerifier checks that a signature over hash was produced by claimed
type SignatureVerifier interface {
	Verify(hash common.Hash, signature []byte, claimed common.Address) (bool, error)
}

// HashSigner signs typed-data hashes on behalf of one account
type HashSigner interface {
	Address() common.Address
	SignHash(hash common.Hash) ([]byte, error)
}

// NonceStore persists the next acceptable nonce per account
type NonceStore interface {
	// Get returns the stored next nonce and whether a record exists
	Get(ctx context.Context, account common.Address) (*big.Int, bool, error)
	Put(ctx context.Context, account common.Address, next *big.Int) error
}

// CallEncoder encodes DAO calls into forward request data
type CallEncoder interface {
	PackVote(id uint64, vote domain.VoteType) []byte
}

// RelayClient submits signed forward requests to a relay service
type RelayClient interface {
	Relay(ctx context.Context, req domain.RawForwardRequest, signature string) (common.Hash, error)
}

// Clock supplies the current time for state derivation
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// RelayObserver records relay outcomes
type RelayObserver interface {
	ObserveRelay(kind string, elapsed time.Duration)
}

// ScanObserver records scan tick outcomes
type ScanObserver interface {
	ObserveScan(result *ScanResult, elapsed time.Duration)
}

// NopObserver discards observations
type NopObserver struct{}

func (NopObserver) ObserveRelay(string, time.Duration)     {}
func (NopObserver) ObserveScan(*ScanResult, time.Duration) {}

// Selector resolves vote arguments the user left out
type Selector interface {
	SelectProposal(ctx context.Context, views []*ProposalView, prompt string) (*ProposalView, error)
	SelectVote(ctx context.Context, view *ProposalView) (domain.VoteType, error)
}
