package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

const (
	chainID  = 31337
	voterKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

var (
	daoAddress       = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	forwarderAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	funder           = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	recipient        = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ChainID:          chainID,
		DAOAddress:       daoAddress,
		ForwarderAddress: forwarderAddress,
		MaxProposals:     50,
		ScanMode:         config.ScanModeCount,
		StateSource:      config.StateSourceLocal,
		ReadRetries:      1,
		ReadRetryDelay:   time.Millisecond,
		OpTimeout:        time.Second,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedClock struct{ now time.Time }

func clockAt(sec int64) fixedClock { return fixedClock{now: time.Unix(sec, 0)} }

func (c fixedClock) Now() time.Time { return c.now }

// MockLedger is a mock implementation of Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ProposalCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedger) GetProposal(ctx context.Context, id uint64) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

func (m *MockLedger) GetProposalState(ctx context.Context, id uint64) (domain.ProposalState, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ProposalState), args.Error(1)
}

func (m *MockLedger) GetUserVote(ctx context.Context, id uint64, account common.Address) (*domain.UserVote, error) {
	args := m.Called(ctx, id, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserVote), args.Error(1)
}

func (m *MockLedger) ExecuteProposal(ctx context.Context, id uint64) (*domain.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockLedger) ChainID() *big.Int {
	return big.NewInt(chainID)
}

func (m *MockLedger) Address() common.Address {
	return forwarderAddress
}

func (m *MockLedger) GetNonce(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockLedger) Verify(ctx context.Context, req *domain.ForwardRequest, signature []byte) (bool, error) {
	args := m.Called(ctx, req, signature)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) Execute(ctx context.Context, req *domain.ForwardRequest, signature []byte, gasLimit uint64) (*domain.Receipt, error) {
	args := m.Called(ctx, req, signature, gasLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

// recordingObserver collects relay and scan observations
type recordingObserver struct {
	mu     sync.Mutex
	relays []string
	scans  []*usecase.ScanResult
}

func (o *recordingObserver) ObserveRelay(kind string, _ time.Duration) {
	o.mu.Lock()
	o.relays = append(o.relays, kind)
	o.mu.Unlock()
}

func (o *recordingObserver) ObserveScan(result *usecase.ScanResult, _ time.Duration) {
	o.mu.Lock()
	o.scans = append(o.scans, result)
	o.mu.Unlock()
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func approvedProposal(id uint64) *domain.Proposal {
	return &domain.Proposal{
		ID:           id,
		Recipient:    recipient,
		Amount:       big.NewInt(1e18),
		Deadline:     1000,
		ExecutableAt: 1100,
		CreatedAt:    500,
		VotesFor:     big.NewInt(5),
		VotesAgainst: big.NewInt(2),
		VotesAbstain: big.NewInt(1),
	}
}

func rejectedProposal(id uint64) *domain.Proposal {
	p := approvedProposal(id)
	p.VotesFor = big.NewInt(2)
	p.VotesAgainst = big.NewInt(2)
	return p
}

func txHash(n byte) common.Hash {
	return common.BytesToHash([]byte{n})
}
