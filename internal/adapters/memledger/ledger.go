// Package memledger is an in-process ledger with the DAO and forwarder rules.
// It backs tests and the memory development mode.
package memledger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/govrelay/internal/adapters/blockchain/bindings"
	"github.com/trebuchet-org/govrelay/internal/adapters/eip712"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// DefaultSecurityDelay separates a proposal's deadline from its earliest execution
const DefaultSecurityDelay = time.Hour

// Revert reasons mirrored from the contracts
var (
	ErrBelowThreshold     = errors.New("DAOVoting: balance below proposal threshold")
	ErrInsufficientFunds  = errors.New("DAOVoting: insufficient DAO balance")
	ErrDeadlineInPast     = errors.New("DAOVoting: deadline must be in the future")
	ErrVotingClosed       = errors.New("DAOVoting: voting is closed")
	ErrAlreadyVoted       = errors.New("DAOVoting: already voted")
	ErrInvalidVoteType    = errors.New("DAOVoting: invalid vote type")
	ErrNotApproved        = errors.New("DAOVoting: proposal is not approved")
	ErrSignatureMismatch  = errors.New("MinimalForwarder: signature does not match request")
	ErrUnsupportedCall    = errors.New("MinimalForwarder: unsupported call")
	ErrInsufficientGas    = errors.New("MinimalForwarder: insufficient gas")
	ErrZeroAmount         = errors.New("DAOVoting: amount must be positive")
	ErrInvalidRecipient   = errors.New("DAOVoting: invalid recipient")
	ErrProposalNotPresent = errors.New("DAOVoting: proposal does not exist")
)

// Ledger is an in-memory DAO plus MinimalForwarder
type Ledger struct {
	mu sync.Mutex

	chainID       *big.Int
	dao           common.Address
	forwarder     common.Address
	clock         usecase.Clock
	securityDelay time.Duration
	countless     bool

	hasher   *eip712.Hasher
	daoABI   *bindings.DAOVoting
	balances map[common.Address]*big.Int
	treasury *big.Int
	payouts  map[common.Address]*big.Int

	proposals []*domain.Proposal
	votes     map[uint64]map[common.Address]domain.VoteType
	nonces    map[common.Address]*big.Int

	txCount    uint64
	executions map[uint64]int
	forwarded  int
}

// Option configures a Ledger
type Option func(*Ledger)

// WithClock sets the ledger's block time source
func WithClock(clock usecase.Clock) Option {
	return func(l *Ledger) { l.clock = clock }
}

// WithSecurityDelay sets the delay between deadline and executableAt
func WithSecurityDelay(d time.Duration) Option {
	return func(l *Ledger) { l.securityDelay = d }
}

// WithoutProposalCount makes ProposalCount report domain.ErrProposalCountUnavailable
func WithoutProposalCount() Option {
	return func(l *Ledger) { l.countless = true }
}

// New creates an empty ledger for the given chain and contract addresses
func New(chainID *big.Int, dao, forwarder common.Address, opts ...Option) *Ledger {
	l := &Ledger{
		chainID:       new(big.Int).Set(chainID),
		dao:           dao,
		forwarder:     forwarder,
		clock:         usecase.SystemClock{},
		securityDelay: DefaultSecurityDelay,
		hasher:        eip712.NewHasher(eip712.NewDomain(chainID, forwarder)),
		daoABI:        bindings.NewDAOVoting(),
		balances:      make(map[common.Address]*big.Int),
		treasury:      new(big.Int),
		payouts:       make(map[common.Address]*big.Int),
		votes:         make(map[uint64]map[common.Address]domain.VoteType),
		nonces:        make(map[common.Address]*big.Int),
		executions:    make(map[uint64]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fund deposits amount from account into the DAO treasury
func (l *Ledger) Fund(account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] = new(big.Int).Add(l.balanceOf(account), amount)
	l.treasury.Add(l.treasury, amount)
	return nil
}

// CreateProposal opens a spending proposal. The proposer must hold at least 10%
// of the treasury and the treasury must cover amount.
func (l *Ledger) CreateProposal(proposer, recipient common.Address, amount *big.Int, deadline uint64, description string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	switch {
	case recipient == (common.Address{}):
		return 0, ErrInvalidRecipient
	case amount == nil || amount.Sign() <= 0:
		return 0, ErrZeroAmount
	case deadline <= now:
		return 0, ErrDeadlineInPast
	case amount.Cmp(l.treasury) > 0:
		return 0, ErrInsufficientFunds
	}

	threshold := new(big.Int).Div(l.treasury, big.NewInt(10))
	if l.balanceOf(proposer).Cmp(threshold) < 0 || l.balanceOf(proposer).Sign() == 0 {
		return 0, ErrBelowThreshold
	}

	id := uint64(len(l.proposals)) + 1
	l.proposals = append(l.proposals, &domain.Proposal{
		ID:           id,
		Recipient:    recipient,
		Amount:       new(big.Int).Set(amount),
		Deadline:     deadline,
		VotesFor:     new(big.Int),
		VotesAgainst: new(big.Int),
		VotesAbstain: new(big.Int),
		CreatedAt:    now,
		ExecutableAt: deadline + uint64(l.securityDelay/time.Second),
		Description:  description,
	})
	return id, nil
}

// Vote records a direct, non-forwarded vote
func (l *Ledger) Vote(voter common.Address, id uint64, vote domain.VoteType) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vote(voter, id, vote)
}

// SetProposal replaces or inserts a raw snapshot. Missing ids in between are left unused.
func (l *Ledger) SetProposal(p domain.Proposal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for uint64(len(l.proposals)) < p.ID {
		l.proposals = append(l.proposals, &domain.Proposal{ID: uint64(len(l.proposals)) + 1})
	}
	stored := p
	l.proposals[p.ID-1] = &stored
}

// ProposalCount returns the number of ids handed out
func (l *Ledger) ProposalCount(context.Context) (uint64, error) {
	if l.countless {
		return 0, domain.ErrProposalCountUnavailable
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(len(l.proposals)), nil
}

// GetProposal returns a copy of the snapshot; unused ids have CreatedAt == 0
func (l *Ledger) GetProposal(_ context.Context, id uint64) (*domain.Proposal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.proposal(id)
	if p == nil {
		return &domain.Proposal{ID: id}, nil
	}
	return copyProposal(p), nil
}

// GetProposalState computes the state at the ledger's current block time
func (l *Ledger) GetProposalState(_ context.Context, id uint64) (domain.ProposalState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.StateOf(l.proposal(id), l.now()), nil
}

// GetUserVote returns account's vote on proposal id
func (l *Ledger) GetUserVote(_ context.Context, id uint64, account common.Address) (*domain.UserVote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	vote, ok := l.votes[id][account]
	if !ok {
		return &domain.UserVote{}, nil
	}
	return &domain.UserVote{HasVoted: true, VoteType: vote}, nil
}

// ExecuteProposal pays out an approved proposal exactly once
func (l *Ledger) ExecuteProposal(ctx context.Context, id uint64) (*domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.proposal(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReverted, ErrProposalNotPresent)
	}
	if domain.StateOf(p, l.now()) != domain.StateApproved {
		return nil, fmt.Errorf("%w: %v", domain.ErrReverted, ErrNotApproved)
	}
	if cloneBig(p.Amount).Cmp(l.treasury) > 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrReverted, ErrInsufficientFunds)
	}

	p.Executed = true
	l.treasury.Sub(l.treasury, cloneBig(p.Amount))
	l.payouts[p.Recipient] = new(big.Int).Add(l.payoutOf(p.Recipient), cloneBig(p.Amount))
	l.executions[id]++
	return l.receipt(), nil
}

// ChainID returns the chain the forwarder domain is bound to
func (l *Ledger) ChainID() *big.Int {
	return new(big.Int).Set(l.chainID)
}

// Address returns the forwarder address
func (l *Ledger) Address() common.Address {
	return l.forwarder
}

// GetNonce returns the forwarder nonce of account
func (l *Ledger) GetNonce(_ context.Context, account common.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.nonceOf(account)), nil
}

// Verify checks the signature and nonce the way the forwarder contract does
func (l *Ledger) Verify(_ context.Context, req *domain.ForwardRequest, signature []byte) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verify(req, signature), nil
}

// Execute forwards req. Unlike the contract, a failing inner call reverts the
// whole submission so the nonce is not consumed.
func (l *Ledger) Execute(ctx context.Context, req *domain.ForwardRequest, signature []byte, gasLimit uint64) (*domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.verify(req, signature) {
		return nil, fmt.Errorf("%w: %v", domain.ErrReverted, ErrSignatureMismatch)
	}
	if !req.Gas.IsUint64() || gasLimit < req.Gas.Uint64() {
		return nil, fmt.Errorf("%w: %v", domain.ErrReverted, ErrInsufficientGas)
	}
	if req.To != l.dao {
		return nil, fmt.Errorf("%w: %v: target %s", domain.ErrReverted, ErrUnsupportedCall, req.To.Hex())
	}

	id, vote, err := l.daoABI.DecodeVote(req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", domain.ErrReverted, ErrUnsupportedCall, err)
	}
	if !id.IsUint64() {
		return nil, fmt.Errorf("%w: %v", domain.ErrReverted, ErrProposalNotPresent)
	}
	if err := l.vote(req.From, id.Uint64(), domain.VoteType(vote)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReverted, err)
	}

	l.nonces[req.From] = new(big.Int).Add(l.nonceOf(req.From), big.NewInt(1))
	l.forwarded++
	return l.receipt(), nil
}

// Executions returns how many times proposal id was paid out
func (l *Ledger) Executions(id uint64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.executions[id]
}

// Forwarded returns the number of forward requests that took effect
func (l *Ledger) Forwarded() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.forwarded
}

// Treasury returns the DAO balance
func (l *Ledger) Treasury() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.treasury)
}

// BalanceOf returns account's deposited balance
func (l *Ledger) BalanceOf(account common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.balanceOf(account))
}

// PayoutOf returns the total paid out to recipient
func (l *Ledger) PayoutOf(recipient common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.payoutOf(recipient))
}

func (l *Ledger) vote(voter common.Address, id uint64, vote domain.VoteType) error {
	p := l.proposal(id)
	if p == nil {
		return ErrProposalNotPresent
	}
	if !vote.Valid() {
		return ErrInvalidVoteType
	}
	if domain.StateOf(p, l.now()) != domain.StateActive {
		return ErrVotingClosed
	}
	if _, voted := l.votes[id][voter]; voted {
		return ErrAlreadyVoted
	}

	if l.votes[id] == nil {
		l.votes[id] = make(map[common.Address]domain.VoteType)
	}
	l.votes[id][voter] = vote

	one := big.NewInt(1)
	switch vote {
	case domain.VoteFor:
		p.VotesFor = new(big.Int).Add(cloneBig(p.VotesFor), one)
	case domain.VoteAgainst:
		p.VotesAgainst = new(big.Int).Add(cloneBig(p.VotesAgainst), one)
	case domain.VoteAbstain:
		p.VotesAbstain = new(big.Int).Add(cloneBig(p.VotesAbstain), one)
	}
	return nil
}

func (l *Ledger) verify(req *domain.ForwardRequest, signature []byte) bool {
	hash, err := l.hasher.HashForwardRequest(req)
	if err != nil {
		return false
	}
	signer, err := eip712.RecoverSigner(hash, signature)
	if err != nil {
		return false
	}
	return signer == req.From && req.Nonce != nil && req.Nonce.Cmp(l.nonceOf(req.From)) == 0
}

func (l *Ledger) proposal(id uint64) *domain.Proposal {
	if id == 0 || id > uint64(len(l.proposals)) {
		return nil
	}
	p := l.proposals[id-1]
	if !p.Exists() {
		return nil
	}
	return p
}

func (l *Ledger) receipt() *domain.Receipt {
	l.txCount++
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], l.txCount)
	return &domain.Receipt{
		TxHash:      crypto.Keccak256Hash(l.forwarder.Bytes(), seed[:]),
		BlockNumber: l.txCount,
	}
}

func (l *Ledger) now() uint64 {
	now := l.clock.Now().Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

func (l *Ledger) balanceOf(account common.Address) *big.Int {
	if b, ok := l.balances[account]; ok {
		return b
	}
	return new(big.Int)
}

func (l *Ledger) payoutOf(account common.Address) *big.Int {
	if b, ok := l.payouts[account]; ok {
		return b
	}
	return new(big.Int)
}

func (l *Ledger) nonceOf(account common.Address) *big.Int {
	if n, ok := l.nonces[account]; ok {
		return n
	}
	return new(big.Int)
}

func copyProposal(p *domain.Proposal) *domain.Proposal {
	out := *p
	out.Amount = cloneBig(p.Amount)
	out.VotesFor = cloneBig(p.VotesFor)
	out.VotesAgainst = cloneBig(p.VotesAgainst)
	out.VotesAbstain = cloneBig(p.VotesAbstain)
	return &out
}

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// Ensure the ledger implements the interface
var _ usecase.Ledger = (*Ledger)(nil)
