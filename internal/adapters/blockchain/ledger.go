package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/govrelay/internal/adapters/blockchain/bindings"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

const defaultReceiptPollInterval = time.Second

// TxSigner signs ledger transactions for the relayer account
type TxSigner interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// ChainLedger implements the ledger over the deployed DAO and forwarder contracts
type ChainLedger struct {
	backend Backend
	chainID *big.Int
	signer  TxSigner // nil for read-only use

	daoAddress       common.Address
	forwarderAddress common.Address
	daoABI           *bindings.DAOVoting
	forwarderABI     *bindings.MinimalForwarder
	dao              *bind.BoundContract
	forwarder        *bind.BoundContract

	// serializes nonce selection and broadcast for the relayer account
	sendMu       sync.Mutex
	pollInterval time.Duration
	log          *slog.Logger
}

// NewChainLedger binds the DAO and forwarder contracts on backend
func NewChainLedger(backend Backend, chainID *big.Int, dao, forwarder common.Address, signer TxSigner, log *slog.Logger) *ChainLedger {
	daoABI := bindings.NewDAOVoting()
	forwarderABI := bindings.NewMinimalForwarder()
	return &ChainLedger{
		backend:          backend,
		chainID:          new(big.Int).Set(chainID),
		signer:           signer,
		daoAddress:       dao,
		forwarderAddress: forwarder,
		daoABI:           daoABI,
		forwarderABI:     forwarderABI,
		dao:              daoABI.Instance(backend, dao),
		forwarder:        forwarderABI.Instance(backend, forwarder),
		pollInterval:     defaultReceiptPollInterval,
		log:              log.With("component", "ledger"),
	}
}

// ChainID returns the chain the ledger is bound to
func (l *ChainLedger) ChainID() *big.Int {
	return new(big.Int).Set(l.chainID)
}

// Address returns the forwarder contract address
func (l *ChainLedger) Address() common.Address {
	return l.forwarderAddress
}

// ProposalCount reads proposalCount(). A reverting call means the DAO does not expose a count.
func (l *ChainLedger) ProposalCount(ctx context.Context) (uint64, error) {
	count, err := bind.Call(l.dao, l.callOpts(ctx), l.daoABI.PackProposalCount(), l.daoABI.UnpackProposalCount)
	if err != nil {
		if isRevert(err) {
			return 0, domain.ErrProposalCountUnavailable
		}
		return 0, fmt.Errorf("failed to read proposal count: %w", err)
	}
	if !count.IsUint64() {
		return 0, fmt.Errorf("proposal count %s out of range", count)
	}
	return count.Uint64(), nil
}

// GetProposal reads a proposal snapshot. Unused ids come back with CreatedAt == 0.
func (l *ChainLedger) GetProposal(ctx context.Context, id uint64) (*domain.Proposal, error) {
	raw, err := bind.Call(l.dao, l.callOpts(ctx), l.daoABI.PackGetProposal(new(big.Int).SetUint64(id)), l.daoABI.UnpackGetProposal)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposal %d: %w", id, err)
	}
	return &domain.Proposal{
		ID:           id,
		Recipient:    raw.Recipient,
		Amount:       raw.Amount,
		Deadline:     toUint64(raw.Deadline),
		VotesFor:     raw.VotesFor,
		VotesAgainst: raw.VotesAgainst,
		VotesAbstain: raw.VotesAbstain,
		Executed:     raw.Executed,
		CreatedAt:    toUint64(raw.CreatedAt),
		ExecutableAt: toUint64(raw.ExecutableAt),
		Description:  raw.Description,
	}, nil
}

// GetProposalState reads the DAO's own enumerated state
func (l *ChainLedger) GetProposalState(ctx context.Context, id uint64) (domain.ProposalState, error) {
	raw, err := bind.Call(l.dao, l.callOpts(ctx), l.daoABI.PackGetProposalState(new(big.Int).SetUint64(id)), l.daoABI.UnpackGetProposalState)
	if err != nil {
		return domain.StateNonexistent, fmt.Errorf("failed to read state of proposal %d: %w", id, err)
	}
	return domain.ProposalStateFromLedger(raw)
}

// GetUserVote reads the vote account cast on proposal id
func (l *ChainLedger) GetUserVote(ctx context.Context, id uint64, account common.Address) (*domain.UserVote, error) {
	raw, err := bind.Call(l.dao, l.callOpts(ctx), l.daoABI.PackGetUserVote(new(big.Int).SetUint64(id), account), l.daoABI.UnpackGetUserVote)
	if err != nil {
		return nil, fmt.Errorf("failed to read vote of %s on proposal %d: %w", account.Hex(), id, err)
	}
	vote := &domain.UserVote{HasVoted: raw.HasVoted}
	if raw.HasVoted {
		vote.VoteType = domain.VoteType(raw.VoteType)
	}
	return vote, nil
}

// ExecuteProposal submits executeProposal(id) from the relayer account and waits for it
func (l *ChainLedger) ExecuteProposal(ctx context.Context, id uint64) (*domain.Receipt, error) {
	tx, err := l.transact(ctx, l.dao, l.daoABI.PackExecuteProposal(new(big.Int).SetUint64(id)), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to submit execution of proposal %d: %w", id, err)
	}
	l.log.Debug("submitted proposal execution", "proposal_id", id, "tx_hash", tx.Hash().Hex())
	return l.waitMined(ctx, tx)
}

// GetNonce reads the forwarder nonce of account
func (l *ChainLedger) GetNonce(ctx context.Context, account common.Address) (*big.Int, error) {
	nonce, err := bind.Call(l.forwarder, l.callOpts(ctx), l.forwarderABI.PackGetNonce(account), l.forwarderABI.UnpackGetNonce)
	if err != nil {
		return nil, fmt.Errorf("failed to read nonce of %s: %w", account.Hex(), err)
	}
	return nonce, nil
}

// Verify runs the forwarder's verify(req, signature) view
func (l *ChainLedger) Verify(ctx context.Context, req *domain.ForwardRequest, signature []byte) (bool, error) {
	packed, err := l.forwarderABI.TryPackVerify(toBinding(req), contractSignature(signature))
	if err != nil {
		return false, err
	}
	ok, err := bind.Call(l.forwarder, l.callOpts(ctx), packed, l.forwarderABI.UnpackVerify)
	if err != nil {
		return false, fmt.Errorf("failed to verify request: %w", err)
	}
	return ok, nil
}

// Execute simulates then submits execute(req, signature) with gasLimit and waits for it.
// The forwarder does not revert when the inner call fails, so a failing simulation
// is reported as a revert before anything is broadcast.
func (l *ChainLedger) Execute(ctx context.Context, req *domain.ForwardRequest, signature []byte, gasLimit uint64) (*domain.Receipt, error) {
	packed, err := l.forwarderABI.TryPackExecute(toBinding(req), contractSignature(signature))
	if err != nil {
		return nil, err
	}

	if l.signer != nil {
		opts := l.callOpts(ctx)
		opts.From = l.signer.Address()
		simulated, err := bind.Call(l.forwarder, opts, packed, l.forwarderABI.UnpackExecute)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrReverted, err)
		}
		if !simulated.Arg0 {
			return nil, fmt.Errorf("%w: forwarded call to %s failed", domain.ErrReverted, req.To.Hex())
		}
	}

	tx, err := l.transact(ctx, l.forwarder, packed, gasLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to submit forward request: %w", err)
	}
	l.log.Debug("submitted forward request", "from", req.From.Hex(), "tx_hash", tx.Hash().Hex())
	return l.waitMined(ctx, tx)
}

func (l *ChainLedger) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func (l *ChainLedger) transact(ctx context.Context, contract *bind.BoundContract, data []byte, gasLimit uint64) (*types.Transaction, error) {
	if l.signer == nil {
		return nil, domain.ErrReadOnly
	}

	l.sendMu.Lock()
	defer l.sendMu.Unlock()

	relayer := l.signer.Address()
	opts := &bind.TransactOpts{
		From:     relayer,
		Context:  ctx,
		GasLimit: gasLimit,
		Signer: func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if addr != relayer {
				return nil, fmt.Errorf("not authorized to sign for %s", addr.Hex())
			}
			return l.signer.SignTx(tx, l.chainID)
		},
	}
	return bind.Transact(contract, opts, data)
}

// waitMined polls for the receipt until ctx ends. A failed status is domain.ErrReverted.
func (l *ChainLedger) waitMined(ctx context.Context, tx *types.Transaction) (*domain.Receipt, error) {
	receipt, err := retry.DoWithData(
		func() (*types.Receipt, error) { return l.backend.TransactionReceipt(ctx, tx.Hash()) },
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(l.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), ctxErr)
		}
		return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrReverted, tx.Hash().Hex())
	}

	result := &domain.Receipt{TxHash: receipt.TxHash, GasUsed: receipt.GasUsed}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return result, nil
}

func toBinding(req *domain.ForwardRequest) bindings.MinimalForwarderForwardRequest {
	return bindings.ToForwardRequest(req.From, req.To, req.Value, req.Gas, req.Nonce, req.Data)
}

// contractSignature rewrites a 0/1 recovery id to the 27/28 form ecrecover expects
func contractSignature(sig []byte) []byte {
	out := append([]byte(nil), sig...)
	if len(out) == crypto.SignatureLength && out[crypto.RecoveryIDOffset] < 27 {
		out[crypto.RecoveryIDOffset] += 27
	}
	return out
}

func isRevert(err error) bool {
	var dataErr interface{ ErrorData() interface{} }
	if errors.As(err, &dataErr) {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}

func toUint64(v *big.Int) uint64 {
	if v == nil || !v.IsUint64() {
		return 0
	}
	return v.Uint64()
}

// Ensure the ledger implements the interface
var _ usecase.Ledger = (*ChainLedger)(nil)
