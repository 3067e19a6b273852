package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
)

// DefaultVoteGas is the gas a gasless vote requests from the forwarder
const DefaultVoteGas uint64 = 300_000

// PrepareVoteParams contains parameters for building a gasless vote
type PrepareVoteParams struct {
	ProposalID uint64
	Vote       domain.VoteType
	Gas        uint64
	// Signer is the voting account; it never leaves the caller
	Signer HashSigner
}

// PreparedVote is a signed forward request ready to be relayed
type PreparedVote struct {
	Request   domain.RawForwardRequest
	Signature string
	Hash      common.Hash
	State     domain.ProposalState
}

// PrepareVote builds and signs a vote forward request after checking the vote is legal
type PrepareVote struct {
	config    *config.RuntimeConfig
	reader    ProposalReader
	forwarder Forwarder
	encoder   CallEncoder
	hasher    RequestHasher
	clock     Clock
}

// NewPrepareVote creates a new PrepareVote use case
func NewPrepareVote(
	cfg *config.RuntimeConfig,
	reader ProposalReader,
	forwarder Forwarder,
	encoder CallEncoder,
	hasher RequestHasher,
	clock Clock,
) *PrepareVote {
	return &PrepareVote{
		config:    cfg,
		reader:    reader,
		forwarder: forwarder,
		encoder:   encoder,
		hasher:    hasher,
		clock:     clock,
	}
}

// Run returns a StateError when the proposal is not ACTIVE or the signer already voted
func (uc *PrepareVote) Run(ctx context.Context, params PrepareVoteParams) (*PreparedVote, error) {
	if params.Signer == nil {
		return nil, domain.ValidationError{Field: "signer", Reason: "a voting key is required"}
	}
	if !params.Vote.Valid() {
		return nil, domain.ValidationError{Field: "vote", Reason: fmt.Sprintf("unknown vote type %d", uint8(params.Vote))}
	}
	gas := params.Gas
	if gas == 0 {
		gas = DefaultVoteGas
	}

	voter := params.Signer.Address()
	state := domain.StateNonexistent
	var prior *domain.UserVote

	view, err := loadProposal(ctx, uc.config, uc.reader, uc.clock, params.ProposalID, &voter)
	switch {
	case errors.Is(err, domain.ErrProposalNotFound):
	case err != nil:
		return nil, err
	default:
		state, prior = view.State, view.UserVote
	}
	if err := domain.CheckVote(params.ProposalID, state, prior); err != nil {
		return nil, err
	}

	nonce, err := readWithRetry(ctx, uc.config, func(ctx context.Context) (*big.Int, error) {
		return uc.forwarder.GetNonce(ctx, voter)
	})
	if err != nil {
		return nil, domain.InfraError{Op: "read nonce", Err: err}
	}

	req := &domain.ForwardRequest{
		From:  voter,
		To:    uc.config.DAOAddress,
		Value: new(big.Int),
		Gas:   new(big.Int).SetUint64(gas),
		Nonce: nonce,
		Data:  uc.encoder.PackVote(params.ProposalID, params.Vote),
	}

	hash, err := uc.hasher.HashForwardRequest(req)
	if err != nil {
		return nil, err
	}
	sig, err := params.Signer.SignHash(hash)
	if err != nil {
		return nil, err
	}

	return &PreparedVote{
		Request:   req.Raw(),
		Signature: hexutil.Encode(sig),
		Hash:      hash,
		State:     state,
	}, nil
}
