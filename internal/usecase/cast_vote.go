package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// CastVoteResult contains the prepared vote and the relay's transaction hash
type CastVoteResult struct {
	Vote   *PreparedVote
	TxHash common.Hash
}

// CastVote prepares a gasless vote and hands it to a relay service
type CastVote struct {
	prepare *PrepareVote
	client  RelayClient
	sink    ProgressSink
}

// NewCastVote creates a new CastVote use case
func NewCastVote(prepare *PrepareVote, client RelayClient, sink ProgressSink) *CastVote {
	return &CastVote{prepare: prepare, client: client, sink: sink}
}

// Run signs the vote locally; only the signed request is sent to the relay
func (uc *CastVote) Run(ctx context.Context, params PrepareVoteParams) (*CastVoteResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "signing", Message: "Signing vote", Spinner: true})
	vote, err := uc.prepare.Run(ctx, params)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "relaying", Message: "Waiting for relay confirmation", Spinner: true})
	txHash, err := uc.client.Relay(ctx, vote.Request, vote.Signature)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: "Vote relayed"})
	return &CastVoteResult{Vote: vote, TxHash: txHash}, nil
}
