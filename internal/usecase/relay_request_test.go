package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/govrelay/internal/adapters/blockchain"
	"github.com/trebuchet-org/govrelay/internal/adapters/eip712"
	"github.com/trebuchet-org/govrelay/internal/adapters/memledger"
	"github.com/trebuchet-org/govrelay/internal/adapters/noncestore"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

type relayFixture struct {
	ledger   *memledger.Ledger
	clock    *memledger.ManualClock
	signer   *eip712.KeySigner
	hasher   *eip712.Hasher
	observer *recordingObserver
	relay    *usecase.RelayRequest
	proposal uint64
}

func newRelayFixture(t *testing.T) *relayFixture {
	clock := memledger.NewManualClock(1000)
	ledger := memledger.New(big.NewInt(chainID), daoAddress, forwarderAddress, memledger.WithClock(clock))
	require.NoError(t, ledger.Fund(funder, big.NewInt(1e18)))
	id, err := ledger.CreateProposal(funder, recipient, big.NewInt(1e17), 2000, "audit")
	require.NoError(t, err)

	signer, err := eip712.KeySignerFromHex(voterKey)
	require.NoError(t, err)
	hasher := eip712.NewHasher(eip712.NewDomain(ledger.ChainID(), ledger.Address()))
	observer := &recordingObserver{}
	guard := usecase.NewNonceGuard(noncestore.NewMemory(), ledger.GetNonce)

	return &relayFixture{
		ledger:   ledger,
		clock:    clock,
		signer:   signer,
		hasher:   hasher,
		observer: observer,
		relay:    usecase.NewRelayRequest(testConfig(), ledger, hasher, eip712.NewVerifier(), guard, observer, discardLogger()),
		proposal: id,
	}
}

func (f *relayFixture) signedVote(t *testing.T, nonce int64, vote domain.VoteType) usecase.RelayRequestParams {
	return f.signedVoteOn(t, f.proposal, nonce, vote)
}

func (f *relayFixture) signedVoteOn(t *testing.T, proposal uint64, nonce int64, vote domain.VoteType) usecase.RelayRequestParams {
	req := &domain.ForwardRequest{
		From:  f.signer.Address(),
		To:    daoAddress,
		Value: new(big.Int),
		Gas:   big.NewInt(300000),
		Nonce: big.NewInt(nonce),
		Data:  blockchain.NewDAOEncoder().PackVote(proposal, vote),
	}
	hash, err := f.hasher.HashForwardRequest(req)
	require.NoError(t, err)
	sig, err := f.signer.SignHash(hash)
	require.NoError(t, err)
	return usecase.RelayRequestParams{Request: req.Raw(), Signature: hexutil.Encode(sig)}
}

func TestRelayRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards once and rejects the replay", func(t *testing.T) {
		f := newRelayFixture(t)
		params := f.signedVote(t, 0, domain.VoteFor)

		result, err := f.relay.Run(ctx, params)
		require.NoError(t, err)
		assert.NotEqual(t, common.Hash{}, result.TxHash)
		assert.Equal(t, f.signer.Address(), result.From)
		assert.Equal(t, "0", result.Nonce.String())

		_, err = f.relay.Run(ctx, params)
		var authErr domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domain.AuthNonceMismatch, authErr.Reason)

		assert.Equal(t, 1, f.ledger.Forwarded())
		assert.Equal(t, []string{"success", "auth"}, f.observer.relays)

		vote, err := f.ledger.GetUserVote(ctx, f.proposal, f.signer.Address())
		require.NoError(t, err)
		assert.True(t, vote.HasVoted)
	})

	t.Run("signature by another account", func(t *testing.T) {
		f := newRelayFixture(t)
		params := f.signedVote(t, 0, domain.VoteFor)
		params.Request.From = funder.Hex()

		_, err := f.relay.Run(ctx, params)
		var authErr domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domain.AuthSignerMismatch, authErr.Reason)
		assert.Equal(t, 0, f.ledger.Forwarded())
	})

	t.Run("tampered field", func(t *testing.T) {
		f := newRelayFixture(t)
		params := f.signedVote(t, 0, domain.VoteFor)
		params.Request.Gas = "400000"

		_, err := f.relay.Run(ctx, params)
		assert.Equal(t, domain.KindAuth, domain.Classify(err))
	})

	t.Run("malformed signature", func(t *testing.T) {
		f := newRelayFixture(t)
		params := f.signedVote(t, 0, domain.VoteFor)
		params.Signature = "0x" + common.Bytes2Hex(make([]byte, 65))

		_, err := f.relay.Run(ctx, params)
		var authErr domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domain.AuthMalformedSignature, authErr.Reason)
	})

	t.Run("malformed request shape", func(t *testing.T) {
		f := newRelayFixture(t)
		params := f.signedVote(t, 0, domain.VoteFor)
		params.Request.To = "not-an-address"

		_, err := f.relay.Run(ctx, params)
		assert.Equal(t, domain.KindValidation, domain.Classify(err))
	})

	t.Run("wrong nonce", func(t *testing.T) {
		f := newRelayFixture(t)

		_, err := f.relay.Run(ctx, f.signedVote(t, 5, domain.VoteFor))
		var authErr domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domain.AuthNonceMismatch, authErr.Reason)
	})

	t.Run("failed inner call keeps the nonce", func(t *testing.T) {
		f := newRelayFixture(t)
		f.clock.Set(2000)

		_, err := f.relay.Run(ctx, f.signedVote(t, 0, domain.VoteFor))
		assert.Equal(t, domain.KindExecution, domain.Classify(err))
		assert.ErrorIs(t, err, domain.ErrReverted)

		// the same nonce is still acceptable
		f.clock.Set(1500)
		_, err = f.relay.Run(ctx, f.signedVote(t, 0, domain.VoteFor))
		require.NoError(t, err)
	})

	t.Run("a submission that lands after release does not lock the account", func(t *testing.T) {
		f := newRelayFixture(t)
		second, err := f.ledger.CreateProposal(funder, recipient, big.NewInt(1e16), 2000, "second")
		require.NoError(t, err)
		third, err := f.ledger.CreateProposal(funder, recipient, big.NewInt(1e16), 2000, "third")
		require.NoError(t, err)

		_, err = f.relay.Run(ctx, f.signedVote(t, 0, domain.VoteFor))
		require.NoError(t, err)

		// nonce 1 reaches the forwarder without the relay recording it
		late := f.signedVoteOn(t, second, 1, domain.VoteFor)
		req, sig, err := domain.DecodeForwardRequest(late.Request, late.Signature)
		require.NoError(t, err)
		_, err = f.ledger.Execute(ctx, req, sig, 350000)
		require.NoError(t, err)

		_, err = f.relay.Run(ctx, f.signedVoteOn(t, third, 1, domain.VoteFor))
		var authErr domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domain.AuthNonceMismatch, authErr.Reason)
		assert.Contains(t, authErr.Detail, "expected 2, got 1")

		result, err := f.relay.Run(ctx, f.signedVoteOn(t, third, 2, domain.VoteFor))
		require.NoError(t, err)
		assert.Equal(t, "2", result.Nonce.String())
		assert.Equal(t, 3, f.ledger.Forwarded())
	})
}

func TestRelayRequestForwarderOutcomes(t *testing.T) {
	ctx := context.Background()
	signer, err := eip712.KeySignerFromHex(voterKey)
	require.NoError(t, err)
	hasher := eip712.NewHasher(eip712.NewDomain(big.NewInt(chainID), forwarderAddress))

	sign := func(t *testing.T) usecase.RelayRequestParams {
		req := &domain.ForwardRequest{
			From:  signer.Address(),
			To:    daoAddress,
			Value: new(big.Int),
			Gas:   big.NewInt(300000),
			Nonce: big.NewInt(0),
			Data:  blockchain.NewDAOEncoder().PackVote(1, domain.VoteFor),
		}
		hash, err := hasher.HashForwardRequest(req)
		require.NoError(t, err)
		sig, err := signer.SignHash(hash)
		require.NoError(t, err)
		return usecase.RelayRequestParams{Request: req.Raw(), Signature: hexutil.Encode(sig)}
	}

	t.Run("forwarder rejects", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		guard := usecase.NewNonceGuard(noncestore.NewMemory(), nil)
		relay := usecase.NewRelayRequest(testConfig(), ledger, hasher, eip712.NewVerifier(), guard, usecase.NopObserver{}, discardLogger())

		_, err := relay.Run(ctx, sign(t))
		var authErr domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domain.AuthRejected, authErr.Reason)
		ledger.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("submits with the gas safety margin", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		ledger.On("Execute", mock.Anything, mock.Anything, mock.Anything, uint64(350000)).
			Return(&domain.Receipt{TxHash: txHash(1)}, nil).Once()
		store := noncestore.NewMemory()
		relay := usecase.NewRelayRequest(testConfig(), ledger, hasher, eip712.NewVerifier(), usecase.NewNonceGuard(store, nil), usecase.NopObserver{}, discardLogger())

		result, err := relay.Run(ctx, sign(t))
		require.NoError(t, err)
		assert.Equal(t, txHash(1), result.TxHash)
		ledger.AssertExpectations(t)

		next, found, err := store.Get(ctx, signer.Address())
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "1", next.String())
	})

	t.Run("submission failure releases the nonce", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		ledger.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("nonce too low")).Once()
		ledger.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Receipt{TxHash: txHash(2)}, nil).Once()
		observer := &recordingObserver{}
		relay := usecase.NewRelayRequest(testConfig(), ledger, hasher, eip712.NewVerifier(), usecase.NewNonceGuard(noncestore.NewMemory(), nil), observer, discardLogger())

		_, err := relay.Run(ctx, sign(t))
		assert.Equal(t, domain.KindExecution, domain.Classify(err))

		result, err := relay.Run(ctx, sign(t))
		require.NoError(t, err)
		assert.Equal(t, txHash(2), result.TxHash)
		assert.Equal(t, []string{"execution", "success"}, observer.relays)
	})

	t.Run("caller hang-up does not abandon the submission", func(t *testing.T) {
		callerCtx, hangUp := context.WithCancel(ctx)
		defer hangUp()

		ledger := new(MockLedger)
		ledger.On("Verify", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { hangUp() }).
			Return(true, nil)
		ledger.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				submitCtx := args.Get(0).(context.Context)
				assert.NoError(t, submitCtx.Err())
				_, bounded := submitCtx.Deadline()
				assert.True(t, bounded)
			}).
			Return(&domain.Receipt{TxHash: txHash(3)}, nil).Once()
		store := noncestore.NewMemory()
		relay := usecase.NewRelayRequest(testConfig(), ledger, hasher, eip712.NewVerifier(), usecase.NewNonceGuard(store, nil), usecase.NopObserver{}, discardLogger())

		result, err := relay.Run(callerCtx, sign(t))
		require.NoError(t, err)
		assert.Equal(t, txHash(3), result.TxHash)

		next, found, err := store.Get(ctx, signer.Address())
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "1", next.String())
	})

	t.Run("confirmation timeout is an execution error and frees the nonce", func(t *testing.T) {
		cfg := testConfig()
		cfg.ConfirmTimeout = 20 * time.Millisecond

		ledger := new(MockLedger)
		ledger.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		ledger.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.DeadlineExceeded).Once()
		ledger.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Receipt{TxHash: txHash(4)}, nil).Once()
		relay := usecase.NewRelayRequest(cfg, ledger, hasher, eip712.NewVerifier(), usecase.NewNonceGuard(noncestore.NewMemory(), nil), usecase.NopObserver{}, discardLogger())

		start := time.Now()
		_, err := relay.Run(ctx, sign(t))
		assert.Less(t, time.Since(start), 5*time.Second)
		assert.Equal(t, domain.KindExecution, domain.Classify(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		result, err := relay.Run(ctx, sign(t))
		require.NoError(t, err)
		assert.Equal(t, txHash(4), result.TxHash)
	})

	t.Run("forwarder verify failure is infrastructure", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))
		relay := usecase.NewRelayRequest(testConfig(), ledger, hasher, eip712.NewVerifier(), usecase.NewNonceGuard(noncestore.NewMemory(), nil), usecase.NopObserver{}, discardLogger())

		_, err := relay.Run(ctx, sign(t))
		assert.Equal(t, domain.KindInfra, domain.Classify(err))
	})
}
