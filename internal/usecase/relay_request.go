package usecase

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
)

const defaultConfirmTimeout = 2 * time.Minute

// RelayRequestParams contains a signed forward request as received on the wire
type RelayRequestParams struct {
	Request   domain.RawForwardRequest
	Signature string
}

// RelayResult is the outcome of a successful relay
type RelayResult struct {
	TxHash  common.Hash
	From    common.Address
	Nonce   *big.Int
	Receipt *domain.Receipt
}

// RelayRequest verifies a signed forward request and submits it to the forwarder
type RelayRequest struct {
	config    *config.RuntimeConfig
	forwarder Forwarder
	hasher    RequestHasher
	verifier  SignatureVerifier
	guard     *NonceGuard
	observer  RelayObserver
	log       *slog.Logger
}

// NewRelayRequest creates a new RelayRequest use case
func NewRelayRequest(
	cfg *config.RuntimeConfig,
	forwarder Forwarder,
	hasher RequestHasher,
	verifier SignatureVerifier,
	guard *NonceGuard,
	observer RelayObserver,
	log *slog.Logger,
) *RelayRequest {
	return &RelayRequest{
		config:    cfg,
		forwarder: forwarder,
		hasher:    hasher,
		verifier:  verifier,
		guard:     guard,
		observer:  observer,
		log:       log.With("component", "relay"),
	}
}

// Run decodes, authorizes and forwards one request. A given (from, nonce)
// pair is forwarded at most once.
func (uc *RelayRequest) Run(ctx context.Context, params RelayRequestParams) (result *RelayResult, err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = string(domain.Classify(err))
		}
		uc.observer.ObserveRelay(outcome, time.Since(start))
	}()

	req, sig, err := domain.DecodeForwardRequest(params.Request, params.Signature)
	if err != nil {
		return nil, err
	}
	gasLimit, err := req.GasLimit()
	if err != nil {
		return nil, err
	}

	hash, err := uc.hasher.HashForwardRequest(req)
	if err != nil {
		return nil, domain.ValidationError{Field: "request", Reason: err.Error()}
	}

	ok, err := uc.verifier.Verify(hash, sig, req.From)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.AuthError{Reason: domain.AuthSignerMismatch, Detail: "signature was not produced by " + req.From.Hex()}
	}

	reservation, err := uc.guard.CheckAndReserve(ctx, req.From, req.Nonce)
	if err != nil {
		return nil, err
	}
	defer reservation.Release()

	accepted, err := uc.forwarder.Verify(ctx, req, sig)
	if err != nil {
		return nil, domain.InfraError{Op: "forwarder verify", Err: err}
	}
	if !accepted {
		return nil, domain.AuthError{Reason: domain.AuthRejected}
	}

	// Once broadcast the tx lands whether or not the caller is still waiting,
	// so only the confirmation timeout may end the wait
	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.confirmTimeout())
	defer cancel()

	receipt, err := uc.forwarder.Execute(submitCtx, req, sig, gasLimit)
	if err != nil {
		uc.log.Warn("forward request failed", "from", req.From.Hex(), "nonce", req.Nonce.String(), "error", err)
		return nil, domain.ExecutionError{Op: "forward request", Err: err}
	}

	// The call landed; a failed commit must not turn it into an error for the caller
	if err := reservation.Commit(context.WithoutCancel(ctx)); err != nil {
		uc.log.Error("nonce commit failed after confirmed forward", "from", req.From.Hex(), "nonce", req.Nonce.String(), "error", err)
	}

	uc.log.Info("forwarded request",
		"from", req.From.Hex(),
		"to", req.To.Hex(),
		"nonce", req.Nonce.String(),
		"tx_hash", receipt.TxHash.Hex(),
	)

	return &RelayResult{
		TxHash:  receipt.TxHash,
		From:    req.From,
		Nonce:   reservation.Nonce(),
		Receipt: receipt,
	}, nil
}

func (uc *RelayRequest) confirmTimeout() time.Duration {
	if uc.config != nil && uc.config.ConfirmTimeout > 0 {
		return uc.config.ConfirmTimeout
	}
	return defaultConfirmTimeout
}
