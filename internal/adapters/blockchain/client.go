package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	dialAttempts = 5
	dialDelay    = time.Second
)

// Backend is the RPC surface the ledger needs. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Connection is an established RPC connection with a verified chain id
type Connection struct {
	Client  *ethclient.Client
	ChainID *big.Int
}

// Close releases the RPC connection
func (c *Connection) Close() {
	if c.Client != nil {
		c.Client.Close()
	}
}

// Connect dials rpcURL with retry and checks the chain id.
// A zero chainID accepts whatever the endpoint reports.
func Connect(ctx context.Context, rpcURL string, chainID uint64, log *slog.Logger) (*Connection, error) {
	onRetry := retry.OnRetry(func(n uint, err error) {
		log.Warn("rpc connection attempt failed", "attempt", n+1, "rpc_url", rpcURL, "error", err)
	})

	client, err := retry.DoWithData(
		func() (*ethclient.Client, error) { return ethclient.DialContext(ctx, rpcURL) },
		retry.Context(ctx),
		retry.Attempts(dialAttempts),
		retry.Delay(dialDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		onRetry,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	// ethclient dials lazily over HTTP, so the chain id read is the real connectivity check
	networkChainID, err := retry.DoWithData(
		func() (*big.Int, error) { return client.ChainID(ctx) },
		retry.Context(ctx),
		retry.Attempts(dialAttempts),
		retry.Delay(dialDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		onRetry,
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if chainID != 0 && networkChainID.Uint64() != chainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", chainID, networkChainID.Uint64())
	}

	log.Debug("connected to rpc", "rpc_url", rpcURL, "chain_id", networkChainID)
	return &Connection{Client: client, ChainID: networkChainID}, nil
}
