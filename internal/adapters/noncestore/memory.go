// Package noncestore persists the next acceptable forwarder nonce per account.
package noncestore

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// Memory keeps nonces for the life of the process
type Memory struct {
	mu     sync.RWMutex
	nonces map[common.Address]*big.Int
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{nonces: make(map[common.Address]*big.Int)}
}

// Get returns the stored next nonce of account
func (m *Memory) Get(ctx context.Context, account common.Address) (*big.Int, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nonces[account]
	if !ok {
		return nil, false, nil
	}
	return new(big.Int).Set(n), true, nil
}

// Put records next as the account's next nonce
func (m *Memory) Put(ctx context.Context, account common.Address, next *big.Int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.nonces[account] = new(big.Int).Set(next)
	m.mu.Unlock()
	return nil
}

// Close is a no-op
func (m *Memory) Close() error { return nil }

var _ usecase.NonceStore = (*Memory)(nil)
