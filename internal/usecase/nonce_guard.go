package usecase

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/domain"
)

// NonceSeeder reads the forwarder's current nonce for an account
type NonceSeeder func(ctx context.Context, account common.Address) (*big.Int, error)

// NonceGuard provides per-account replay protection. At most one reservation
// is in flight per account; different accounts never contend.
type NonceGuard struct {
	store NonceStore
	seed  NonceSeeder

	mu    sync.Mutex
	locks map[common.Address]*accountLock
}

type accountLock struct {
	slot chan struct{}
	refs int
}

// NewNonceGuard creates a guard over store. seed may be nil, in which case
// unknown accounts start at zero and the stored record is never resynced.
func NewNonceGuard(store NonceStore, seed NonceSeeder) *NonceGuard {
	return &NonceGuard{
		store: store,
		seed:  seed,
		locks: make(map[common.Address]*accountLock),
	}
}

// CheckAndReserve reserves supplied as the account's next nonce. It blocks while
// another reservation for the same account is outstanding. The caller must
// Commit or Release the returned reservation.
func (g *NonceGuard) CheckAndReserve(ctx context.Context, account common.Address, supplied *big.Int) (*NonceReservation, error) {
	lock, err := g.acquire(ctx, account)
	if err != nil {
		return nil, domain.InfraError{Op: "reserve nonce", Err: err}
	}

	expected, err := g.expected(ctx, account)
	if err != nil {
		g.release(account, lock)
		return nil, err
	}

	if supplied == nil || supplied.Cmp(expected) != 0 {
		g.release(account, lock)
		return nil, domain.AuthError{
			Reason: domain.AuthNonceMismatch,
			Detail: fmt.Sprintf("expected %s, got %s", expected, supplied),
		}
	}

	return &NonceReservation{
		guard:   g,
		account: account,
		nonce:   expected,
		lock:    lock,
	}, nil
}

// Expected returns the next nonce the guard would accept for account
func (g *NonceGuard) Expected(ctx context.Context, account common.Address) (*big.Int, error) {
	lock, err := g.acquire(ctx, account)
	if err != nil {
		return nil, domain.InfraError{Op: "read nonce", Err: err}
	}
	defer g.release(account, lock)
	return g.expected(ctx, account)
}

// expected is max(stored, forwarder). A submission that landed after its
// reservation was released leaves the forwarder ahead; the record catches up
// so it never decreases and the account is not locked out.
func (g *NonceGuard) expected(ctx context.Context, account common.Address) (*big.Int, error) {
	stored, ok, err := g.store.Get(ctx, account)
	if err != nil {
		return nil, domain.InfraError{Op: "read nonce", Err: err}
	}
	if g.seed == nil {
		if ok {
			return stored, nil
		}
		return new(big.Int), nil
	}

	onLedger, err := g.seed(ctx, account)
	if err != nil {
		return nil, domain.InfraError{Op: "seed nonce", Err: err}
	}
	if !ok {
		return onLedger, nil
	}
	if onLedger.Cmp(stored) <= 0 {
		return stored, nil
	}
	if err := g.store.Put(ctx, account, onLedger); err != nil {
		return nil, domain.InfraError{Op: "resync nonce", Err: err}
	}
	return onLedger, nil
}

func (g *NonceGuard) acquire(ctx context.Context, account common.Address) (*accountLock, error) {
	g.mu.Lock()
	lock, ok := g.locks[account]
	if !ok {
		lock = &accountLock{slot: make(chan struct{}, 1)}
		g.locks[account] = lock
	}
	lock.refs++
	g.mu.Unlock()

	select {
	case lock.slot <- struct{}{}:
		return lock, nil
	case <-ctx.Done():
		g.unref(account, lock)
		return nil, ctx.Err()
	}
}

func (g *NonceGuard) release(account common.Address, lock *accountLock) {
	<-lock.slot
	g.unref(account, lock)
}

func (g *NonceGuard) unref(account common.Address, lock *accountLock) {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(g.locks, account)
	}
}

// NonceReservation holds an account's nonce until the downstream outcome is known
type NonceReservation struct {
	guard   *NonceGuard
	account common.Address
	nonce   *big.Int
	lock    *accountLock
	once    sync.Once
}

// Nonce returns the reserved nonce
func (r *NonceReservation) Nonce() *big.Int {
	return new(big.Int).Set(r.nonce)
}

// Commit advances the account's nonce by one and releases the reservation
func (r *NonceReservation) Commit(ctx context.Context) error {
	var err error
	r.once.Do(func() {
		defer r.guard.release(r.account, r.lock)
		next := new(big.Int).Add(r.nonce, big.NewInt(1))
		if putErr := r.guard.store.Put(ctx, r.account, next); putErr != nil {
			err = domain.InfraError{Op: "commit nonce", Err: putErr}
		}
	})
	return err
}

// Release gives the reservation back without advancing the nonce.
// It is a no-op after Commit.
func (r *NonceReservation) Release() {
	r.once.Do(func() {
		r.guard.release(r.account, r.lock)
	})
}
