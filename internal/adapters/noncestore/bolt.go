package noncestore

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/trebuchet-org/govrelay/internal/usecase"
	"go.etcd.io/bbolt"
)

// Bolt is a BoltDB-backed nonce store. Each (chain, forwarder) pair gets its own
// bucket; values are 32-byte big-endian words keyed by address.
type Bolt struct {
	db     *bbolt.DB
	bucket []byte
}

// OpenBolt opens or creates the nonce database at path, scoped to the forwarder
// at forwarder on chainID. Records written for another deployment are not visible.
func OpenBolt(path string, chainID *big.Int, forwarder common.Address) (*Bolt, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("nonce db path is required")
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("nonce db needs a chain id")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open nonce db: %w", err)
	}

	store := &Bolt{db: db, bucket: bucketName(chainID, forwarder)}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database
func (s *Bolt) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored next nonce of account
func (s *Bolt) Get(ctx context.Context, account common.Address) (*big.Int, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var (
		nonce *big.Int
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("nonce bucket is missing")
		}
		payload := bucket.Get(account.Bytes())
		if payload == nil {
			return nil
		}
		if len(payload) != 32 {
			return fmt.Errorf("corrupt nonce record for %s: %d bytes", account.Hex(), len(payload))
		}
		nonce = new(uint256.Int).SetBytes32(payload).ToBig()
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return nonce, found, nil
}

// Put records next as the account's next nonce
func (s *Bolt) Put(ctx context.Context, account common.Address, next *big.Int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if next == nil || next.Sign() < 0 {
		return fmt.Errorf("invalid nonce %v", next)
	}
	word, overflow := uint256.FromBig(next)
	if overflow {
		return fmt.Errorf("nonce %s exceeds 256 bits", next)
	}
	payload := word.Bytes32()

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("nonce bucket is missing")
		}
		return bucket.Put(account.Bytes(), payload[:])
	})
}

func (s *Bolt) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(s.bucket); err != nil {
			return fmt.Errorf("create nonce bucket: %w", err)
		}
		return nil
	})
}

func bucketName(chainID *big.Int, forwarder common.Address) []byte {
	return []byte(fmt.Sprintf("nonces/%s/%s", chainID, strings.ToLower(forwarder.Hex())))
}

var _ usecase.NonceStore = (*Bolt)(nil)
