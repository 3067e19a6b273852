package eip712

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// KeySigner signs typed-data hashes with a local private key
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeySigner wraps an existing private key
func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// KeySignerFromHex parses a hex encoded private key, with or without 0x prefix
func KeySignerFromHex(privKey string) (*KeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to convert private key to ECDSA: %w", err)
	}
	return NewKeySigner(key), nil
}

// Address returns the signing account
func (s *KeySigner) Address() common.Address {
	return s.address
}

// SignHash signs hash and returns a 65-byte signature with a 27/28 recovery id,
// the encoding wallets produce for typed data.
func (s *KeySigner) SignHash(hash common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(hash.Bytes(), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign hash: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// SignTx signs a ledger transaction for chainID
func (s *KeySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}

// Ensure the signer implements the interface
var _ usecase.HashSigner = (*KeySigner)(nil)
