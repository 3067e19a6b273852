package eip712

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// Verifier recovers signers of typed-data hashes
type Verifier struct{}

// NewVerifier creates a signature verifier
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify reports whether sig over hash was produced by claimed.
// Malformed signatures return an AuthError instead of false.
func (v *Verifier) Verify(hash common.Hash, sig []byte, claimed common.Address) (bool, error) {
	signer, err := RecoverSigner(hash, sig)
	if err != nil {
		return false, err
	}
	return signer == claimed, nil
}

// RecoverSigner recovers the account that produced sig over hash.
// Both 0/1 and 27/28 recovery ids are accepted; high-s signatures are rejected.
func RecoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, domain.AuthError{
			Reason: domain.AuthMalformedSignature,
			Detail: fmt.Sprintf("expected %d bytes, got %d", crypto.SignatureLength, len(sig)),
		}
	}

	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}

	recoveryID := normalized[crypto.RecoveryIDOffset]
	r := new(big.Int).SetBytes(normalized[:32])
	s := new(big.Int).SetBytes(normalized[32:64])
	if !crypto.ValidateSignatureValues(recoveryID, r, s, true) {
		return common.Address{}, domain.AuthError{
			Reason: domain.AuthMalformedSignature,
			Detail: fmt.Sprintf("invalid signature values (recovery id %d)", sig[crypto.RecoveryIDOffset]),
		}
	}

	pub, err := crypto.SigToPub(hash.Bytes(), normalized)
	if err != nil {
		return common.Address{}, domain.AuthError{Reason: domain.AuthMalformedSignature, Detail: err.Error()}
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Ensure the verifier implements the interface
var _ usecase.SignatureVerifier = (*Verifier)(nil)
