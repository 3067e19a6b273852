package eip712

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// Domain constants of the MinimalForwarder contract
const (
	DomainName    = "MinimalForwarder"
	DomainVersion = "0.0.1"

	forwardRequestType = "ForwardRequest"
)

// Domain is the EIP-712 domain a forward request is signed under
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// NewDomain returns the forwarder domain for a chain and forwarder address
func NewDomain(chainID *big.Int, forwarder common.Address) Domain {
	return Domain{
		Name:              DomainName,
		Version:           DomainVersion,
		ChainID:           new(big.Int).Set(chainID),
		VerifyingContract: forwarder,
	}
}

// forwardRequestTypes is the fixed schema; field order is part of the signature
var forwardRequestTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	forwardRequestType: {
		{Name: "from", Type: "address"},
		{Name: "to", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "gas", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "data", Type: "bytes"},
	},
}

// Hasher builds typed-data hashes of forward requests for one domain
type Hasher struct {
	domain Domain
}

// NewHasher creates a hasher bound to domain
func NewHasher(domain Domain) *Hasher {
	return &Hasher{domain: domain}
}

// Domain returns the domain the hasher is bound to
func (h *Hasher) Domain() Domain {
	return h.domain
}

// TypedData returns the full EIP-712 payload for req, as a wallet would sign it
func (h *Hasher) TypedData(req *domain.ForwardRequest) apitypes.TypedData {
	data := req.Data
	if data == nil {
		data = []byte{}
	}
	return apitypes.TypedData{
		Types:       forwardRequestTypes,
		PrimaryType: forwardRequestType,
		Domain: apitypes.TypedDataDomain{
			Name:              h.domain.Name,
			Version:           h.domain.Version,
			ChainId:           (*math.HexOrDecimal256)(new(big.Int).Set(h.domain.ChainID)),
			VerifyingContract: h.domain.VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"from":  req.From.Hex(),
			"to":    req.To.Hex(),
			"value": nonNil(req.Value),
			"gas":   nonNil(req.Gas),
			"nonce": nonNil(req.Nonce),
			"data":  data,
		},
	}
}

// HashForwardRequest returns keccak256("\x19\x01" || domainSeparator || hashStruct(req))
func (h *Hasher) HashForwardRequest(req *domain.ForwardRequest) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(h.TypedData(req))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash forward request: %w", err)
	}
	return common.BytesToHash(hash), nil
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// Ensure the hasher implements the interface
var _ usecase.RequestHasher = (*Hasher)(nil)
