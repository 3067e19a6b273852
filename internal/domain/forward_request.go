package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// GasSafetyMargin is added to the requested gas when submitting a forwarded call
const GasSafetyMargin uint64 = 50_000

// ForwardRequest is a decoded, validated meta-transaction
type ForwardRequest struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Gas   *big.Int
	Nonce *big.Int
	Data  []byte
}

// GasLimit returns the transaction gas allowance for the request: gas + GasSafetyMargin
func (r *ForwardRequest) GasLimit() (uint64, error) {
	if !r.Gas.IsUint64() || r.Gas.Uint64() > math.MaxUint64-GasSafetyMargin {
		return 0, ValidationError{Field: "gas", Reason: "exceeds the maximum transaction gas limit"}
	}
	return r.Gas.Uint64() + GasSafetyMargin, nil
}

// Raw encodes the request into its wire shape, numeric fields as decimal strings
func (r *ForwardRequest) Raw() RawForwardRequest {
	return RawForwardRequest{
		From:  r.From.Hex(),
		To:    r.To.Hex(),
		Value: Quantity(bigOrZero(r.Value).String()),
		Gas:   Quantity(bigOrZero(r.Gas).String()),
		Nonce: Quantity(bigOrZero(r.Nonce).String()),
		Data:  hexutil.Encode(r.Data),
	}
}

// Quantity is a numeric wire field. It accepts a JSON string or number and keeps the literal text.
type Quantity string

// UnmarshalJSON keeps the literal so that range errors can be reported per field
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	*q = Quantity(data)
	return nil
}

// RawForwardRequest is the untyped wire shape of a forward request
type RawForwardRequest struct {
	From  string   `json:"from" yaml:"from"`
	To    string   `json:"to" yaml:"to"`
	Value Quantity `json:"value" yaml:"value"`
	Gas   Quantity `json:"gas" yaml:"gas"`
	Nonce Quantity `json:"nonce" yaml:"nonce"`
	Data  string   `json:"data" yaml:"data"`
}

// DecodeForwardRequest validates the wire shape of a request and its signature.
// Absent numeric fields decode as zero.
func DecodeForwardRequest(raw RawForwardRequest, signature string) (*ForwardRequest, []byte, error) {
	from, err := parseAddress("from", raw.From)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseAddress("to", raw.To)
	if err != nil {
		return nil, nil, err
	}
	value, err := parseQuantity("value", raw.Value)
	if err != nil {
		return nil, nil, err
	}
	gas, err := parseQuantity("gas", raw.Gas)
	if err != nil {
		return nil, nil, err
	}
	nonce, err := parseQuantity("nonce", raw.Nonce)
	if err != nil {
		return nil, nil, err
	}
	data, err := parseHexBytes("data", raw.Data)
	if err != nil {
		return nil, nil, err
	}
	sig, err := DecodeSignature(signature)
	if err != nil {
		return nil, nil, err
	}

	return &ForwardRequest{
		From:  from,
		To:    to,
		Value: value,
		Gas:   gas,
		Nonce: nonce,
		Data:  data,
	}, sig, nil
}

// DecodeSignature checks that s is a 0x-prefixed 65-byte signature and moves a
// 0/1 recovery id to 27/28
func DecodeSignature(s string) ([]byte, error) {
	sig, err := parseHexBytes("signature", s)
	if err != nil {
		return nil, err
	}
	if len(sig) != crypto.SignatureLength {
		return nil, ValidationError{Field: "signature", Reason: fmt.Sprintf("expected %d bytes, got %d", crypto.SignatureLength, len(sig))}
	}
	// every consumer sees the 27/28 form the forwarder contract expects
	if v := sig[crypto.RecoveryIDOffset]; v < 2 {
		sig[crypto.RecoveryIDOffset] = v + 27
	}
	return sig, nil
}

// ParseAddress validates a hex account address
func ParseAddress(field, s string) (common.Address, error) {
	return parseAddress(field, s)
}

func parseAddress(field, s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.Address{}, ValidationError{Field: field, Reason: "required"}
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, ValidationError{Field: field, Reason: "missing 0x prefix"}
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a hex address", s)}
	}
	return common.HexToAddress(s), nil
}

func parseQuantity(field string, q Quantity) (*big.Int, error) {
	s := strings.TrimSpace(string(q))
	if s == "" {
		return new(big.Int), nil
	}

	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = parseHexQuantity(s[2:])
	} else {
		v, err = parseDecimalQuantity(s)
	}
	if err != nil {
		return nil, ValidationError{Field: field, Reason: fmt.Sprintf("%q is not an unsigned 256-bit integer", s)}
	}
	return v.ToBig(), nil
}

// parseHexQuantity accepts zero-padded digits, which uint256.FromHex rejects
func parseHexQuantity(digits string) (*uint256.Int, error) {
	if digits == "" {
		return nil, uint256.ErrEmptyNumber
	}
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return uint256.FromHex("0x" + trimmed)
}

// parseDecimalQuantity accepts digits only; signs are not quantities
func parseDecimalQuantity(s string) (*uint256.Int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, uint256.ErrSyntax
		}
	}
	return uint256.FromDecimal(s)
}

func parseHexBytes(field, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ValidationError{Field: field, Reason: "required"}
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, ValidationError{Field: field, Reason: err.Error()}
	}
	return b, nil
}
