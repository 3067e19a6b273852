package domain

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testFrom = "0x1111111111111111111111111111111111111111"
	testTo   = "0x2222222222222222222222222222222222222222"
	testSig  = "0x" + strings.Repeat("ab", 65)
)

func validRaw() RawForwardRequest {
	return RawForwardRequest{
		From:  testFrom,
		To:    testTo,
		Value: "0",
		Gas:   "300000",
		Nonce: "4",
		Data:  "0xdeadbeef",
	}
}

func TestDecodeForwardRequest(t *testing.T) {
	req, sig, err := DecodeForwardRequest(validRaw(), testSig)
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress(testFrom), req.From)
	assert.Equal(t, common.HexToAddress(testTo), req.To)
	assert.Equal(t, "0", req.Value.String())
	assert.Equal(t, "300000", req.Gas.String())
	assert.Equal(t, "4", req.Nonce.String())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, req.Data)
	assert.Len(t, sig, 65)
}

func TestDecodeForwardRequestDefaultsNumericFields(t *testing.T) {
	raw := validRaw()
	raw.Value, raw.Gas, raw.Nonce = "", "", ""

	req, _, err := DecodeForwardRequest(raw, testSig)
	require.NoError(t, err)
	assert.Zero(t, req.Value.Sign())
	assert.Zero(t, req.Gas.Sign())
	assert.Zero(t, req.Nonce.Sign())
}

func TestDecodeForwardRequestRejects(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *RawForwardRequest)
		signature string
		field     string
	}{
		{name: "missing from", mutate: func(r *RawForwardRequest) { r.From = "" }, field: "from"},
		{name: "malformed from", mutate: func(r *RawForwardRequest) { r.From = "0x1234" }, field: "from"},
		{name: "unprefixed to", mutate: func(r *RawForwardRequest) { r.To = testTo[2:] }, field: "to"},
		{name: "missing data", mutate: func(r *RawForwardRequest) { r.Data = "" }, field: "data"},
		{name: "non-hex data", mutate: func(r *RawForwardRequest) { r.Data = "0xzz" }, field: "data"},
		{name: "odd data", mutate: func(r *RawForwardRequest) { r.Data = "0xabc" }, field: "data"},
		{name: "negative value", mutate: func(r *RawForwardRequest) { r.Value = "-1" }, field: "value"},
		{name: "fractional gas", mutate: func(r *RawForwardRequest) { r.Gas = "1.5" }, field: "gas"},
		{
			name:   "nonce above 2^256",
			mutate: func(r *RawForwardRequest) { r.Nonce = Quantity(new(big.Int).Lsh(big.NewInt(1), 256).String()) },
			field:  "nonce",
		},
		{name: "short signature", signature: "0x1234", field: "signature"},
		{name: "missing signature", signature: "", field: "signature"},
		{name: "non-hex signature", signature: "signature", field: "signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			if tt.mutate != nil {
				tt.mutate(&raw)
			}
			sig := testSig
			if tt.mutate == nil {
				sig = tt.signature
			}

			_, _, err := DecodeForwardRequest(raw, sig)
			var validationErr ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, KindValidation, Classify(err))
		})
	}
}

func TestQuantityAcceptsStringsAndNumbers(t *testing.T) {
	var raw RawForwardRequest
	err := json.Unmarshal([]byte(`{"from":"`+testFrom+`","to":"`+testTo+`","value":0,"gas":"300000","nonce":null,"data":"0x"}`), &raw)
	require.NoError(t, err)

	assert.Equal(t, Quantity("0"), raw.Value)
	assert.Equal(t, Quantity("300000"), raw.Gas)
	assert.Equal(t, Quantity(""), raw.Nonce)

	req, _, err := DecodeForwardRequest(raw, testSig)
	require.NoError(t, err)
	assert.Empty(t, req.Data)
}

func TestDecodeQuantity(t *testing.T) {
	tests := []struct {
		in   Quantity
		want string
	}{
		{"0x01", "1"},
		{"0x0", "0"},
		{"0x0000", "0"},
		{"0XfF", "255"},
		{"007", "7"},
		{" 42 ", "42"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			raw := validRaw()
			raw.Nonce = tt.in
			req, _, err := DecodeForwardRequest(raw, testSig)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Nonce.String())
		})
	}

	for _, bad := range []Quantity{"+5", "-1", "0x", "0x-1", "1e3", "0x" + Quantity(strings.Repeat("f", 65))} {
		t.Run("rejects "+string(bad), func(t *testing.T) {
			raw := validRaw()
			raw.Nonce = bad
			_, _, err := DecodeForwardRequest(raw, testSig)
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "nonce", vErr.Field)
		})
	}
}

func TestDecodeSignatureNormalizesRecoveryID(t *testing.T) {
	body := strings.Repeat("ab", 64)
	for in, want := range map[string]byte{"00": 27, "01": 28, "1b": 27, "1c": 28} {
		sig, err := DecodeSignature("0x" + body + in)
		require.NoError(t, err)
		assert.Equal(t, want, sig[64], in)
	}
}

func TestForwardRequestRawRoundTrip(t *testing.T) {
	req, _, err := DecodeForwardRequest(validRaw(), testSig)
	require.NoError(t, err)

	again, _, err := DecodeForwardRequest(req.Raw(), testSig)
	require.NoError(t, err)
	assert.Equal(t, req, again)
}

func TestGasLimit(t *testing.T) {
	req := &ForwardRequest{Gas: big.NewInt(300000)}
	limit, err := req.GasLimit()
	require.NoError(t, err)
	assert.Equal(t, uint64(350000), limit)

	req.Gas = new(big.Int).Lsh(big.NewInt(1), 64)
	_, err = req.GasLimit()
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindValidation, Classify(ValidationError{Field: "x"}))
	assert.Equal(t, KindAuth, Classify(AuthError{Reason: AuthNonceMismatch}))
	assert.Equal(t, KindState, Classify(StateError{Reason: StateAlreadyExecuted}))
	assert.Equal(t, KindExecution, Classify(ExecutionError{Op: "execute", Err: ErrReverted}))
	assert.Equal(t, KindInfra, Classify(InfraError{Op: "read", Err: assert.AnError}))
	assert.Equal(t, KindInfra, Classify(assert.AnError))

	assert.True(t, KindAuth.ClientFault())
	assert.False(t, KindExecution.ClientFault())
	assert.ErrorIs(t, ExecutionError{Op: "execute", Err: ErrReverted}, ErrReverted)
}
