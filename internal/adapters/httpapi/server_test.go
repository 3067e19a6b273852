package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/govrelay/internal/adapters/blockchain"
	"github.com/trebuchet-org/govrelay/internal/adapters/eip712"
	"github.com/trebuchet-org/govrelay/internal/adapters/memledger"
	"github.com/trebuchet-org/govrelay/internal/adapters/metrics"
	"github.com/trebuchet-org/govrelay/internal/adapters/noncestore"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

const voterKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

var (
	dao       = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	forwarder = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	funder    = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	recipient = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

type fixture struct {
	ledger   *memledger.Ledger
	clock    *memledger.ManualClock
	hasher   *eip712.Hasher
	signer   *eip712.KeySigner
	handler  http.Handler
	proposal uint64
}

func newFixture(t *testing.T) *fixture {
	clock := memledger.NewManualClock(1000)
	ledger := memledger.New(big.NewInt(31337), dao, forwarder, memledger.WithClock(clock), memledger.WithSecurityDelay(100*time.Second))
	require.NoError(t, ledger.Fund(funder, big.NewInt(1e18)))
	id, err := ledger.CreateProposal(funder, recipient, big.NewInt(1e17), 2000, "audit")
	require.NoError(t, err)

	cfg := &config.RuntimeConfig{
		DAOAddress:       dao,
		ForwarderAddress: forwarder,
		MaxProposals:     50,
		ScanMode:         config.ScanModeCount,
		ReadRetries:      1,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := eip712.NewHasher(eip712.NewDomain(ledger.ChainID(), ledger.Address()))
	guard := usecase.NewNonceGuard(noncestore.NewMemory(), ledger.GetNonce)
	recorder := metrics.NewRecorder()

	srv := NewServer(cfg, Handlers{
		Relay:    usecase.NewRelayRequest(cfg, ledger, hasher, eip712.NewVerifier(), guard, recorder, log),
		Scan:     usecase.NewScanProposals(cfg, ledger, clock, usecase.NopProgress{}, recorder, log),
		List:     usecase.NewListProposals(cfg, ledger, clock, usecase.NopProgress{}, log),
		Show:     usecase.NewShowProposal(cfg, ledger, clock),
		UserVote: usecase.NewGetUserVote(cfg, ledger),
		Nonce:    usecase.NewGetNonce(cfg, ledger),
		Execute:  usecase.NewExecuteProposal(cfg, ledger, clock, log),
	}, recorder.Handler(), log)

	signer, err := eip712.KeySignerFromHex(voterKey)
	require.NoError(t, err)

	return &fixture{ledger: ledger, clock: clock, hasher: hasher, signer: signer, handler: srv.Handler(), proposal: id}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) signedVote(t *testing.T, nonce int64) RelayBody {
	req := &domain.ForwardRequest{
		From:  f.signer.Address(),
		To:    dao,
		Value: new(big.Int),
		Gas:   big.NewInt(300000),
		Nonce: big.NewInt(nonce),
		Data:  blockchain.NewDAOEncoder().PackVote(f.proposal, domain.VoteFor),
	}
	hash, err := f.hasher.HashForwardRequest(req)
	require.NoError(t, err)
	sig, err := f.signer.SignHash(hash)
	require.NoError(t, err)
	return RelayBody{Request: req.Raw(), Signature: hexutil.Encode(sig)}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRelay(t *testing.T) {
	f := newFixture(t)
	body := f.signedVote(t, 0)

	rec := f.do(t, http.MethodPost, "/relay", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[RelayResponse](t, rec)
	assert.NotEqual(t, common.Hash{}, resp.TxHash)

	rec = f.do(t, http.MethodPost, "/api/relay", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode[errorResponse](t, rec)
	assert.Equal(t, "auth", errBody.Kind)
	assert.Contains(t, errBody.Error, "nonce-mismatch")

	assert.Equal(t, 1, f.ledger.Forwarded())
}

func TestRelayErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   func(f *fixture, t *testing.T) interface{}
		status int
		kind   string
	}{
		{
			name:   "not json",
			body:   func(*fixture, *testing.T) interface{} { return "{" },
			status: http.StatusBadRequest,
			kind:   "validation",
		},
		{
			name: "non-numeric gas",
			body: func(f *fixture, t *testing.T) interface{} {
				b := f.signedVote(t, 0)
				b.Request.Gas = "lots"
				return b
			},
			status: http.StatusBadRequest,
			kind:   "validation",
		},
		{
			name: "short signature",
			body: func(f *fixture, t *testing.T) interface{} {
				b := f.signedVote(t, 0)
				b.Signature = "0x1234"
				return b
			},
			status: http.StatusBadRequest,
			kind:   "validation",
		},
		{
			name: "voting closed",
			body: func(f *fixture, t *testing.T) interface{} {
				f.clock.Set(5000)
				return f.signedVote(t, 0)
			},
			status: http.StatusInternalServerError,
			kind:   "execution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := f.do(t, http.MethodPost, "/relay", tt.body(f, t))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.kind, decode[errorResponse](t, rec).Kind)
		})
	}
}

func TestRelayBodyLimit(t *testing.T) {
	f := newFixture(t)
	huge := `{"signature":"` + strings.Repeat("a", maxBodyBytes+1) + `"}`

	rec := f.do(t, http.MethodPost, "/relay", huge)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunOnce(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/daemon/run-once", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"processed":[],"bound":1,"examined":1,"failed":[]}`, rec.Body.String())

	require.NoError(t, f.ledger.Vote(funder, f.proposal, domain.VoteFor))
	f.clock.Set(2100)

	rec = f.do(t, http.MethodPost, "/api/daemon/run-once?max=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[RunOnceResponse](t, rec)
	require.Len(t, resp.Processed, 1)
	assert.Equal(t, f.proposal, resp.Processed[0].ID)

	rec = f.do(t, http.MethodPost, "/daemon/run-once?max=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProposalRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/proposals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]ProposalResponse](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StateActive, list[0].State)
	assert.Equal(t, "100000000000000000", list[0].Amount)

	rec = f.do(t, http.MethodGet, "/proposals/1?account="+funder.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	one := decode[ProposalResponse](t, rec)
	assert.Equal(t, "audit", one.Description)
	require.NotNil(t, one.UserVote)
	assert.False(t, one.UserVote.HasVoted)

	rec = f.do(t, http.MethodGet, "/proposals/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/proposals/zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.NoError(t, f.ledger.Vote(funder, f.proposal, domain.VoteAgainst))
	rec = f.do(t, http.MethodGet, "/proposals/1/votes/"+funder.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasVoted":true,"voteType":"against"}`, rec.Body.String())
}

func TestExecuteRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/proposals/1/execute", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "state", decode[errorResponse](t, rec).Kind)

	require.NoError(t, f.ledger.Vote(funder, f.proposal, domain.VoteFor))
	f.clock.Set(2100)

	rec = f.do(t, http.MethodPost, "/proposals/1/execute", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/proposals/1/execute", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "already-executed")
}

func TestNonceRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/relay", f.signedVote(t, 0))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/nonce/"+f.signer.Address().Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", decode[NonceResponse](t, rec).Nonce)

	rec = f.do(t, http.MethodGet, "/nonce/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/relay", f.signedVote(t, 0))

	rec := f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `govrelay_relay_requests_total{outcome="success"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodOptions, "/relay", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestClient(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()
	client := NewClient(srv.URL+"/", 5*time.Second)
	body := f.signedVote(t, 0)

	hash, err := client.Relay(context.Background(), body.Request, body.Signature)
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, hash)

	_, err = client.Relay(context.Background(), body.Request, body.Signature)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.Status)
	assert.Equal(t, domain.KindAuth, domain.Classify(err))
}

func TestServeShutsDownWithContext(t *testing.T) {
	srv := NewServer(&config.RuntimeConfig{}, Handlers{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
