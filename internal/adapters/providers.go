package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/wire"
	"github.com/trebuchet-org/govrelay/internal/adapters/blockchain"
	"github.com/trebuchet-org/govrelay/internal/adapters/eip712"
	"github.com/trebuchet-org/govrelay/internal/adapters/httpapi"
	"github.com/trebuchet-org/govrelay/internal/adapters/interactive"
	"github.com/trebuchet-org/govrelay/internal/adapters/memledger"
	"github.com/trebuchet-org/govrelay/internal/adapters/metrics"
	"github.com/trebuchet-org/govrelay/internal/adapters/noncestore"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// memoryChainID is used by the in-memory ledger when no chain id is configured
const memoryChainID = 31337

// ProvideClock provides the wall clock
func ProvideClock() usecase.Clock {
	return usecase.SystemClock{}
}

// ProvideLedger connects the configured ledger backend. The chain ledger is
// read-only when no relayer key is configured.
func ProvideLedger(ctx context.Context, cfg *config.RuntimeConfig, clock usecase.Clock, log *slog.Logger) (usecase.Ledger, func(), error) {
	if cfg.Ledger == config.LedgerMemory {
		chainID := cfg.ChainID
		if chainID == 0 {
			chainID = memoryChainID
		}
		log.Warn("using in-memory ledger; state is lost on exit")
		ledger := memledger.New(new(big.Int).SetUint64(chainID), cfg.DAOAddress, cfg.ForwarderAddress, memledger.WithClock(clock))
		return ledger, func() {}, nil
	}

	var signer blockchain.TxSigner
	if cfg.HasSigner() {
		key, err := eip712.KeySignerFromHex(cfg.PrivateKey)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid relayer key: %w", err)
		}
		signer = key
	}

	conn, err := blockchain.Connect(ctx, cfg.RPCURL, cfg.ChainID, log)
	if err != nil {
		return nil, nil, err
	}
	ledger := blockchain.NewChainLedger(conn.Client, conn.ChainID, cfg.DAOAddress, cfg.ForwarderAddress, signer, log)
	return ledger, conn.Close, nil
}

// ProvideNonceStore opens the durable nonce store when a path is configured,
// scoped to the connected forwarder
func ProvideNonceStore(cfg *config.RuntimeConfig, forwarder usecase.Forwarder) (usecase.NonceStore, func(), error) {
	if cfg.NonceDB == "" {
		store := noncestore.NewMemory()
		return store, func() { _ = store.Close() }, nil
	}
	store, err := noncestore.OpenBolt(cfg.NonceDB, forwarder.ChainID(), forwarder.Address())
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// ProvideNonceGuard seeds unseen accounts from the forwarder's own nonce
func ProvideNonceGuard(store usecase.NonceStore, forwarder usecase.Forwarder) *usecase.NonceGuard {
	return usecase.NewNonceGuard(store, forwarder.GetNonce)
}

// ProvideHasher binds the typed-data domain to the connected forwarder
func ProvideHasher(forwarder usecase.Forwarder) *eip712.Hasher {
	return eip712.NewHasher(eip712.NewDomain(forwarder.ChainID(), forwarder.Address()))
}

// ProvideRelayClient provides the client used by vote to reach a relayer
func ProvideRelayClient(cfg *config.RuntimeConfig) *httpapi.Client {
	return httpapi.NewClient(cfg.RelayerURL, cfg.ConfirmTimeout)
}

// ProvideServer provides the HTTP service with the metrics endpoint mounted
func ProvideServer(cfg *config.RuntimeConfig, handlers httpapi.Handlers, recorder *metrics.Recorder, log *slog.Logger) *httpapi.Server {
	return httpapi.NewServer(cfg, handlers, recorder.Handler(), log)
}

func ProvideProposalReader(l usecase.Ledger) usecase.ProposalReader { return l }

func ProvideForwarder(l usecase.Ledger) usecase.Forwarder { return l }

// LedgerSet provides the ledger and the narrower ports carved from it
var LedgerSet = wire.NewSet(
	ProvideClock,
	ProvideLedger,
	ProvideProposalReader,
	ProvideForwarder,

	blockchain.NewDAOEncoder,
	wire.Bind(new(usecase.CallEncoder), new(*blockchain.DAOEncoder)),
)

// RelaySet provides signature checking and replay protection
var RelaySet = wire.NewSet(
	ProvideNonceStore,
	ProvideNonceGuard,
	ProvideHasher,
	wire.Bind(new(usecase.RequestHasher), new(*eip712.Hasher)),

	eip712.NewVerifier,
	wire.Bind(new(usecase.SignatureVerifier), new(*eip712.Verifier)),
)

// MetricsSet provides the Prometheus recorder behind both observer ports
var MetricsSet = wire.NewSet(
	metrics.NewRecorder,
	wire.Bind(new(usecase.RelayObserver), new(*metrics.Recorder)),
	wire.Bind(new(usecase.ScanObserver), new(*metrics.Recorder)),
)

// HTTPSet provides the relay HTTP service and its client
var HTTPSet = wire.NewSet(
	wire.Struct(new(httpapi.Handlers), "*"),
	ProvideServer,
	ProvideRelayClient,
	wire.Bind(new(usecase.RelayClient), new(*httpapi.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Selector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	LedgerSet,
	RelaySet,
	MetricsSet,
	HTTPSet,
	InteractiveSet,
)
