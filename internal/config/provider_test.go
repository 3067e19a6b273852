package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	daoHex       = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	forwarderHex = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)

// clearEnv blanks every variable the provider reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	for key, fallbacks := range envFallbacks {
		t.Setenv(envName(key), "")
		for _, name := range fallbacks {
			t.Setenv(name, "")
		}
	}
	for _, key := range prefixedOnly {
		t.Setenv(envName(key), "")
	}
	t.Setenv("INTERVAL_MS", "")
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("env-file", "", "")
	cmd.Flags().Int("port", DefaultPort, "")
	cmd.Flags().Duration("interval", DefaultInterval, "")
	cmd.Flags().Uint64("max-proposals", DefaultMaxProposals, "")
	cmd.Flags().Bool("non-interactive", false, "")
	return cmd
}

func load(t *testing.T, cmd *cobra.Command) (*RuntimeConfig, error) {
	v, err := SetupViper(cmd)
	require.NoError(t, err)
	return Provider(v)
}

func TestProviderDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(t, newCommand())
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultInterval, cfg.Interval)
	assert.Equal(t, uint64(DefaultMaxProposals), cfg.MaxProposals)
	assert.Equal(t, ScanModeCount, cfg.ScanMode)
	assert.Equal(t, DefaultScanWorkers, cfg.ScanWorkers)
	assert.Equal(t, DefaultOpTimeout, cfg.OpTimeout)
	assert.Equal(t, DefaultConfirmTimeout, cfg.ConfirmTimeout)
	assert.Equal(t, LedgerChain, cfg.Ledger)
	assert.Equal(t, StateSourceLocal, cfg.StateSource)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, uint64(0), cfg.ChainID)
	assert.Empty(t, cfg.NonceDB)
	assert.False(t, cfg.HasSigner())
}

func TestProviderEnvironment(t *testing.T) {
	t.Run("prefixed names win over fallbacks", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GOVRELAY_RPC_URL", "http://primary:8545")
		t.Setenv("RPC_URL", "http://fallback:8545")
		t.Setenv("PORT", "9000")

		cfg, err := load(t, newCommand())
		require.NoError(t, err)
		assert.Equal(t, "http://primary:8545", cfg.RPCURL)
		assert.Equal(t, 9000, cfg.Port)
	})

	t.Run("unprefixed names are accepted", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELAYER_PRIVATE_KEY", "0xabc")
		t.Setenv("DAO_ADDRESS", daoHex)
		t.Setenv("FORWARDER_ADDRESS", forwarderHex)
		t.Setenv("CHAIN_ID", "31337")
		t.Setenv("MAX_PROPOSALS", "200")

		cfg, err := load(t, newCommand())
		require.NoError(t, err)
		assert.Equal(t, "0xabc", cfg.PrivateKey)
		assert.Equal(t, common.HexToAddress(daoHex), cfg.DAOAddress)
		assert.Equal(t, common.HexToAddress(forwarderHex), cfg.ForwarderAddress)
		assert.Equal(t, uint64(31337), cfg.ChainID)
		assert.Equal(t, uint64(200), cfg.MaxProposals)
	})

	t.Run("INTERVAL_MS is milliseconds", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INTERVAL_MS", "2500")

		cfg, err := load(t, newCommand())
		require.NoError(t, err)
		assert.Equal(t, 2500*time.Millisecond, cfg.Interval)
	})

	t.Run("GOVRELAY_INTERVAL beats INTERVAL_MS", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INTERVAL_MS", "2500")
		t.Setenv("GOVRELAY_INTERVAL", "30s")

		cfg, err := load(t, newCommand())
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.Interval)
	})

	t.Run("modes are case-insensitive", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GOVRELAY_SCAN_MODE", "CEILING")
		t.Setenv("GOVRELAY_LEDGER", "Memory")
		t.Setenv("GOVRELAY_STATE_SOURCE", "ledger")
		t.Setenv("GOVRELAY_LOG_FORMAT", "json")

		cfg, err := load(t, newCommand())
		require.NoError(t, err)
		assert.Equal(t, ScanModeCeiling, cfg.ScanMode)
		assert.Equal(t, LedgerMemory, cfg.Ledger)
		assert.Equal(t, StateSourceLedger, cfg.StateSource)
		assert.Equal(t, "json", cfg.LogFormat)
	})
}

func TestProviderFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOVRELAY_PORT", "9000")
	t.Setenv("INTERVAL_MS", "2500")

	cmd := newCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--port", "9100", "--interval", "1m", "--non-interactive"}))

	cfg, err := load(t, cmd)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.True(t, cfg.NonInteractive)
}

func TestProviderFiles(t *testing.T) {
	t.Run("config file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "govrelay.yaml")
		require.NoError(t, os.WriteFile(path, []byte("dao_address: "+daoHex+"\nscan_workers: 4\nport: 7000\n"), 0o644))
		t.Setenv("GOVRELAY_PORT", "7100")

		cmd := newCommand()
		require.NoError(t, cmd.Flags().Parse([]string{"--config", path}))

		cfg, err := load(t, cmd)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(daoHex), cfg.DAOAddress)
		assert.Equal(t, 4, cfg.ScanWorkers)
		assert.Equal(t, 7100, cfg.Port, "environment overrides the file")
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		clearEnv(t)
		cmd := newCommand()
		require.NoError(t, cmd.Flags().Parse([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}))

		_, err := SetupViper(cmd)
		assert.Error(t, err)
	})

	t.Run("env file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "relay.env")
		require.NoError(t, os.WriteFile(path, []byte("GOVRELAY_NONCE_DB=/tmp/nonces.db\n"), 0o644))
		// godotenv does not override set variables, so start unset and clean up after
		require.NoError(t, os.Unsetenv("GOVRELAY_NONCE_DB"))
		t.Cleanup(func() { _ = os.Unsetenv("GOVRELAY_NONCE_DB") })

		cmd := newCommand()
		require.NoError(t, cmd.Flags().Parse([]string{"--env-file", path}))

		cfg, err := load(t, cmd)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/nonces.db", cfg.NonceDB)
	})
}

func TestProviderRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad address", map[string]string{"DAO_ADDRESS": "0x1234"}, "invalid dao_address"},
		{"bad scan mode", map[string]string{"GOVRELAY_SCAN_MODE": "all"}, "invalid scan_mode"},
		{"bad ledger", map[string]string{"GOVRELAY_LEDGER": "sqlite"}, "invalid ledger"},
		{"bad state source", map[string]string{"GOVRELAY_STATE_SOURCE": "oracle"}, "invalid state_source"},
		{"bad output", map[string]string{"GOVRELAY_OUTPUT": "xml"}, "invalid output"},
		{"zero max", map[string]string{"MAX_PROPOSALS": "0"}, "max_proposals"},
		{"max over cap", map[string]string{"MAX_PROPOSALS": "100001"}, "max_proposals"},
		{"zero workers", map[string]string{"GOVRELAY_SCAN_WORKERS": "0"}, "scan_workers"},
		{"negative interval", map[string]string{"INTERVAL_MS": "-5"}, "interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(t, newCommand())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("lists every missing key", func(t *testing.T) {
		cfg := &RuntimeConfig{Ledger: LedgerChain}
		err := cfg.Validate(true)
		require.Error(t, err)
		assert.Equal(t, "missing required configuration: rpc_url, dao_address, forwarder_address, private_key", err.Error())
	})

	t.Run("read-only commands need no key", func(t *testing.T) {
		cfg := &RuntimeConfig{
			Ledger:           LedgerChain,
			RPCURL:           "http://localhost:8545",
			DAOAddress:       common.HexToAddress(daoHex),
			ForwarderAddress: common.HexToAddress(forwarderHex),
		}
		assert.NoError(t, cfg.Validate(false))
		assert.EqualError(t, cfg.Validate(true), "missing required configuration: private_key")
	})

	t.Run("memory ledger needs no rpc", func(t *testing.T) {
		cfg := &RuntimeConfig{
			Ledger:           LedgerMemory,
			DAOAddress:       common.HexToAddress(daoHex),
			ForwarderAddress: common.HexToAddress(forwarderHex),
		}
		assert.NoError(t, cfg.Validate(false))
	})
}
