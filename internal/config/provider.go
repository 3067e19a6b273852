package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "GOVRELAY"

	DefaultPort           = 8787
	DefaultInterval       = 10 * time.Second
	DefaultMaxProposals   = 50
	DefaultScanWorkers    = 1
	DefaultOpTimeout      = 60 * time.Second
	DefaultConfirmTimeout = 2 * time.Minute
	DefaultReadRetries    = 3
	DefaultReadRetryDelay = 500 * time.Millisecond
	DefaultRelayerURL     = "http://localhost:8787"

	// MaxScanBound caps any configured or requested scan ceiling
	MaxScanBound = 100_000
)

// envFallbacks lists the unprefixed names each key also answers to, after the prefixed one
var envFallbacks = map[string][]string{
	"private_key":       {"RELAYER_PRIVATE_KEY"},
	"rpc_url":           {"RPC_URL"},
	"dao_address":       {"DAO_ADDRESS"},
	"forwarder_address": {"FORWARDER_ADDRESS"},
	"chain_id":          {"CHAIN_ID"},
	"port":              {"PORT"},
	"max_proposals":     {"MAX_PROPOSALS"},
	"relayer_url":       {"RELAYER_URL"},
	"voter_key":         {"VOTER_PRIVATE_KEY"},
}

var prefixedOnly = []string{
	"interval",
	"scan_mode",
	"scan_workers",
	"op_timeout",
	"confirm_timeout",
	"read_retries",
	"read_retry_delay",
	"nonce_db",
	"ledger",
	"state_source",
	"log_level",
	"log_format",
	"non_interactive",
	"output",
}

// SetupViper creates and configures a viper instance.
// A .env file (or --env-file) is loaded into the process environment first and
// never overrides variables that are already set.
func SetupViper(cmd *cobra.Command) (*viper.Viper, error) {
	if err := loadEnvFile(flagString(cmd, "env-file")); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for key, fallbacks := range envFallbacks {
		names := append([]string{key, envName(key)}, fallbacks...)
		if err := v.BindEnv(names...); err != nil {
			return nil, err
		}
	}
	for _, key := range prefixedOnly {
		if err := v.BindEnv(key, envName(key)); err != nil {
			return nil, err
		}
	}
	if err := v.BindEnv("interval_ms", "INTERVAL_MS"); err != nil {
		return nil, err
	}

	v.SetDefault("port", DefaultPort)
	v.SetDefault("max_proposals", DefaultMaxProposals)
	v.SetDefault("scan_mode", string(ScanModeCount))
	v.SetDefault("scan_workers", DefaultScanWorkers)
	v.SetDefault("op_timeout", DefaultOpTimeout)
	v.SetDefault("confirm_timeout", DefaultConfirmTimeout)
	v.SetDefault("read_retries", DefaultReadRetries)
	v.SetDefault("read_retry_delay", DefaultReadRetryDelay)
	v.SetDefault("ledger", string(LedgerChain))
	v.SetDefault("state_source", string(StateSourceLocal))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("relayer_url", DefaultRelayerURL)
	v.SetDefault("output", "table")

	if path := flagString(cmd, "config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("govrelay")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == "config" || f.Name == "env-file" {
			return
		}
		bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	if bindErr != nil {
		return nil, bindErr
	}

	return v, nil
}

// Provider creates RuntimeConfig for Wire dependency injection.
// Malformed values fail here; missing ones are reported by Validate.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{
		PrivateKey:     strings.TrimSpace(v.GetString("private_key")),
		RPCURL:         strings.TrimSpace(v.GetString("rpc_url")),
		ChainID:        v.GetUint64("chain_id"),
		Port:           v.GetInt("port"),
		ConfirmTimeout: v.GetDuration("confirm_timeout"),
		NonceDB:        v.GetString("nonce_db"),
		MaxProposals:   v.GetUint64("max_proposals"),
		ScanMode:       ScanMode(strings.ToLower(v.GetString("scan_mode"))),
		ScanWorkers:    v.GetInt("scan_workers"),
		OpTimeout:      v.GetDuration("op_timeout"),
		StateSource:    StateSource(strings.ToLower(v.GetString("state_source"))),
		ReadRetries:    v.GetUint("read_retries"),
		ReadRetryDelay: v.GetDuration("read_retry_delay"),
		Ledger:         LedgerKind(strings.ToLower(v.GetString("ledger"))),
		LogLevel:       strings.ToLower(v.GetString("log_level")),
		LogFormat:      strings.ToLower(v.GetString("log_format")),
		VoterKey:       strings.TrimSpace(v.GetString("voter_key")),
		RelayerURL:     strings.TrimRight(v.GetString("relayer_url"), "/"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         strings.ToLower(v.GetString("output")),
	}

	var err error
	if cfg.DAOAddress, err = optionalAddress(v, "dao_address"); err != nil {
		return nil, err
	}
	if cfg.ForwarderAddress, err = optionalAddress(v, "forwarder_address"); err != nil {
		return nil, err
	}

	cfg.Interval = DefaultInterval
	switch {
	case v.IsSet("interval"):
		cfg.Interval = v.GetDuration("interval")
	case v.IsSet("interval_ms"):
		cfg.Interval = time.Duration(v.GetInt64("interval_ms")) * time.Millisecond
	}

	if err := cfg.checkValues(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every required key that is missing. The signer key is only
// required by commands that submit transactions.
func (c *RuntimeConfig) Validate(needSigner bool) error {
	var missing []string
	if c.Ledger == LedgerChain && c.RPCURL == "" {
		missing = append(missing, "rpc_url")
	}
	if c.DAOAddress == (common.Address{}) {
		missing = append(missing, "dao_address")
	}
	if c.ForwarderAddress == (common.Address{}) {
		missing = append(missing, "forwarder_address")
	}
	if needSigner && c.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *RuntimeConfig) checkValues() error {
	switch c.ScanMode {
	case ScanModeCount, ScanModeCeiling:
	default:
		return fmt.Errorf("invalid scan_mode %q: expected count or ceiling", c.ScanMode)
	}
	switch c.Ledger {
	case LedgerChain, LedgerMemory:
	default:
		return fmt.Errorf("invalid ledger %q: expected chain or memory", c.Ledger)
	}
	switch c.StateSource {
	case StateSourceLocal, StateSourceLedger:
	default:
		return fmt.Errorf("invalid state_source %q: expected local or ledger", c.StateSource)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: expected text or json", c.LogFormat)
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output %q: expected table, json or yaml", c.Output)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.MaxProposals == 0 || c.MaxProposals > MaxScanBound {
		return fmt.Errorf("max_proposals must be between 1 and %d, got %d", MaxScanBound, c.MaxProposals)
	}
	if c.ScanWorkers < 1 {
		return fmt.Errorf("scan_workers must be at least 1, got %d", c.ScanWorkers)
	}
	if c.OpTimeout <= 0 || c.ConfirmTimeout <= 0 {
		return fmt.Errorf("op_timeout and confirm_timeout must be positive")
	}
	return nil
}

func optionalAddress(v *viper.Viper, key string) (common.Address, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid %s %q: not a hex address", key, raw)
	}
	return common.HexToAddress(raw), nil
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func flagString(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}
