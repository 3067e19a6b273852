package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ScanMode selects how the scanner bounds the ids it examines
type ScanMode string

const (
	// ScanModeCount scans up to the ledger's proposal count, capped by MaxProposals
	ScanModeCount ScanMode = "count"
	// ScanModeCeiling scans up to MaxProposals without asking for a count
	ScanModeCeiling ScanMode = "ceiling"
)

// LedgerKind selects the ledger backend
type LedgerKind string

const (
	LedgerChain  LedgerKind = "chain"
	LedgerMemory LedgerKind = "memory"
)

// StateSource selects which proposal state derivation is authoritative
type StateSource string

const (
	// StateSourceLocal derives state from proposal snapshots and the wall clock
	StateSourceLocal StateSource = "local"
	// StateSourceLedger asks the ledger for its enumerated state
	StateSourceLedger StateSource = "ledger"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Signing and connectivity
	PrivateKey string
	RPCURL     string
	ChainID    uint64 // 0 means take it from the RPC endpoint

	// Contracts
	DAOAddress       common.Address
	ForwarderAddress common.Address

	// Relay service
	Port           int
	ConfirmTimeout time.Duration
	NonceDB        string // empty keeps nonces in memory

	// Scanner
	Interval     time.Duration
	MaxProposals uint64
	ScanMode     ScanMode
	ScanWorkers  int
	OpTimeout    time.Duration
	StateSource  StateSource

	// Idempotent ledger reads are retried; submissions never are
	ReadRetries    uint
	ReadRetryDelay time.Duration

	Ledger LedgerKind

	// Logging
	LogLevel  string
	LogFormat string

	// Client settings
	VoterKey       string
	RelayerURL     string
	NonInteractive bool
	Output         string
}

// HasSigner reports whether a relayer credential is configured
func (c *RuntimeConfig) HasSigner() bool {
	return c.PrivateKey != ""
}
