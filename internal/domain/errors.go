package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrProposalCountUnavailable is returned by ledgers that cannot report a proposal total
	ErrProposalCountUnavailable = errors.New("proposal count unavailable")

	// ErrProposalNotFound is returned when a proposal id has never been used
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrReverted is returned when the ledger rejected a submitted call
	ErrReverted = errors.New("execution reverted")

	// ErrReadOnly is returned when a write is attempted without a signing credential
	ErrReadOnly = errors.New("ledger is read-only")
)

// Kind is the category an error belongs to
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindState      Kind = "state"
	KindExecution  Kind = "execution"
	KindInfra      Kind = "infra"
)

// ClientFault reports whether errors of this kind are caused by the caller
func (k Kind) ClientFault() bool {
	switch k {
	case KindValidation, KindAuth, KindState:
		return true
	default:
		return false
	}
}

// ValidationError is returned for a malformed request shape or encoding
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthReason names why authorization failed
type AuthReason string

const (
	AuthMalformedSignature AuthReason = "malformed-signature"
	AuthSignerMismatch     AuthReason = "signer-mismatch"
	AuthNonceMismatch      AuthReason = "nonce-mismatch"
	AuthRejected           AuthReason = "rejected-by-forwarder"
)

// AuthError is returned for invalid signatures, signer mismatches, and nonce mismatches
type AuthError struct {
	Reason AuthReason
	Detail string
}

func (e AuthError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("authorization failed: %s", e.Reason)
	}
	return fmt.Sprintf("authorization failed: %s: %s", e.Reason, e.Detail)
}

// StateReason names why a lifecycle transition is illegal
type StateReason string

const (
	StateAlreadyVoted    StateReason = "already-voted"
	StateAlreadyExecuted StateReason = "already-executed"
	StateNotExecutable   StateReason = "not-executable"
	StateNotActive       StateReason = "not-active"
)

// StateError is returned when an action is illegal in the proposal's current state
type StateError struct {
	ProposalID uint64
	State      ProposalState
	Reason     StateReason
}

func (e StateError) Error() string {
	return fmt.Sprintf("proposal %d is %s: %s", e.ProposalID, e.State, e.Reason)
}

// ExecutionError is returned when the ledger rejected or timed out a call after authorization succeeded
type ExecutionError struct {
	Op  string
	Err error
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e ExecutionError) Unwrap() error { return e.Err }

// InfraError is returned for connectivity or read failures against the ledger
type InfraError struct {
	Op  string
	Err error
}

func (e InfraError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e InfraError) Unwrap() error { return e.Err }

// Classify maps an error onto its category. Errors from other processes can report
// their own kind through an ErrorKind method. Unknown errors are infrastructure faults.
func Classify(err error) Kind {
	var (
		validationErr ValidationError
		authErr       AuthError
		stateErr      StateError
		executionErr  ExecutionError
		kinded        interface{ ErrorKind() Kind }
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &authErr):
		return KindAuth
	case errors.As(err, &stateErr):
		return KindState
	case errors.As(err, &executionErr):
		return KindExecution
	case errors.As(err, &kinded):
		return kinded.ErrorKind()
	default:
		return KindInfra
	}
}
