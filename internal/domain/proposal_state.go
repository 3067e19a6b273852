package domain

import (
	"fmt"
	"strings"
)

// ProposalState is the lifecycle state derived from a proposal snapshot and the current time.
// Values match the ledger's enumerated state.
type ProposalState uint8

const (
	StateNonexistent ProposalState = iota
	StateActive
	StateWaitingSecurityDelay
	StateApproved
	StateRejected
	StateExecuted
)

var stateNames = map[ProposalState]string{
	StateNonexistent:          "NONEXISTENT",
	StateActive:               "ACTIVE",
	StateWaitingSecurityDelay: "WAITING_SECURITY_DELAY",
	StateApproved:             "APPROVED",
	StateRejected:             "REJECTED",
	StateExecuted:             "EXECUTED",
}

func (s ProposalState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE(%d)", uint8(s))
}

// MarshalText encodes the state by name
func (s ProposalState) MarshalText() ([]byte, error) {
	if _, ok := stateNames[s]; !ok {
		return nil, fmt.Errorf("unknown proposal state %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *ProposalState) UnmarshalText(text []byte) error {
	parsed, err := ParseProposalState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseProposalState looks up a state by name, case-insensitively
func ParseProposalState(name string) (ProposalState, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for state, stateName := range stateNames {
		if stateName == upper {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown proposal state %q", name)
}

// ProposalStateFromLedger converts the ledger's numeric state encoding
func ProposalStateFromLedger(raw uint8) (ProposalState, error) {
	state := ProposalState(raw)
	if _, ok := stateNames[state]; !ok {
		return 0, fmt.Errorf("ledger returned unknown proposal state %d", raw)
	}
	return state, nil
}

// Stage is the position of a state in the forward-only lifecycle ordering
// ACTIVE -> WAITING_SECURITY_DELAY -> {APPROVED|REJECTED} -> EXECUTED.
// APPROVED and REJECTED share a stage. NONEXISTENT has stage 0.
func (s ProposalState) Stage() int {
	switch s {
	case StateActive:
		return 1
	case StateWaitingSecurityDelay:
		return 2
	case StateApproved, StateRejected:
		return 3
	case StateExecuted:
		return 4
	default:
		return 0
	}
}

// Terminal reports whether no further transition is possible from s
func (s ProposalState) Terminal() bool {
	return s == StateNonexistent || s == StateRejected || s == StateExecuted
}

// StateOf derives the lifecycle state of p at unix time now
func StateOf(p *Proposal, now uint64) ProposalState {
	switch {
	case !p.Exists():
		return StateNonexistent
	case p.Executed:
		return StateExecuted
	case now < p.Deadline:
		return StateActive
	case now < p.ExecutableAt:
		return StateWaitingSecurityDelay
	case bigOrZero(p.VotesFor).Cmp(bigOrZero(p.VotesAgainst)) > 0:
		return StateApproved
	default:
		// a tie is a rejection
		return StateRejected
	}
}

// CheckVote returns a StateError unless a vote may be cast in state by an account
// whose previous vote is prior (nil when unknown).
func CheckVote(id uint64, state ProposalState, prior *UserVote) error {
	if state != StateActive {
		return StateError{ProposalID: id, State: state, Reason: StateNotActive}
	}
	if prior != nil && prior.HasVoted {
		return StateError{ProposalID: id, State: state, Reason: StateAlreadyVoted}
	}
	return nil
}

// CheckExecute returns a StateError unless the proposal may be executed in state
func CheckExecute(id uint64, state ProposalState) error {
	switch state {
	case StateApproved:
		return nil
	case StateExecuted:
		return StateError{ProposalID: id, State: state, Reason: StateAlreadyExecuted}
	default:
		return StateError{ProposalID: id, State: state, Reason: StateNotExecutable}
	}
}
