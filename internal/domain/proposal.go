package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// VoteType is the choice recorded by a vote. Values match the DAO contract encoding.
type VoteType uint8

const (
	VoteFor     VoteType = 0
	VoteAgainst VoteType = 1
	VoteAbstain VoteType = 2
)

// VoteTypes lists every valid vote choice in contract order
func VoteTypes() []VoteType {
	return []VoteType{VoteFor, VoteAgainst, VoteAbstain}
}

func (v VoteType) String() string {
	switch v {
	case VoteFor:
		return "for"
	case VoteAgainst:
		return "against"
	case VoteAbstain:
		return "abstain"
	default:
		return fmt.Sprintf("vote(%d)", uint8(v))
	}
}

// Valid reports whether v is one of the three contract vote choices
func (v VoteType) Valid() bool {
	return v <= VoteAbstain
}

// ParseVoteType accepts a choice name or its numeric encoding
func ParseVoteType(s string) (VoteType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "for", "yes", "0":
		return VoteFor, nil
	case "against", "no", "1":
		return VoteAgainst, nil
	case "abstain", "2":
		return VoteAbstain, nil
	default:
		return 0, ValidationError{Field: "vote", Reason: fmt.Sprintf("unknown vote type %q (valid: for, against, abstain)", s)}
	}
}

// Proposal is a snapshot of a spending proposal as stored by the ledger
type Proposal struct {
	ID           uint64
	Recipient    common.Address
	Amount       *big.Int
	Deadline     uint64
	VotesFor     *big.Int
	VotesAgainst *big.Int
	VotesAbstain *big.Int
	Executed     bool
	CreatedAt    uint64
	ExecutableAt uint64
	Description  string
}

// Exists reports whether the proposal id has ever been used
func (p *Proposal) Exists() bool {
	return p != nil && p.CreatedAt != 0
}

// UserVote is the vote an account cast on a proposal, if any
type UserVote struct {
	HasVoted bool
	VoteType VoteType
}

// Receipt identifies a confirmed ledger submission
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
