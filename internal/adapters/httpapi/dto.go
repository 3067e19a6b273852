package httpapi

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// RelayBody is the POST /relay request body
type RelayBody struct {
	Request   domain.RawForwardRequest `json:"request"`
	Signature string                   `json:"signature"`
}

// RelayResponse is the POST /relay success body
type RelayResponse struct {
	TxHash common.Hash `json:"txHash"`
}

// RunOnceResponse is the POST /daemon/run-once body
type RunOnceResponse struct {
	Processed []usecase.ExecutedProposal `json:"processed"`
	Bound     uint64                     `json:"bound"`
	Examined  int                        `json:"examined"`
	Failed    []FailureView              `json:"failed"`
}

// FailureView is one isolated scanner failure
type FailureView struct {
	ID    uint64 `json:"id"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// VoteView is an account's vote on a proposal
type VoteView struct {
	HasVoted bool   `json:"hasVoted"`
	VoteType string `json:"voteType,omitempty"`
}

// ProposalResponse is the wire shape of a proposal, numeric amounts as decimal strings
type ProposalResponse struct {
	ID           uint64               `json:"id"`
	Recipient    common.Address       `json:"recipient"`
	Amount       string               `json:"amount"`
	Deadline     uint64               `json:"deadline"`
	VotesFor     string               `json:"votesFor"`
	VotesAgainst string               `json:"votesAgainst"`
	VotesAbstain string               `json:"votesAbstain"`
	Executed     bool                 `json:"executed"`
	CreatedAt    uint64               `json:"createdAt"`
	ExecutableAt uint64               `json:"executableAt"`
	Description  string               `json:"description"`
	State        domain.ProposalState `json:"state"`
	UserVote     *VoteView            `json:"userVote,omitempty"`
}

// NonceResponse is the GET /nonce/{account} body
type NonceResponse struct {
	Account common.Address `json:"account"`
	Nonce   string         `json:"nonce"`
}

func newProposalResponse(view *usecase.ProposalView) ProposalResponse {
	p := view.Proposal
	resp := ProposalResponse{
		ID:           p.ID,
		Recipient:    p.Recipient,
		Amount:       decimal(p.Amount),
		Deadline:     p.Deadline,
		VotesFor:     decimal(p.VotesFor),
		VotesAgainst: decimal(p.VotesAgainst),
		VotesAbstain: decimal(p.VotesAbstain),
		Executed:     p.Executed,
		CreatedAt:    p.CreatedAt,
		ExecutableAt: p.ExecutableAt,
		Description:  p.Description,
		State:        view.State,
	}
	if view.UserVote != nil {
		v := newVoteView(view.UserVote)
		resp.UserVote = &v
	}
	return resp
}

func newVoteView(v *domain.UserVote) VoteView {
	if !v.HasVoted {
		return VoteView{}
	}
	return VoteView{HasVoted: true, VoteType: v.VoteType.String()}
}
