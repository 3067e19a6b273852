package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

var (
	labelStyle   = color.New(color.Bold)
	faintStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgWhite)
)

// ProposalRecord is the structured output shape of a proposal
type ProposalRecord struct {
	ID           uint64      `json:"id" yaml:"id"`
	State        string      `json:"state" yaml:"state"`
	Recipient    string      `json:"recipient" yaml:"recipient"`
	Amount       string      `json:"amount" yaml:"amount"`
	Deadline     uint64      `json:"deadline" yaml:"deadline"`
	ExecutableAt uint64      `json:"executableAt" yaml:"executableAt"`
	VotesFor     string      `json:"votesFor" yaml:"votesFor"`
	VotesAgainst string      `json:"votesAgainst" yaml:"votesAgainst"`
	VotesAbstain string      `json:"votesAbstain" yaml:"votesAbstain"`
	Executed     bool        `json:"executed" yaml:"executed"`
	Description  string      `json:"description" yaml:"description"`
	UserVote     *VoteRecord `json:"userVote,omitempty" yaml:"userVote,omitempty"`
}

// VoteRecord is an account's vote in structured output
type VoteRecord struct {
	HasVoted bool   `json:"hasVoted" yaml:"hasVoted"`
	VoteType string `json:"voteType,omitempty" yaml:"voteType,omitempty"`
}

// NewProposalRecord flattens a view for json and yaml output
func NewProposalRecord(view *usecase.ProposalView) ProposalRecord {
	p := view.Proposal
	record := ProposalRecord{
		ID:           p.ID,
		State:        view.State.String(),
		Recipient:    p.Recipient.Hex(),
		Amount:       decimal(p.Amount),
		Deadline:     p.Deadline,
		ExecutableAt: p.ExecutableAt,
		VotesFor:     decimal(p.VotesFor),
		VotesAgainst: decimal(p.VotesAgainst),
		VotesAbstain: decimal(p.VotesAbstain),
		Executed:     p.Executed,
		Description:  p.Description,
	}
	if v := view.UserVote; v != nil {
		record.UserVote = &VoteRecord{HasVoted: v.HasVoted}
		if v.HasVoted {
			record.UserVote.VoteType = v.VoteType.String()
		}
	}
	return record
}

// ProposalsRenderer renders proposal lists and details
type ProposalsRenderer struct {
	out    io.Writer
	format string
	color  bool
}

// NewProposalsRenderer creates a new proposals renderer. format is table, json or yaml.
func NewProposalsRenderer(out io.Writer, format string, color bool) *ProposalsRenderer {
	return &ProposalsRenderer{out: out, format: format, color: color}
}

// RenderList renders every listed proposal, then any ids that could not be read
func (r *ProposalsRenderer) RenderList(result *usecase.ProposalListResult) error {
	if r.format != "table" {
		return writeStructured(r.out, r.format, lo.Map(result.Proposals, func(v *usecase.ProposalView, _ int) ProposalRecord {
			return NewProposalRecord(v)
		}))
	}

	if len(result.Proposals) == 0 {
		fmt.Fprintf(r.out, "No proposals found (scanned ids 1..%d)\n", result.Bound)
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "State", "For", "Against", "Abstain", "Amount", "Deadline", "Description"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
			{Number: 5, Align: text.AlignRight},
			{Number: 6, Align: text.AlignRight},
			{Number: 8, WidthMax: 40},
		})
		for _, view := range result.Proposals {
			p := view.Proposal
			t.AppendRow(table.Row{
				p.ID,
				styledState(view.State, r.color),
				decimal(p.VotesFor),
				decimal(p.VotesAgainst),
				decimal(p.VotesAbstain),
				decimal(p.Amount),
				formatTimestamp(p.Deadline),
				p.Description,
			})
		}
		t.Render()
	}

	for _, f := range result.Failures {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("proposal %d: %s failed: %v", f.ID, f.Stage, f.Err)))
	}
	return nil
}

// RenderProposal renders one proposal in detail
func (r *ProposalsRenderer) RenderProposal(view *usecase.ProposalView) error {
	if r.format != "table" {
		return writeStructured(r.out, r.format, NewProposalRecord(view))
	}

	p := view.Proposal
	fmt.Fprintf(r.out, "%s %d  %s\n", labelStyle.Sprint("Proposal"), p.ID, styledState(view.State, r.color))
	if p.Description != "" {
		fmt.Fprintf(r.out, "  %s\n", p.Description)
	}
	fmt.Fprintln(r.out)
	r.field("Recipient", addressStyle.Sprint(p.Recipient.Hex()))
	r.field("Amount", decimal(p.Amount))
	r.field("Created", formatTimestamp(p.CreatedAt))
	r.field("Deadline", formatTimestamp(p.Deadline))
	r.field("Executable", formatTimestamp(p.ExecutableAt))
	r.field("Votes", fmt.Sprintf("%s for / %s against / %s abstain", decimal(p.VotesFor), decimal(p.VotesAgainst), decimal(p.VotesAbstain)))
	if v := view.UserVote; v != nil {
		if v.HasVoted {
			r.field("Your vote", v.VoteType.String())
		} else {
			r.field("Your vote", faintStyle.Sprint("not voted"))
		}
	}
	return nil
}

func (r *ProposalsRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %-12s %s\n", label+":", value)
}

func formatTimestamp(sec uint64) string {
	if sec == 0 {
		return "-"
	}
	return time.Unix(int64(sec), 0).UTC().Format("2006-01-02 15:04:05 UTC")
}
