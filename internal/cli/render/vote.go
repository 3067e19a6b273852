package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// VoteReceipt is the structured output shape of a relayed vote
type VoteReceipt struct {
	TxHash    string `json:"txHash" yaml:"txHash"`
	From      string `json:"from" yaml:"from"`
	Nonce     string `json:"nonce" yaml:"nonce"`
	Signature string `json:"signature" yaml:"signature"`
}

// VoteRenderer renders the outcome of a gasless vote
type VoteRenderer struct {
	out    io.Writer
	format string
}

// NewVoteRenderer creates a new vote renderer
func NewVoteRenderer(out io.Writer, format string) *VoteRenderer {
	return &VoteRenderer{out: out, format: format}
}

// Render implements Renderer
func (r *VoteRenderer) Render(result *usecase.CastVoteResult) error {
	req := result.Vote.Request
	if r.format != "table" {
		return writeStructured(r.out, r.format, VoteReceipt{
			TxHash:    result.TxHash.Hex(),
			From:      req.From,
			Nonce:     string(req.Nonce),
			Signature: result.Vote.Signature,
		})
	}

	fmt.Fprintln(r.out, FormatSuccess("Vote relayed"))
	fmt.Fprintf(r.out, "  %-12s %s\n", "From:", req.From)
	fmt.Fprintf(r.out, "  %-12s %s\n", "Nonce:", req.Nonce)
	fmt.Fprintf(r.out, "  %-12s %s\n", "Tx hash:", result.TxHash.Hex())
	return nil
}

var _ Renderer[*usecase.CastVoteResult] = (*VoteRenderer)(nil)
