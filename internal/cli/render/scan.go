package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// ScanRecord is the structured output shape of one scan tick
type ScanRecord struct {
	Mode      string                     `json:"mode" yaml:"mode"`
	Bound     uint64                     `json:"bound" yaml:"bound"`
	Examined  int                        `json:"examined" yaml:"examined"`
	Processed []usecase.ExecutedProposal `json:"processed" yaml:"processed"`
	Failed    []FailureRecord            `json:"failed" yaml:"failed"`
}

// FailureRecord is one isolated scan failure in structured output
type FailureRecord struct {
	ID    uint64 `json:"id" yaml:"id"`
	Stage string `json:"stage" yaml:"stage"`
	Error string `json:"error" yaml:"error"`
}

// ScanRenderer renders scan tick results
type ScanRenderer struct {
	out    io.Writer
	format string
}

// NewScanRenderer creates a new scan renderer
func NewScanRenderer(out io.Writer, format string) *ScanRenderer {
	return &ScanRenderer{out: out, format: format}
}

// Render implements Renderer
func (r *ScanRenderer) Render(result *usecase.ScanResult) error {
	if r.format != "table" {
		record := ScanRecord{
			Mode:      string(result.Mode),
			Bound:     result.Bound,
			Examined:  result.Examined,
			Processed: result.Processed,
			Failed:    make([]FailureRecord, 0, len(result.Failures)),
		}
		for _, f := range result.Failures {
			record.Failed = append(record.Failed, FailureRecord{ID: f.ID, Stage: f.Stage, Error: f.Err.Error()})
		}
		return writeStructured(r.out, r.format, record)
	}

	fmt.Fprintf(r.out, "Scanned ids 1..%d (%s mode), %d proposals examined\n", result.Bound, result.Mode, result.Examined)
	if len(result.Processed) == 0 {
		fmt.Fprintln(r.out, "No executable proposals")
	}
	for _, executed := range result.Processed {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Executed proposal %d in %s", executed.ID, executed.TxHash.Hex())))
	}
	for _, f := range result.Failures {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("proposal %d: %s failed: %v", f.ID, f.Stage, f.Err)))
	}
	return nil
}

var _ Renderer[*usecase.ScanResult] = (*ScanRenderer)(nil)
