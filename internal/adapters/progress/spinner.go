package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// SpinnerSink renders progress events as a terminal spinner with a stage trail
type SpinnerSink struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerSink{spinner: s, out: out}
}

// OnProgress updates the spinner. Events without Spinner set stop it.
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enterStage(event.Stage)

	if !event.Spinner {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		return
	}

	suffix := " " + event.Message
	if event.Total > 0 && event.Current > 0 {
		suffix = fmt.Sprintf(" %s %s", event.Message, color.New(color.Faint).Sprintf("(%d/%d)", event.Current, event.Total))
	}
	r.spinner.Suffix = suffix + r.trail()
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

// Stop halts the spinner if it is running
func (r *SpinnerSink) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerSink) print(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	c.Fprintln(r.out, message)
	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) enterStage(name string) {
	if name == "" {
		return
	}
	if n := len(r.stages); n > 0 {
		if r.stages[n-1].Name == name {
			return
		}
		r.stages[n-1].EndTime = time.Now()
	}
	r.stages = append(r.stages, stageInfo{Name: name, StartTime: time.Now()})
}

// trail renders completed stages with their durations
func (r *SpinnerSink) trail() string {
	if len(r.stages) < 2 {
		return ""
	}
	display := "  "
	for i, stage := range r.stages[:len(r.stages)-1] {
		if i > 0 {
			display += " → "
		}
		display += fmt.Sprintf("%s %s (%s)",
			color.New(color.FgGreen).Sprint("✓"),
			stage.Name,
			stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
	}
	return display
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
