package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// ErrNonInteractive is returned when a selection is needed but prompts are disabled
var ErrNonInteractive = fmt.Errorf("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
	run    func(promptui.Select) (int, error)
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{
		config: cfg,
		run: func(s promptui.Select) (int, error) {
			index, _, err := s.Run()
			return index, err
		},
	}
}

// SelectProposal picks one of views. Only ACTIVE proposals are offered.
func (s *SelectorAdapter) SelectProposal(ctx context.Context, views []*usecase.ProposalView, prompt string) (*usecase.ProposalView, error) {
	if s.config.NonInteractive {
		return nil, ErrNonInteractive
	}

	var active []*usecase.ProposalView
	for _, v := range views {
		if v.State == domain.StateActive {
			active = append(active, v)
		}
	}
	switch len(active) {
	case 0:
		return nil, fmt.Errorf("no active proposals to vote on")
	case 1:
		return active[0], nil
	}

	options := formatProposalOptions(active)
	index, err := s.run(promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         selectTemplates(),
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	})
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return active[index], nil
}

// SelectVote asks for a vote choice on view
func (s *SelectorAdapter) SelectVote(ctx context.Context, view *usecase.ProposalView) (domain.VoteType, error) {
	if s.config.NonInteractive {
		return 0, ErrNonInteractive
	}

	choices := domain.VoteTypes()
	options := make([]string, len(choices))
	for i, v := range choices {
		options[i] = strings.ToUpper(v.String()[:1]) + v.String()[1:]
	}

	index, err := s.run(promptui.Select{
		Label:     fmt.Sprintf("Vote on proposal #%d", view.Proposal.ID),
		Items:     options,
		Templates: selectTemplates(),
	})
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return choices[index], nil
}

func selectTemplates() *promptui.SelectTemplates {
	return &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}
}

// formatProposalOptions renders "#id description (recipient)"
func formatProposalOptions(views []*usecase.ProposalView) []string {
	options := make([]string, len(views))
	for i, v := range views {
		id := color.New(color.FgWhite, color.Bold).Sprintf("#%d", v.Proposal.ID)
		recipient := color.New(color.FgBlue).Sprint(v.Proposal.Recipient.Hex())
		options[i] = fmt.Sprintf("%s %s (%s)", id, v.Proposal.Description, recipient)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.Selector = (*SelectorAdapter)(nil)
