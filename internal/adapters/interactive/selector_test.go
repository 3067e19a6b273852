package interactive

import (
	"context"
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

func view(id uint64, state domain.ProposalState, description string) *usecase.ProposalView {
	return &usecase.ProposalView{
		Proposal: &domain.Proposal{ID: id, Description: description},
		State:    state,
	}
}

func TestSelectProposal(t *testing.T) {
	views := []*usecase.ProposalView{
		view(1, domain.StateExecuted, "old"),
		view(2, domain.StateActive, "audit"),
		view(3, domain.StateActive, "grants"),
	}

	t.Run("non-interactive", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
		_, err := s.SelectProposal(context.Background(), views, "pick")
		assert.ErrorIs(t, err, ErrNonInteractive)
	})

	t.Run("single active proposal needs no prompt", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		s.run = func(promptui.Select) (int, error) { return 0, errors.New("should not prompt") }

		selected, err := s.SelectProposal(context.Background(), views[:2], "pick")
		require.NoError(t, err)
		assert.Equal(t, uint64(2), selected.Proposal.ID)
	})

	t.Run("offers only active proposals", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		s.run = func(sel promptui.Select) (int, error) {
			assert.Len(t, sel.Items, 2)
			return 1, nil
		}

		selected, err := s.SelectProposal(context.Background(), views, "pick")
		require.NoError(t, err)
		assert.Equal(t, uint64(3), selected.Proposal.ID)
	})
}

func TestSelectVote(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{})
	s.run = func(promptui.Select) (int, error) { return 2, nil }

	vote, err := s.SelectVote(context.Background(), view(2, domain.StateActive, "audit"))
	require.NoError(t, err)
	assert.Equal(t, domain.VoteAbstain, vote)
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc([]string{"#1 fund the audit", "#2 grants round"})
	assert.True(t, search("", 0))
	assert.True(t, search("audit", 0))
	assert.True(t, search("grnts", 1))
	assert.False(t, search("audit", 1))
}
