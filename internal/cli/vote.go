package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/govrelay/internal/adapters/eip712"
	"github.com/trebuchet-org/govrelay/internal/cli/render"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// NewVoteCmd creates the vote command: sign a vote locally and hand it to a relayer
func NewVoteCmd() *cobra.Command {
	var gas uint64

	cmd := &cobra.Command{
		Use:         "vote [id] [for|against|abstain]",
		Short:       "Cast a gasless vote through a relayer",
		Args:        cobra.MaximumNArgs(2),
		Annotations: map[string]string{spinnerAnnotation: "", requiresAnnotation: requiresRead},
		Long: `Build a vote call, sign it as an EIP-712 forward request with the voter key,
and submit it to a relayer. The key never leaves this machine.

Missing arguments are chosen interactively from the active proposals.`,
		Example: `  # Vote for proposal 3
  GOVRELAY_VOTER_KEY=0x... govrelay vote 3 for

  # Pick the proposal and vote interactively
  govrelay vote --relayer-url https://relay.example.org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if app.Config.VoterKey == "" {
				return domain.ValidationError{Field: "voter_key", Reason: "set GOVRELAY_VOTER_KEY or --voter-key"}
			}
			signer, err := eip712.KeySignerFromHex(app.Config.VoterKey)
			if err != nil {
				return domain.ValidationError{Field: "voter_key", Reason: err.Error()}
			}

			var view *usecase.ProposalView
			if len(args) > 0 {
				id, err := parseProposalID(args[0])
				if err != nil {
					return err
				}
				if view, err = app.ShowProposal.Run(cmd.Context(), usecase.ShowProposalParams{ID: id}); err != nil {
					return err
				}
			} else {
				listed, err := app.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{})
				if err != nil {
					return err
				}
				if view, err = app.Selector.SelectProposal(cmd.Context(), listed.Proposals, "Select a proposal to vote on"); err != nil {
					return err
				}
			}

			var choice domain.VoteType
			if len(args) > 1 {
				if choice, err = domain.ParseVoteType(args[1]); err != nil {
					return err
				}
			} else if choice, err = app.Selector.SelectVote(cmd.Context(), view); err != nil {
				return err
			}

			result, err := app.CastVote.Run(cmd.Context(), usecase.PrepareVoteParams{
				ProposalID: view.Proposal.ID,
				Vote:       choice,
				Gas:        gas,
				Signer:     signer,
			})
			currentSession(cmd).stopProgress()
			if err != nil {
				return fmt.Errorf("vote on proposal %d: %w", view.Proposal.ID, err)
			}
			return render.NewVoteRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}

	cmd.Flags().String("voter-key", "", "Voter private key (prefer GOVRELAY_VOTER_KEY)")
	cmd.Flags().String("relayer-url", "", "Relayer base URL (default http://localhost:8787)")
	cmd.Flags().Uint64Var(&gas, "gas", usecase.DefaultVoteGas, "Gas the forwarder forwards to the vote call")
	return cmd
}
