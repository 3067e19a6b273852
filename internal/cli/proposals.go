package cli

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/govrelay/internal/cli/render"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// NewProposalsCmd creates the proposals command group
func NewProposalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proposals",
		Aliases: []string{"proposal", "p"},
		Short:   "Inspect DAO proposals",
	}
	cmd.AddCommand(newProposalsListCmd(), newProposalsShowCmd())
	return cmd
}

func newProposalsListCmd() *cobra.Command {
	var (
		limit   uint64
		account string
	)

	cmd := &cobra.Command{
		Use:         "list",
		Aliases:     []string{"ls"},
		Short:       "List proposals with their current state",
		Annotations: map[string]string{requiresAnnotation: requiresRead},
		Example: `  # List proposals 1..50
  govrelay proposals list

  # Include how an account voted
  govrelay proposals list --account 0x70997970C51812dc3A010C7d01b50e0d17dc79C8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			voter, err := optionalAccount(account)
			if err != nil {
				return err
			}

			result, err := app.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{Max: limit, Account: voter})
			if err != nil {
				return err
			}
			return render.NewProposalsRenderer(cmd.OutOrStdout(), app.Config.Output, useColor()).RenderList(result)
		},
	}

	cmd.Flags().Uint64Var(&limit, "max", 0, "Highest proposal id to list (default max-proposals)")
	cmd.Flags().StringVar(&account, "account", "", "Show this account's vote on each proposal")
	return cmd
}

func newProposalsShowCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:         "show <id>",
		Short:       "Show one proposal in detail",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{requiresAnnotation: requiresRead},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			voter, err := optionalAccount(account)
			if err != nil {
				return err
			}

			view, err := app.ShowProposal.Run(cmd.Context(), usecase.ShowProposalParams{ID: id, Account: voter})
			if err != nil {
				return err
			}
			return render.NewProposalsRenderer(cmd.OutOrStdout(), app.Config.Output, useColor()).RenderProposal(view)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Show this account's vote")
	return cmd
}

// NewExecuteCmd creates the execute command: relayer-paid execution of one proposal
func NewExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "execute <id>",
		Short:       "Execute an approved proposal from the relayer account",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{requiresAnnotation: requiresWrite},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			receipt, err := app.ExecuteProposal.Run(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Executed proposal %d in %s", id, receipt.TxHash.Hex())))
			return nil
		},
	}
}

func parseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a proposal id", s)}
	}
	return id, nil
}

func optionalAccount(s string) (*common.Address, error) {
	if s == "" {
		return nil, nil
	}
	account, err := domain.ParseAddress("account", s)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
