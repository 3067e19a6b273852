package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/govrelay/internal/cli/render"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// NewScanCmd creates the scan command: a single scanner tick
func NewScanCmd() *cobra.Command {
	var limit uint64

	cmd := &cobra.Command{
		Use:         "scan",
		Short:       "Run one scanner tick and execute approved proposals",
		Annotations: map[string]string{spinnerAnnotation: "", requiresAnnotation: requiresWrite},
		Example: `  # Execute whatever is approved among proposals 1..50
  govrelay scan

  # Examine ids up to 200 and print the result as JSON
  govrelay scan --max 200 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ScanProposals.Run(cmd.Context(), usecase.ScanProposalsParams{Max: limit})
			if err != nil {
				return err
			}
			currentSession(cmd).stopProgress()
			return render.NewScanRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}

	cmd.Flags().Uint64Var(&limit, "max", 0, "Override the highest proposal id to examine")
	cmd.Flags().String("scan-mode", string(config.ScanModeCount), "Scan bound: count or ceiling")
	cmd.Flags().Int("scan-workers", config.DefaultScanWorkers, "Proposals examined concurrently")
	return cmd
}
