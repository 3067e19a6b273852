package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/govrelay/internal/config"
	"golang.org/x/sync/errgroup"
)

// NewServeCmd creates the serve command: HTTP relay and scan daemon in one process
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Run the relay HTTP service and the execution scanner",
		Annotations: map[string]string{requiresAnnotation: requiresWrite},
		Long: `Serve the relay API and run the execution scanner until interrupted.

The relayer key pays for every forwarded vote and every execution.`,
		Example: `  # Relay on port 8787 and scan every 10 seconds
  govrelay serve

  # Persist nonces across restarts and scan with 4 workers
  govrelay serve --nonce-db ./nonces.db --scan-workers 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error { return app.Server.Run(ctx) })
			g.Go(func() error { return app.ScanDaemon.Run(ctx) })
			return g.Wait()
		},
	}

	cmd.Flags().Int("port", config.DefaultPort, "HTTP listen port")
	cmd.Flags().String("nonce-db", "", "Path of the durable nonce store (default in-memory)")
	addScanFlags(cmd)
	return cmd
}

// NewDaemonCmd creates the daemon command: scanner only
func NewDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "daemon",
		Short:       "Run the execution scanner without the HTTP service",
		Annotations: map[string]string{requiresAnnotation: requiresWrite},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.ScanDaemon.Run(ctx)
		},
	}

	addScanFlags(cmd)
	return cmd
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("interval", config.DefaultInterval, "Time between scan ticks")
	cmd.Flags().Uint64("max-proposals", config.DefaultMaxProposals, "Highest proposal id a tick examines")
	cmd.Flags().String("scan-mode", string(config.ScanModeCount), "Scan bound: count or ceiling")
	cmd.Flags().Int("scan-workers", config.DefaultScanWorkers, "Proposals examined concurrently per tick")
	cmd.Flags().String("state-source", string(config.StateSourceLocal), "Proposal state derivation: local or ledger")
}
