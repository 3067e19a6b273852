package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/govrelay/internal/adapters/progress"
	"github.com/trebuchet-org/govrelay/internal/app"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// sessionKey is the context key for the wired app of the running command
	sessionKey contextKey = "session"

	// spinnerAnnotation marks commands that show a progress spinner
	spinnerAnnotation = "spinner"

	// requiresAnnotation names the configuration a command cannot start without:
	// requiresRead for ledger access, requiresWrite when it also submits transactions
	requiresAnnotation = "requires"
	requiresRead       = "read"
	requiresWrite      = "write"
)

// session holds the app for one command invocation and releases it afterwards
type session struct {
	app     *app.App
	sink    *progress.SpinnerSink
	cleanup func()
}

// stopProgress clears the spinner so results render on a clean line
func (s *session) stopProgress() {
	if s.sink != nil {
		s.sink.Stop()
	}
}

func (s *session) close() {
	s.stopProgress()
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Execute runs the root command and releases ledger connections and stores on exit
func Execute(ctx context.Context) error {
	s := &session{}
	defer s.close()
	return NewRootCmd().ExecuteContext(context.WithValue(ctx, sessionKey, s))
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "govrelay",
		Short: "Gasless governance relay for a DAO and its forwarder",
		Long: `govrelay forwards signed meta-transactions so voters never pay gas,
and runs a scanner that executes every approved proposal exactly once.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v, err := config.SetupViper(cmd)
			if err != nil {
				return err
			}

			// Missing configuration is fatal before any connection is dialed or port bound
			if req, ok := cmd.Annotations[requiresAnnotation]; ok {
				cfg, err := config.Provider(v)
				if err != nil {
					return err
				}
				if err := cfg.Validate(req == requiresWrite && cfg.Ledger == config.LedgerChain); err != nil {
					return err
				}
			}

			s := currentSession(cmd)
			var sink usecase.ProgressSink = progress.NewNopSink()
			if _, ok := cmd.Annotations[spinnerAnnotation]; ok && !v.GetBool("non_interactive") && v.GetString("output") == "table" {
				s.sink = progress.NewSpinnerSink()
				sink = s.sink
			}

			appInstance, cleanup, err := app.InitApp(cmd.Context(), v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			s.app = appInstance
			s.cleanup = cleanup
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./govrelay.{json,yaml,toml})")
	rootCmd.PersistentFlags().String("env-file", "", "Env file to load (default ./.env when present)")
	rootCmd.PersistentFlags().String("ledger", string(config.LedgerChain), "Ledger backend: chain or memory")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "service",
		Title: "Service Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "governance",
		Title: "Governance Commands",
	})

	for _, cmd := range []*cobra.Command{NewServeCmd(), NewDaemonCmd(), NewScanCmd()} {
		cmd.GroupID = "service"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewProposalsCmd(), NewVoteCmd(), NewExecuteCmd()} {
		cmd.GroupID = "governance"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func currentSession(cmd *cobra.Command) *session {
	if s, ok := cmd.Context().Value(sessionKey).(*session); ok {
		return s
	}
	// Commands executed without Execute, such as in tests, get a throwaway session
	s := &session{}
	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey, s))
	return s
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	s, ok := cmd.Context().Value(sessionKey).(*session)
	if !ok || s.app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return s.app, nil
}

// useColor reports whether table output may carry ANSI styling
func useColor() bool {
	return !color.NoColor
}
