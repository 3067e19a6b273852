// Package httpapi serves the relay and scanner over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Handlers groups the use cases the API serves
type Handlers struct {
	Relay    *usecase.RelayRequest
	Scan     *usecase.ScanProposals
	List     *usecase.ListProposals
	Show     *usecase.ShowProposal
	UserVote *usecase.GetUserVote
	Nonce    *usecase.GetNonce
	Execute  *usecase.ExecuteProposal
}

// Server is the relay HTTP service
type Server struct {
	config   *config.RuntimeConfig
	handlers Handlers
	metrics  http.Handler
	log      *slog.Logger
}

// NewServer creates the HTTP service. metrics may be nil.
func NewServer(cfg *config.RuntimeConfig, handlers Handlers, metrics http.Handler, log *slog.Logger) *Server {
	return &Server{
		config:   cfg,
		handlers: handlers,
		metrics:  metrics,
		log:      log.With("component", "http"),
	}
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /relay", s.relay)
	mux.HandleFunc("POST /api/relay", s.relay)
	mux.HandleFunc("POST /daemon/run-once", s.runOnce)
	mux.HandleFunc("POST /api/daemon/run-once", s.runOnce)
	mux.HandleFunc("GET /proposals", s.listProposals)
	mux.HandleFunc("GET /proposals/{id}", s.showProposal)
	mux.HandleFunc("GET /proposals/{id}/votes/{account}", s.userVote)
	mux.HandleFunc("POST /proposals/{id}/execute", s.executeProposal)
	mux.HandleFunc("GET /nonce/{account}", s.nonce)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	return chain(mux,
		s.recoverPanics,
		s.withRequestID,
		s.logRequests,
		withCORS,
		limitBody(maxBodyBytes),
	)
}

// Run serves on the configured port until ctx ends, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.config.Port, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx ends
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("relay listening", "addr", listener.Addr().String())
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.log.Info("relay stopped")
	return nil
}
