package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/config"
	apperrors "github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

type Service struct {
	config *config.Config
	logger *zerolog.Logger
}

func NewService(cfg *config.Config) *Service {
	l := log.GetLogger()
	return &Service{config: cfg, logger: &l}
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then drains in-flight requests before returning.
func (s *Service) Run(ctx context.Context, router chi.Router) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatal().Err(err).Msg(apperrors.ErrorFailedToRunTheServer)
		}
	}()
	s.logger.Info().Str("addr", server.Addr).Msg("Server is listening")

	<-ctx.Done()
	s.logger.Info().Msg("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg(apperrors.ErrorFailedToShutdownTheServer)
	}
	s.logger.Info().Msg("Server stopped")
}
