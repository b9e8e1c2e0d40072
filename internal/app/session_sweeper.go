package app

import (
	"context"
	"strconv"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/config"
	"github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/rs/zerolog"
)

type OrderKeySweeper interface {
	SweepOrphanedOrderKeys(ctx context.Context) (int, error)
}

// SessionSweepProcess periodically drops order-id indexes left behind by
// payment sessions that expired without ever completing.
type SessionSweepProcess struct {
	sweeper OrderKeySweeper
	config  config.Session
	logger  *zerolog.Logger
}

func NewSessionSweepProcess(sweeper OrderKeySweeper, cfg config.Session) *SessionSweepProcess {
	l := log.GetLogger()
	return &SessionSweepProcess{sweeper: sweeper, config: cfg, logger: &l}
}

// Run runs the session sweep process until the context is cancelled.
func (p *SessionSweepProcess) Run(ctx context.Context) error {
	interval, err := strconv.Atoi(p.config.SweepInterval)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			dropped, err := p.sweeper.SweepOrphanedOrderKeys(sweepCtx)
			cancel()
			if err != nil {
				p.logger.Error().Err(err).Msg(errors.ErrFailedSweepSessions)
				continue
			}
			if dropped > 0 {
				p.logger.Info().Int("dropped", dropped).Msg("swept orphaned order keys")
			}
		}
	}
}
