package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/crowdtide/payeer-gateway/pkg/util/repeat"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ClientTimeout = 5 * time.Second

// NewClient builds a connection pool and verifies the database is
// reachable, retrying while Postgres may still be starting up.
func NewClient(cfg *pgxpool.Config, maxConnAttempts int) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := repeat.WithAttempts(maxConnAttempts, ClientTimeout, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), ClientTimeout)
		defer cancel()

		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}

		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgresql: %w", err)
	}

	return pool, nil
}
