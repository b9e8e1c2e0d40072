package main

import (
	"context"
	"strconv"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/app"
	"github.com/crowdtide/payeer-gateway/internal/config"
	"github.com/crowdtide/payeer-gateway/internal/di"
	"github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/internal/infrastructure/api/routers"
	"github.com/crowdtide/payeer-gateway/internal/infrastructure/database/db_client"
	"github.com/crowdtide/payeer-gateway/pkg/log"
)

const (
	appName = "payeer-gateway"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	log.Init(appName, log.WithConsoleLogger())
	logger := log.GetLogger()

	location, err := time.LoadLocation(cfg.Payeer.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid payment timezone")
	}

	pgClient := db_client.NewPGClient(cfg.PostgreSQL)
	db, err := pgClient.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheDatabase)
	}

	redisClient := db_client.NewRedisClient(cfg.Redis)
	rdb, err := redisClient.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToRedis)
	}

	ttlMinutes, err := strconv.Atoi(cfg.Session.TTLMinutes)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid session TTL")
	}

	container := di.NewContainer(db, rdb, cfg, location, time.Duration(ttlMinutes)*time.Minute)

	sweeper := app.NewSessionSweepProcess(container.SessionRepository, cfg.Session)
	go sweeper.Run(ctx)

	router := routers.NewRouter(container, cfg.Payeer.AllowedAddresses())
	service := app.NewService(cfg)
	service.Run(ctx, router)
}
