package di

import (
	"time"

	"github.com/crowdtide/payeer-gateway/internal/config"
	"github.com/crowdtide/payeer-gateway/internal/infrastructure/api/handlers"
	"github.com/crowdtide/payeer-gateway/internal/infrastructure/database/repositories"
	"github.com/crowdtide/payeer-gateway/internal/infrastructure/session"
	"github.com/crowdtide/payeer-gateway/internal/usecases/interactor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	NotificationHandler *handlers.NotificationHandler
	CheckoutHandler     *handlers.CheckoutHandler
	FundsHandler        *handlers.FundsHandler
	SessionRepository   *session.RedisSessionRepository
	Gateway             *interactor.PayeerGateway
}

// NewContainer creates a new Container instance.
func NewContainer(db *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, location *time.Location, sessionTTL time.Duration) *Container {
	transactionRepository := repositories.NewTransactionRepositoryImpl(db)
	projectRepository := repositories.NewProjectRepositoryImpl(db)
	rewardRepository := repositories.NewRewardRepositoryImpl(db)
	sessionRepository := session.NewRedisSessionRepository(redisClient, sessionTTL)

	gateway := interactor.NewPayeerGateway(
		transactionRepository,
		projectRepository,
		rewardRepository,
		sessionRepository,
		cfg.Payeer,
		location,
	)

	projectInteractor := interactor.NewProjectInteractor(transactionRepository, projectRepository)

	return &Container{
		NotificationHandler: handlers.NewNotificationHandler(gateway),
		CheckoutHandler:     handlers.NewCheckoutHandler(gateway),
		FundsHandler:        handlers.NewFundsHandler(projectInteractor),
		SessionRepository:   sessionRepository,
		Gateway:             gateway,
	}
}
