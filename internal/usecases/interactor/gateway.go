package interactor

import (
	"time"

	"github.com/crowdtide/payeer-gateway/internal/config"
	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	"github.com/crowdtide/payeer-gateway/internal/domain/repositories"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/rs/zerolog"
)

// PayeerGateway implements the three payment gateway entry points:
// BuildPaymentRequest, HandleNotification and CompleteCheckout.
type PayeerGateway struct {
	transactionRepository repositories.TransactionRepository
	projectRepository     repositories.ProjectRepository
	rewardRepository      repositories.RewardRepository
	sessionRepository     repositories.PaymentSessionRepository
	cfg                   config.Payeer
	location              *time.Location
	logger                *zerolog.Logger
}

// NotificationResult is what a processed notification yields: the order id
// and marker for the plain-text acknowledgement, plus the affected records
// when processing reached the store.
type NotificationResult struct {
	OrderID     string
	Ok          bool
	Transaction *models.Transaction
	Project     *models.Project
	Session     *models.PaymentSession
}

func NewPayeerGateway(
	transactionRepository repositories.TransactionRepository,
	projectRepository repositories.ProjectRepository,
	rewardRepository repositories.RewardRepository,
	sessionRepository repositories.PaymentSessionRepository,
	cfg config.Payeer,
	location *time.Location,
) *PayeerGateway {
	l := log.GetLogger()
	return &PayeerGateway{
		transactionRepository: transactionRepository,
		projectRepository:     projectRepository,
		rewardRepository:      rewardRepository,
		sessionRepository:     sessionRepository,
		cfg:                   cfg,
		location:              location,
		logger:                &l,
	}
}
