package interactor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	apperrors "github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/internal/payeer"
	"github.com/crowdtide/payeer-gateway/internal/usecases/dtos"
	"github.com/crowdtide/payeer-gateway/pkg/util/random"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderIDLength = 16

// BuildPaymentRequest opens or loads the payment session, binds a fresh
// order id to it and returns the signed form parameters for the redirect.
func (g *PayeerGateway) BuildPaymentRequest(ctx context.Context, checkout *dtos.CheckoutDTO) (*payeer.PaymentRequest, error) {
	merchantID := strings.TrimSpace(g.cfg.MerchantID)
	if merchantID == "" {
		return nil, apperrors.NewConfigMissingError("merchant_id")
	}

	amount, err := decimal.NewFromString(checkout.Amount)
	if err != nil {
		return nil, apperrors.NewInvalidTransactionDataError()
	}

	project, err := g.projectRepository.GetByID(ctx, checkout.ProjectID)
	if err != nil || project == nil {
		return nil, apperrors.NewInvalidProjectError(checkout.ProjectID)
	}

	// A reward that sold out between picking it and paying is silently
	// dropped from the intent, the pledge itself still goes through.
	if checkout.RewardID > 0 {
		reward, err := g.rewardRepository.GetByID(ctx, checkout.RewardID)
		if err != nil || reward == nil || reward.ProjectID != checkout.ProjectID || !reward.Available() {
			g.logger.Warn().
				Int64("reward_id", checkout.RewardID).
				Int64("project_id", checkout.ProjectID).
				Msg("reward unavailable, continuing without it")
			checkout.RewardID = 0
		}
	}

	session, err := g.resolveSession(ctx, checkout)
	if err != nil {
		return nil, err
	}

	orderID := checkout.OrderID
	if orderID == "" {
		orderID, err = random.String(orderIDLength)
		if err != nil {
			return nil, err
		}
	}

	// The bind must happen before the form parameters leave the server, so
	// the inbound notification can always be correlated back.
	if err := g.sessionRepository.BindOrderID(ctx, session, orderID); err != nil {
		return nil, err
	}

	currency := project.Currency
	if currency == "" {
		currency = g.cfg.ProjectCurrency
	}

	description := fmt.Sprintf("Investing in %s", project.Title)
	request := payeer.BuildPaymentRequest(
		merchantID,
		g.cfg.MerchantURL,
		g.cfg.SecretKey,
		orderID,
		amount,
		currency,
		description,
	)

	g.logger.Info().
		Str("order_id", orderID).
		Int64("project_id", project.ID).
		Str("amount", amount.StringFixed(2)).
		Msg("payment request built")

	return &request, nil
}

// CompleteCheckout resolves the post-payment redirect target for the backer.
func (g *PayeerGateway) CompleteCheckout(ctx context.Context, status string, projectID int64) (string, error) {
	project, err := g.projectRepository.GetByID(ctx, projectID)
	if err != nil || project == nil {
		return "", apperrors.NewInvalidProjectError(projectID)
	}

	if status == payeer.StatusSuccess {
		return fmt.Sprintf("/projects/%d/backing/share", project.ID), nil
	}
	return fmt.Sprintf("/projects/%d/backing", project.ID), nil
}

// resolveSession loads the session referenced by the checkout, or opens a
// new one for a first visit to the payment form.
func (g *PayeerGateway) resolveSession(ctx context.Context, checkout *dtos.CheckoutDTO) (*models.PaymentSession, error) {
	if checkout.SessionID != "" {
		session, err := g.sessionRepository.GetByID(ctx, checkout.SessionID)
		if err == nil {
			return session, nil
		}
	}

	session := &models.PaymentSession{
		ID:          uuid.New().String(),
		UserID:      checkout.UserID,
		ProjectID:   checkout.ProjectID,
		RewardID:    checkout.RewardID,
		IsAnonymous: checkout.IsAnonymous,
		CreatedAt:   time.Now().In(g.location),
	}
	if err := g.sessionRepository.Open(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
