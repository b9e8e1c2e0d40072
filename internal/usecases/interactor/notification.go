package interactor

import (
	"context"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	apperrors "github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/internal/payeer"
	"github.com/crowdtide/payeer-gateway/internal/usecases/dtos"
	"github.com/shopspring/decimal"
)

// HandleNotification authenticates and processes one inbound IPN. Every
// rejection is logged and terminal: the result carries the acknowledgement
// marker and no error crosses into the transport layer.
func (g *PayeerGateway) HandleNotification(ctx context.Context, notification *dtos.NotificationDTO) *NotificationResult {
	result := &NotificationResult{OrderID: notification.Get(payeer.FieldOrderID)}

	// Signature and declared status gate everything else. A payload that
	// fails here is logged without touching session or store.
	if !payeer.VerifyNotification(notification.Raw, g.cfg.SecretKey) ||
		notification.Get(payeer.FieldStatus) != payeer.StatusSuccess {
		g.logger.Error().
			Str("order_id", result.OrderID).
			Str("status", notification.Get(payeer.FieldStatus)).
			Msg(apperrors.NewBadSignatureError().Error())
		return result
	}

	session, err := g.sessionRepository.ResolveByOrderID(ctx, result.OrderID)
	if err != nil {
		// The session is consumed when a notification completes, so a
		// replayed IPN arrives with no session left. If the store already
		// holds a completed transaction for this order id, acknowledge the
		// duplicate instead of asking the processor to retry forever.
		if g.isCompletedDuplicate(ctx, result.OrderID) {
			result.Ok = true
			return result
		}
		g.logger.Error().Err(err).Str("order_id", result.OrderID).Msg(apperrors.ErrFailedProcessNotification)
		return result
	}
	result.Session = session

	expectedCurrency, err := g.projectRepository.GetCurrency(ctx, session.ProjectID)
	if err != nil || expectedCurrency == "" {
		expectedCurrency = g.cfg.ProjectCurrency
	}

	draft, err := g.validate(notification, expectedCurrency, session)
	if err != nil {
		g.logger.Error().Err(err).
			Str("order_id", result.OrderID).
			Int64("project_id", session.ProjectID).
			Msg(apperrors.ErrFailedProcessNotification)
		return result
	}

	project, err := g.projectRepository.GetByID(ctx, session.ProjectID)
	if err != nil || project == nil {
		g.logger.Error().Err(err).
			Int64("project_id", session.ProjectID).
			Msg(apperrors.NewInvalidProjectError(session.ProjectID).Error())
		return result
	}
	result.Project = project

	// The receiver of funds is the project owner.
	draft.ReceiverID = project.UserID

	transaction, err := g.transactionRepository.Commit(ctx, draft)
	if err != nil {
		g.logger.Error().Err(err).
			Str("txn_id", draft.TxnID).
			Msg(apperrors.NewStorageFailureError(err).Error())
		return result
	}
	result.Transaction = transaction
	result.Ok = true

	// The session is closed regardless of outcome; it is removed entirely
	// only once the transaction is terminal, so a pending or failed attempt
	// can still be retried against the same order id.
	removeEntirely := transaction == nil || transaction.IsCompleted()
	if err := g.sessionRepository.Close(ctx, session, removeEntirely); err != nil {
		g.logger.Error().Err(err).Str("session_id", session.ID).Msg("failed to close payment session")
	}

	return result
}

// validate turns the untrusted field bag into a transaction draft, or
// reports the rejection reason.
func (g *PayeerGateway) validate(notification *dtos.NotificationDTO, expectedCurrency string, session *models.PaymentSession) (*models.Transaction, error) {
	status := models.StatusFailed
	if notification.Get(payeer.FieldStatus) == payeer.StatusSuccess {
		status = models.StatusCompleted
	}

	// The payload dates (m_operation_date, payment_date) are kept in the
	// extra data for audit but never trusted for ordering.
	txnDate := time.Now().In(g.location)

	rewardID := session.RewardID
	if session.IsAnonymous {
		rewardID = 0
	}

	amount, err := decimal.NewFromString(notification.Get(payeer.FieldAmount))
	if err != nil {
		return nil, apperrors.NewInvalidTransactionDataError()
	}

	draft := &models.Transaction{
		TxnID:           notification.Get(payeer.FieldOrderID),
		Status:          status,
		Amount:          amount.Round(2),
		Currency:        notification.Get(payeer.FieldCurrency),
		TxnDate:         txnDate,
		InvestorID:      session.UserID,
		ProjectID:       session.ProjectID,
		RewardID:        rewardID,
		ServiceProvider: payeer.ServiceProvider,
		ServiceAlias:    payeer.ServiceAlias,
		ExtraData:       extraData(notification),
	}

	if draft.ProjectID == 0 || draft.TxnID == "" {
		return nil, apperrors.NewInvalidTransactionDataError()
	}

	if draft.Currency != expectedCurrency {
		return nil, apperrors.NewInvalidCurrencyError(draft.Currency, expectedCurrency)
	}

	if notification.Get(payeer.FieldShop) != g.cfg.MerchantID {
		return nil, apperrors.NewInvalidReceiverError(notification.Get(payeer.FieldShop))
	}

	return draft, nil
}

// isCompletedDuplicate reports whether the store already holds a terminal
// transaction for the order id.
func (g *PayeerGateway) isCompletedDuplicate(ctx context.Context, orderID string) bool {
	existing, err := g.transactionRepository.GetByTxnID(ctx, orderID)
	return err == nil && existing != nil && existing.IsCompleted()
}

func extraData(notification *dtos.NotificationDTO) map[string]string {
	data := make(map[string]string, len(payeer.ExtraDataKeys))
	for _, key := range payeer.ExtraDataKeys {
		if value, ok := notification.Raw[key]; ok {
			data[key] = value
		}
	}
	return data
}
