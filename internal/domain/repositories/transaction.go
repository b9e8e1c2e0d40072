package repositories

import (
	"context"
	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	"github.com/shopspring/decimal"
)

const (
	SerializationError   = "40001"
	UniqueViolationError = "23505"
)

type TransactionRepository interface {
	GetByTxnID(ctx context.Context, txnID string) (*models.Transaction, error)
	// Commit upserts the transaction keyed by its external txn id and, when the
	// resulting status is completed, credits the project funds and bumps the
	// reward distributed count inside the same storage transaction. It returns
	// nil when the stored record is already completed (duplicate notification).
	Commit(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	GetProjectFunds(ctx context.Context, projectID int64) (*decimal.Decimal, error)
}
