package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	"github.com/crowdtide/payeer-gateway/internal/domain/repositories"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type TransactionRepositoryImpl struct {
	db     *pgxpool.Pool
	logger *zerolog.Logger
}

// NewTransactionRepositoryImpl creates new instance of TransactionRepositoryImpl.
func NewTransactionRepositoryImpl(db *pgxpool.Pool) repositories.TransactionRepository {
	l := log.GetLogger()
	return &TransactionRepositoryImpl{
		db:     db,
		logger: &l,
	}
}

const selectForUpdate = `
SELECT id, txn_status, reward_id
FROM transactions
WHERE txn_id = $1
FOR UPDATE`

const insertTransaction = `
INSERT INTO transactions
  (txn_id, txn_status, txn_amount, txn_currency, txn_date,
   investor_id, receiver_id, project_id, reward_id,
   service_provider, service_alias, extra_data)
VALUES ($1, $2, $3::NUMERIC(10,2), $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

const updateTransaction = `
UPDATE transactions
SET txn_status = $2,
    txn_amount = $3::NUMERIC(10,2),
    txn_currency = $4,
    txn_date = $5,
    investor_id = $6,
    receiver_id = $7,
    project_id = $8,
    reward_id = $9,
    extra_data = extra_data || $10::JSONB,
    updated_at = NOW()
WHERE txn_id = $1
RETURNING id`

const creditProjectFunds = `
UPDATE projects
SET funded = funded + $1::NUMERIC(10,2)
WHERE id = $2`

const distributeReward = `
UPDATE rewards
SET distributed = distributed + 1
WHERE id = $1 AND project_id = $2 AND (number = 0 OR distributed < number)
RETURNING id`

const clearTransactionReward = `
UPDATE transactions SET reward_id = 0 WHERE txn_id = $1`

// Commit upserts the transaction keyed by its external txn id and applies the
// completion side effects inside one storage transaction. Concurrent
// notifications for the same txn id serialize on the row lock; the loser
// observes the completed record and gets the duplicate no-op (nil, nil).
func (r *TransactionRepositoryImpl) Commit(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	var pgErr *pgconn.PgError
	for {
		stored, err := r.commitOnce(ctx, transaction)
		if err == nil {
			return stored, nil
		}

		if isSerializationError(err) {
			// retry transaction if serialization error occurs (SQLSTATE 40001)
			continue
		}
		if errors.As(err, &pgErr) && pgErr.SQLState() == repositories.UniqueViolationError {
			// lost an insert race for the same txn_id, re-read under the lock
			continue
		}
		return nil, fmt.Errorf("transaction error: %w", err)
	}
}

func (r *TransactionRepositoryImpl) commitOnce(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var existingID string
	var existingStatus string
	var existingRewardID int64
	found := true
	err = tx.QueryRow(ctx, selectForUpdate, transaction.TxnID).Scan(&existingID, &existingStatus, &existingRewardID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		found = false
	}

	// Terminal guard: a completed record never transitions again, and the
	// completion side effects never re-run.
	if found && existingStatus == models.StatusCompleted {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	stored := *transaction
	if found {
		err = tx.QueryRow(ctx, updateTransaction,
			stored.TxnID, stored.Status, stored.Amount, stored.Currency, stored.TxnDate,
			stored.InvestorID, stored.ReceiverID, stored.ProjectID, stored.RewardID,
			stored.ExtraData,
		).Scan(&stored.ID)
	} else {
		err = tx.QueryRow(ctx, insertTransaction,
			stored.TxnID, stored.Status, stored.Amount, stored.Currency, stored.TxnDate,
			stored.InvestorID, stored.ReceiverID, stored.ProjectID, stored.RewardID,
			stored.ServiceProvider, stored.ServiceAlias, stored.ExtraData,
		).Scan(&stored.ID)
	}
	if err != nil {
		return nil, err
	}

	if stored.Status == models.StatusCompleted {
		if _, err := tx.Exec(ctx, creditProjectFunds, stored.Amount, stored.ProjectID); err != nil {
			return nil, err
		}

		if stored.RewardID > 0 {
			var rewardID int64
			err = tx.QueryRow(ctx, distributeReward, stored.RewardID, stored.ProjectID).Scan(&rewardID)
			if err != nil {
				if !errors.Is(err, pgx.ErrNoRows) {
					return nil, err
				}
				// The reward is exhausted or belongs to another project.
				// Non-fatal: the transaction stays, the reward link goes.
				r.logger.Warn().
					Str("txn_id", stored.TxnID).
					Int64("reward_id", stored.RewardID).
					Msg("reward update failed validation, clearing reward on transaction")
				if _, err := tx.Exec(ctx, clearTransactionReward, stored.TxnID); err != nil {
					return nil, err
				}
				stored.RewardID = 0
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetByTxnID returns transaction by its external transaction id.
func (r *TransactionRepositoryImpl) GetByTxnID(ctx context.Context, txnID string) (*models.Transaction, error) {
	tx := &models.Transaction{}
	err := r.db.QueryRow(
		ctx,
		`SELECT id, txn_id, txn_status, txn_amount, txn_currency, txn_date,
                investor_id, receiver_id, project_id, reward_id,
                service_provider, service_alias
         FROM transactions WHERE txn_id = $1`,
		txnID,
	).Scan(&tx.ID, &tx.TxnID, &tx.Status, &tx.Amount, &tx.Currency, &tx.TxnDate,
		&tx.InvestorID, &tx.ReceiverID, &tx.ProjectID, &tx.RewardID,
		&tx.ServiceProvider, &tx.ServiceAlias)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return tx, nil
}

// GetProjectFunds returns the accumulated funded amount of a project.
func (r *TransactionRepositoryImpl) GetProjectFunds(ctx context.Context, projectID int64) (*decimal.Decimal, error) {
	var funded decimal.Decimal
	err := r.db.QueryRow(ctx, "SELECT funded FROM projects WHERE id = $1", projectID).Scan(&funded)
	if err != nil {
		return nil, fmt.Errorf("get project funds: %w", err)
	}
	return &funded, nil
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == repositories.SerializationError
}
