package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/config"
	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

const testProjectID = int64(42)
const testRewardID = int64(3)

func TestMain(m *testing.M) {
	log.Init("repositories-test")
	os.Exit(m.Run())
}

func setupDB(t *testing.T) {
	t.Helper()
	if os.Getenv("DB_INTEGRATION") == "" {
		t.Skip("set DB_INTEGRATION=1 to run against a live database")
	}

	cfg := config.Load()
	pgxConfig, err := pgxpool.ParseConfig(cfg.PostgreSQL.DSN())
	require.NoError(t, err)
	pgxConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	db, err = pgxpool.NewWithConfig(context.Background(), pgxConfig)
	require.NoError(t, err)
}

func resetTables(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := db.Exec(ctx, "TRUNCATE transactions")
	require.NoError(t, err)
	_, err = db.Exec(ctx, `
		INSERT INTO projects (id, user_id, title, goal, funded, currency)
		VALUES ($1, 7, 'Solar Farm', 1000, 0, 'EUR')
		ON CONFLICT (id) DO UPDATE SET funded = 0`, testProjectID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `
		INSERT INTO rewards (id, project_id, number, distributed)
		VALUES ($1, $2, 10, 0)
		ON CONFLICT (id) DO UPDATE SET number = 10, distributed = 0`, testRewardID, testProjectID)
	require.NoError(t, err)
}

func draft(txnID, status string, amount decimal.Decimal, rewardID int64) *models.Transaction {
	return &models.Transaction{
		TxnID:           txnID,
		Status:          status,
		Amount:          amount,
		Currency:        "EUR",
		TxnDate:         time.Now().UTC(),
		InvestorID:      7,
		ReceiverID:      7,
		ProjectID:       testProjectID,
		RewardID:        rewardID,
		ServiceProvider: "Payeer",
		ServiceAlias:    "payeer",
		ExtraData:       map[string]string{"m_orderid": txnID},
	}
}

func projectFunds(t *testing.T) decimal.Decimal {
	t.Helper()
	var funded decimal.Decimal
	err := db.QueryRow(context.Background(), "SELECT funded FROM projects WHERE id = $1", testProjectID).Scan(&funded)
	require.NoError(t, err)
	return funded
}

func TestCommitIdempotence(t *testing.T) {
	setupDB(t)
	defer db.Close()
	resetTables(t)

	repo := NewTransactionRepositoryImpl(db)
	txnID := uuid.New().String()[:16]
	amount := decimal.RequireFromString("10.00")

	first, err := repo.Commit(context.Background(), draft(txnID, models.StatusCompleted, amount, 0))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, models.StatusCompleted, first.Status)

	second, err := repo.Commit(context.Background(), draft(txnID, models.StatusCompleted, amount, 0))
	require.NoError(t, err)
	assert.Nil(t, second, "second completion must be a duplicate no-op")

	assert.True(t, projectFunds(t).Equal(amount), "funds credited exactly once")
}

func TestCommitReprocessing(t *testing.T) {
	setupDB(t)
	defer db.Close()
	resetTables(t)

	repo := NewTransactionRepositoryImpl(db)
	txnID := uuid.New().String()[:16]
	amount := decimal.RequireFromString("25.00")

	pending, err := repo.Commit(context.Background(), draft(txnID, models.StatusPending, amount, 0))
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, projectFunds(t).IsZero(), "pending must not credit funds")

	failed, err := repo.Commit(context.Background(), draft(txnID, models.StatusFailed, amount, 0))
	require.NoError(t, err)
	require.NotNil(t, failed)
	assert.True(t, projectFunds(t).IsZero(), "failed must not credit funds")

	completed, err := repo.Commit(context.Background(), draft(txnID, models.StatusCompleted, amount, 0))
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.True(t, projectFunds(t).Equal(amount))

	stored, err := repo.GetByTxnID(context.Background(), txnID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestCommitTerminalGuard(t *testing.T) {
	setupDB(t)
	defer db.Close()
	resetTables(t)

	repo := NewTransactionRepositoryImpl(db)
	txnID := uuid.New().String()[:16]

	_, err := repo.Commit(context.Background(), draft(txnID, models.StatusCompleted, decimal.RequireFromString("10.00"), 0))
	require.NoError(t, err)

	// Completed never transitions again, whatever the later payload claims.
	late, err := repo.Commit(context.Background(), draft(txnID, models.StatusFailed, decimal.RequireFromString("9999.00"), 0))
	require.NoError(t, err)
	assert.Nil(t, late)

	stored, err := repo.GetByTxnID(context.Background(), txnID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("10.00")))
}

func TestCommitRewardDistribution(t *testing.T) {
	setupDB(t)
	defer db.Close()
	resetTables(t)

	repo := NewTransactionRepositoryImpl(db)

	stored, err := repo.Commit(context.Background(), draft(uuid.New().String()[:16], models.StatusCompleted, decimal.RequireFromString("10.00"), testRewardID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, testRewardID, stored.RewardID)

	var distributed int64
	err = db.QueryRow(context.Background(), "SELECT distributed FROM rewards WHERE id = $1", testRewardID).Scan(&distributed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), distributed)
}

func TestCommitExhaustedRewardClearsLink(t *testing.T) {
	setupDB(t)
	defer db.Close()
	resetTables(t)

	ctx := context.Background()
	_, err := db.Exec(ctx, "UPDATE rewards SET number = 1, distributed = 1 WHERE id = $1", testRewardID)
	require.NoError(t, err)

	repo := NewTransactionRepositoryImpl(db)
	txnID := uuid.New().String()[:16]

	stored, err := repo.Commit(ctx, draft(txnID, models.StatusCompleted, decimal.RequireFromString("10.00"), testRewardID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(0), stored.RewardID, "exhausted reward must be cleared, not fatal")

	persisted, err := repo.GetByTxnID(ctx, txnID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), persisted.RewardID)
	assert.True(t, projectFunds(t).Equal(decimal.RequireFromString("10.00")))
}

func TestCommitConcurrentDuplicates(t *testing.T) {
	setupDB(t)
	defer db.Close()
	resetTables(t)

	repo := NewTransactionRepositoryImpl(db)
	txnID := uuid.New().String()[:16]
	amount := decimal.RequireFromString("10.00")

	n := 20
	var wg sync.WaitGroup
	wg.Add(n)
	results := make(chan *models.Transaction, n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			stored, err := repo.Commit(context.Background(), draft(txnID, models.StatusCompleted, amount, 0))
			if err != nil {
				t.Error(err)
				return
			}
			results <- stored
		}()
	}

	wg.Wait()
	close(results)

	var winners int
	for stored := range results {
		if stored != nil {
			winners++
		}
	}

	assert.Equal(t, 1, winners, fmt.Sprintf("exactly one of %d concurrent deliveries may complete", n))
	assert.True(t, projectFunds(t).Equal(amount), "funds credited exactly once under concurrency")
}
