package interactor

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	apperrors "github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/shopspring/decimal"
)

func TestMain(m *testing.M) {
	log.Init("interactor-test")
	os.Exit(m.Run())
}

// fakeTransactionRepository implements the commit contract in memory:
// at-most-one completion per txn id, funds credited exactly on the
// transition into completed, reward link cleared when the reward is gone.
type fakeTransactionRepository struct {
	mu           sync.Mutex
	transactions map[string]*models.Transaction
	projects     *fakeProjectRepository
	rewards      *fakeRewardRepository
	failCommit   bool
}

func newFakeTransactionRepository(projects *fakeProjectRepository, rewards *fakeRewardRepository) *fakeTransactionRepository {
	return &fakeTransactionRepository{
		transactions: make(map[string]*models.Transaction),
		projects:     projects,
		rewards:      rewards,
	}
}

func (f *fakeTransactionRepository) GetByTxnID(_ context.Context, txnID string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tx, ok := f.transactions[txnID]; ok {
		clone := *tx
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeTransactionRepository) Commit(_ context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCommit {
		return nil, apperrors.NewStorageFailureError(errFakeStorage)
	}

	if existing, ok := f.transactions[transaction.TxnID]; ok && existing.IsCompleted() {
		return nil, nil
	}

	stored := *transaction
	stored.ID = "internal-" + transaction.TxnID
	f.transactions[transaction.TxnID] = &stored

	if stored.IsCompleted() {
		project := f.projects.projects[stored.ProjectID]
		project.Funded = project.Funded.Add(stored.Amount)

		if stored.RewardID > 0 {
			reward, ok := f.rewards.rewards[stored.RewardID]
			if !ok || reward.ProjectID != stored.ProjectID || !reward.Available() {
				stored.RewardID = 0
				f.transactions[transaction.TxnID].RewardID = 0
			} else {
				reward.Distributed++
			}
		}
	}

	clone := stored
	return &clone, nil
}

func (f *fakeTransactionRepository) GetProjectFunds(_ context.Context, projectID int64) (*decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	funded := f.projects.projects[projectID].Funded
	return &funded, nil
}

var errFakeStorage = &fakeStorageError{}

type fakeStorageError struct{}

func (e *fakeStorageError) Error() string { return "fake storage failure" }

type fakeProjectRepository struct {
	projects map[int64]*models.Project
}

func newFakeProjectRepository(projects ...*models.Project) *fakeProjectRepository {
	repo := &fakeProjectRepository{projects: make(map[int64]*models.Project)}
	for _, project := range projects {
		repo.projects[project.ID] = project
	}
	return repo
}

func (f *fakeProjectRepository) GetByID(_ context.Context, id int64) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, nil
	}
	return project, nil
}

func (f *fakeProjectRepository) GetCurrency(_ context.Context, projectID int64) (string, error) {
	project, ok := f.projects[projectID]
	if !ok {
		return "", apperrors.NewInvalidProjectError(projectID)
	}
	return project.Currency, nil
}

type fakeRewardRepository struct {
	rewards map[int64]*models.Reward
}

func newFakeRewardRepository(rewards ...*models.Reward) *fakeRewardRepository {
	repo := &fakeRewardRepository{rewards: make(map[int64]*models.Reward)}
	for _, reward := range rewards {
		repo.rewards[reward.ID] = reward
	}
	return repo
}

func (f *fakeRewardRepository) GetByID(_ context.Context, id int64) (*models.Reward, error) {
	reward, ok := f.rewards[id]
	if !ok {
		return nil, nil
	}
	return reward, nil
}

type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.PaymentSession
	orders   map[string]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{
		sessions: make(map[string]*models.PaymentSession),
		orders:   make(map[string]string),
	}
}

func (f *fakeSessionRepository) Open(_ context.Context, session *models.PaymentSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *session
	f.sessions[session.ID] = &clone
	return nil
}

func (f *fakeSessionRepository) GetByID(_ context.Context, id string) (*models.PaymentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.NewSessionNotFoundError("")
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepository) BindOrderID(_ context.Context, session *models.PaymentSession, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if session.UniqueKey == orderID {
		return nil
	}
	if session.UniqueKey != "" {
		return apperrors.NewOrderIDAlreadyBoundError(session.UniqueKey)
	}
	if _, taken := f.orders[orderID]; taken {
		return apperrors.NewOrderIDAlreadyBoundError(orderID)
	}

	f.orders[orderID] = session.ID
	session.UniqueKey = orderID
	if stored, ok := f.sessions[session.ID]; ok {
		stored.UniqueKey = orderID
	}
	return nil
}

func (f *fakeSessionRepository) ResolveByOrderID(_ context.Context, orderID string) (*models.PaymentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sessionID, ok := f.orders[orderID]
	if !ok {
		return nil, apperrors.NewSessionNotFoundError(orderID)
	}
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewSessionNotFoundError(orderID)
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepository) Close(_ context.Context, session *models.PaymentSession, removeEntirely bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !removeEntirely {
		return nil
	}
	delete(f.sessions, session.ID)
	if session.UniqueKey != "" {
		delete(f.orders, session.UniqueKey)
	}
	return nil
}
