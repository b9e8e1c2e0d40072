package models

import (
	"github.com/shopspring/decimal"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var ValidStatuses = map[string]struct{}{
	StatusPending:   {},
	StatusCompleted: {},
	StatusFailed:    {},
}

type Transaction struct {
	ID              string            `db:"id"`
	TxnID           string            `db:"txn_id"`
	Status          string            `db:"txn_status"`
	Amount          decimal.Decimal   `db:"txn_amount"`
	Currency        string            `db:"txn_currency"`
	TxnDate         time.Time         `db:"txn_date"`
	InvestorID      int64             `db:"investor_id"`
	ReceiverID      int64             `db:"receiver_id"`
	ProjectID       int64             `db:"project_id"`
	RewardID        int64             `db:"reward_id"`
	ServiceProvider string            `db:"service_provider"`
	ServiceAlias    string            `db:"service_alias"`
	ExtraData       map[string]string `db:"extra_data"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

// IsCompleted reports whether the transaction reached its terminal state.
func (t *Transaction) IsCompleted() bool {
	return t.Status == StatusCompleted
}
