package models

import "time"

// PaymentSession correlates a backer's checkout intent with the merchant
// order id handed to the payment processor. Sessions are short-lived and
// live in Redis, not in Postgres.
type PaymentSession struct {
	ID          string    `json:"id"`
	UniqueKey   string    `json:"unique_key"`
	UserID      int64     `json:"user_id"`
	ProjectID   int64     `json:"project_id"`
	RewardID    int64     `json:"reward_id"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}
