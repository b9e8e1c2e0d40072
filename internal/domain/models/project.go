package models

import "github.com/shopspring/decimal"

type Project struct {
	ID       int64           `db:"id"`
	UserID   int64           `db:"user_id"`
	Title    string          `db:"title"`
	Goal     decimal.Decimal `db:"goal"`
	Funded   decimal.Decimal `db:"funded"`
	Currency string          `db:"currency"`
}
