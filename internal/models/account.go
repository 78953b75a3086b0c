package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of gl_accounts.
type Account struct {
	AccountID   string          `db:"account_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
