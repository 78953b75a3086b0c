package models

import "github.com/shopspring/decimal"

// Entry is a row of gl_entries. LineNo keeps the order the entries were built in.
type Entry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	LineNo        int             `db:"line_no"`
	AccountID     string          `db:"account_id"`
	AccountCode   string          `db:"account_code"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
	Metadata      []byte          `db:"metadata"` // jsonb, nil when empty
}
