package models

import (
	"time"
)

// Transaction is a row of gl_transactions, the journal header.
type Transaction struct {
	TransactionID         string    `db:"transaction_id"`
	TransactionDate       time.Time `db:"transaction_date"`
	SourceModule          string    `db:"source_module"`
	SourceTransactionID   string    `db:"source_transaction_id"`
	SourceTransactionType string    `db:"source_transaction_type"`
	Description           string    `db:"description"`
	Status                string    `db:"status"`
	BranchID              string    `db:"branch_id"` // NULL when empty
	Metadata              []byte    `db:"metadata"`  // jsonb, NULL when empty
	AuditFields
}
