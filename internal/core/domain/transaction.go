package domain

import "time"

// TransactionStatus indicates the state of a journal header.
type TransactionStatus string

const (
	Pending TransactionStatus = "pending"
	Posted  TransactionStatus = "posted"
)

// Transaction is the journal header of one balanced accounting event.
// It is immutable once posted; corrections are made with a reversal.
type Transaction struct {
	TransactionID         string            `json:"transactionID"`
	TransactionDate       time.Time         `json:"transactionDate"`
	SourceModule          string            `json:"sourceModule"`        // logical owner, e.g. "commissions"
	SourceTransactionID   string            `json:"sourceTransactionID"` // unique together with SourceModule
	SourceTransactionType string            `json:"sourceTransactionType"`
	Description           string            `json:"description"`
	Status                TransactionStatus `json:"status"`
	BranchID              string            `json:"branchID,omitempty"` // empty when not branch scoped
	Metadata              map[string]any    `json:"metadata,omitempty"`
	Entries               []Entry           `json:"entries,omitempty"`
	AuditFields
}

// PostingRequest is the input of the posting engine: a header description
// plus the entry set built for it.
type PostingRequest struct {
	Date                  time.Time
	SourceModule          string
	SourceTransactionID   string
	SourceTransactionType string
	Description           string
	Entries               []Entry
	CreatedBy             string
	BranchID              string
	Metadata              map[string]any
}
