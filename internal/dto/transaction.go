package dto

import (
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingResponse is returned by every producer endpoint.
type PostingResponse struct {
	// TransactionID is empty when a best-effort posting failed.
	TransactionID string `json:"transactionID"`
}

// EntryResponse defines the data returned for a journal line.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// TransactionResponse defines the data returned for a journal header and its lines.
type TransactionResponse struct {
	TransactionID         string          `json:"transactionID"`
	Date                  time.Time       `json:"date"`
	SourceModule          string          `json:"sourceModule"`
	SourceTransactionID   string          `json:"sourceTransactionID"`
	SourceTransactionType string          `json:"sourceTransactionType"`
	Description           string          `json:"description"`
	Status                string          `json:"status"`
	BranchID              string          `json:"branchID,omitempty"`
	Metadata              map[string]any  `json:"metadata,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	CreatedBy             string          `json:"createdBy"`
	Entries               []EntryResponse `json:"entries"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	// NormalBalance is Balance expressed with the sign convention of the account type.
	NormalBalance decimal.Decimal `json:"normalBalance"`
	IsActive      bool            `json:"isActive"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = EntryResponse{
			EntryID:     e.EntryID,
			AccountID:   e.AccountID,
			AccountCode: e.AccountCode,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Description: e.Description,
		}
	}
	return TransactionResponse{
		TransactionID:         txn.TransactionID,
		Date:                  txn.TransactionDate,
		SourceModule:          txn.SourceModule,
		SourceTransactionID:   txn.SourceTransactionID,
		SourceTransactionType: txn.SourceTransactionType,
		Description:           txn.Description,
		Status:                string(txn.Status),
		BranchID:              txn.BranchID,
		Metadata:              txn.Metadata,
		CreatedAt:             txn.CreatedAt,
		CreatedBy:             txn.CreatedBy,
		Entries:               entries,
	}
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account, normalBalance decimal.Decimal) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   string(acc.AccountType),
		Balance:       acc.Balance,
		NormalBalance: normalBalance,
		IsActive:      acc.IsActive,
	}
}
