package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	"github.com/SscSPs/gl_posting_engine/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Metadata is encoded as JSON; an empty map is stored as NULL.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	var metadata []byte
	if len(d.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(d.Metadata)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to encode metadata of transaction %s: %w", d.TransactionID, err)
		}
	}
	return models.Transaction{
		TransactionID:         d.TransactionID,
		TransactionDate:       d.TransactionDate,
		SourceModule:          d.SourceModule,
		SourceTransactionID:   d.SourceTransactionID,
		SourceTransactionType: d.SourceTransactionType,
		Description:           d.Description,
		Status:                string(d.Status),
		BranchID:              d.BranchID,
		Metadata:              metadata,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	var metadata map[string]any
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to decode metadata of transaction %s: %w", m.TransactionID, err)
		}
	}
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		TransactionDate:       m.TransactionDate,
		SourceModule:          m.SourceModule,
		SourceTransactionID:   m.SourceTransactionID,
		SourceTransactionType: m.SourceTransactionType,
		Description:           m.Description,
		Status:                domain.TransactionStatus(m.Status),
		BranchID:              m.BranchID,
		Metadata:              metadata,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelEntries converts entries to rows, numbering them in order.
// Empty entry metadata is stored as NULL.
func ToModelEntries(ds []domain.Entry) ([]models.Entry, error) {
	ms := make([]models.Entry, len(ds))
	for i, d := range ds {
		var metadata []byte
		if len(d.Metadata) > 0 {
			var err error
			metadata, err = json.Marshal(d.Metadata)
			if err != nil {
				return nil, fmt.Errorf("failed to encode metadata of entry %s: %w", d.EntryID, err)
			}
		}
		ms[i] = models.Entry{
			EntryID:       d.EntryID,
			TransactionID: d.TransactionID,
			LineNo:        i + 1,
			AccountID:     d.AccountID,
			AccountCode:   d.AccountCode,
			Debit:         d.Debit,
			Credit:        d.Credit,
			Description:   d.Description,
			Metadata:      metadata,
		}
	}
	return ms, nil
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) (domain.Entry, error) {
	var metadata map[string]any
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.Entry{}, fmt.Errorf("failed to decode metadata of entry %s: %w", m.EntryID, err)
		}
	}
	return domain.Entry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		AccountCode:   m.AccountCode,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
		Metadata:      metadata,
	}, nil
}
