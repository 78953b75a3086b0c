package domain

import "github.com/shopspring/decimal"

// Entry is one journal line. Entries are owned by their transaction and
// reference, but do not own, an account.
type Entry struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// DebitEntry returns an entry debiting account by amount.
func DebitEntry(account Account, amount decimal.Decimal, description string) Entry {
	return Entry{
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		Debit:       amount,
		Credit:      decimal.Zero,
		Description: description,
	}
}

// CreditEntry returns an entry crediting account by amount.
func CreditEntry(account Account, amount decimal.Decimal, description string) Entry {
	return Entry{
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		Debit:       decimal.Zero,
		Credit:      amount,
		Description: description,
	}
}

// Net is the entry's effect on its account balance.
func (e Entry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// BalanceDelta is the net change a posting applies to one account.
type BalanceDelta struct {
	AccountID   string
	AccountCode string
	Delta       decimal.Decimal
}
