package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five chart-of-accounts types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account is one node of the flat chart of accounts.
//
// Balance is the running sum of (debit - credit) over every posted entry
// against the account, whatever its type.
type Account struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"` // unique, caller-facing key such as "4100"
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// AccountSpec names an account by code together with the defaults used when
// it has to be provisioned.
type AccountSpec struct {
	Code string
	Name string
	Type AccountType
}
