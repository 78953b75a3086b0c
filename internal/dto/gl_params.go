package dto

import (
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Every producer parameter struct carries BestEffort. When true, a GL posting
// failure is logged and reported as an empty transaction id without error.
// nil falls back to the service default.

// EntryParams describes one line of a caller-built transaction.
type EntryParams struct {
	AccountCode string `json:"accountCode" binding:"required"`
	// AccountName and AccountType provision the account when both are set.
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Debit       decimal.Decimal    `json:"debit" binding:"gte=0"`
	Credit      decimal.Decimal    `json:"credit" binding:"gte=0"`
	Description string             `json:"description"`
}

// PostTransactionParams is the input of the generic createAndPostTransaction producer.
type PostTransactionParams struct {
	Date                  time.Time      `json:"date"`
	SourceModule          string         `json:"sourceModule" binding:"required"`
	SourceTransactionID   string         `json:"sourceTransactionID" binding:"required"`
	SourceTransactionType string         `json:"sourceTransactionType" binding:"required"`
	Description           string         `json:"description"`
	Entries               []EntryParams  `json:"entries" binding:"required,min=2,dive"`
	CreatedBy             string         `json:"createdBy" binding:"required"`
	BranchID              string         `json:"branchID"`
	Metadata              map[string]any `json:"metadata"`
	// AutoPost defaults to true. When false the transaction is stored as pending.
	AutoPost   *bool `json:"autoPost"`
	BestEffort *bool `json:"bestEffort"`
}

// CommissionParams records an earned commission.
type CommissionParams struct {
	CommissionID string          `json:"commissionID" binding:"required"`
	Source       string          `json:"source" binding:"required"`
	Reference    string          `json:"reference"`
	Amount       decimal.Decimal `json:"amount" binding:"gt=0"`
	Month        string          `json:"month"`
	CreatedBy    string          `json:"createdBy" binding:"required"`
	BestEffort   *bool           `json:"bestEffort"`
}

// ToEvent converts the params to the commission revenue event.
func (p CommissionParams) ToEvent() domain.CommissionRevenue {
	return domain.CommissionRevenue{
		CommissionID: p.CommissionID,
		Source:       p.Source,
		Reference:    p.Reference,
		Amount:       p.Amount,
		Month:        p.Month,
		CreatedBy:    p.CreatedBy,
	}
}

// CommissionPaymentParams records cash received against a commission.
type CommissionPaymentParams struct {
	CommissionID  string          `json:"commissionID" binding:"required"`
	Source        string          `json:"source" binding:"required"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedBy     string          `json:"createdBy" binding:"required"`
	BestEffort    *bool           `json:"bestEffort"`
}

// ToEvent converts the params to the commission payment event.
func (p CommissionPaymentParams) ToEvent() domain.CommissionPayment {
	return domain.CommissionPayment{
		CommissionID:  p.CommissionID,
		Source:        p.Source,
		Reference:     p.Reference,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		CreatedBy:     p.CreatedBy,
	}
}

// CommissionReversalParams cancels a commission, paid or not.
type CommissionReversalParams struct {
	CommissionID  string          `json:"commissionID" binding:"required"`
	Source        string          `json:"source" binding:"required"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	Month         string          `json:"month"`
	CreatedBy     string          `json:"createdBy" binding:"required"`
	Reason        string          `json:"reason"`
	PaymentMethod string          `json:"paymentMethod"` // only meaningful for paid commissions
	BestEffort    *bool           `json:"bestEffort"`
}

// ToPendingEvent converts the params to the reversal of an unpaid commission.
func (p CommissionReversalParams) ToPendingEvent() domain.CommissionReversal {
	return domain.CommissionReversal{
		CommissionID: p.CommissionID,
		Source:       p.Source,
		Reference:    p.Reference,
		Amount:       p.Amount,
		Month:        p.Month,
		CreatedBy:    p.CreatedBy,
		Reason:       p.Reason,
	}
}

// ToPaidEvent converts the params to the reversal of a paid commission.
func (p CommissionReversalParams) ToPaidEvent() domain.CommissionReversalPaid {
	return domain.CommissionReversalPaid{
		CommissionID:  p.CommissionID,
		Source:        p.Source,
		Reference:     p.Reference,
		Amount:        p.Amount,
		Month:         p.Month,
		CreatedBy:     p.CreatedBy,
		Reason:        p.Reason,
		PaymentMethod: p.PaymentMethod,
	}
}

// ExpenseParams records an accrued expense.
type ExpenseParams struct {
	ExpenseID     string          `json:"expenseID" binding:"required"`
	ExpenseHeadID string          `json:"expenseHeadID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	Description   string          `json:"description"`
	PaymentSource string          `json:"paymentSource"`
	CreatedBy     string          `json:"createdBy" binding:"required"`
	BranchID      string          `json:"branchID"`
	BestEffort    *bool           `json:"bestEffort"`
}

// ToEvent converts the params to the expense accrual event.
func (p ExpenseParams) ToEvent() domain.ExpenseAccrual {
	return domain.ExpenseAccrual{
		ExpenseID:     p.ExpenseID,
		ExpenseHeadID: p.ExpenseHeadID,
		Amount:        p.Amount,
		Description:   p.Description,
		PaymentSource: p.PaymentSource,
		CreatedBy:     p.CreatedBy,
		BranchID:      p.BranchID,
	}
}

// MoMoType is the direction of a mobile-money transaction.
type MoMoType string

const (
	MoMoCashIn  MoMoType = "cash-in"
	MoMoCashOut MoMoType = "cash-out"
)

// MoMoParams records a mobile-money cash-in or cash-out.
type MoMoParams struct {
	TransactionID string          `json:"transactionID" binding:"required"`
	Type          MoMoType        `json:"type" binding:"required,oneof=cash-in cash-out"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	Fee           decimal.Decimal `json:"fee" binding:"gte=0"`
	Provider      string          `json:"provider" binding:"required"`
	PhoneNumber   string          `json:"phoneNumber"`
	CustomerName  string          `json:"customerName"`
	Reference     string          `json:"reference"`
	ProcessedBy   string          `json:"processedBy" binding:"required"`
	BranchID      string          `json:"branchID"`
	BestEffort    *bool           `json:"bestEffort"`
}

// ToEvent converts the params to the cash-in or cash-out event.
func (p MoMoParams) ToEvent() domain.Event {
	details := domain.MoMoDetails{
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Fee:           p.Fee,
		Provider:      p.Provider,
		PhoneNumber:   p.PhoneNumber,
		CustomerName:  p.CustomerName,
		Reference:     p.Reference,
		ProcessedBy:   p.ProcessedBy,
		BranchID:      p.BranchID,
	}
	if p.Type == MoMoCashOut {
		return domain.MoMoCashOut{MoMoDetails: details}
	}
	return domain.MoMoCashIn{MoMoDetails: details}
}

// ReverseTransactionRequest reverses a stored transaction by id.
type ReverseTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
	Actor  string `json:"actor" binding:"required"`
}

// ActorRequest carries the acting user of a state transition.
type ActorRequest struct {
	Actor string `json:"actor" binding:"required"`
}
