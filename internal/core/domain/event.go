package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Source modules that own GL transactions.
const (
	ModuleCommissions = "commissions"
	ModuleExpenses    = "expenses"
	ModuleMoMo        = "momo"
)

// EventKind tags a business event. It doubles as the source transaction type
// written on the journal header.
type EventKind string

const (
	KindCommissionRevenue      EventKind = "commission_revenue"
	KindCommissionPayment      EventKind = "commission_payment"
	KindCommissionReversal     EventKind = "commission_reversal"
	KindCommissionReversalPaid EventKind = "commission_reversal_paid"
	KindExpenseAccrual         EventKind = "expense_accrual"
	KindMoMoCashIn             EventKind = "momo_cash_in"
	KindMoMoCashOut            EventKind = "momo_cash_out"
)

const (
	paymentSuffix  = "-payment"
	reversalSuffix = "-reversal"
)

// ReversalSourceID is the source transaction id used for the reversal of sourceID.
func ReversalSourceID(sourceID string) string {
	return sourceID + reversalSuffix
}

// IsReversalSourceID reports whether sourceID names a reversal transaction.
func IsReversalSourceID(sourceID string) bool {
	return strings.HasSuffix(sourceID, reversalSuffix)
}

// Event is a business event that the journal builder knows how to turn into
// entries. The set of implementations is closed.
type Event interface {
	Kind() EventKind
	SourceModule() string
	// BusinessID is the producer's own id, before any suffix is derived from it.
	BusinessID() string
	SourceTransactionID() string
	Actor() string
	Branch() string
	event()
}

// ReversalEvent is an Event that compensates an earlier event of the same module.
type ReversalEvent interface {
	Event
	OriginalSourceTransactionID() string
	ReversalReason() string
}

// CommissionRevenue recognises an earned, not yet collected, commission.
type CommissionRevenue struct {
	CommissionID string
	Source       string // commission provider, e.g. "MTN"
	Reference    string
	Amount       decimal.Decimal
	Month        string
	CreatedBy    string
}

func (e CommissionRevenue) Kind() EventKind { return KindCommissionRevenue }
func (e CommissionRevenue) SourceModule() string { return ModuleCommissions }
func (e CommissionRevenue) BusinessID() string { return e.CommissionID }
func (e CommissionRevenue) SourceTransactionID() string { return e.CommissionID }
func (e CommissionRevenue) Actor() string { return e.CreatedBy }
func (e CommissionRevenue) Branch() string { return "" }
func (CommissionRevenue) event() {}

// CommissionPayment settles a commission receivable in cash.
type CommissionPayment struct {
	CommissionID  string
	Source        string
	Reference     string
	Amount        decimal.Decimal
	PaymentMethod string
	CreatedBy     string
}

func (e CommissionPayment) Kind() EventKind { return KindCommissionPayment }
func (e CommissionPayment) SourceModule() string { return ModuleCommissions }
func (e CommissionPayment) BusinessID() string { return e.CommissionID }
func (e CommissionPayment) SourceTransactionID() string { return e.CommissionID + paymentSuffix }
func (e CommissionPayment) Actor() string { return e.CreatedBy }
func (e CommissionPayment) Branch() string { return "" }
func (CommissionPayment) event() {}

// CommissionReversal cancels a commission that has not been paid yet.
type CommissionReversal struct {
	CommissionID string
	Source       string
	Reference    string
	Amount       decimal.Decimal
	Month        string
	CreatedBy    string
	Reason       string
}

func (e CommissionReversal) Kind() EventKind { return KindCommissionReversal }
func (e CommissionReversal) SourceModule() string { return ModuleCommissions }
func (e CommissionReversal) BusinessID() string { return e.CommissionID }
func (e CommissionReversal) SourceTransactionID() string {
	return ReversalSourceID(e.CommissionID)
}
func (e CommissionReversal) Actor() string { return e.CreatedBy }
func (e CommissionReversal) Branch() string { return "" }
func (e CommissionReversal) OriginalSourceTransactionID() string { return e.CommissionID }
func (e CommissionReversal) ReversalReason() string { return e.Reason }
func (CommissionReversal) event() {}

// CommissionReversalPaid cancels the revenue recognition of a commission
// whose cash has already been received. The cash leg stays untouched.
type CommissionReversalPaid struct {
	CommissionID  string
	Source        string
	Reference     string
	Amount        decimal.Decimal
	Month         string
	CreatedBy     string
	Reason        string
	PaymentMethod string
}

func (e CommissionReversalPaid) Kind() EventKind { return KindCommissionReversalPaid }
func (e CommissionReversalPaid) SourceModule() string { return ModuleCommissions }
func (e CommissionReversalPaid) BusinessID() string { return e.CommissionID }
func (e CommissionReversalPaid) SourceTransactionID() string {
	return ReversalSourceID(e.CommissionID)
}
func (e CommissionReversalPaid) Actor() string { return e.CreatedBy }
func (e CommissionReversalPaid) Branch() string { return "" }
func (e CommissionReversalPaid) OriginalSourceTransactionID() string { return e.CommissionID }
func (e CommissionReversalPaid) ReversalReason() string { return e.Reason }
func (CommissionReversalPaid) event() {}

// ExpenseAccrual books an expense against accounts payable.
type ExpenseAccrual struct {
	ExpenseID     string
	ExpenseHeadID string
	Amount        decimal.Decimal
	Description   string
	PaymentSource string
	CreatedBy     string
	BranchID      string
}

func (e ExpenseAccrual) Kind() EventKind { return KindExpenseAccrual }
func (e ExpenseAccrual) SourceModule() string { return ModuleExpenses }
func (e ExpenseAccrual) BusinessID() string { return e.ExpenseID }
func (e ExpenseAccrual) SourceTransactionID() string { return e.ExpenseID }
func (e ExpenseAccrual) Actor() string { return e.CreatedBy }
func (e ExpenseAccrual) Branch() string { return e.BranchID }
func (ExpenseAccrual) event() {}

// MoMoDetails is the payload shared by both mobile-money directions.
type MoMoDetails struct {
	TransactionID string
	Amount        decimal.Decimal
	Fee           decimal.Decimal // zero when no fee was charged
	Provider      string
	PhoneNumber   string
	CustomerName  string
	Reference     string
	ProcessedBy   string
	BranchID      string
}

// HasFee reports whether a positive fee was collected.
func (d MoMoDetails) HasFee() bool { return d.Fee.IsPositive() }

// MoMoCashIn records a customer depositing cash for e-money.
type MoMoCashIn struct{ MoMoDetails }

func (e MoMoCashIn) Kind() EventKind { return KindMoMoCashIn }
func (e MoMoCashIn) SourceModule() string { return ModuleMoMo }
func (e MoMoCashIn) BusinessID() string { return e.TransactionID }
func (e MoMoCashIn) SourceTransactionID() string { return e.TransactionID }
func (e MoMoCashIn) Actor() string { return e.ProcessedBy }
func (e MoMoCashIn) Branch() string { return e.BranchID }
func (MoMoCashIn) event() {}

// MoMoCashOut records a customer withdrawing cash against e-money.
type MoMoCashOut struct{ MoMoDetails }

func (e MoMoCashOut) Kind() EventKind { return KindMoMoCashOut }
func (e MoMoCashOut) SourceModule() string { return ModuleMoMo }
func (e MoMoCashOut) BusinessID() string { return e.TransactionID }
func (e MoMoCashOut) SourceTransactionID() string { return e.TransactionID }
func (e MoMoCashOut) Actor() string { return e.ProcessedBy }
func (e MoMoCashOut) Branch() string { return e.BranchID }
func (MoMoCashOut) event() {}

var (
	_ Event         = CommissionRevenue{}
	_ Event         = CommissionPayment{}
	_ ReversalEvent = CommissionReversal{}
	_ ReversalEvent = CommissionReversalPaid{}
	_ Event         = ExpenseAccrual{}
	_ Event         = MoMoCashIn{}
	_ Event         = MoMoCashOut{}
)
