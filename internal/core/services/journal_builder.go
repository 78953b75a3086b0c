package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/gl_posting_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// journalBuilder implements the JournalBuilderSvc interface
type journalBuilder struct {
	BaseService
	registry portssvc.AccountRegistrySvc
	chart    ChartOfAccounts
}

// BuilderOption is a functional option for configuring the journal builder
type BuilderOption func(*journalBuilder)

// WithChartOfAccounts overrides the default chart of accounts.
func WithChartOfAccounts(chart ChartOfAccounts) BuilderOption {
	return func(b *journalBuilder) {
		b.chart = chart
	}
}

// NewJournalBuilder creates a new journal builder resolving accounts through registry
func NewJournalBuilder(registry portssvc.AccountRegistrySvc, options ...BuilderOption) portssvc.JournalBuilderSvc {
	b := &journalBuilder{
		BaseService: newBaseService(),
		registry:    registry,
		chart:       DefaultChartOfAccounts(),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

var _ portssvc.JournalBuilderSvc = (*journalBuilder)(nil)

func (b *journalBuilder) Build(ctx context.Context, ev domain.Event) (domain.PostingRequest, error) {
	if ev == nil {
		return domain.PostingRequest{}, fmt.Errorf("%w: event is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(ev.BusinessID()) == "" {
		return domain.PostingRequest{}, fmt.Errorf("%w: %s event has no source id", apperrors.ErrValidation, ev.Kind())
	}

	switch e := ev.(type) {
	case domain.CommissionRevenue:
		return b.commissionRevenue(ctx, e)
	case domain.CommissionPayment:
		return b.commissionPayment(ctx, e)
	case domain.CommissionReversal:
		return b.commissionReversal(ctx, e)
	case domain.CommissionReversalPaid:
		return b.paidCommissionReversal(ctx, e)
	case domain.ExpenseAccrual:
		return b.expenseAccrual(ctx, e)
	case domain.MoMoCashIn:
		return b.momo(ctx, e, e.MoMoDetails, false)
	case domain.MoMoCashOut:
		return b.momo(ctx, e, e.MoMoDetails, true)
	default:
		return domain.PostingRequest{}, fmt.Errorf("%w: unsupported event kind %T", apperrors.ErrValidation, ev)
	}
}

// Debit Commission Receivable, credit Commission Revenue.
func (b *journalBuilder) commissionRevenue(ctx context.Context, e domain.CommissionRevenue) (domain.PostingRequest, error) {
	if err := requirePositive(e.Kind(), "amount", e.Amount); err != nil {
		return domain.PostingRequest{}, err
	}
	accounts, err := b.resolve(ctx, b.chart.CommissionReceivable, b.chart.CommissionRevenue)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	receivable, revenue := accounts[0], accounts[1]

	desc := fmt.Sprintf("Commission revenue - %s %s", e.Source, e.Month)
	return b.request(e, strings.TrimSpace(desc), map[string]any{
		"commission_id": e.CommissionID,
		"source":        e.Source,
		"reference":     e.Reference,
		"month":         e.Month,
	},
		domain.DebitEntry(receivable, e.Amount, "Commission receivable"),
		domain.CreditEntry(revenue, e.Amount, "Commission revenue"),
	), nil
}

// Debit Cash, credit Commission Receivable. Revenue is not touched again.
func (b *journalBuilder) commissionPayment(ctx context.Context, e domain.CommissionPayment) (domain.PostingRequest, error) {
	if err := requirePositive(e.Kind(), "amount", e.Amount); err != nil {
		return domain.PostingRequest{}, err
	}
	accounts, err := b.resolve(ctx, b.chart.Cash, b.chart.CommissionReceivable)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	cash, receivable := accounts[0], accounts[1]

	return b.request(e, "Commission payment received - "+e.Source, map[string]any{
		"commission_id":  e.CommissionID,
		"source":         e.Source,
		"reference":      e.Reference,
		"payment_method": e.PaymentMethod,
	},
		domain.DebitEntry(cash, e.Amount, "Commission cash received"),
		domain.CreditEntry(receivable, e.Amount, "Commission receivable settled"),
	), nil
}

// Mirror of commission revenue: debit Revenue, credit Receivable.
func (b *journalBuilder) commissionReversal(ctx context.Context, e domain.CommissionReversal) (domain.PostingRequest, error) {
	if err := requirePositive(e.Kind(), "amount", e.Amount); err != nil {
		return domain.PostingRequest{}, err
	}
	accounts, err := b.resolve(ctx, b.chart.CommissionRevenue, b.chart.CommissionReceivable)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	revenue, receivable := accounts[0], accounts[1]

	return b.request(e, "Commission reversal - "+e.Source, map[string]any{
		"commission_id": e.CommissionID,
		"source":        e.Source,
		"reference":     e.Reference,
		"month":         e.Month,
	},
		domain.DebitEntry(revenue, e.Amount, "Commission revenue reversed"),
		domain.CreditEntry(receivable, e.Amount, "Commission receivable reversed"),
	), nil
}

// Only the revenue recognition is reversed. The cash received stays in Cash.
func (b *journalBuilder) paidCommissionReversal(ctx context.Context, e domain.CommissionReversalPaid) (domain.PostingRequest, error) {
	if err := requirePositive(e.Kind(), "amount", e.Amount); err != nil {
		return domain.PostingRequest{}, err
	}
	accounts, err := b.resolve(ctx, b.chart.CommissionRevenue, b.chart.CommissionReceivable)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	revenue, receivable := accounts[0], accounts[1]

	return b.request(e, "Paid commission reversal - "+e.Source, map[string]any{
		"commission_id":  e.CommissionID,
		"source":         e.Source,
		"reference":      e.Reference,
		"month":          e.Month,
		"payment_method": e.PaymentMethod,
		"was_paid":       true,
	},
		domain.DebitEntry(revenue, e.Amount, "Commission revenue reversed (paid)"),
		domain.CreditEntry(receivable, e.Amount, "Commission receivable reversed (paid)"),
	), nil
}

// Debit the expense head account, credit Accounts Payable.
func (b *journalBuilder) expenseAccrual(ctx context.Context, e domain.ExpenseAccrual) (domain.PostingRequest, error) {
	if err := requirePositive(e.Kind(), "amount", e.Amount); err != nil {
		return domain.PostingRequest{}, err
	}
	if e.ExpenseHeadID == "" {
		return domain.PostingRequest{}, fmt.Errorf("%w: expense head is required", apperrors.ErrValidation)
	}
	accounts, err := b.resolve(ctx, b.chart.ExpenseAccount(e.ExpenseHeadID), b.chart.AccountsPayable)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	expense, payable := accounts[0], accounts[1]

	desc := e.Description
	if desc == "" {
		desc = "Expense - " + e.ExpenseHeadID
	}
	return b.request(e, desc, map[string]any{
		"expense_id":      e.ExpenseID,
		"expense_head_id": e.ExpenseHeadID,
		"payment_source":  e.PaymentSource,
	},
		domain.DebitEntry(expense, e.Amount, desc),
		domain.CreditEntry(payable, e.Amount, "Accounts payable"),
	), nil
}

// Principal moves between Cash and Customer Liability in the direction of the
// transaction. A fee is always debited to Cash and credited to Fee Revenue.
func (b *journalBuilder) momo(ctx context.Context, ev domain.Event, d domain.MoMoDetails, cashOut bool) (domain.PostingRequest, error) {
	if err := requirePositive(ev.Kind(), "amount", d.Amount); err != nil {
		return domain.PostingRequest{}, err
	}
	if d.Fee.IsNegative() {
		return domain.PostingRequest{}, fmt.Errorf("%w: %s fee must not be negative", apperrors.ErrValidation, ev.Kind())
	}

	specs := []domain.AccountSpec{b.chart.Cash, b.chart.CustomerLiability}
	if d.HasFee() {
		specs = append(specs, b.chart.FeeRevenue)
	}
	accounts, err := b.resolve(ctx, specs...)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	cash, liability := accounts[0], accounts[1]

	direction := "cash-in"
	entries := []domain.Entry{
		domain.DebitEntry(cash, d.Amount, "MoMo cash-in"),
		domain.CreditEntry(liability, d.Amount, "Customer liability"),
	}
	if cashOut {
		direction = "cash-out"
		entries = []domain.Entry{
			domain.DebitEntry(liability, d.Amount, "Customer liability"),
			domain.CreditEntry(cash, d.Amount, "MoMo cash-out"),
		}
	}
	if d.HasFee() {
		feeRevenue := accounts[2]
		entries = append(entries,
			domain.DebitEntry(cash, d.Fee, "MoMo fee collected"),
			domain.CreditEntry(feeRevenue, d.Fee, "MoMo fee revenue"),
		)
	}

	desc := fmt.Sprintf("MoMo %s - %s", direction, d.Provider)
	return b.request(ev, desc, map[string]any{
		"provider":      d.Provider,
		"phone_number":  d.PhoneNumber,
		"customer_name": d.CustomerName,
		"reference":     d.Reference,
		"fee":           d.Fee.String(),
	}, entries...), nil
}

// resolve provisions specs in order and refuses inactive accounts.
func (b *journalBuilder) resolve(ctx context.Context, specs ...domain.AccountSpec) ([]domain.Account, error) {
	accounts := make([]domain.Account, len(specs))
	for i, spec := range specs {
		acc, err := b.registry.GetOrCreateAccount(ctx, spec.Code, spec.Name, spec.Type)
		if err != nil {
			return nil, err
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
		}
		accounts[i] = *acc
	}
	return accounts, nil
}

func (b *journalBuilder) request(ev domain.Event, description string, metadata map[string]any, entries ...domain.Entry) domain.PostingRequest {
	return domain.PostingRequest{
		Date:                  b.Now(),
		SourceModule:          ev.SourceModule(),
		SourceTransactionID:   ev.SourceTransactionID(),
		SourceTransactionType: string(ev.Kind()),
		Description:           description,
		Entries:               entries,
		CreatedBy:             ev.Actor(),
		BranchID:              ev.Branch(),
		Metadata:              metadata,
	}
}

func requirePositive(kind domain.EventKind, field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s %s must be positive", apperrors.ErrValidation, kind, field)
	}
	return nil
}
