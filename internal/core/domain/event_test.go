package domain_test

import (
	"testing"

	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvent_SourceIdentity(t *testing.T) {
	amount := decimal.NewFromInt(120)
	tests := []struct {
		name       string
		event      domain.Event
		wantModule string
		wantID     string
		wantKind   domain.EventKind
	}{
		{
			name:       "commission revenue uses the commission id",
			event:      domain.CommissionRevenue{CommissionID: "c-1", Amount: amount},
			wantModule: domain.ModuleCommissions,
			wantID:     "c-1",
			wantKind:   domain.KindCommissionRevenue,
		},
		{
			name:       "commission payment is suffixed",
			event:      domain.CommissionPayment{CommissionID: "c-1", Amount: amount},
			wantModule: domain.ModuleCommissions,
			wantID:     "c-1-payment",
			wantKind:   domain.KindCommissionPayment,
		},
		{
			name:       "pending reversal",
			event:      domain.CommissionReversal{CommissionID: "c-1", Amount: amount},
			wantModule: domain.ModuleCommissions,
			wantID:     "c-1-reversal",
			wantKind:   domain.KindCommissionReversal,
		},
		{
			name:       "paid reversal shares the reversal id",
			event:      domain.CommissionReversalPaid{CommissionID: "c-1", Amount: amount},
			wantModule: domain.ModuleCommissions,
			wantID:     "c-1-reversal",
			wantKind:   domain.KindCommissionReversalPaid,
		},
		{
			name:       "expense accrual",
			event:      domain.ExpenseAccrual{ExpenseID: "exp-9", BranchID: "b-1"},
			wantModule: domain.ModuleExpenses,
			wantID:     "exp-9",
			wantKind:   domain.KindExpenseAccrual,
		},
		{
			name:       "momo cash-out",
			event:      domain.MoMoCashOut{MoMoDetails: domain.MoMoDetails{TransactionID: "mm-7"}},
			wantModule: domain.ModuleMoMo,
			wantID:     "mm-7",
			wantKind:   domain.KindMoMoCashOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantModule, tt.event.SourceModule())
			assert.Equal(t, tt.wantID, tt.event.SourceTransactionID())
			assert.Equal(t, tt.wantKind, tt.event.Kind())
		})
	}
}

func TestEvent_BusinessIDIsRaw(t *testing.T) {
	assert.Equal(t, "c-1", domain.CommissionPayment{CommissionID: "c-1"}.BusinessID())
	assert.Equal(t, "c-1", domain.CommissionReversalPaid{CommissionID: "c-1"}.BusinessID())
	assert.Equal(t, "-77", domain.MoMoCashIn{MoMoDetails: domain.MoMoDetails{TransactionID: "-77"}}.BusinessID())
	assert.Empty(t, domain.CommissionPayment{}.BusinessID())
	assert.Equal(t, "-payment", domain.CommissionPayment{}.SourceTransactionID())
}

func TestReversalEvent_PointsAtOriginal(t *testing.T) {
	var ev domain.Event = domain.CommissionReversalPaid{CommissionID: "c-1", Reason: "clawback"}

	rev, ok := ev.(domain.ReversalEvent)
	assert.True(t, ok)
	assert.Equal(t, "c-1", rev.OriginalSourceTransactionID())
	assert.Equal(t, "clawback", rev.ReversalReason())

	_, ok = domain.Event(domain.CommissionRevenue{CommissionID: "c-1"}).(domain.ReversalEvent)
	assert.False(t, ok)
}

func TestReversalSourceID(t *testing.T) {
	assert.Equal(t, "mm-1-reversal", domain.ReversalSourceID("mm-1"))
	assert.True(t, domain.IsReversalSourceID(domain.ReversalSourceID("mm-1")))
	assert.False(t, domain.IsReversalSourceID("mm-1"))
	assert.False(t, domain.IsReversalSourceID("c-1-payment"))
}

func TestMoMoDetails_HasFee(t *testing.T) {
	assert.True(t, domain.MoMoDetails{Fee: decimal.RequireFromString("0.50")}.HasFee())
	assert.False(t, domain.MoMoDetails{}.HasFee())
	assert.False(t, domain.MoMoDetails{Fee: decimal.NewFromInt(-1)}.HasFee())
}

func TestAccountType_Valid(t *testing.T) {
	for _, at := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		assert.True(t, at.Valid(), string(at))
	}
	assert.False(t, domain.AccountType("CONTRA").Valid())
	assert.False(t, domain.AccountType("").Valid())
}

func TestEntry_Net(t *testing.T) {
	acc := domain.Account{AccountID: "acc-1001", Code: "1001"}

	debit := domain.DebitEntry(acc, decimal.NewFromInt(505), "cash in")
	credit := domain.CreditEntry(acc, decimal.NewFromInt(5), "fee")

	assert.True(t, debit.Net().Equal(decimal.NewFromInt(505)))
	assert.True(t, credit.Net().Equal(decimal.NewFromInt(-5)))
	assert.Equal(t, "1001", debit.AccountCode)
}
