package services

import "github.com/SscSPs/gl_posting_engine/internal/core/domain"

// ChartOfAccounts names the accounts the journal builder posts to.
type ChartOfAccounts struct {
	Cash                 domain.AccountSpec
	CommissionReceivable domain.AccountSpec
	AccountsPayable      domain.AccountSpec
	CustomerLiability    domain.AccountSpec
	CommissionRevenue    domain.AccountSpec
	FeeRevenue           domain.AccountSpec
	// ExpenseCodePrefix is joined with the expense head id to form one expense account per head.
	ExpenseCodePrefix string
}

// DefaultChartOfAccounts returns the standard operator chart.
func DefaultChartOfAccounts() ChartOfAccounts {
	return ChartOfAccounts{
		Cash:                 domain.AccountSpec{Code: "1001", Name: "Cash", Type: domain.Asset},
		CommissionReceivable: domain.AccountSpec{Code: "1200", Name: "Commission Receivable", Type: domain.Asset},
		AccountsPayable:      domain.AccountSpec{Code: "2001", Name: "Accounts Payable", Type: domain.Liability},
		CustomerLiability:    domain.AccountSpec{Code: "2100", Name: "Customer Liability (MoMo)", Type: domain.Liability},
		CommissionRevenue:    domain.AccountSpec{Code: "4100", Name: "Commission Revenue", Type: domain.Revenue},
		FeeRevenue:           domain.AccountSpec{Code: "4200", Name: "MoMo Fee Revenue", Type: domain.Revenue},
		ExpenseCodePrefix:    "5000",
	}
}

// ExpenseAccount returns the expense account of one expense head.
func (c ChartOfAccounts) ExpenseAccount(expenseHeadID string) domain.AccountSpec {
	return domain.AccountSpec{
		Code: c.ExpenseCodePrefix + "-" + expenseHeadID,
		Name: "Expense - " + expenseHeadID,
		Type: domain.Expense,
	}
}
