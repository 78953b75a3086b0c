package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits amounts are stored with.
const AmountScale = 4

// BalanceTolerance is the largest debit/credit difference still accepted as balanced.
var BalanceTolerance = decimal.New(1, -2)

// Totals sums the debit and credit sides of entries.
func Totals(entries []domain.Entry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// ValidateBalance returns an *apperrors.UnbalancedEntriesError when the two
// sides of entries differ by more than BalanceTolerance.
func ValidateBalance(entries []domain.Entry) error {
	debits, credits := Totals(entries)
	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return &apperrors.UnbalancedEntriesError{Debits: debits, Credits: credits}
	}
	return nil
}

// ValidateEntries checks the per-line invariants that do not depend on storage.
func ValidateEntries(entries []domain.Entry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: a transaction needs at least two entries, got %d", apperrors.ErrValidation, len(entries))
	}
	for i, e := range entries {
		if e.AccountID == "" {
			return fmt.Errorf("%w: entry %d has no account", apperrors.ErrValidation, i)
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("%w: entry %d on account %s has a negative amount", apperrors.ErrValidation, i, e.AccountCode)
		}
		if !fitsScale(e.Debit) || !fitsScale(e.Credit) {
			return fmt.Errorf("%w: entry %d on account %s has more than %d decimal places", apperrors.ErrValidation, i, e.AccountCode, AmountScale)
		}
	}
	return nil
}

func fitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// NetDeltas aggregates debit - credit per account. The result is ordered by
// account id so that row locks are always taken in the same order.
func NetDeltas(entries []domain.Entry) []domain.BalanceDelta {
	byAccount := make(map[string]*domain.BalanceDelta, len(entries))
	for _, e := range entries {
		d, ok := byAccount[e.AccountID]
		if !ok {
			d = &domain.BalanceDelta{AccountID: e.AccountID, AccountCode: e.AccountCode, Delta: decimal.Zero}
			byAccount[e.AccountID] = d
		}
		d.Delta = d.Delta.Add(e.Net())
	}

	deltas := make([]domain.BalanceDelta, 0, len(byAccount))
	for _, d := range byAccount {
		if d.Delta.IsZero() {
			continue
		}
		deltas = append(deltas, *d)
	}
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].AccountID < deltas[j].AccountID
	})
	return deltas
}

// SwapSides returns copies of entries with debit and credit exchanged.
// Identifiers are cleared so the copies can be persisted as new lines.
func SwapSides(entries []domain.Entry) []domain.Entry {
	swapped := make([]domain.Entry, len(entries))
	for i, e := range entries {
		swapped[i] = domain.Entry{
			AccountID:   e.AccountID,
			AccountCode: e.AccountCode,
			Debit:       e.Credit,
			Credit:      e.Debit,
			Description: e.Description,
			Metadata:    e.Metadata,
		}
	}
	return swapped
}

// NormalBalance presents a stored balance with the sign convention of the
// account type: debit-normal types (asset, expense) as stored, credit-normal
// types (liability, equity, revenue) negated.
func NormalBalance(accountType domain.AccountType, balance decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return balance, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return balance.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}
