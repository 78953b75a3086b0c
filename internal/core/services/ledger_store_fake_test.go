package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

var errStoreDown = errors.New("connection refused")

// memLedger is an in-memory AccountStore, TransactionStore and
// TransactionManager. It enforces UNIQUE(code) and
// UNIQUE(source_module, source_transaction_id) like the SQL schema, and
// RunInTx is all-or-nothing.
type memLedger struct {
	mu sync.Mutex

	accounts     map[string]domain.Account // by id
	accountCodes map[string]string         // code -> id
	txns         map[string]domain.Transaction
	sources      map[string]string // module/source id -> transaction id
	entries      []domain.Entry

	// failOn makes the named writer method fail inside the unit of work.
	failOn string
	// readErr is returned by every read when set.
	readErr error
	// afterFindBySource runs after FindTransactionBySource, outside the lock.
	afterFindBySource func()
}

func newMemLedger() *memLedger {
	return &memLedger{
		accounts:     map[string]domain.Account{},
		accountCodes: map[string]string{},
		txns:         map[string]domain.Transaction{},
		sources:      map[string]string{},
	}
}

var (
	_ portsrepo.AccountStore       = (*memLedger)(nil)
	_ portsrepo.TransactionStore   = (*memLedger)(nil)
	_ portsrepo.TransactionManager = (*memLedger)(nil)
)

func sourceKey(module, id string) string { return module + "\x00" + id }

// --- AccountStore ---

func (m *memLedger) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	id, ok := m.accountCodes[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	acc := m.accounts[id]
	return &acc, nil
}

func (m *memLedger) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (m *memLedger) InsertAccountIfAbsent(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "InsertAccountIfAbsent" {
		return nil, errStoreDown
	}
	if id, ok := m.accountCodes[account.Code]; ok {
		acc := m.accounts[id]
		return &acc, nil
	}
	m.accounts[account.AccountID] = account
	m.accountCodes[account.Code] = account.AccountID
	return &account, nil
}

func (m *memLedger) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.accountCodes[code]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc := m.accounts[id]
	acc.IsActive = false
	acc.LastUpdatedBy = userID
	acc.LastUpdatedAt = now
	m.accounts[id] = acc
	return nil
}

// --- TransactionStore ---

func (m *memLedger) FindTransactionBySource(ctx context.Context, sourceModule, sourceTransactionID string) (*domain.Transaction, error) {
	txn, err := m.findBySource(sourceModule, sourceTransactionID)
	if m.afterFindBySource != nil {
		m.afterFindBySource()
	}
	return txn, err
}

func (m *memLedger) findBySource(sourceModule, sourceTransactionID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	id, ok := m.sources[sourceKey(sourceModule, sourceTransactionID)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	txn := m.txns[id]
	return &txn, nil
}

func (m *memLedger) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	txn, ok := m.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (m *memLedger) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []domain.Entry
	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- TransactionManager ---

func (m *memLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, w portsrepo.LedgerWriter) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := &memLedgerTx{
		parent:   m,
		txns:     map[string]domain.Transaction{},
		sources:  map[string]string{},
		balances: map[string]decimal.Decimal{},
	}
	if err := fn(ctx, w); err != nil {
		return err
	}

	for id, txn := range w.txns {
		m.txns[id] = txn
	}
	for k, id := range w.sources {
		m.sources[k] = id
	}
	m.entries = append(m.entries, w.entries...)
	for id, delta := range w.balances {
		acc := m.accounts[id]
		acc.Balance = acc.Balance.Add(delta)
		m.accounts[id] = acc
	}
	return nil
}

// memLedgerTx stages writes until RunInTx commits them. The parent lock is held.
type memLedgerTx struct {
	parent   *memLedger
	txns     map[string]domain.Transaction
	sources  map[string]string
	entries  []domain.Entry
	balances map[string]decimal.Decimal
}

func (w *memLedgerTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	if w.parent.failOn == "InsertTransaction" {
		return errStoreDown
	}
	key := sourceKey(txn.SourceModule, txn.SourceTransactionID)
	if _, ok := w.parent.sources[key]; ok {
		return fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicateSourceEvent, txn.SourceModule, txn.SourceTransactionID)
	}
	if _, ok := w.sources[key]; ok {
		return apperrors.ErrDuplicateSourceEvent
	}
	txn.Entries = nil
	w.txns[txn.TransactionID] = txn
	w.sources[key] = txn.TransactionID
	return nil
}

func (w *memLedgerTx) InsertEntries(ctx context.Context, entries []domain.Entry) error {
	if w.parent.failOn == "InsertEntries" {
		return errStoreDown
	}
	w.entries = append(w.entries, entries...)
	return nil
}

func (w *memLedgerTx) ApplyBalanceDeltas(ctx context.Context, deltas []domain.BalanceDelta, userID string, now time.Time) error {
	if w.parent.failOn == "ApplyBalanceDeltas" {
		return errStoreDown
	}
	for _, d := range deltas {
		if _, ok := w.parent.accounts[d.AccountID]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, d.AccountID)
		}
		current, ok := w.balances[d.AccountID]
		if !ok {
			current = decimal.Zero
		}
		w.balances[d.AccountID] = current.Add(d.Delta)
	}
	return nil
}

func (w *memLedgerTx) LockTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if txn, ok := w.txns[transactionID]; ok {
		return &txn, nil
	}
	txn, ok := w.parent.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (w *memLedgerTx) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error {
	if w.parent.failOn == "UpdateTransactionStatus" {
		return errStoreDown
	}
	txn, err := w.LockTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	txn.Status = status
	txn.LastUpdatedBy = userID
	txn.LastUpdatedAt = now
	w.txns[transactionID] = *txn
	return nil
}

// --- assertions helpers ---

func (m *memLedger) balance(code string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.accountCodes[code]
	if !ok {
		return decimal.Zero
	}
	return m.accounts[id].Balance
}

func (m *memLedger) transactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txns)
}

func (m *memLedger) entryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *memLedger) accountCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

// seedAccount stores an account directly and returns it.
func (m *memLedger) seedAccount(code, name string, accountType domain.AccountType) domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc := domain.Account{
		AccountID:   "acc-" + code,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Balance:     decimal.Zero,
		IsActive:    true,
	}
	m.accounts[acc.AccountID] = acc
	m.accountCodes[code] = acc.AccountID
	return acc
}
