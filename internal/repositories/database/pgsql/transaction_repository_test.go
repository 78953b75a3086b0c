package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionColumnNames = []string{
	"transaction_id", "transaction_date", "source_module", "source_transaction_id", "source_transaction_type",
	"description", "status", "branch_id", "metadata", "created_at", "created_by", "last_updated_at", "last_updated_by",
}

var entryColumnNames = []string{
	"entry_id", "transaction_id", "line_no", "account_id", "account_code", "debit", "credit", "description", "metadata",
}

func transactionRow(now time.Time, id, status string, branchID any, metadata []byte) *pgxmock.Rows {
	return pgxmock.NewRows(transactionColumnNames).AddRow(
		id, now, "momo", "mm-1", "momo_cash_in",
		"MoMo cash-in - MTN", status, branchID, metadata, now, "teller", now, "teller",
	)
}

func sampleTransaction(now time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:         "txn-1",
		TransactionDate:       now,
		SourceModule:          "momo",
		SourceTransactionID:   "mm-1",
		SourceTransactionType: "momo_cash_in",
		Description:           "MoMo cash-in - MTN",
		Status:                domain.Posted,
		Metadata:              map[string]any{"provider": "MTN"},
		AuditFields:           domain.AuditFields{CreatedAt: now, CreatedBy: "teller", LastUpdatedAt: now, LastUpdatedBy: "teller"},
	}
}

func sampleEntries() []domain.Entry {
	return []domain.Entry{
		{EntryID: "e-1", TransactionID: "txn-1", AccountID: "acc-1001", AccountCode: "1001", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{EntryID: "e-2", TransactionID: "txn-1", AccountID: "acc-2100", AccountCode: "2100", Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}
}

func TestFindTransactionBySource(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM gl_transactions").
		WithArgs("momo", "mm-1").
		WillReturnRows(transactionRow(now, "txn-1", "posted", "branch-1", []byte(`{"provider":"MTN"}`)))

	txn, err := repo.FindTransactionBySource(context.Background(), "momo", "mm-1")

	require.NoError(t, err)
	assert.Equal(t, "txn-1", txn.TransactionID)
	assert.Equal(t, domain.Posted, txn.Status)
	assert.Equal(t, "branch-1", txn.BranchID)
	assert.Equal(t, "MTN", txn.Metadata["provider"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTransactionBySource_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)

	mock.ExpectQuery("FROM gl_transactions").
		WithArgs("momo", "mm-404").
		WillReturnRows(pgxmock.NewRows(transactionColumnNames))

	_, err := repo.FindTransactionBySource(context.Background(), "momo", "mm-404")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindTransactionByID_NullColumns(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM gl_transactions").
		WithArgs("txn-1").
		WillReturnRows(transactionRow(now, "txn-1", "pending", nil, nil))

	txn, err := repo.FindTransactionByID(context.Background(), "txn-1")

	require.NoError(t, err)
	assert.Equal(t, domain.Pending, txn.Status)
	assert.Empty(t, txn.BranchID)
	assert.Nil(t, txn.Metadata)
}

func TestFindEntriesByTransactionID(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)

	mock.ExpectQuery("FROM gl_entries").
		WithArgs("txn-1").
		WillReturnRows(pgxmock.NewRows(entryColumnNames).
			AddRow("e-1", "txn-1", 1, "acc-1001", "1001", "500", "0", "MoMo cash-in", nil).
			AddRow("e-2", "txn-1", 2, "acc-2100", "2100", "0", "500", "Customer liability", []byte(`{"provider":"MTN"}`)))

	entries, err := repo.FindEntriesByTransactionID(context.Background(), "txn-1")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1001", entries[0].AccountCode)
	assert.True(t, entries[0].Debit.Equal(decimal.NewFromInt(500)))
	assert.True(t, entries[1].Credit.Equal(decimal.NewFromInt(500)))
	assert.Nil(t, entries[0].Metadata)
	assert.Equal(t, "MTN", entries[1].Metadata["provider"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntriesRoundTripCodeAndMetadata(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	entries := []domain.Entry{
		{EntryID: "e-1", TransactionID: "txn-1", AccountID: "acc-1001", AccountCode: "1001", Debit: decimal.NewFromInt(5), Credit: decimal.Zero},
		{EntryID: "e-2", TransactionID: "txn-1", AccountID: "acc-4200", AccountCode: "4200", Debit: decimal.Zero, Credit: decimal.NewFromInt(5),
			Metadata: map[string]any{"fee_rule": "flat"}},
	}
	feeMetadata := []byte(`{"fee_rule":"flat"}`)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO gl_entries").
		WithArgs(
			"e-1", "txn-1", 1, "acc-1001", "1001", decimalArg{decimal.NewFromInt(5)}, decimalArg{decimal.Zero}, "", pgxmock.AnyArg(),
			"e-2", "txn-1", 2, "acc-4200", "4200", decimalArg{decimal.Zero}, decimalArg{decimal.NewFromInt(5)}, "", feeMetadata,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM gl_entries").
		WithArgs("txn-1").
		WillReturnRows(pgxmock.NewRows(entryColumnNames).
			AddRow("e-1", "txn-1", 1, "acc-1001", "1001", "5", "0", "", nil).
			AddRow("e-2", "txn-1", 2, "acc-4200", "4200", "0", "5", "", feeMetadata))

	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		return w.InsertEntries(ctx, entries)
	})
	require.NoError(t, err)

	loaded, err := repo.FindEntriesByTransactionID(context.Background(), "txn-1")

	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "1001", loaded[0].AccountCode)
	assert.Equal(t, "4200", loaded[1].AccountCode)
	assert.Nil(t, loaded[0].Metadata)
	assert.Equal(t, "flat", loaded[1].Metadata["fee_rule"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_CommitsPosting(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	now := time.Now().UTC()
	txn := sampleTransaction(now)
	entries := sampleEntries()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO gl_transactions").
		WithArgs("txn-1", now, "momo", "mm-1", "momo_cash_in", "MoMo cash-in - MTN", "posted",
			pgxmock.AnyArg(), []byte(`{"provider":"MTN"}`), now, "teller", now, "teller").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO gl_entries").
		WithArgs(
			"e-1", "txn-1", 1, "acc-1001", "1001", decimalArg{decimal.NewFromInt(500)}, decimalArg{decimal.Zero}, "", pgxmock.AnyArg(),
			"e-2", "txn-1", 2, "acc-2100", "2100", decimalArg{decimal.Zero}, decimalArg{decimal.NewFromInt(500)}, "", pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec("SET balance = balance").
		WithArgs("acc-1001", decimalArg{decimal.NewFromInt(500)}, now, "teller").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("SET balance = balance").
		WithArgs("acc-2100", decimalArg{decimal.NewFromInt(-500)}, now, "teller").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		if err := w.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		if err := w.InsertEntries(ctx, entries); err != nil {
			return err
		}
		return w.ApplyBalanceDeltas(ctx, []domain.BalanceDelta{
			{AccountID: "acc-1001", AccountCode: "1001", Delta: decimal.NewFromInt(500)},
			{AccountID: "acc-2100", AccountCode: "2100", Delta: decimal.NewFromInt(-500)},
		}, "teller", now)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_DuplicateSourceRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO gl_transactions").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_gl_transactions_source"})
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		return w.InsertTransaction(ctx, sampleTransaction(now))
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateSourceEvent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_OtherUniqueViolationIsNotDuplicateSource(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO gl_transactions").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "gl_transactions_pkey"})
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		return w.InsertTransaction(ctx, sampleTransaction(now))
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrDuplicateSourceEvent)
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_MissingAccountRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("SET balance = balance").
		WithArgs("acc-gone", pgxmock.AnyArg(), now, "teller").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		return w.ApplyBalanceDeltas(ctx, []domain.BalanceDelta{
			{AccountID: "acc-gone", AccountCode: "0000", Delta: decimal.NewFromInt(1)},
		}, "teller", now)
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_BeginFailure(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	boom := errors.New("too many connections")

	mock.ExpectBegin().WillReturnError(boom)

	called := false
	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestPostPendingStatements(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("txn-1").
		WillReturnRows(transactionRow(now, "txn-1", "pending", nil, nil))
	mock.ExpectExec("UPDATE gl_transactions").
		WithArgs("txn-1", "posted", now, "supervisor").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		txn, err := w.LockTransaction(ctx, "txn-1")
		if err != nil {
			return err
		}
		assert.Equal(t, domain.Pending, txn.Status)
		return w.UpdateTransactionStatus(ctx, "txn-1", domain.Posted, "supervisor", now)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockTransaction_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxTransactionRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(transactionColumnNames))
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(ctx context.Context, w portsrepo.LedgerWriter) error {
		_, err := w.LockTransaction(ctx, "missing")
		return err
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEntries_Empty(t *testing.T) {
	w := &ledgerWriter{tx: newMockPool(t)}
	assert.NoError(t, w.InsertEntries(context.Background(), nil))
}
