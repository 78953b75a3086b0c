package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/gl_posting_engine/internal/models"
	"github.com/SscSPs/gl_posting_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, transaction_date, source_module, source_transaction_id, source_transaction_type,
		description, status, branch_id, metadata, created_at, created_by, last_updated_at, last_updated_by`

const entryColumnCount = 9

// sourceConstraint enforces one transaction per (source_module, source_transaction_id).
const sourceConstraint = "uq_gl_transactions_source"

// PgxTransactionRepository reads journal headers and entries and runs the
// posting unit of work.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for journal headers and entries.
func newPgxTransactionRepository(pool DB) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.TransactionStore   = (*PgxTransactionRepository)(nil)
	_ portsrepo.TransactionManager = (*PgxTransactionRepository)(nil)
	_ portsrepo.LedgerWriter       = (*ledgerWriter)(nil)
)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	var branchID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionDate,
		&m.SourceModule,
		&m.SourceTransactionID,
		&m.SourceTransactionType,
		&m.Description,
		&m.Status,
		&branchID,
		&m.Metadata,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if branchID.Valid {
		m.BranchID = branchID.String
	}
	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionBySource retrieves the transaction recorded for a source event.
func (r *PgxTransactionRepository) FindTransactionBySource(ctx context.Context, sourceModule, sourceTransactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM gl_transactions
		WHERE source_module = $1 AND source_transaction_id = $2;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, sourceModule, sourceTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction for %s/%s: %w", sourceModule, sourceTransactionID, err)
	}
	return txn, nil
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM gl_transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindEntriesByTransactionID retrieves the entries of a transaction in line order.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, transaction_id, line_no, account_id, account_code, debit, credit, description, metadata
		FROM gl_entries
		WHERE transaction_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var m models.Entry
		if err := rows.Scan(
			&m.EntryID,
			&m.TransactionID,
			&m.LineNo,
			&m.AccountID,
			&m.AccountCode,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.Metadata,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry of transaction %s: %w", transactionID, err)
		}
		entry, err := mapping.ToDomainEntry(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries of transaction %s: %w", transactionID, err)
	}
	return entries, nil
}

// RunInTx runs fn inside one database transaction and commits when it
// returns nil.
func (r *PgxTransactionRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, w portsrepo.LedgerWriter) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ctx, &ledgerWriter{tx: tx}); err != nil {
		r.Rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ledgerWriter issues the posting statements on one open transaction.
type ledgerWriter struct {
	tx querier
}

func (w *ledgerWriter) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO gl_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	var branchID sql.NullString
	if m.BranchID != "" {
		branchID = sql.NullString{String: m.BranchID, Valid: true}
	}

	_, err = w.tx.Exec(ctx, query,
		m.TransactionID,
		m.TransactionDate,
		m.SourceModule,
		m.SourceTransactionID,
		m.SourceTransactionType,
		m.Description,
		m.Status,
		branchID,
		m.Metadata,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolationOn(err, sourceConstraint) {
			return fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicateSourceEvent, m.SourceModule, m.SourceTransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// InsertEntries writes all entries with one multi-row INSERT.
func (w *ledgerWriter) InsertEntries(ctx context.Context, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	rows, err := mapping.ToModelEntries(entries)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO gl_entries (entry_id, transaction_id, line_no, account_id, account_code, debit, credit, description, metadata) VALUES `)
	args := make([]any, 0, len(entries)*entryColumnCount)
	for i, m := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * entryColumnCount
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)
		args = append(args, m.EntryID, m.TransactionID, m.LineNo, m.AccountID, m.AccountCode, m.Debit, m.Credit, m.Description, m.Metadata)
	}
	sb.WriteString(";")

	if _, err := w.tx.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to insert %d entries of transaction %s: %w", len(entries), entries[0].TransactionID, err)
	}
	return nil
}

// ApplyBalanceDeltas increments balances in place, one row at a time in the
// given order, so concurrent postings lock accounts in the same sequence.
func (w *ledgerWriter) ApplyBalanceDeltas(ctx context.Context, deltas []domain.BalanceDelta, userID string, now time.Time) error {
	query := `
		UPDATE gl_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for _, d := range deltas {
		cmdTag, err := w.tx.Exec(ctx, query, d.AccountID, d.Delta, now, userID)
		if err != nil {
			return fmt.Errorf("failed to update balance of account %s: %w", d.AccountCode, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, d.AccountID)
		}
	}
	return nil
}

func (w *ledgerWriter) LockTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM gl_transactions WHERE transaction_id = $1 FOR UPDATE;`

	txn, err := scanTransaction(w.tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (w *ledgerWriter) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error {
	query := `
		UPDATE gl_transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	cmdTag, err := w.tx.Exec(ctx, query, transactionID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
