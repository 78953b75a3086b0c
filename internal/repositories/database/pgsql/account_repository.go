package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/gl_posting_engine/internal/models"
	"github.com/SscSPs/gl_posting_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, code, name, account_type, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool DB) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountStore
var _ portsrepo.AccountStore = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE code = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE account_id = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// InsertAccountIfAbsent inserts the account unless its code exists, then
// returns whichever row owns the code. ON CONFLICT waits for a concurrent
// inserter to commit, so the follow-up read always sees the winner.
func (r *PgxAccountRepository) InsertAccountIfAbsent(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO gl_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account %s: %w", m.Code, err)
	}

	return r.FindAccountByCode(ctx, m.Code)
}

// DeactivateAccount marks an account as inactive. Deactivating an inactive
// account is a no-op.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	query := `
		UPDATE gl_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE code = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, code, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
