package pgsql

import (
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the Postgres repositories. The account cache is
// left to the caller.
func NewRepositoryProvider(dbPool DB) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: transactionRepo,
		TxManager:       transactionRepo,
	}
}
