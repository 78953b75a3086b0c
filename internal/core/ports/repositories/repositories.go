package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountStore
	TransactionRepo TransactionStore
	TxManager       TransactionManager
	// AccountCache is nil when no cache is configured.
	AccountCache AccountCache
}
