package services

import (
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/gl_posting_engine/internal/platform/config"
)

// NewServiceContainer wires the ledger services on top of repos.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	var registryOpts []RegistryOption
	if repos.AccountCache != nil {
		registryOpts = append(registryOpts, WithAccountCache(repos.AccountCache))
	}

	// The registry is the leaf; everything else resolves accounts through it.
	container.Accounts = NewAccountRegistry(repos.AccountRepo, registryOpts...)
	container.Journal = NewJournalBuilder(container.Accounts)

	engine, err := NewPostingEngine(repos.TransactionRepo, repos.TxManager)
	if err != nil {
		return nil, err
	}
	container.Posting = engine
	container.Reversals = NewReversalEngine(container.Journal, container.Posting, repos.TransactionRepo)

	container.GL = NewGLService(
		container.Accounts,
		container.Journal,
		container.Posting,
		container.Reversals,
		repos.TransactionRepo,
		WithBestEffortDefault(cfg.GLBestEffortDefault),
	)

	return container, nil
}
