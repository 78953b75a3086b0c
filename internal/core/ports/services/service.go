package services

// ServiceContainer holds instances of all the ledger services.
// Handlers only use GL; the other components are exposed for producers
// embedding the engine as a library.
type ServiceContainer struct {
	Accounts  AccountRegistrySvc
	Journal   JournalBuilderSvc
	Posting   PostingEngineSvc
	Reversals ReversalEngineSvc
	GL        GLSvcFacade
}
