package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Two implementations exist: the pgsql remote store and the in-memory local
// store; the choice is made once at construction in main.
type RepositoryProvider struct {
	UserRepo        UserRepositoryFacade
	ClientRepo      ClientRepositoryFacade
	LoanRepo        LoanRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	DocumentRepo    DocumentRepositoryFacade
}
