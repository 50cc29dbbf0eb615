package domain

// UnitOfWork groups repository writes that must commit or roll back
// together. Begin acquires an exclusive transactional resource; only one
// transaction may be open per instance at a time. Commit or Rollback
// without an open transaction is an error.
//
// The orchestration pattern is: Begin, mutate aggregates in memory,
// persist via the repository handles, Commit, then drain and publish the
// aggregates' domain events. On any failure Rollback runs and nothing is
// published.
type UnitOfWork interface {
	Players() PlayerRepository
	Sessions() SessionRepository
	Transactions() TransactionRepository

	Begin() error
	Commit() error
	Rollback() error
}

// UnitOfWorkFactory produces one unit of work per logical operation
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
