package uow

import (
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/saradorri/pokerledger/internal/infrastructure/repository"
	"gorm.io/gorm"
)

// UnitOfWork implements domain.UnitOfWork over a gorm transaction. Begin
// checks out a connection from the pool and opens a transaction; the
// three repository handles are rebound to it for the transaction's
// lifetime. Outside a transaction the handles read through the shared
// pool.
type UnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	logger *logger.Logger
}

// Factory implements domain.UnitOfWorkFactory
type Factory struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewFactory creates a unit-of-work factory
func NewFactory(db *gorm.DB, logger *logger.Logger) domain.UnitOfWorkFactory {
	return &Factory{db: db, logger: logger}
}

// New produces a fresh unit of work for one logical operation
func (f *Factory) New() domain.UnitOfWork {
	return &UnitOfWork{db: f.db, logger: f.logger}
}

// Players returns the player repository bound to the current transaction,
// if one is open
func (u *UnitOfWork) Players() domain.PlayerRepository {
	return repository.NewPlayerRepository(u.handle())
}

// Sessions returns the session repository bound to the current
// transaction, if one is open
func (u *UnitOfWork) Sessions() domain.SessionRepository {
	return repository.NewSessionRepository(u.handle())
}

// Transactions returns the transaction repository bound to the current
// transaction, if one is open
func (u *UnitOfWork) Transactions() domain.TransactionRepository {
	return repository.NewTransactionRepository(u.handle())
}

// Begin opens a database transaction. Nested transactions are not
// permitted.
func (u *UnitOfWork) Begin() error {
	if u.tx != nil {
		return domain.NewInternalError("Transaction already open", nil)
	}
	tx := u.db.Begin()
	if tx.Error != nil {
		u.logger.WithError(tx.Error).Error("Failed to start database transaction")
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}
	u.tx = tx
	return nil
}

// Commit finalizes all writes made since Begin and releases the
// connection
func (u *UnitOfWork) Commit() error {
	if u.tx == nil {
		return domain.NewInternalError("Commit without an open transaction", nil)
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit().Error; err != nil {
		u.logger.WithError(err).Error("Failed to commit database transaction")
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}
	return nil
}

// Rollback discards all writes made since Begin and releases the
// connection. A caller abandoning an operation mid-transaction must call
// this or the pooled connection leaks.
func (u *UnitOfWork) Rollback() error {
	if u.tx == nil {
		return domain.NewInternalError("Rollback without an open transaction", nil)
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback().Error; err != nil {
		u.logger.WithError(err).Error("Failed to roll back database transaction")
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to roll back transaction", 500, err)
	}
	return nil
}

func (u *UnitOfWork) handle() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
