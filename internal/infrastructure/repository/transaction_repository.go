package repository

import (
	"errors"

	"github.com/saradorri/pokerledger/internal/domain"
	"gorm.io/gorm"
)

// TransactionRepository implements domain.TransactionRepository
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return &TransactionRepository{db: db}
}

// FindByID retrieves a transaction by ID
func (r *TransactionRepository) FindByID(id domain.TransactionID) (*domain.Transaction, error) {
	var row transactionRow
	result := r.db.Where("id = ?", id.String()).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return row.toDomain()
}

// FindBySessionID retrieves a session's ledger in append order
func (r *TransactionRepository) FindBySessionID(sessionID domain.SessionID) ([]*domain.Transaction, error) {
	var rows []*transactionRow
	result := r.db.Where("session_id = ?", sessionID.String()).
		Order("seq ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return transactionsToDomain(rows)
}

// FindByPlayerID retrieves transactions for a player with pagination,
// newest first
func (r *TransactionRepository) FindByPlayerID(playerID domain.PlayerID, limit, offset int) ([]*domain.Transaction, error) {
	var rows []*transactionRow
	result := r.db.Where("player_id = ?", playerID.String()).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return transactionsToDomain(rows)
}

// FindByFilters retrieves transactions matching the filters plus the
// total count before pagination
func (r *TransactionRepository) FindByFilters(filters domain.TransactionFilters) ([]*domain.Transaction, int64, error) {
	query := r.db.Model(&transactionRow{})

	if filters.PlayerID != nil {
		query = query.Where("player_id = ?", filters.PlayerID.String())
	}
	if filters.SessionID != nil {
		query = query.Where("session_id = ?", filters.SessionID.String())
	}
	if filters.Type != nil {
		query = query.Where("type = ?", string(*filters.Type))
	}
	if filters.From != nil {
		query = query.Where("timestamp >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("timestamp <= ?", *filters.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*transactionRow
	result := query.Order("timestamp DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&rows)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	transactions, err := transactionsToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// Save inserts a transaction. Ledger rows are immutable; saving an
// existing ID is a no-op.
func (r *TransactionRepository) Save(transaction *domain.Transaction) error {
	var count int64
	if err := r.db.Model(&transactionRow{}).
		Where("id = ?", transaction.ID().String()).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Create(transactionRowFromDomain(transaction)).Error
}

// Delete removes a transaction. Ledger rows are append-only in normal
// operation; this exists for administrative cleanup only.
func (r *TransactionRepository) Delete(id domain.TransactionID) error {
	return r.db.Where("id = ?", id.String()).Delete(&transactionRow{}).Error
}

func transactionsToDomain(rows []*transactionRow) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
