package repository

import (
	"errors"
	"time"

	"github.com/saradorri/pokerledger/internal/domain"
	"gorm.io/gorm"
)

// SessionRepository implements domain.SessionRepository
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepository{db: db}
}

// FindByID retrieves a session with its full ledger
func (r *SessionRepository) FindByID(id domain.SessionID) (*domain.Session, error) {
	var row sessionRow
	result := r.db.Where("id = ?", id.String()).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return r.loadWithLedger(&row)
}

// FindByPlayerID retrieves all sessions of a player, newest first
func (r *SessionRepository) FindByPlayerID(playerID domain.PlayerID) ([]*domain.Session, error) {
	var rows []*sessionRow
	result := r.db.Where("player_id = ?", playerID.String()).
		Order("start_time DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.loadAllWithLedger(rows)
}

// FindActiveByPlayerID retrieves the player's active session, if any
func (r *SessionRepository) FindActiveByPlayerID(playerID domain.PlayerID) (*domain.Session, error) {
	var row sessionRow
	result := r.db.Where("player_id = ? AND status = ?", playerID.String(), string(domain.SessionStatusActive)).
		Order("start_time DESC").
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return r.loadWithLedger(&row)
}

// FindCompletedByPlayerID retrieves the player's completed sessions in
// their stored order (oldest first, the order streaks are computed in)
func (r *SessionRepository) FindCompletedByPlayerID(playerID domain.PlayerID) ([]*domain.Session, error) {
	var rows []*sessionRow
	result := r.db.Where("player_id = ? AND status = ?", playerID.String(), string(domain.SessionStatusCompleted)).
		Order("start_time ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.loadAllWithLedger(rows)
}

// FindRecentByPlayerID retrieves the most recent sessions of a player
func (r *SessionRepository) FindRecentByPlayerID(playerID domain.PlayerID, limit int) ([]*domain.Session, error) {
	var rows []*sessionRow
	result := r.db.Where("player_id = ?", playerID.String()).
		Order("start_time DESC").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.loadAllWithLedger(rows)
}

// FindByFilters retrieves sessions matching the filters plus the total
// count before pagination
func (r *SessionRepository) FindByFilters(filters domain.SessionFilters) ([]*domain.Session, int64, error) {
	query := r.db.Model(&sessionRow{})

	if filters.PlayerID != nil {
		query = query.Where("player_id = ?", filters.PlayerID.String())
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.From != nil {
		query = query.Where("start_time >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("start_time <= ?", *filters.To)
	}
	if filters.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filters.Location+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*sessionRow
	result := query.Order("start_time DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&rows)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	sessions, err := r.loadAllWithLedger(rows)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// Save upserts the session row and inserts any ledger lines not yet
// persisted. Existing transaction rows are never touched. Updates are
// guarded by an optimistic version check.
func (r *SessionRepository) Save(session *domain.Session) error {
	row := sessionRowFromDomain(session)

	if session.Version() == 0 {
		row.Version = 1
		if err := r.db.Create(row).Error; err != nil {
			return err
		}
		return r.insertNewTransactions(session)
	}

	result := r.db.Model(&sessionRow{}).
		Where("id = ? AND version = ?", row.ID, session.Version()).
		Updates(map[string]interface{}{
			"location":   row.Location,
			"end_time":   row.EndTime,
			"status":     row.Status,
			"notes":      row.Notes,
			"updated_at": time.Now(),
			"version":    session.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("Session was modified by another operation")
	}
	return r.insertNewTransactions(session)
}

// Delete removes a session and its ledger
func (r *SessionRepository) Delete(id domain.SessionID) error {
	if err := r.db.Where("session_id = ?", id.String()).Delete(&transactionRow{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id.String()).Delete(&sessionRow{}).Error
}

func (r *SessionRepository) insertNewTransactions(session *domain.Session) error {
	var existing []string
	if err := r.db.Model(&transactionRow{}).
		Where("session_id = ?", session.ID().String()).
		Pluck("id", &existing).Error; err != nil {
		return err
	}

	persisted := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		persisted[id] = struct{}{}
	}

	for _, tx := range session.Transactions() {
		if _, ok := persisted[tx.ID().String()]; ok {
			continue
		}
		if err := r.db.Create(transactionRowFromDomain(tx)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *SessionRepository) loadWithLedger(row *sessionRow) (*domain.Session, error) {
	var txRows []*transactionRow
	result := r.db.Where("session_id = ?", row.ID).
		Order("seq ASC").
		Find(&txRows)
	if result.Error != nil {
		return nil, result.Error
	}
	return row.toDomain(txRows)
}

func (r *SessionRepository) loadAllWithLedger(rows []*sessionRow) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0, len(rows))
	for _, row := range rows {
		session, err := r.loadWithLedger(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}
