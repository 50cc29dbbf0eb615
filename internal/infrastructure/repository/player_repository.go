package repository

import (
	"errors"
	"time"

	"github.com/saradorri/pokerledger/internal/domain"
	"gorm.io/gorm"
)

// PlayerRepository implements domain.PlayerRepository
type PlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *gorm.DB) domain.PlayerRepository {
	return &PlayerRepository{db: db}
}

// FindByID retrieves a player by ID
func (r *PlayerRepository) FindByID(id domain.PlayerID) (*domain.Player, error) {
	var row playerRow
	result := r.db.Where("id = ?", id.String()).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return row.toDomain()
}

// FindByEmail retrieves a player by email
func (r *PlayerRepository) FindByEmail(email string) (*domain.Player, error) {
	var row playerRow
	result := r.db.Where("email = ?", email).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return row.toDomain()
}

// FindByExternalID retrieves a player by linked external account ID
func (r *PlayerRepository) FindByExternalID(externalID string) (*domain.Player, error) {
	var row playerRow
	result := r.db.Where("external_id = ?", externalID).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return row.toDomain()
}

// FindByName retrieves players matching a name
func (r *PlayerRepository) FindByName(name string) ([]*domain.Player, error) {
	var rows []*playerRow
	result := r.db.Where("name ILIKE ?", "%"+name+"%").
		Order("name ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return playersToDomain(rows)
}

// FindAll retrieves all players
func (r *PlayerRepository) FindAll() ([]*domain.Player, error) {
	var rows []*playerRow
	result := r.db.Order("created_at ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return playersToDomain(rows)
}

// Save upserts a player. Updates are guarded by an optimistic version
// check; a stale aggregate surfaces as a conflict error.
func (r *PlayerRepository) Save(player *domain.Player) error {
	row := playerRowFromDomain(player)

	if player.Version() == 0 {
		row.Version = 1
		return r.db.Create(row).Error
	}

	result := r.db.Model(&playerRow{}).
		Where("id = ? AND version = ?", row.ID, player.Version()).
		Updates(map[string]interface{}{
			"name":          row.Name,
			"email":         row.Email,
			"external_id":   row.ExternalID,
			"password_hash": row.PasswordHash,
			"bankroll":      row.Bankroll,
			"currency":      row.Currency,
			"session_count": row.SessionCount,
			"updated_at":    time.Now(),
			"version":       player.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("Player was modified by another operation")
	}
	return nil
}

// Delete removes a player
func (r *PlayerRepository) Delete(id domain.PlayerID) error {
	return r.db.Where("id = ?", id.String()).Delete(&playerRow{}).Error
}

func playersToDomain(rows []*playerRow) ([]*domain.Player, error) {
	players := make([]*domain.Player, 0, len(rows))
	for _, row := range rows {
		player, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}
