package domain

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Player is the aggregate root for a tracked player: identity, profile and
// current bankroll. The bankroll reflects net position, not a spendable
// balance, so it may go negative.
type Player struct {
	id           PlayerID
	name         string
	email        string
	externalID   string
	passwordHash string
	bankroll     Money
	sessionCount int
	createdAt    time.Time
	updatedAt    time.Time
	version      int64
}

// NewPlayer creates a new player with an initial bankroll
func NewPlayer(name, email string, bankroll Money) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "name cannot be empty")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, NewValidationError("email", "invalid email address")
	}
	now := time.Now()
	return &Player{
		id:        NewPlayerID(),
		name:      name,
		email:     email,
		bankroll:  bankroll,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewPlayerFromExternalAccount creates a player already linked to an
// external account
func NewPlayerFromExternalAccount(name, email, externalID string, bankroll Money) (*Player, error) {
	if externalID == "" {
		return nil, NewValidationError("external_id", "external account ID cannot be empty")
	}
	player, err := NewPlayer(name, email, bankroll)
	if err != nil {
		return nil, err
	}
	player.externalID = externalID
	return player, nil
}

// RehydratePlayer reconstructs a player from persisted state
func RehydratePlayer(id PlayerID, name, email, externalID, passwordHash string, bankroll Money, sessionCount int, createdAt, updatedAt time.Time, version int64) *Player {
	return &Player{
		id:           id,
		name:         name,
		email:        email,
		externalID:   externalID,
		passwordHash: passwordHash,
		bankroll:     bankroll,
		sessionCount: sessionCount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}
}

// ID returns the player ID
func (p *Player) ID() PlayerID {
	return p.id
}

// Name returns the player name
func (p *Player) Name() string {
	return p.name
}

// Email returns the player email, empty when unset
func (p *Player) Email() string {
	return p.email
}

// ExternalID returns the linked external account ID, empty when unlinked
func (p *Player) ExternalID() string {
	return p.externalID
}

// PasswordHash returns the stored credential hash, empty when unset
func (p *Player) PasswordHash() string {
	return p.passwordHash
}

// Bankroll returns the current bankroll
func (p *Player) Bankroll() Money {
	return p.bankroll
}

// SessionCount returns the total number of sessions played
func (p *Player) SessionCount() int {
	return p.sessionCount
}

// CreatedAt returns the creation timestamp
func (p *Player) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp
func (p *Player) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version returns the optimistic concurrency version
func (p *Player) Version() int64 {
	return p.version
}

// UpdateName validates and replaces the player name
func (p *Player) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("name", "name cannot be empty")
	}
	p.name = name
	p.touch()
	return nil
}

// UpdateEmail validates and replaces the player email
func (p *Player) UpdateEmail(email string) error {
	if email != "" && !emailPattern.MatchString(email) {
		return NewValidationError("email", "invalid email address")
	}
	p.email = email
	p.touch()
	return nil
}

// SetPasswordHash stores a credential hash for API login
func (p *Player) SetPasswordHash(hash string) {
	p.passwordHash = hash
	p.touch()
}

// LinkExternalAccount links an external account. Linking is permitted at
// most once.
func (p *Player) LinkExternalAccount(externalID string) error {
	if externalID == "" {
		return NewValidationError("external_id", "external account ID cannot be empty")
	}
	if p.externalID != "" {
		return NewBusinessError(ErrCodeAccountAlreadyLinked, "An external account is already linked")
	}
	p.externalID = externalID
	p.touch()
	return nil
}

// AdjustBankroll adds a signed amount to the current bankroll. There is no
// floor check.
func (p *Player) AdjustBankroll(amount Money) error {
	newBankroll, err := p.bankroll.Add(amount)
	if err != nil {
		return err
	}
	p.bankroll = newBankroll
	p.touch()
	return nil
}

// IncrementSessionCount bumps the total session counter
func (p *Player) IncrementSessionCount() {
	p.sessionCount++
	p.touch()
}

func (p *Player) touch() {
	p.updatedAt = time.Now()
}

// PlayerRepository defines the persistence contract for players
type PlayerRepository interface {
	FindByID(id PlayerID) (*Player, error)
	FindByEmail(email string) (*Player, error)
	FindByExternalID(externalID string) (*Player, error)
	FindByName(name string) ([]*Player, error)
	FindAll() ([]*Player, error)
	Save(player *Player) error
	Delete(id PlayerID) error
}
