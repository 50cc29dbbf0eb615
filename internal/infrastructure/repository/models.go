package repository

import (
	"time"

	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/shopspring/decimal"
)

// playerRow is the persisted shape of a Player aggregate
type playerRow struct {
	ID           string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name         string          `gorm:"not null;type:varchar(128)"`
	Email        *string         `gorm:"uniqueIndex;type:varchar(255)"`
	ExternalID   *string         `gorm:"uniqueIndex;column:external_id;type:varchar(64)"`
	PasswordHash string          `gorm:"type:varchar(128)"`
	Bankroll     decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency     string          `gorm:"type:varchar(8);not null"`
	SessionCount int             `gorm:"not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	Version      int64           `gorm:"not null;default:1"`
}

// TableName specifies the table name for playerRow
func (playerRow) TableName() string {
	return "players"
}

// sessionRow is the persisted shape of a Session aggregate. Totals are
// never stored; they are recomputed from the transaction rows.
type sessionRow struct {
	ID         string           `gorm:"primaryKey;column:id;type:varchar(64)"`
	PlayerID   string           `gorm:"index;not null;type:varchar(64)"`
	Location   string           `gorm:"not null;type:varchar(255)"`
	SmallBlind decimal.Decimal  `gorm:"type:numeric(20,2);not null"`
	BigBlind   decimal.Decimal  `gorm:"type:numeric(20,2);not null"`
	Ante       *decimal.Decimal `gorm:"type:numeric(20,2)"`
	Currency   string           `gorm:"type:varchar(8);not null"`
	StartTime  time.Time        `gorm:"not null"`
	EndTime    *time.Time
	Status     string    `gorm:"index;type:varchar(16);not null"`
	Notes      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
	Version    int64     `gorm:"not null;default:1"`
}

// TableName specifies the table name for sessionRow
func (sessionRow) TableName() string {
	return "sessions"
}

// transactionRow is one immutable ledger line. Rows are inserted once and
// never updated; seq preserves the append order within a session.
type transactionRow struct {
	ID          string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Seq         int64           `gorm:"autoIncrement;uniqueIndex"`
	SessionID   string          `gorm:"index;not null;type:varchar(64)"`
	PlayerID    string          `gorm:"index;not null;type:varchar(64)"`
	Type        string          `gorm:"type:varchar(16);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency    string          `gorm:"type:varchar(8);not null"`
	Timestamp   time.Time       `gorm:"not null"`
	Description string          `gorm:"type:varchar(255)"`
	Notes       string          `gorm:"type:text"`
}

// TableName specifies the table name for transactionRow
func (transactionRow) TableName() string {
	return "transactions"
}

func playerRowFromDomain(p *domain.Player) *playerRow {
	return &playerRow{
		ID:           p.ID().String(),
		Name:         p.Name(),
		Email:        optionalString(p.Email()),
		ExternalID:   optionalString(p.ExternalID()),
		PasswordHash: p.PasswordHash(),
		Bankroll:     p.Bankroll().Amount(),
		Currency:     p.Bankroll().Currency(),
		SessionCount: p.SessionCount(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func (r *playerRow) toDomain() (*domain.Player, error) {
	bankroll, err := domain.NewMoney(r.Bankroll, r.Currency)
	if err != nil {
		return nil, err
	}
	return domain.RehydratePlayer(
		domain.PlayerID(r.ID),
		r.Name,
		stringValue(r.Email),
		stringValue(r.ExternalID),
		r.PasswordHash,
		bankroll,
		r.SessionCount,
		r.CreatedAt,
		r.UpdatedAt,
		r.Version,
	), nil
}

func sessionRowFromDomain(s *domain.Session) *sessionRow {
	var ante *decimal.Decimal
	if a := s.Stakes().Ante(); a != nil {
		amount := a.Amount()
		ante = &amount
	}
	return &sessionRow{
		ID:         s.ID().String(),
		PlayerID:   s.PlayerID().String(),
		Location:   s.Location(),
		SmallBlind: s.Stakes().SmallBlind().Amount(),
		BigBlind:   s.Stakes().BigBlind().Amount(),
		Ante:       ante,
		Currency:   s.Stakes().Currency(),
		StartTime:  s.StartTime(),
		EndTime:    s.EndTime(),
		Status:     string(s.Status()),
		Notes:      s.Notes(),
		CreatedAt:  s.CreatedAt(),
		UpdatedAt:  s.UpdatedAt(),
	}
}

func (r *sessionRow) toDomain(txRows []*transactionRow) (*domain.Session, error) {
	smallBlind, err := domain.NewMoney(r.SmallBlind, r.Currency)
	if err != nil {
		return nil, err
	}
	bigBlind, err := domain.NewMoney(r.BigBlind, r.Currency)
	if err != nil {
		return nil, err
	}
	var ante *domain.Money
	if r.Ante != nil {
		a, err := domain.NewMoney(*r.Ante, r.Currency)
		if err != nil {
			return nil, err
		}
		ante = &a
	}
	stakes, err := domain.NewStakes(smallBlind, bigBlind, ante)
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(txRows))
	for _, txRow := range txRows {
		tx, err := txRow.toDomain()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return domain.RehydrateSession(
		domain.SessionID(r.ID),
		domain.PlayerID(r.PlayerID),
		r.Location,
		stakes,
		r.StartTime,
		r.EndTime,
		domain.SessionStatus(r.Status),
		transactions,
		r.Notes,
		r.CreatedAt,
		r.UpdatedAt,
		r.Version,
	), nil
}

func transactionRowFromDomain(t *domain.Transaction) *transactionRow {
	return &transactionRow{
		ID:          t.ID().String(),
		SessionID:   t.SessionID().String(),
		PlayerID:    t.PlayerID().String(),
		Type:        string(t.Type()),
		Amount:      t.Amount().Amount(),
		Currency:    t.Amount().Currency(),
		Timestamp:   t.Timestamp(),
		Description: t.Description(),
		Notes:       t.Notes(),
	}
}

func (r *transactionRow) toDomain() (*domain.Transaction, error) {
	amount, err := domain.NewMoney(r.Amount, r.Currency)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateTransaction(
		domain.TransactionID(r.ID),
		domain.SessionID(r.SessionID),
		domain.PlayerID(r.PlayerID),
		domain.TransactionType(r.Type),
		amount,
		r.Timestamp,
		r.Description,
		r.Notes,
	), nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
