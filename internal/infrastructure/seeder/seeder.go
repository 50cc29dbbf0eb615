package seeder

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/saradorri/pokerledger/internal/domain"
)

// Seeder handles database seeding operations
type Seeder struct {
	playerRepo  domain.PlayerRepository
	sessionRepo domain.SessionRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(playerRepo domain.PlayerRepository, sessionRepo domain.SessionRepository) *Seeder {
	return &Seeder{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
	}
}

// SeedPlayers seeds the database with demo players and a few finished
// sessions so the stats endpoint has data to chew on
func (s *Seeder) SeedPlayers() error {
	log.Printf("Seeding players...")

	hash := sha256.Sum256([]byte("password123"))
	passwordHash := hex.EncodeToString(hash[:])

	demos := []struct {
		name     string
		email    string
		bankroll float64
		currency string
	}{
		{"Daniel", "daniel@example.com", 2500, "USD"},
		{"Vanessa", "vanessa@example.com", 1200, "USD"},
		{"Phil", "phil@example.com", 800, "EUR"},
	}

	for _, d := range demos {
		existing, err := s.playerRepo.FindByEmail(d.email)
		if err != nil {
			log.Printf("Error checking existing player, skipping.")
			continue
		}
		if existing != nil {
			log.Printf("Player already exists, skipping.")
			continue
		}

		bankroll, err := domain.NewMoneyFromFloat(d.bankroll, d.currency)
		if err != nil {
			return err
		}

		player, err := domain.NewPlayer(d.name, d.email, bankroll)
		if err != nil {
			return err
		}
		player.SetPasswordHash(passwordHash)

		if err := s.playerRepo.Save(player); err != nil {
			log.Printf("Error creating player.")
			return err
		}

		if err := s.seedSessions(player, d.currency); err != nil {
			return err
		}
		log.Printf("Successfully created player.")
	}

	log.Printf("Player seeding completed successfully")
	return nil
}

// seedSessions creates a small run of completed sessions for a fresh player
func (s *Seeder) seedSessions(player *domain.Player, currency string) error {
	results := []struct {
		buyIn   float64
		cashOut float64
		hours   time.Duration
	}{
		{200, 350, 4 * time.Hour},
		{200, 120, 3 * time.Hour},
		{300, 520, 6 * time.Hour},
	}

	sb, err := domain.NewMoneyFromFloat(1, currency)
	if err != nil {
		return err
	}
	bb, err := domain.NewMoneyFromFloat(2, currency)
	if err != nil {
		return err
	}
	stakes, err := domain.NewStakes(sb, bb, nil)
	if err != nil {
		return err
	}

	start := time.Now().AddDate(0, 0, -len(results))
	for i, r := range results {
		buyIn, err := domain.NewMoneyFromFloat(r.buyIn, currency)
		if err != nil {
			return err
		}
		cashOut, err := domain.NewMoneyFromFloat(r.cashOut, currency)
		if err != nil {
			return err
		}

		sessionStart := start.Add(time.Duration(i) * 24 * time.Hour)
		sessionEnd := sessionStart.Add(r.hours)
		sessionID := domain.NewSessionID()

		txs := []*domain.Transaction{
			domain.RehydrateTransaction(domain.NewTransactionID(), sessionID, player.ID(), domain.TransactionTypeBuyIn, buyIn, sessionStart, "Initial buy-in", ""),
		}
		if cashOut.IsPositive() {
			txs = append(txs, domain.RehydrateTransaction(domain.NewTransactionID(), sessionID, player.ID(), domain.TransactionTypeCashOut, cashOut, sessionEnd, "Final cash-out", ""))
		}

		session := domain.RehydrateSession(sessionID, player.ID(), "Demo Room", stakes, sessionStart, &sessionEnd, domain.SessionStatusCompleted, txs, "seeded session", sessionStart, sessionEnd, 0)

		if err := s.sessionRepo.Save(session); err != nil {
			return err
		}

		player.IncrementSessionCount()
	}

	return s.playerRepo.Save(player)
}
