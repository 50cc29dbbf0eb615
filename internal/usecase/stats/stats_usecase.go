package stats

import (
	"context"
	"net/http"

	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
)

// StatsUseCase implements domain.StatsUseCase. Statistics are derived from
// completed sessions only; active and cancelled sessions never count.
type StatsUseCase struct {
	uowFactory domain.UnitOfWorkFactory
	logger     *logger.Logger
}

// NewStatsUseCase creates a new stats use case
func NewStatsUseCase(uowFactory domain.UnitOfWorkFactory, logger *logger.Logger) domain.StatsUseCase {
	return &StatsUseCase{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// PlayerStats computes aggregate statistics for a player
func (uc *StatsUseCase) PlayerStats(ctx context.Context, id domain.PlayerID) (*domain.PlayerStats, error) {
	uow := uc.uowFactory.New()

	player, err := uow.Players().FindByID(id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, domain.NewAppError(domain.ErrCodePlayerNotFound, "Player not found", http.StatusNotFound, nil)
	}

	sessions, err := uow.Sessions().FindCompletedByPlayerID(id)
	if err != nil {
		return nil, err
	}

	return Compute(player, sessions)
}

// Compute derives a stats read model from a player and their completed
// sessions. Sessions must arrive in chronological start order, which the
// streak accounting depends on.
func Compute(player *domain.Player, sessions []*domain.Session) (*domain.PlayerStats, error) {
	if len(sessions) == 0 {
		return emptyStats(player), nil
	}

	currency := sessions[0].Stakes().Currency()
	for _, s := range sessions[1:] {
		if s.Stakes().Currency() != currency {
			return nil, domain.NewBusinessError(domain.ErrCodeMixedCurrency, "Statistics require sessions in a single currency")
		}
	}

	stats := &domain.PlayerStats{
		TotalSessions:   len(sessions),
		TotalBuyIn:      domain.ZeroMoney(currency),
		TotalCashOut:    domain.ZeroMoney(currency),
		NetProfit:       domain.ZeroMoney(currency),
		BiggestWin:      domain.ZeroMoney(currency),
		BiggestLoss:     domain.ZeroMoney(currency),
		HourlyRate:      domain.ZeroMoney(currency),
		CurrentBankroll: player.Bankroll(),
	}

	var (
		wins   int
		streak int
	)

	for _, s := range sessions {
		net := s.NetResult()

		var err error
		if stats.TotalBuyIn, err = stats.TotalBuyIn.Add(s.TotalBuyIn()); err != nil {
			return nil, err
		}
		if stats.TotalCashOut, err = stats.TotalCashOut.Add(s.TotalCashOut()); err != nil {
			return nil, err
		}
		if stats.NetProfit, err = stats.NetProfit.Add(net); err != nil {
			return nil, err
		}
		if d := s.Duration(); d != nil {
			stats.TotalDuration = stats.TotalDuration.Add(*d)
		}

		if net.IsPositive() {
			wins++
			if bigger, _ := net.GreaterThan(stats.BiggestWin); bigger {
				stats.BiggestWin = net
			}
			if streak > 0 {
				streak++
			} else {
				streak = 1
			}
		} else {
			loss := net.Negate()
			if bigger, _ := loss.GreaterThan(stats.BiggestLoss); bigger {
				stats.BiggestLoss = loss
			}
			if streak < 0 {
				streak--
			} else {
				streak = -1
			}
		}

		if streak > stats.BestStreak {
			stats.BestStreak = streak
		}
		if -streak > stats.WorstStreak {
			stats.WorstStreak = -streak
		}

		if end := s.EndTime(); end != nil {
			if stats.LastSessionDate == nil || end.After(*stats.LastSessionDate) {
				stats.LastSessionDate = end
			}
		}
	}

	if streak < 0 {
		stats.CurrentStreak = -streak
	} else {
		stats.CurrentStreak = streak
	}

	stats.WinRate = float64(wins) / float64(len(sessions)) * 100

	avg := stats.NetProfit.Amount().Div(decimal.NewFromInt(int64(len(sessions))))
	stats.AvgSessionResult, _ = domain.NewMoney(avg, currency)

	if hours := stats.TotalDuration.Hours(); hours > 0 {
		rate := stats.NetProfit.Amount().Div(decimal.NewFromFloat(hours))
		stats.HourlyRate, _ = domain.NewMoney(rate, currency)
	}

	return stats, nil
}

func emptyStats(player *domain.Player) *domain.PlayerStats {
	currency := player.Bankroll().Currency()
	return &domain.PlayerStats{
		TotalBuyIn:       domain.ZeroMoney(currency),
		TotalCashOut:     domain.ZeroMoney(currency),
		NetProfit:        domain.ZeroMoney(currency),
		BiggestWin:       domain.ZeroMoney(currency),
		BiggestLoss:      domain.ZeroMoney(currency),
		AvgSessionResult: domain.ZeroMoney(currency),
		HourlyRate:       domain.ZeroMoney(currency),
		CurrentBankroll:  player.Bankroll(),
	}
}
