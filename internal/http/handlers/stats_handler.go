package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

// StatsHandler handles HTTP requests for player statistics
type StatsHandler struct {
	statsUseCase domain.StatsUseCase
	logger       *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsUseCase domain.StatsUseCase, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsUseCase: statsUseCase,
		logger:       logger,
	}
}

// StatsResponse represents aggregate player statistics
type StatsResponse struct {
	TotalSessions    int     `json:"total_sessions"`
	TotalHours       float64 `json:"total_hours"`
	TotalBuyIn       float64 `json:"total_buy_in"`
	TotalCashOut     float64 `json:"total_cash_out"`
	NetProfit        float64 `json:"net_profit"`
	Currency         string  `json:"currency"`
	WinRate          float64 `json:"win_rate"`
	AvgSessionResult float64 `json:"avg_session_result"`
	HourlyRate       float64 `json:"hourly_rate"`
	BiggestWin       float64 `json:"biggest_win"`
	BiggestLoss      float64 `json:"biggest_loss"`
	BestStreak       int     `json:"best_streak"`
	WorstStreak      int     `json:"worst_streak"`
	CurrentStreak    int     `json:"current_streak"`
	CurrentBankroll  float64 `json:"current_bankroll"`
	LastSessionDate  *string `json:"last_session_date,omitempty"`
}

// PlayerStats returns aggregate statistics for the authenticated player
func (h *StatsHandler) PlayerStats(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	stats, err := h.statsUseCase.PlayerStats(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := StatsResponse{
		TotalSessions:    stats.TotalSessions,
		TotalHours:       stats.TotalDuration.Hours(),
		TotalBuyIn:       stats.TotalBuyIn.Amount().InexactFloat64(),
		TotalCashOut:     stats.TotalCashOut.Amount().InexactFloat64(),
		NetProfit:        stats.NetProfit.Amount().InexactFloat64(),
		Currency:         stats.NetProfit.Currency(),
		WinRate:          stats.WinRate,
		AvgSessionResult: stats.AvgSessionResult.Amount().InexactFloat64(),
		HourlyRate:       stats.HourlyRate.Amount().InexactFloat64(),
		BiggestWin:       stats.BiggestWin.Amount().InexactFloat64(),
		BiggestLoss:      stats.BiggestLoss.Amount().InexactFloat64(),
		BestStreak:       stats.BestStreak,
		WorstStreak:      stats.WorstStreak,
		CurrentStreak:    stats.CurrentStreak,
		CurrentBankroll:  stats.CurrentBankroll.Amount().InexactFloat64(),
	}
	if stats.LastSessionDate != nil {
		v := stats.LastSessionDate.Format(time.RFC3339)
		resp.LastSessionDate = &v
	}

	c.JSON(http.StatusOK, resp)
}
