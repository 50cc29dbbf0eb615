package stats

import (
	"testing"
	"time"

	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount float64, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromFloat(amount, currency)
	require.NoError(t, err)
	return m
}

func stakes(t *testing.T, currency string) domain.Stakes {
	t.Helper()
	s, err := domain.NewStakes(money(t, 1, currency), money(t, 2, currency), nil)
	require.NoError(t, err)
	return s
}

func testPlayer(t *testing.T) *domain.Player {
	t.Helper()
	p, err := domain.NewPlayer("Daniel", "daniel@example.com", money(t, 1000, "USD"))
	require.NoError(t, err)
	return p
}

// completedSession builds a settled session with a single buy-in and a
// single cash-out over the given number of hours.
func completedSession(t *testing.T, currency string, buyIn, cashOut, hours float64, start time.Time) *domain.Session {
	t.Helper()
	id := domain.NewSessionID()
	playerID := domain.NewPlayerID()
	end := start.Add(time.Duration(hours * float64(time.Hour)))

	txs := []*domain.Transaction{
		domain.RehydrateTransaction(domain.NewTransactionID(), id, playerID, domain.TransactionTypeBuyIn, money(t, buyIn, currency), start, "Initial buy-in", ""),
	}
	if cashOut > 0 {
		txs = append(txs, domain.RehydrateTransaction(domain.NewTransactionID(), id, playerID, domain.TransactionTypeCashOut, money(t, cashOut, currency), end, "Final cash-out", ""))
	}

	return domain.RehydrateSession(id, playerID, "Bellagio", stakes(t, currency), start, &end, domain.SessionStatusCompleted, txs, "", start, end, 1)
}

func TestCompute_NoSessions(t *testing.T) {
	player := testPlayer(t)

	stats, err := Compute(player, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalSessions)
	assert.True(t, stats.NetProfit.IsZero())
	assert.Equal(t, "USD", stats.NetProfit.Currency())
	assert.Equal(t, 0.0, stats.WinRate)
	assert.True(t, player.Bankroll().Equals(stats.CurrentBankroll))
	assert.Nil(t, stats.LastSessionDate)
}

func TestCompute_SingleWinningSession(t *testing.T) {
	player := testPlayer(t)
	start := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		completedSession(t, "USD", 100, 250, 5, start),
	}

	stats, err := Compute(player, sessions)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalSessions)
	assert.True(t, stats.TotalBuyIn.Equals(money(t, 100, "USD")))
	assert.True(t, stats.TotalCashOut.Equals(money(t, 250, "USD")))
	assert.True(t, stats.NetProfit.Equals(money(t, 150, "USD")))
	assert.Equal(t, 100.0, stats.WinRate)
	assert.InDelta(t, 5.0, stats.TotalDuration.Hours(), 1e-9)
	assert.True(t, stats.HourlyRate.Equals(money(t, 30, "USD")))
	assert.True(t, stats.BiggestWin.Equals(money(t, 150, "USD")))
	assert.True(t, stats.BiggestLoss.IsZero())
	assert.Equal(t, 1, stats.BestStreak)
	assert.Equal(t, 0, stats.WorstStreak)
	assert.Equal(t, 1, stats.CurrentStreak)
	require.NotNil(t, stats.LastSessionDate)
	assert.Equal(t, start.Add(5*time.Hour), *stats.LastSessionDate)
}

func TestCompute_WinLossWinScenario(t *testing.T) {
	player := testPlayer(t)
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		completedSession(t, "USD", 100, 150, 2, base),                     // +50
		completedSession(t, "USD", 100, 80, 2, base.Add(24*time.Hour)),    // -20
		completedSession(t, "USD", 100, 130, 2, base.Add(48*time.Hour)),   // +30
	}

	stats, err := Compute(player, sessions)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.True(t, stats.NetProfit.Equals(money(t, 60, "USD")))
	assert.InDelta(t, 66.7, stats.WinRate, 0.05)
	assert.True(t, stats.AvgSessionResult.Equals(money(t, 20, "USD")))
	assert.True(t, stats.BiggestWin.Equals(money(t, 50, "USD")))
	assert.True(t, stats.BiggestLoss.Equals(money(t, 20, "USD")))
	assert.Equal(t, 1, stats.BestStreak)
	assert.Equal(t, 1, stats.WorstStreak)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.True(t, stats.HourlyRate.Equals(money(t, 10, "USD")))
}

func TestCompute_LosingStreakRuns(t *testing.T) {
	player := testPlayer(t)
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	// win, loss, loss, loss, win, win
	results := []struct{ buyIn, cashOut float64 }{
		{100, 200},
		{100, 50},
		{100, 0},
		{100, 90},
		{100, 300},
		{100, 110},
	}
	var sessions []*domain.Session
	for i, r := range results {
		sessions = append(sessions, completedSession(t, "USD", r.buyIn, r.cashOut, 1, base.Add(time.Duration(i)*24*time.Hour)))
	}

	stats, err := Compute(player, sessions)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.BestStreak)
	assert.Equal(t, 3, stats.WorstStreak)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.True(t, stats.BiggestWin.Equals(money(t, 200, "USD")))
	assert.True(t, stats.BiggestLoss.Equals(money(t, 100, "USD")))
}

func TestCompute_BreakEvenCountsAsNonWin(t *testing.T) {
	player := testPlayer(t)
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		completedSession(t, "USD", 100, 200, 1, base),
		completedSession(t, "USD", 100, 100, 1, base.Add(24*time.Hour)),
	}

	stats, err := Compute(player, sessions)
	require.NoError(t, err)

	assert.Equal(t, 50.0, stats.WinRate)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.WorstStreak)
}

func TestCompute_MixedCurrenciesRejected(t *testing.T) {
	player := testPlayer(t)
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		completedSession(t, "USD", 100, 150, 2, base),
		completedSession(t, "EUR", 100, 80, 2, base.Add(24*time.Hour)),
	}

	_, err := Compute(player, sessions)
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeMixedCurrency))
}

func TestCompute_ZeroDurationSkipsHourlyRate(t *testing.T) {
	player := testPlayer(t)
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		completedSession(t, "USD", 100, 150, 0, base),
	}

	stats, err := Compute(player, sessions)
	require.NoError(t, err)
	assert.True(t, stats.HourlyRate.IsZero())
}

func TestCompute_ExactDecimalTotals(t *testing.T) {
	player := testPlayer(t)
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	sessions := []*domain.Session{
		completedSession(t, "USD", 0.1, 0.3, 1, base),
		completedSession(t, "USD", 0.2, 0.3, 1, base.Add(24*time.Hour)),
	}

	stats, err := Compute(player, sessions)
	require.NoError(t, err)
	assert.True(t, stats.NetProfit.Amount().Equal(decimal.RequireFromString("0.3")))
}
