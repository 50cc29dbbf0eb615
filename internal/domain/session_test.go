package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStakes(t *testing.T) Stakes {
	t.Helper()
	stakes, err := NewStakes(usd(t, 1), usd(t, 2), nil)
	require.NoError(t, err)
	return stakes
}

func startTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := StartSession(NewPlayerID(), "Bellagio", testStakes(t), usd(t, 100), "")
	require.NoError(t, err)
	return session
}

func TestStartSessionSeedsBuyIn(t *testing.T) {
	session := startTestSession(t)

	assert.Equal(t, SessionStatusActive, session.Status())
	require.Len(t, session.Transactions(), 1)
	assert.Equal(t, TransactionTypeBuyIn, session.Transactions()[0].Type())
	assert.True(t, session.TotalBuyIn().Equals(usd(t, 100)))
	assert.True(t, session.TotalCashOut().Equals(ZeroMoney("USD")))

	events := session.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeSessionStarted, events[0].EventType())
}

func TestStartSessionValidation(t *testing.T) {
	_, err := StartSession(NewPlayerID(), "   ", testStakes(t), usd(t, 100), "")
	assert.True(t, HasErrorCode(err, ErrCodeValidation))

	_, err = StartSession(NewPlayerID(), "Bellagio", testStakes(t), eur(t, 100), "")
	assert.True(t, HasErrorCode(err, ErrCodeCurrencyMismatch))

	_, err = StartSession(NewPlayerID(), "Bellagio", testStakes(t), usd(t, 0), "")
	assert.True(t, HasErrorCode(err, ErrCodeInvalidAmount))
}

func TestAddTransaction(t *testing.T) {
	session := startTestSession(t)
	session.PullEvents()

	tx, err := session.AddTransaction(TransactionTypeRebuy, usd(t, 50), "topped up", "")
	require.NoError(t, err)
	assert.Equal(t, session.ID(), tx.SessionID())
	assert.Len(t, session.Transactions(), 2)
	assert.True(t, session.TotalBuyIn().Equals(usd(t, 150)))

	events := session.PullEvents()
	require.Len(t, events, 1)
	added, ok := events[0].(TransactionAdded)
	require.True(t, ok)
	assert.Equal(t, tx.ID(), added.TransactionID)
	assert.Equal(t, TransactionTypeRebuy, added.Type)
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	session := startTestSession(t)

	_, err := session.AddTransaction(TransactionTypeRebuy, usd(t, -5), "", "")
	assert.True(t, HasErrorCode(err, ErrCodeInvalidAmount))

	_, err = session.AddTransaction(TransactionType("jackpot"), usd(t, 5), "", "")
	assert.True(t, HasErrorCode(err, ErrCodeValidation))

	_, err = session.AddTransaction(TransactionTypeRebuy, eur(t, 5), "", "")
	assert.True(t, HasErrorCode(err, ErrCodeCurrencyMismatch))
}

func TestAddTransactionAfterTerminalStateFails(t *testing.T) {
	ended := startTestSession(t)
	require.NoError(t, ended.End(usd(t, 200), ""))
	_, err := ended.AddTransaction(TransactionTypeRebuy, usd(t, 50), "", "")
	assert.True(t, HasErrorCode(err, ErrCodeSessionNotActive))

	cancelled := startTestSession(t)
	require.NoError(t, cancelled.Cancel("table broke"))
	_, err = cancelled.AddTransaction(TransactionTypeRebuy, usd(t, 50), "", "")
	assert.True(t, HasErrorCode(err, ErrCodeSessionNotActive))
}

func TestEndWithPositiveCashOut(t *testing.T) {
	session := startTestSession(t)
	_, err := session.AddTransaction(TransactionTypeRebuy, usd(t, 50), "", "")
	require.NoError(t, err)
	session.PullEvents()

	require.NoError(t, session.End(usd(t, 200), "good run"))

	assert.Equal(t, SessionStatusCompleted, session.Status())
	require.NotNil(t, session.EndTime())
	assert.Len(t, session.Transactions(), 3)
	assert.True(t, session.TotalBuyIn().Equals(usd(t, 150)))
	assert.True(t, session.TotalCashOut().Equals(usd(t, 200)))
	assert.True(t, session.NetResult().Equals(usd(t, 50)))
	assert.Equal(t, "good run", session.Notes())

	events := session.PullEvents()
	require.Len(t, events, 1)
	ended, ok := events[0].(SessionEnded)
	require.True(t, ok)
	assert.True(t, ended.NetResult.Equals(usd(t, 50)))
}

func TestEndWithZeroCashOutAppendsNothing(t *testing.T) {
	session := startTestSession(t)

	require.NoError(t, session.End(usd(t, 0), ""))

	assert.Equal(t, SessionStatusCompleted, session.Status())
	assert.Len(t, session.Transactions(), 1)
	assert.True(t, session.NetResult().Equals(usd(t, -100)))
}

func TestEndAppendsNotes(t *testing.T) {
	session, err := StartSession(NewPlayerID(), "Bellagio", testStakes(t), usd(t, 100), "started tight")
	require.NoError(t, err)

	require.NoError(t, session.End(usd(t, 0), "felted"))
	assert.Equal(t, "started tight\nfelted", session.Notes())
}

func TestEndIsTerminal(t *testing.T) {
	session := startTestSession(t)
	require.NoError(t, session.End(usd(t, 0), ""))

	assert.True(t, HasErrorCode(session.End(usd(t, 0), ""), ErrCodeSessionNotActive))
	assert.True(t, HasErrorCode(session.Cancel(""), ErrCodeSessionNotActive))
}

func TestCancel(t *testing.T) {
	session := startTestSession(t)
	session.PullEvents()

	require.NoError(t, session.Cancel("fire alarm"))

	assert.Equal(t, SessionStatusCancelled, session.Status())
	require.NotNil(t, session.EndTime())
	assert.Contains(t, session.Notes(), "fire alarm")

	events := session.PullEvents()
	require.Len(t, events, 1)
	cancelled, ok := events[0].(SessionCancelled)
	require.True(t, ok)
	assert.Equal(t, "fire alarm", cancelled.Reason)
}

func TestUpdateNotesGuardedByStatus(t *testing.T) {
	session := startTestSession(t)
	require.NoError(t, session.UpdateNotes("loose table"))
	assert.Equal(t, "loose table", session.Notes())

	require.NoError(t, session.End(usd(t, 0), ""))
	assert.True(t, HasErrorCode(session.UpdateNotes("too late"), ErrCodeSessionNotActive))
}

func TestUpdateLocation(t *testing.T) {
	session := startTestSession(t)
	require.NoError(t, session.UpdateLocation("Aria"))
	assert.Equal(t, "Aria", session.Location())

	assert.True(t, HasErrorCode(session.UpdateLocation("  "), ErrCodeValidation))
}

func TestNetResultIdempotentRecomputation(t *testing.T) {
	session := startTestSession(t)

	for range 3 {
		net, err := session.TotalCashOut().Subtract(session.TotalBuyIn())
		require.NoError(t, err)
		assert.True(t, session.NetResult().Equals(net))
	}

	_, err := session.AddTransaction(TransactionTypeRebuy, usd(t, 25), "", "")
	require.NoError(t, err)
	assert.True(t, session.NetResult().Equals(usd(t, -125)))

	require.NoError(t, session.End(usd(t, 300), ""))
	assert.True(t, session.NetResult().Equals(usd(t, 175)))
}

func TestBigBlindsWon(t *testing.T) {
	session := startTestSession(t)
	require.NoError(t, session.End(usd(t, 200), ""))

	// net +100 at a 2.00 big blind
	assert.True(t, session.BigBlindsWon().Equal(decimal.NewFromInt(50)))
}

func TestDurationNilWhileActive(t *testing.T) {
	session := startTestSession(t)
	assert.Nil(t, session.Duration())
	assert.Nil(t, session.HourlyRate())

	require.NoError(t, session.End(usd(t, 0), ""))
	assert.NotNil(t, session.Duration())
}

func TestRehydrateSessionPreservesLedger(t *testing.T) {
	session := startTestSession(t)
	_, err := session.AddTransaction(TransactionTypeRebuy, usd(t, 50), "", "")
	require.NoError(t, err)
	require.NoError(t, session.End(usd(t, 200), ""))

	reloaded := RehydrateSession(
		session.ID(), session.PlayerID(), session.Location(), session.Stakes(),
		session.StartTime(), session.EndTime(), session.Status(),
		session.Transactions(), session.Notes(),
		session.CreatedAt(), session.UpdatedAt(), 3,
	)

	assert.Len(t, reloaded.Transactions(), 3)
	assert.True(t, reloaded.TotalBuyIn().Equals(session.TotalBuyIn()))
	assert.True(t, reloaded.TotalCashOut().Equals(session.TotalCashOut()))
	assert.True(t, reloaded.NetResult().Equals(session.NetResult()))
	assert.Equal(t, int64(3), reloaded.Version())
	assert.Empty(t, reloaded.PullEvents())
}
