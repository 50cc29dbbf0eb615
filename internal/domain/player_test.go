package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	player, err := NewPlayer("Doyle", "doyle@example.com", usd(t, 1000))
	require.NoError(t, err)
	return player
}

func TestNewPlayerValidation(t *testing.T) {
	tests := []struct {
		name       string
		playerName string
		email      string
		wantErr    bool
	}{
		{"valid", "Doyle", "doyle@example.com", false},
		{"no_email", "Doyle", "", false},
		{"empty_name", "   ", "", true},
		{"bad_email", "Doyle", "not-an-email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlayer(tt.playerName, tt.email, usd(t, 0))
			if tt.wantErr {
				assert.True(t, HasErrorCode(err, ErrCodeValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewPlayerTrimsName(t *testing.T) {
	player, err := NewPlayer("  Doyle  ", "", usd(t, 0))
	require.NoError(t, err)
	assert.Equal(t, "Doyle", player.Name())
}

func TestLinkExternalAccountOnlyOnce(t *testing.T) {
	player := newTestPlayer(t)

	require.NoError(t, player.LinkExternalAccount("ext-123"))
	assert.Equal(t, "ext-123", player.ExternalID())

	err := player.LinkExternalAccount("ext-456")
	assert.True(t, HasErrorCode(err, ErrCodeAccountAlreadyLinked))
	assert.Equal(t, "ext-123", player.ExternalID())
}

func TestNewPlayerFromExternalAccount(t *testing.T) {
	player, err := NewPlayerFromExternalAccount("Doyle", "", "ext-123", usd(t, 0))
	require.NoError(t, err)
	assert.Equal(t, "ext-123", player.ExternalID())

	err = player.LinkExternalAccount("ext-456")
	assert.True(t, HasErrorCode(err, ErrCodeAccountAlreadyLinked))
}

func TestAdjustBankroll(t *testing.T) {
	player := newTestPlayer(t)

	require.NoError(t, player.AdjustBankroll(usd(t, 250)))
	assert.True(t, player.Bankroll().Equals(usd(t, 1250)))

	// no floor check, the bankroll tracks net position
	require.NoError(t, player.AdjustBankroll(usd(t, -2000)))
	assert.True(t, player.Bankroll().Equals(usd(t, -750)))

	err := player.AdjustBankroll(eur(t, 10))
	assert.True(t, HasErrorCode(err, ErrCodeCurrencyMismatch))
}

func TestUpdateNameAndEmail(t *testing.T) {
	player := newTestPlayer(t)

	assert.True(t, HasErrorCode(player.UpdateName(""), ErrCodeValidation))
	require.NoError(t, player.UpdateName("  Chip  "))
	assert.Equal(t, "Chip", player.Name())

	assert.True(t, HasErrorCode(player.UpdateEmail("nope"), ErrCodeValidation))
	require.NoError(t, player.UpdateEmail("chip@example.com"))
	require.NoError(t, player.UpdateEmail(""))
	assert.Empty(t, player.Email())
}

func TestIncrementSessionCount(t *testing.T) {
	player := newTestPlayer(t)
	player.IncrementSessionCount()
	player.IncrementSessionCount()
	assert.Equal(t, 2, player.SessionCount())
}
