package player

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/saradorri/pokerledger/internal/config"
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/domain/mocks"
	"github.com/saradorri/pokerledger/internal/infrastructure/auth"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type useCaseMocks struct {
	uowFactory *mocks.MockUnitOfWorkFactory
	uow        *mocks.MockUnitOfWork
	players    *mocks.MockPlayerRepository
	sessions   *mocks.MockSessionRepository
	locks      *mocks.MockLockManager
}

func newUseCase(ctrl *gomock.Controller) (*PlayerUseCase, *useCaseMocks) {
	m := &useCaseMocks{
		uowFactory: mocks.NewMockUnitOfWorkFactory(ctrl),
		uow:        mocks.NewMockUnitOfWork(ctrl),
		players:    mocks.NewMockPlayerRepository(ctrl),
		sessions:   mocks.NewMockSessionRepository(ctrl),
		locks:      mocks.NewMockLockManager(ctrl),
	}
	m.uowFactory.EXPECT().New().Return(m.uow).AnyTimes()
	m.uow.EXPECT().Players().Return(m.players).AnyTimes()
	m.uow.EXPECT().Sessions().Return(m.sessions).AnyTimes()

	uc := &PlayerUseCase{
		uowFactory:  m.uowFactory,
		lockManager: m.locks,
		jwtService:  auth.NewJWTService(&config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}),
		logger:      logger.NewLogger("test", "debug"),
	}
	return uc, m
}

func expectLock(m *useCaseMocks, playerID domain.PlayerID) {
	m.locks.EXPECT().Lock(gomock.Any(), playerID).Return(nil)
	m.locks.EXPECT().Unlock(playerID)
}

func testMoney(t *testing.T, amount float64) domain.Money {
	t.Helper()
	money, err := domain.NewMoneyFromFloat(amount, "USD")
	require.NoError(t, err)
	return money
}

func TestCreate_HashesPasswordAndSaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByEmail("daniel@example.com").Return(nil, nil)
	var saved *domain.Player
	m.players.EXPECT().Save(gomock.Any()).DoAndReturn(func(p *domain.Player) error {
		saved = p
		return nil
	})
	m.uow.EXPECT().Commit().Return(nil)

	player, err := uc.Create(context.Background(), "Daniel", "daniel@example.com", "hunter22", testMoney(t, 1000))
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "Daniel", player.Name())
	assert.NotEmpty(t, player.PasswordHash())
	assert.NotEqual(t, "hunter22", player.PasswordHash())
	assert.Equal(t, hashPassword("hunter22"), player.PasswordHash())
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	existing, err := domain.NewPlayer("Daniel", "daniel@example.com", testMoney(t, 0))
	require.NoError(t, err)

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByEmail("daniel@example.com").Return(existing, nil)
	m.uow.EXPECT().Rollback().Return(nil)

	_, err = uc.Create(context.Background(), "Daniel", "daniel@example.com", "hunter22", testMoney(t, 1000))
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeConflict))
}

func TestCreate_EmptyPasswordRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _ := newUseCase(ctrl)

	_, err := uc.Create(context.Background(), "Daniel", "daniel@example.com", "", testMoney(t, 1000))
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeValidation))
}

func TestAuthenticate_IssuesToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player, err := domain.NewPlayer("Daniel", "daniel@example.com", testMoney(t, 1000))
	require.NoError(t, err)
	player.SetPasswordHash(hashPassword("hunter22"))

	m.players.EXPECT().FindByEmail("daniel@example.com").Return(player, nil)

	token, authed, err := uc.Authenticate(context.Background(), "daniel@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, player.ID(), authed.ID())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player, err := domain.NewPlayer("Daniel", "daniel@example.com", testMoney(t, 1000))
	require.NoError(t, err)
	player.SetPasswordHash(hashPassword("hunter22"))

	m.players.EXPECT().FindByEmail("daniel@example.com").Return(player, nil)

	_, _, err = uc.Authenticate(context.Background(), "daniel@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeInvalidCredentials))
}

func TestAuthenticate_ExternalOnlyPlayerRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player, err := domain.NewPlayerFromExternalAccount("Daniel", "daniel@example.com", "ext-1", testMoney(t, 0))
	require.NoError(t, err)

	m.players.EXPECT().FindByEmail("daniel@example.com").Return(player, nil)

	_, _, err = uc.Authenticate(context.Background(), "daniel@example.com", "")
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeInvalidCredentials))
}

func TestLinkExternalAccount_OnlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player, err := domain.NewPlayerFromExternalAccount("Daniel", "daniel@example.com", "ext-1", testMoney(t, 0))
	require.NoError(t, err)
	expectLock(m, player.ID())

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.uow.EXPECT().Rollback().Return(nil)

	_, err = uc.LinkExternalAccount(context.Background(), player.ID(), "ext-2")
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeAccountAlreadyLinked))
}

func TestAdjustBankroll_SavesMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player, err := domain.NewPlayer("Daniel", "daniel@example.com", testMoney(t, 1000))
	require.NoError(t, err)
	expectLock(m, player.ID())

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.players.EXPECT().Save(player).Return(nil)
	m.uow.EXPECT().Commit().Return(nil)

	updated, err := uc.AdjustBankroll(context.Background(), player.ID(), testMoney(t, -200))
	require.NoError(t, err)
	assert.True(t, updated.Bankroll().Equals(testMoney(t, 800)))
}

func TestDelete_BlockedByActiveSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player, err := domain.NewPlayer("Daniel", "daniel@example.com", testMoney(t, 1000))
	require.NoError(t, err)
	expectLock(m, player.ID())

	stakes, err := domain.NewStakes(testMoney(t, 1), testMoney(t, 2), nil)
	require.NoError(t, err)
	active, err := domain.StartSession(player.ID(), "Bellagio", stakes, testMoney(t, 100), "")
	require.NoError(t, err)

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.sessions.EXPECT().FindActiveByPlayerID(player.ID()).Return(active, nil)
	m.uow.EXPECT().Rollback().Return(nil)

	err = uc.Delete(context.Background(), player.ID())
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeActiveSessionExists))
}

func TestDelete_Succeeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player, err := domain.NewPlayer("Daniel", "daniel@example.com", testMoney(t, 1000))
	require.NoError(t, err)
	expectLock(m, player.ID())

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.sessions.EXPECT().FindActiveByPlayerID(player.ID()).Return(nil, nil)
	m.players.EXPECT().Delete(player.ID()).Return(nil)
	m.uow.EXPECT().Commit().Return(nil)

	require.NoError(t, uc.Delete(context.Background(), player.ID()))
}
