package session

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/domain/mocks"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type useCaseMocks struct {
	uowFactory *mocks.MockUnitOfWorkFactory
	uow        *mocks.MockUnitOfWork
	players    *mocks.MockPlayerRepository
	sessions   *mocks.MockSessionRepository
	publisher  *mocks.MockEventPublisher
	locks      *mocks.MockLockManager
}

func newUseCase(ctrl *gomock.Controller) (*SessionUseCase, *useCaseMocks) {
	m := &useCaseMocks{
		uowFactory: mocks.NewMockUnitOfWorkFactory(ctrl),
		uow:        mocks.NewMockUnitOfWork(ctrl),
		players:    mocks.NewMockPlayerRepository(ctrl),
		sessions:   mocks.NewMockSessionRepository(ctrl),
		publisher:  mocks.NewMockEventPublisher(ctrl),
		locks:      mocks.NewMockLockManager(ctrl),
	}
	m.uowFactory.EXPECT().New().Return(m.uow).AnyTimes()
	m.uow.EXPECT().Players().Return(m.players).AnyTimes()
	m.uow.EXPECT().Sessions().Return(m.sessions).AnyTimes()

	uc := &SessionUseCase{
		uowFactory:  m.uowFactory,
		publisher:   m.publisher,
		lockManager: m.locks,
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
	m, err := domain.NewMoneyFromFloat(amount, "USD")
	require.NoError(t, err)
	return m
}

func testStakes(t *testing.T) domain.Stakes {
	t.Helper()
	s, err := domain.NewStakes(testMoney(t, 1), testMoney(t, 2), nil)
	require.NoError(t, err)
	return s
}

func testPlayer(t *testing.T) *domain.Player {
	t.Helper()
	p, err := domain.NewPlayer("Daniel", "daniel@example.com", testMoney(t, 1000))
	require.NoError(t, err)
	return p
}

func activeSession(t *testing.T, playerID domain.PlayerID) *domain.Session {
	t.Helper()
	s, err := domain.StartSession(playerID, "Bellagio", testStakes(t), testMoney(t, 100), "")
	require.NoError(t, err)
	s.PullEvents()
	return s
}

func TestStart_CommitsAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player := testPlayer(t)
	expectLock(m, player.ID())

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.sessions.EXPECT().Save(gomock.Any()).Return(nil)
	m.players.EXPECT().Save(player).Return(nil)
	m.uow.EXPECT().Commit().Return(nil)

	var published []domain.DomainEvent
	m.publisher.EXPECT().PublishAll(gomock.Any(), gomock.Any()).Do(func(_ context.Context, events []domain.DomainEvent) {
		published = events
	})

	session, err := uc.Start(context.Background(), player.ID(), "Bellagio", testStakes(t), testMoney(t, 100), "")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, 1, player.SessionCount())
	require.Len(t, published, 1)
	assert.Equal(t, domain.EventTypeSessionStarted, published[0].EventType())
}

func TestStart_SaveFailureRollsBackAndPublishesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player := testPlayer(t)
	expectLock(m, player.ID())

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.sessions.EXPECT().Save(gomock.Any()).Return(domain.NewDatabaseError("insert session", assert.AnError))
	m.uow.EXPECT().Rollback().Return(nil)

	_, err := uc.Start(context.Background(), player.ID(), "Bellagio", testStakes(t), testMoney(t, 100), "")
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeDatabaseQuery))
}

func TestStart_UnknownPlayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	playerID := domain.NewPlayerID()
	expectLock(m, playerID)

	m.uow.EXPECT().Begin().Return(nil)
	m.players.EXPECT().FindByID(playerID).Return(nil, nil)
	m.uow.EXPECT().Rollback().Return(nil)

	_, err := uc.Start(context.Background(), playerID, "Bellagio", testStakes(t), testMoney(t, 100), "")
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodePlayerNotFound))
}

func TestEnd_SettlesBankrollAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player := testPlayer(t)
	session := activeSession(t, player.ID())
	expectLock(m, player.ID())

	m.uow.EXPECT().Begin().Return(nil)
	m.sessions.EXPECT().FindByID(session.ID()).Return(session, nil)
	m.sessions.EXPECT().Save(session).Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.players.EXPECT().Save(player).Return(nil)
	m.uow.EXPECT().Commit().Return(nil)

	var published []domain.DomainEvent
	m.publisher.EXPECT().PublishAll(gomock.Any(), gomock.Any()).Do(func(_ context.Context, events []domain.DomainEvent) {
		published = events
	})

	ended, err := uc.End(context.Background(), player.ID(), session.ID(), testMoney(t, 250), "")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusCompleted, ended.Status())

	// buy-in 100, cash-out 250: bankroll moves +150
	assert.True(t, player.Bankroll().Equals(testMoney(t, 1150)))
	require.Len(t, published, 1)
	assert.Equal(t, domain.EventTypeSessionEnded, published[0].EventType())
}

func TestEnd_CommitFailureSuppressesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	player := testPlayer(t)
	session := activeSession(t, player.ID())
	expectLock(m, player.ID())

	m.uow.EXPECT().Begin().Return(nil)
	m.sessions.EXPECT().FindByID(session.ID()).Return(session, nil)
	m.sessions.EXPECT().Save(session).Return(nil)
	m.players.EXPECT().FindByID(player.ID()).Return(player, nil)
	m.players.EXPECT().Save(player).Return(nil)
	m.uow.EXPECT().Commit().Return(domain.NewDatabaseError("commit", assert.AnError))

	_, err := uc.End(context.Background(), player.ID(), session.ID(), testMoney(t, 250), "")
	require.Error(t, err)
}

func TestEnd_OtherPlayersSessionForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	owner := domain.NewPlayerID()
	caller := domain.NewPlayerID()
	session := activeSession(t, owner)
	expectLock(m, caller)

	m.uow.EXPECT().Begin().Return(nil)
	m.sessions.EXPECT().FindByID(session.ID()).Return(session, nil)
	m.uow.EXPECT().Rollback().Return(nil)

	_, err := uc.End(context.Background(), caller, session.ID(), testMoney(t, 250), "")
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeForbidden))
}

func TestAddTransaction_RejectsCompletedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	playerID := domain.NewPlayerID()
	session := activeSession(t, playerID)
	require.NoError(t, session.End(testMoney(t, 250), ""))
	session.PullEvents()
	expectLock(m, playerID)

	m.uow.EXPECT().Begin().Return(nil)
	m.sessions.EXPECT().FindByID(session.ID()).Return(session, nil)
	m.uow.EXPECT().Rollback().Return(nil)

	_, err := uc.AddTransaction(context.Background(), playerID, session.ID(), domain.TransactionTypeRebuy, testMoney(t, 100), "", "")
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeSessionNotActive))
}

func TestAddTransaction_AppendsAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	playerID := domain.NewPlayerID()
	session := activeSession(t, playerID)
	expectLock(m, playerID)

	m.uow.EXPECT().Begin().Return(nil)
	m.sessions.EXPECT().FindByID(session.ID()).Return(session, nil)
	m.sessions.EXPECT().Save(session).Return(nil)
	m.uow.EXPECT().Commit().Return(nil)
	m.publisher.EXPECT().PublishAll(gomock.Any(), gomock.Any())

	tx, err := uc.AddTransaction(context.Background(), playerID, session.ID(), domain.TransactionTypeRebuy, testMoney(t, 100), "Second bullet", "")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, domain.TransactionTypeRebuy, tx.Type())
	assert.Len(t, session.Transactions(), 2)
}

func TestCancel_PublishesCancelledEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	playerID := domain.NewPlayerID()
	session := activeSession(t, playerID)
	expectLock(m, playerID)

	m.uow.EXPECT().Begin().Return(nil)
	m.sessions.EXPECT().FindByID(session.ID()).Return(session, nil)
	m.sessions.EXPECT().Save(session).Return(nil)
	m.uow.EXPECT().Commit().Return(nil)

	var published []domain.DomainEvent
	m.publisher.EXPECT().PublishAll(gomock.Any(), gomock.Any()).Do(func(_ context.Context, events []domain.DomainEvent) {
		published = events
	})

	cancelled, err := uc.Cancel(context.Background(), playerID, session.ID(), "table broke")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusCancelled, cancelled.Status())
	require.Len(t, published, 1)
	assert.Equal(t, domain.EventTypeSessionCancelled, published[0].EventType())
}

func TestGetByID_MissingSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	playerID := domain.NewPlayerID()
	sessionID := domain.NewSessionID()

	m.sessions.EXPECT().FindByID(sessionID).Return(nil, nil)

	_, err := uc.GetByID(context.Background(), playerID, sessionID)
	require.Error(t, err)
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeSessionNotFound))
}

func TestUpdateNotes_PersistsThroughUnitOfWork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newUseCase(ctrl)
	playerID := domain.NewPlayerID()
	session := activeSession(t, playerID)
	expectLock(m, playerID)

	m.uow.EXPECT().Begin().Return(nil)
	m.sessions.EXPECT().FindByID(session.ID()).Return(session, nil)
	m.sessions.EXPECT().Save(session).Return(nil)
	m.uow.EXPECT().Commit().Return(nil)
	m.publisher.EXPECT().PublishAll(gomock.Any(), gomock.Any())

	updated, err := uc.UpdateNotes(context.Background(), playerID, session.ID(), "ran well")
	require.NoError(t, err)
	assert.Equal(t, "ran well", updated.Notes())
}
