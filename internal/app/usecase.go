package app

import (
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/auth"
	"github.com/saradorri/pokerledger/internal/infrastructure/events"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/saradorri/pokerledger/internal/usecase/player"
	"github.com/saradorri/pokerledger/internal/usecase/session"
	"github.com/saradorri/pokerledger/internal/usecase/stats"
)

func (a *application) InitPlayerUseCase(
	uowFactory domain.UnitOfWorkFactory,
	lockManager domain.LockManager,
	jwtService auth.JWTService,
	logger *logger.Logger,
) domain.PlayerUseCase {
	return player.NewPlayerUseCase(uowFactory, lockManager, jwtService, logger)
}

func (a *application) InitSessionUseCase(
	uowFactory domain.UnitOfWorkFactory,
	dispatcher *events.Dispatcher,
	lockManager domain.LockManager,
	logger *logger.Logger,
) domain.SessionUseCase {
	return session.NewSessionUseCase(uowFactory, dispatcher, lockManager, logger)
}

func (a *application) InitStatsUseCase(
	uowFactory domain.UnitOfWorkFactory,
	logger *logger.Logger,
) domain.StatsUseCase {
	return stats.NewStatsUseCase(uowFactory, logger)
}
