package app

import (
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/http/handlers"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

func (a *application) InitPlayerHandler(uc domain.PlayerUseCase, logger *logger.Logger) *handlers.PlayerHandler {
	return handlers.NewPlayerHandler(uc, logger)
}

func (a *application) InitSessionHandler(uc domain.SessionUseCase, logger *logger.Logger) *handlers.SessionHandler {
	return handlers.NewSessionHandler(uc, logger)
}

func (a *application) InitStatsHandler(uc domain.StatsUseCase, logger *logger.Logger) *handlers.StatsHandler {
	return handlers.NewStatsHandler(uc, logger)
}
